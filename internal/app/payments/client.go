package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"shop/internal/app/config"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// UnknownBalance - баланс недоступен (ошибка сети или авторизации)
var UnknownBalance = decimal.NewFromInt(-1)

const balancePath = "/api/balance"

// Client - клиент сервиса платежей. Токен client credentials кешируется
// и обновляется token source'ом, к каждому запросу добавляется Bearer заголовок
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(cfg config.PaymentsConfig) *Client {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       cfg.Scopes,
	}

	// запросы за токеном идут с тем же таймаутом
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: cfg.Timeout})
	httpClient := cc.Client(tokenCtx)
	httpClient.Timeout = cfg.Timeout

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.URL, "/"),
	}
}

// Balance возвращает баланс счёта или UnknownBalance при любой ошибке
func (c *Client) Balance(ctx context.Context) decimal.Decimal {
	balance, err := c.fetchBalance(ctx)
	if err != nil {
		logrus.WithError(err).Warn("payments: balance unavailable")
		return UnknownBalance
	}
	return balance
}

func (c *Client) fetchBalance(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+balancePath, nil)
	if err != nil {
		return decimal.Zero, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to reach payments: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("payments returned status %d", resp.StatusCode)
	}

	var balance decimal.Decimal
	if err := json.NewDecoder(resp.Body).Decode(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode balance: %w", err)
	}
	return balance, nil
}

// Charge списывает сумму. false - отказ сервиса, нехватка средств или любая ошибка
func (c *Client) Charge(ctx context.Context, amount decimal.Decimal) bool {
	ok, err := c.charge(ctx, amount)
	if err != nil {
		logrus.WithError(err).WithField("amount", amount.String()).Warn("payments: charge failed")
		return false
	}
	return ok
}

func (c *Client) charge(ctx context.Context, amount decimal.Decimal) (bool, error) {
	body, err := json.Marshal(json.Number(amount.String()))
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+balancePath, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to reach payments: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("payments returned status %d", resp.StatusCode)
	}

	var ok bool
	if err := json.NewDecoder(resp.Body).Decode(&ok); err != nil {
		return false, fmt.Errorf("failed to decode charge result: %w", err)
	}
	return ok, nil
}
