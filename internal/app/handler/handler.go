package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"shop/internal/app/middleware"
	"shop/internal/app/repository"
	"shop/internal/app/role"
	"shop/internal/app/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	Catalog  Catalog
	Cart     Cart
	Orders   Orders
	Accounts Accounts
	Balance  Balance
	Auth     *middleware.AuthMiddleware
}

func NewHandler(catalog Catalog, cart Cart, orders Orders, accounts Accounts, balance Balance, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{
		Catalog:  catalog,
		Cart:     cart,
		Orders:   orders,
		Accounts: accounts,
		Balance:  balance,
		Auth:     auth,
	}
}

// Регистрация статических файлов
func (h *Handler) RegisterStatic(router *gin.Engine, templatesGlob, staticDir string) {
	router.LoadHTMLGlob(templatesGlob)
	router.Static("/static", staticDir)
}

// Регистрация маршрутов. Пользователь в контексте выставляется WithPrincipal раньше
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	authed := h.Auth.WithAuthCheck()
	admin := h.Auth.WithAuthCheck(role.Admin)

	// публичные
	router.GET("/", h.Index)
	router.GET("/main/items", h.GetItems)
	router.GET("/items/:id", h.GetItem)
	router.GET("/items/image/:id", h.GetImage)
	router.GET("/signup", h.GetSignup)
	router.POST("/signup", h.Signup)
	router.GET("/login", h.GetLogin)
	router.POST("/login", h.Login)
	router.GET("/error", h.GetError)

	// для пользователей с сессией
	router.POST("/main/items/:id", authed, h.ChangeItemFromMain)
	router.POST("/items/:id", authed, h.ChangeItemFromItem)
	router.GET("/cart/items", authed, h.GetCart)
	router.POST("/cart/items/:id", authed, h.ChangeItemFromCart)
	router.POST("/buy", authed, h.Buy)
	router.GET("/orders", authed, h.GetOrders)
	router.GET("/orders/:id", authed, h.GetOrder)
	router.POST("/logout", authed, h.Logout)

	// только для администраторов
	adminGroup := router.Group("/admin", admin)
	{
		adminGroup.GET("/items/add", h.GetAddItem)
		adminGroup.POST("/items/add", h.AddItem)
	}
}

func (h *Handler) Index(ctx *gin.Context) {
	ctx.Redirect(http.StatusFound, "/main/items")
}

// Централизованная обработка ошибок
func (h *Handler) errorHandler(ctx *gin.Context, errorStatusCode int, err error) {
	entry := logrus.WithError(err).WithFields(logrus.Fields{
		"method": ctx.Request.Method,
		"path":   ctx.Request.URL.Path,
		"status": errorStatusCode,
	})
	if errorStatusCode >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Warn("request rejected")
	}

	h.render(ctx, errorStatusCode, "error.html", gin.H{
		"message": userMessage(errorStatusCode, err),
	})
}

// render добавляет к данным шаблона текущего пользователя
func (h *Handler) render(ctx *gin.Context, status int, name string, data gin.H) {
	p, ok := middleware.CurrentPrincipal(ctx)
	data["user"] = p.Login
	data["isAdmin"] = ok && p.Has(role.Admin)
	ctx.HTML(status, name, data)
}

// redirectToError отправляет на страницу ошибки с сообщением
func (h *Handler) redirectToError(ctx *gin.Context, message string) {
	ctx.Redirect(http.StatusFound, "/error?"+url.Values{"message": {message}}.Encode())
}

// statusFor сопоставляет ошибки сервисов и HTTP статусы
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	}
	return http.StatusInternalServerError
}

// userMessage - текст для пользователя. Внутренние ошибки не раскрываются
func userMessage(status int, err error) string {
	switch {
	case status >= http.StatusInternalServerError:
		return "Внутренняя ошибка сервера"
	case errors.Is(err, service.ErrNotFound):
		return "Не найдено"
	case errors.Is(err, service.ErrInsufficientFunds):
		return "Недостаточно средств для оплаты заказа"
	case errors.Is(err, repository.ErrEmptyCart):
		return "Корзина пуста"
	case errors.Is(err, service.ErrAlreadyExists):
		return "Пользователь с таким логином уже существует"
	}
	return err.Error()
}

func parseID(ctx *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid id %q", service.ErrValidation, ctx.Param("id"))
	}
	return uint(id), nil
}
