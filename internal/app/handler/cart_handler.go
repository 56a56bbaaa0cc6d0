package handler

import (
	"fmt"
	"net/http"

	"shop/internal/app/middleware"
	"shop/internal/app/payments"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func (h *Handler) GetCart(ctx *gin.Context) {
	cart, err := h.Cart.GetCart(ctx.Request.Context(), middleware.CurrentLogin(ctx))
	if err != nil {
		h.errorHandler(ctx, statusFor(err), err)
		return
	}

	data := gin.H{
		"items": cart.Lines,
		"total": cart.Total,
		"empty": cart.Empty,
	}

	// баланс нужен только для непустой корзины
	canBuy := false
	if !cart.Empty {
		balance := h.Balance.Balance(ctx.Request.Context())
		known := !balance.Equal(payments.UnknownBalance)
		canBuy = known && balance.GreaterThanOrEqual(cart.Total)
		data["balanceKnown"] = known
		data["balance"] = balance
	}
	data["canBuy"] = canBuy

	h.render(ctx, http.StatusOK, "cart.html", data)
}

// ошибки действий с корзины логируются, пользователь возвращается в корзину
func (h *Handler) ChangeItemFromCart(ctx *gin.Context) {
	if err := h.applyAction(ctx); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"item":  ctx.Param("id"),
			"login": middleware.CurrentLogin(ctx),
		}).Warn("cart action failed")
	}
	ctx.Redirect(http.StatusFound, "/cart/items")
}

func (h *Handler) Buy(ctx *gin.Context) {
	orderID, err := h.Orders.Buy(ctx.Request.Context(), middleware.CurrentLogin(ctx))
	if err != nil {
		status := statusFor(err)
		logrus.WithError(err).WithField("login", middleware.CurrentLogin(ctx)).Warn("purchase failed")
		h.redirectToError(ctx, userMessage(status, err))
		return
	}

	ctx.Redirect(http.StatusFound, fmt.Sprintf("/orders/%d?newOrder=true", orderID))
}
