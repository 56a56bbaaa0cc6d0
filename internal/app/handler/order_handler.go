package handler

import (
	"net/http"

	"shop/internal/app/dto"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetOrders(ctx *gin.Context) {
	orders, err := h.Orders.ListOrders(ctx.Request.Context())
	if err != nil {
		h.errorHandler(ctx, statusFor(err), err)
		return
	}

	h.render(ctx, http.StatusOK, "orders.html", gin.H{
		"orders": orders,
	})
}

func (h *Handler) GetOrder(ctx *gin.Context) {
	id, err := parseID(ctx)
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	var query dto.OrderQuery
	_ = ctx.ShouldBindQuery(&query)

	order, err := h.Orders.GetOrder(ctx.Request.Context(), id)
	if err != nil {
		h.errorHandler(ctx, statusFor(err), err)
		return
	}

	h.render(ctx, http.StatusOK, "order.html", gin.H{
		"order":    order,
		"newOrder": query.NewOrder,
	})
}
