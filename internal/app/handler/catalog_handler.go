package handler

import (
	"fmt"
	"net/http"

	"shop/internal/app/dto"
	"shop/internal/app/middleware"
	"shop/internal/app/service"

	"github.com/gin-gonic/gin"
)

// витрина: поиск, сортировка, пагинация
func (h *Handler) GetItems(ctx *gin.Context) {
	var req dto.ItemsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	sort, err := service.ParseSort(req.Sort)
	if err != nil {
		h.errorHandler(ctx, statusFor(err), err)
		return
	}

	page, err := h.Catalog.ListItems(ctx.Request.Context(), service.ItemsQuery{
		Search:     req.Search,
		Sort:       sort,
		PageNumber: req.PageNumber,
		PageSize:   req.PageSize,
		Login:      middleware.CurrentLogin(ctx),
	})
	if err != nil {
		h.errorHandler(ctx, statusFor(err), err)
		return
	}

	h.render(ctx, http.StatusOK, "main.html", gin.H{
		"rows":         page.Rows,
		"paging":       page.Paging,
		"search":       req.Search,
		"sort":         string(sort),
		"previousPage": page.Paging.PageNumber - 1,
		"nextPage":     page.Paging.PageNumber + 1,
	})
}

func (h *Handler) GetItem(ctx *gin.Context) {
	id, err := parseID(ctx)
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	item, err := h.Catalog.GetItem(ctx.Request.Context(), id, middleware.CurrentLogin(ctx))
	if err != nil {
		h.errorHandler(ctx, statusFor(err), err)
		return
	}

	h.render(ctx, http.StatusOK, "item.html", gin.H{
		"item": item,
	})
}

// картинка товара, тип определяется по содержимому
func (h *Handler) GetImage(ctx *gin.Context) {
	id, err := parseID(ctx)
	if err != nil {
		ctx.Status(http.StatusBadRequest)
		return
	}

	data, err := h.Catalog.GetImage(ctx.Request.Context(), id)
	if err != nil {
		ctx.Status(statusFor(err))
		return
	}

	ctx.Data(http.StatusOK, http.DetectContentType(data), data)
}

func (h *Handler) ChangeItemFromMain(ctx *gin.Context) {
	if err := h.applyAction(ctx); err != nil {
		h.errorHandler(ctx, statusFor(err), err)
		return
	}
	ctx.Redirect(http.StatusFound, "/main/items")
}

func (h *Handler) ChangeItemFromItem(ctx *gin.Context) {
	if err := h.applyAction(ctx); err != nil {
		h.errorHandler(ctx, statusFor(err), err)
		return
	}
	ctx.Redirect(http.StatusFound, fmt.Sprintf("/items/%s", ctx.Param("id")))
}

// applyAction разбирает id и действие из формы и меняет корзину
func (h *Handler) applyAction(ctx *gin.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return err
	}

	var req dto.CartActionRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return fmt.Errorf("%w: %s", service.ErrValidation, err.Error())
	}

	action, err := service.ParseAction(req.Action)
	if err != nil {
		return err
	}

	_, err = h.Cart.ApplyAction(ctx.Request.Context(), id, action, middleware.CurrentLogin(ctx))
	return err
}
