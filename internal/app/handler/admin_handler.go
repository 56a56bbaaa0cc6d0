package handler

import (
	"fmt"
	"io"
	"net/http"

	"shop/internal/app/dto"
	"shop/internal/app/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// максимальный размер картинки товара
const maxImageSize = 10 << 20

func (h *Handler) GetAddItem(ctx *gin.Context) {
	h.render(ctx, http.StatusOK, "add-item.html", gin.H{})
}

// AddItem - добавление товара из multipart формы
func (h *Handler) AddItem(ctx *gin.Context) {
	var form dto.NewItemForm
	if err := ctx.ShouldBind(&form); err != nil {
		h.renderAddItemError(ctx, form, err)
		return
	}

	price, err := decimal.NewFromString(form.Price)
	if err != nil {
		h.renderAddItemError(ctx, form, fmt.Errorf("%w: price must be a number", service.ErrValidation))
		return
	}

	newItem := service.NewItem{
		Title:       form.Title,
		Description: form.Description,
		Price:       price,
	}

	if form.Image != nil && form.Image.Size > 0 {
		if form.Image.Size > maxImageSize {
			h.renderAddItemError(ctx, form, fmt.Errorf("%w: image is too large", service.ErrValidation))
			return
		}
		data, err := readUpload(form)
		if err != nil {
			h.errorHandler(ctx, http.StatusBadRequest, err)
			return
		}
		newItem.Image = data
		newItem.ImageName = form.Image.Filename
	}

	item, err := h.Catalog.CreateItem(ctx.Request.Context(), newItem)
	if err != nil {
		if statusFor(err) == http.StatusBadRequest {
			h.renderAddItemError(ctx, form, err)
			return
		}
		h.errorHandler(ctx, statusFor(err), err)
		return
	}

	ctx.Redirect(http.StatusFound, fmt.Sprintf("/items/%d", item.ID))
}

func readUpload(form dto.NewItemForm) ([]byte, error) {
	file, err := form.Image.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	return io.ReadAll(file)
}

func (h *Handler) renderAddItemError(ctx *gin.Context, form dto.NewItemForm, err error) {
	h.render(ctx, http.StatusBadRequest, "add-item.html", gin.H{
		"error":       err.Error(),
		"title":       form.Title,
		"description": form.Description,
		"price":       form.Price,
	})
}
