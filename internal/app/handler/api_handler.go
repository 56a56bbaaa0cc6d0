package handler

import (
	"net/http"

	"shop/internal/app/dto"
	"shop/internal/app/middleware"
	"shop/internal/app/payments"
	"shop/internal/app/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// APIHandler содержит обработчики для REST API поверх тех же сервисов
type APIHandler struct {
	*Handler
}

func NewAPIHandler(h *Handler) *APIHandler {
	return &APIHandler{Handler: h}
}

// ============ Вспомогательные функции ============

func (h *APIHandler) errorResponse(c *gin.Context, statusCode int, err error) {
	if statusCode >= http.StatusInternalServerError {
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("api request failed")
	}
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: userMessage(statusCode, err),
	})
}

func (h *APIHandler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// ============ Товары ============

// GetItems получает страницу каталога
// @Summary Список товаров
// @Description Поиск по названию и описанию, сортировка и пагинация
// @Tags Items
// @Produce json
// @Param search query string false "Подстрока названия или описания"
// @Param sort query string false "NO, ALPHA или PRICE"
// @Param pageNumber query int false "Номер страницы, с 1"
// @Param pageSize query int false "Размер страницы"
// @Success 200 {object} dto.ItemListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/items [get]
func (h *APIHandler) GetItems(c *gin.Context) {
	var req dto.ItemsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err)
		return
	}

	sort, err := service.ParseSort(req.Sort)
	if err != nil {
		h.errorResponse(c, statusFor(err), err)
		return
	}

	page, err := h.Catalog.ListItems(c.Request.Context(), service.ItemsQuery{
		Search:     req.Search,
		Sort:       sort,
		PageNumber: req.PageNumber,
		PageSize:   req.PageSize,
		Login:      middleware.CurrentLogin(c),
	})
	if err != nil {
		h.errorResponse(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, dto.NewItemListResponse(page))
}

// GetItem получает один товар
// @Summary Товар по ID
// @Tags Items
// @Produce json
// @Param id path int true "ID товара"
// @Success 200 {object} dto.ItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/items/{id} [get]
func (h *APIHandler) GetItem(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err)
		return
	}

	item, err := h.Catalog.GetItem(c.Request.Context(), id, middleware.CurrentLogin(c))
	if err != nil {
		h.errorResponse(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, dto.NewItemResponse(*item))
}

// ============ Корзина ============

// GetCart корзина текущего пользователя
// @Summary Корзина
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CartResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/cart [get]
func (h *APIHandler) GetCart(c *gin.Context) {
	cart, err := h.Cart.GetCart(c.Request.Context(), middleware.CurrentLogin(c))
	if err != nil {
		h.errorResponse(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCartResponse(cart))
}

// UpdateCartItem меняет количество товара в корзине
// @Summary Изменение корзины
// @Description PLUS добавляет единицу, MINUS убирает единицу, DELETE удаляет товар
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID товара"
// @Param request body dto.CartActionRequest true "Действие"
// @Success 200 {object} dto.CartLineResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/cart/items/{id} [post]
func (h *APIHandler) UpdateCartItem(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err)
		return
	}

	var req dto.CartActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err)
		return
	}

	action, err := service.ParseAction(req.Action)
	if err != nil {
		h.errorResponse(c, statusFor(err), err)
		return
	}

	line, err := h.Cart.ApplyAction(c.Request.Context(), id, action, middleware.CurrentLogin(c))
	if err != nil {
		h.errorResponse(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCartLineResponse(*line))
}

// ============ Заказы ============

// Buy оформляет заказ из корзины
// @Summary Покупка
// @Description Списывает сумму корзины в платёжном сервисе и создаёт заказ
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 201 {object} dto.BuyResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 402 {object} dto.ErrorResponse
// @Router /api/buy [post]
func (h *APIHandler) Buy(c *gin.Context) {
	orderID, err := h.Orders.Buy(c.Request.Context(), middleware.CurrentLogin(c))
	if err != nil {
		h.errorResponse(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusCreated, dto.BuyResponse{OrderID: orderID})
}

// GetOrders список заказов
// @Summary Заказы
// @Description Все заказы, новые первыми
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.OrderListResponse
// @Router /api/orders [get]
func (h *APIHandler) GetOrders(c *gin.Context) {
	orders, err := h.Orders.ListOrders(c.Request.Context())
	if err != nil {
		h.errorResponse(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderListResponse(orders))
}

// GetOrder один заказ
// @Summary Заказ по ID
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id} [get]
func (h *APIHandler) GetOrder(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err)
		return
	}

	order, err := h.Orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.errorResponse(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderResponse(*order))
}

// GetBalance баланс счёта
// @Summary Баланс
// @Description Баланс в платёжном сервисе. known=false, если сервис недоступен
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.BalanceResponse
// @Router /api/balance [get]
func (h *APIHandler) GetBalance(c *gin.Context) {
	balance := h.Balance.Balance(c.Request.Context())

	c.JSON(http.StatusOK, dto.BalanceResponse{
		Balance: balance.StringFixed(2),
		Known:   !balance.Equal(payments.UnknownBalance),
	})
}
