package dto

import (
	"fmt"
	"mime/multipart"
	"time"

	"shop/internal/app/ds"
	"shop/internal/app/service"
)

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Запросы ============

// ItemsRequest - параметры витрины (query string)
type ItemsRequest struct {
	Search     string `form:"search"`
	Sort       string `form:"sort,default=NO"`
	PageNumber int    `form:"pageNumber,default=1" binding:"min=1"`
	PageSize   int    `form:"pageSize,default=10" binding:"min=1,max=100"`
}

type CartActionRequest struct {
	Action string `form:"action" json:"action" binding:"required"`
}

type OrderQuery struct {
	NewOrder bool `form:"newOrder"`
}

type ErrorQuery struct {
	Message string `form:"message"`
}

// NewItemForm - multipart форма добавления товара
type NewItemForm struct {
	Title       string                `form:"title" binding:"required,max=255"`
	Description string                `form:"description"`
	Price       string                `form:"price" binding:"required"`
	Image       *multipart.FileHeader `form:"image"`
}

type CredentialsRequest struct {
	Login    string `form:"login" json:"login" binding:"required,max=50"`
	Password string `form:"password" json:"password" binding:"required"`
}

// ============ Товары ============

type ItemResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url,omitempty"`
	Count       int    `json:"count"`
}

type ItemListResponse struct {
	Items       []ItemResponse `json:"items"`
	PageNumber  int            `json:"page_number"`
	PageSize    int            `json:"page_size"`
	HasNext     bool           `json:"has_next"`
	HasPrevious bool           `json:"has_previous"`
	Total       int64          `json:"total"`
}

func ImageURL(id uint) string {
	return fmt.Sprintf("/items/image/%d", id)
}

func NewItemResponse(v service.ItemView) ItemResponse {
	resp := ItemResponse{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Price:       v.Price.StringFixed(2),
		Count:       v.Count,
	}
	if v.HasImage {
		resp.ImageURL = ImageURL(v.ID)
	}
	return resp
}

func NewItemListResponse(page *service.ItemsPage) ItemListResponse {
	items := make([]ItemResponse, 0, len(page.Items))
	for _, v := range page.Items {
		items = append(items, NewItemResponse(v))
	}
	return ItemListResponse{
		Items:       items,
		PageNumber:  page.Paging.PageNumber,
		PageSize:    page.Paging.PageSize,
		HasNext:     page.Paging.HasNext,
		HasPrevious: page.Paging.HasPrevious,
		Total:       page.Total,
	}
}

// ============ Корзина ============

type CartLineResponse struct {
	ItemID      uint   `json:"item_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Count       int    `json:"count"`
	Sum         string `json:"sum"`
	ImageURL    string `json:"image_url,omitempty"`
}

type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Total string             `json:"total"`
	Empty bool               `json:"empty"`
}

func NewCartLineResponse(l ds.CartLine) CartLineResponse {
	resp := CartLineResponse{
		ItemID:      l.ItemID,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price.StringFixed(2),
		Count:       l.Count,
		Sum:         l.Sum().StringFixed(2),
	}
	if l.HasImage {
		resp.ImageURL = ImageURL(l.ItemID)
	}
	return resp
}

func NewCartResponse(c *service.Cart) CartResponse {
	items := make([]CartLineResponse, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, NewCartLineResponse(l))
	}
	return CartResponse{
		Items: items,
		Total: c.Total.StringFixed(2),
		Empty: c.Empty,
	}
}

// ============ Заказы ============

type OrderItemResponse struct {
	ItemID      uint   `json:"item_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Count       int    `json:"count"`
	Sum         string `json:"sum"`
}

type OrderResponse struct {
	ID        uint                `json:"id"`
	Login     string              `json:"login"`
	CreatedAt time.Time           `json:"created_at"`
	Total     string              `json:"total"`
	Items     []OrderItemResponse `json:"items"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

type BuyResponse struct {
	OrderID uint `json:"order_id"`
}

func NewOrderResponse(o service.OrderView) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ItemID:      it.ItemID,
			Title:       it.Title,
			Description: it.Description,
			Price:       it.Price.StringFixed(2),
			Count:       it.Count,
			Sum:         it.Sum().StringFixed(2),
		})
	}
	return OrderResponse{
		ID:        o.ID,
		Login:     o.Login,
		CreatedAt: o.CreatedAt,
		Total:     o.Total.StringFixed(2),
		Items:     items,
	}
}

func NewOrderListResponse(orders []service.OrderView) OrderListResponse {
	resp := OrderListResponse{Orders: make([]OrderResponse, 0, len(orders)), Total: len(orders)}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, NewOrderResponse(o))
	}
	return resp
}

// ============ Баланс и пользователи ============

// BalanceResponse. Known=false, если платёжный сервис недоступен
type BalanceResponse struct {
	Balance string `json:"balance"`
	Known   bool   `json:"known"`
}

type UserResponse struct {
	Login string   `json:"login"`
	Roles []string `json:"roles"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int          `json:"expires_in"`
	User      UserResponse `json:"user"`
}

func NewUserResponse(p service.Principal) UserResponse {
	roles := make([]string, len(p.Roles))
	for i, r := range p.Roles {
		roles[i] = string(r)
	}
	return UserResponse{Login: p.Login, Roles: roles}
}
