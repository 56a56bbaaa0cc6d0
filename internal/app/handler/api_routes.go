package handler

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// CORS для JSON API
func CORS(allowOrigins []string) gin.HandlerFunc {
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}
	return cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	})
}

// RegisterAPIRoutes регистрирует REST API маршруты с авторизацией
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine) {
	authed := h.Auth.WithAuthCheck()

	api := router.Group("/api")

	// ============ Товары - публичные ============
	items := api.Group("/items")
	{
		items.GET("", h.GetItems)
		items.GET("/:id", h.GetItem)
	}

	// ============ Корзина и заказы - для авторизованных ============
	api.GET("/cart", authed, h.GetCart)
	api.POST("/cart/items/:id", authed, h.UpdateCartItem)
	api.POST("/buy", authed, h.Buy)
	api.GET("/orders", authed, h.GetOrders)
	api.GET("/orders/:id", authed, h.GetOrder)
	api.GET("/balance", authed, h.GetBalance)

	// ============ Аутентификация ============
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.RegisterUser)
		auth.POST("/login", h.LoginUser)
		auth.POST("/logout", authed, h.LogoutUser)
		auth.GET("/profile", authed, h.GetUserProfile)
	}

	router.GET("/ping", h.Ping)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
