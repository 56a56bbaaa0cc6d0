package api

import (
	"context"

	"shop/internal/app/config"
	"shop/internal/app/dsn"
	"shop/internal/app/handler"
	"shop/internal/app/middleware"
	"shop/internal/app/payments"
	"shop/internal/app/redis"
	"shop/internal/app/repository"
	"shop/internal/app/service"
	"shop/internal/app/storage"
	"shop/internal/pkg"

	_ "shop/docs"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// @title Online Shop API
// @version 1.0
// @description JSON API витрины, корзины и заказов интернет-магазина
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func StartServer() {
	logrus.Info("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("ошибка загрузки конфигурации: %v", err)
	}
	cfg.SetupLogging()

	ctx := context.Background()

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		logrus.Fatalf("ошибка инициализации репозитория: %v", err)
	}
	defer repo.Close()

	// Redis нужен для blacklist и кэша, без него магазин работает без кэша
	var (
		cache     service.Cache
		blacklist middleware.TokenBlacklist
	)
	if !cfg.Redis.Enabled() {
		logrus.Warn("REDIS_HOST не задан, кэш и отзыв токенов отключены")
	} else if redisClient, err := redis.New(ctx, cfg.Redis); err != nil {
		logrus.Warnf("redis недоступен, кэш и отзыв токенов отключены: %v", err)
	} else {
		defer redisClient.Close()
		cache = redisClient
		blacklist = redisClient
	}

	// Без MinIO товары показываются без картинок
	var images service.ImageStore
	minioClient, err := storage.NewMinIOClient(ctx, cfg.Minio)
	if err != nil {
		logrus.Warnf("minio недоступен, картинки товаров отключены: %v", err)
	} else {
		images = minioClient
	}

	paymentsClient := payments.NewClient(cfg.Payments)

	carts := service.NewCartService(repo, repo, cache, cfg.Shop.CartCacheTTL)
	catalog := service.NewCatalogService(repo, images, carts, cache, cfg.Shop)
	orders := service.NewOrderService(repo, paymentsClient, cache)
	users := service.NewUserService(repo)

	auth := middleware.NewAuthMiddleware(blacklist, cfg)
	h := handler.NewHandler(catalog, carts, orders, users, paymentsClient, auth)
	apiHandler := handler.NewAPIHandler(h)

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Logging.RequestLog {
		r.Use(middleware.RequestLogger())
	}
	r.Use(handler.CORS(cfg.CORS.AllowOrigins))
	r.Use(auth.WithPrincipal())

	application := pkg.NewApp(cfg, r, h, apiHandler)
	application.RunApp()

	logrus.Info("Server down")
}
