package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"shop/internal/app/dsn"
	"shop/internal/app/repository"
	"shop/internal/app/role"
	"shop/internal/app/service"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	envAdminLogin    = "ADMIN_LOGIN"
	envAdminPassword = "ADMIN_PASSWORD"
)

func main() {
	list := flag.Bool("list", false, "вывести товары после миграции")
	flag.Parse()

	// Загрузка переменных окружения из .env файла
	_ = godotenv.Load()

	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		log.Fatal("DSN string is empty. Check your .env file")
	}

	// repository.New подключается и мигрирует все модели
	repo, err := repository.New(dsnStr)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	defer repo.Close()

	log.Info("Database migration completed successfully")

	ctx := context.Background()

	if err := bootstrapAdmin(ctx, service.NewUserService(repo)); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	if *list {
		if err := printItems(ctx, repo); err != nil {
			log.Fatalf("Failed to get items: %v", err)
		}
	}
}

// bootstrapAdmin создаёт администратора из ADMIN_LOGIN/ADMIN_PASSWORD, если он задан
func bootstrapAdmin(ctx context.Context, users *service.UserService) error {
	login, password := os.Getenv(envAdminLogin), os.Getenv(envAdminPassword)
	if login == "" || password == "" {
		return nil
	}

	_, err := users.Register(ctx, login, password, role.User, role.Admin)
	if errors.Is(err, service.ErrAlreadyExists) {
		log.Infof("admin %s already exists", login)
		return nil
	}
	if err != nil {
		return err
	}

	log.Infof("admin %s created", login)
	return nil
}

func printItems(ctx context.Context, repo *repository.Repository) error {
	items, err := repo.ListAllItems(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Items in database:")
	for _, item := range items {
		imageKey := "NULL"
		if item.ImageKey != nil {
			imageKey = *item.ImageKey
		}
		fmt.Printf("ID: %d, Title: %s, Price: %s, Image: %s\n", item.ID, item.Title, item.Price.StringFixed(2), imageKey)
	}
	return nil
}
