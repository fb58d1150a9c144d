package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"flashchat/backend/internal/api/handler"
	"flashchat/backend/internal/config"
	"flashchat/backend/internal/models"
	"flashchat/backend/internal/relay"
	"flashchat/backend/internal/storage"
	"flashchat/backend/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Перевірка з'єднання Redis
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Міграції (створення таблиць)
	err = db.AutoMigrate(
		&models.User{},
		&models.Card{},
		&models.CardStat{},
		&models.ChatRoom{},
		&models.ChatHistory{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting FlashChat Backend...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("MOBILE_SECRET_CODE не встановлено!")
	}

	// 1. Ініціалізація залежностей
	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)
	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)

	// 2. Ядро реального часу: реєстр живих з'єднань + маршрутизатор
	registry := relay.NewRegistry()
	router := relay.NewRouter(registry, s)

	// 3. Налаштування Gin та роутингу
	r := gin.Default()
	h := handler.NewHandler(s, tokens, registry, router, cfg.Location())

	api := r.Group("/api")
	{
		api.POST("/registration", h.Registration)
		api.POST("/login", h.Login)
		api.GET("/ws", h.ServeWebSocket) // WebSocket Upgrade

		authorized := api.Group("", h.RequireAuth())
		{
			authorized.GET("/get_current_user", h.Me)

			authorized.GET("/get_cards", h.GetCards)
			authorized.POST("/add_card", h.AddCard)
			authorized.DELETE("/delete_card/:card_id", h.DeleteCard)
			authorized.PUT("/update_card/:card_id", h.UpdateCard)
			authorized.GET("/get_stat/:card_id", h.GetStat)

			authorized.GET("/chat_users", h.ChatUsers)
			authorized.GET("/get_chat/:user2", h.GetChat)
			authorized.GET("/chat_search/:search", h.SearchChat)
		}
	}

	// 4. Запуск HTTP-сервера
	server := &http.Server{
		Addr:           cfg.ListenAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
