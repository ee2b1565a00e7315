package main

import (
	"fmt"
	"log"
	"net/http"

	"pairchat/config"
	"pairchat/internal/domain/conversation"
	"pairchat/internal/domain/message"
	"pairchat/internal/handler"
	"pairchat/internal/identity"
	"pairchat/internal/middleware"
	"pairchat/internal/repository"
	"pairchat/internal/services"
	"pairchat/pkg/database"
	"pairchat/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.LoadConfig()

	logMode := logger.DevelopmentMode
	if cfg.AppMode == gin.ReleaseMode {
		logMode = logger.ProductionMode
	}
	l := logger.New(logMode)
	logger.SetGlobalLogger(l)

	db := database.Connect(cfg)
	if err := db.AutoMigrate(
		&conversation.Conversation{},
		&conversation.Participant{},
		&message.Message{},
	); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
	})

	resolver := identity.NewRedisResolver(redisClient, identity.Config{
		RequestChannel: cfg.AuthRequestChannel,
		ReplyPrefix:    cfg.AuthReplyPrefix,
		Timeout:        cfg.AuthTimeout,
	}, l)

	convRepo := repository.NewConversationRepository(db)
	msgRepo := repository.NewMessageRepository(db)
	chatService := services.NewChatService(convRepo, msgRepo, resolver)
	chatHandler := handler.NewChatHandler(chatService)

	gin.SetMode(cfg.AppMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware(l))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	chatHandler.RegisterRoutes(api)

	log.Printf("Starting server on port %s", cfg.AppPort)
	if err := r.Run(fmt.Sprintf(":%s", cfg.AppPort)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
