package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hzqoola/blog-service/internal/config"
	"github.com/hzqoola/blog-service/internal/handler"
	"github.com/hzqoola/blog-service/internal/repository"
	"github.com/hzqoola/blog-service/internal/repository/contentful"
	"github.com/hzqoola/blog-service/internal/server"
	"github.com/hzqoola/blog-service/internal/service"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, _ := zap.NewProduction()

	if err := loadEnv(); err != nil {
		logger.Sugar().Panicf("failed to load environment variables: %s", err.Error())
	}

	if err := initConfig(); err != nil {
		logger.Sugar().Panicf("failed to initialize yaml config: %s", err.Error())
	}

	contentfulConfig := config.ContentfulConfig{
		SpaceID: os.Getenv("CONTENTFUL_SPACE_ID"),
		Environment: viper.GetString("contentful.environment"),
		DeliveryToken: os.Getenv("CONTENTFUL_DELIVERY_TOKEN"),
		ManagementToken: os.Getenv("CONTENTFUL_MANAGEMENT_TOKEN"),
	}
	cms := contentful.NewClient(contentfulConfig)
	if err := cms.Ping(ctx); err != nil {
		logger.Sugar().Panicf("failed to ping contentful: %s", err.Error())
	}
	logger.Info("Successfully connected to Contentful")

	redisOptions := &redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
	}
	rdb := redis.NewClient(redisOptions)
	pong, err := rdb.Ping(ctx).Result()
	if err != nil {
		logger.Sugar().Panicf("failed to ping redis: %s", err.Error())
	}
	logger.Sugar().Infof("Successfully connected to Redis: %s", pong)

	repos := repository.New(cms, rdb)
	services := service.New(logger, repos)
	handlers := handler.New(services)

	srv := server.New()
	serverConfig := config.ServerConfig{
		Port: viper.GetString("app.port"),
		Handler: handlers.InitRoutes(),
		MaxHeaderBytes: 1 << 20,
		ReadTimeout: time.Second * 10,
		WriteTimeout: time.Second * 10,
	}
	go func(srv *server.Server, cfg config.ServerConfig) {
		if err := srv.Run(cfg); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Panicf("failed to run http server: %s", err.Error())
		}
	}(srv, serverConfig)

	logger.Info("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shutdown http server: %s", err.Error())
	}
}

func loadEnv() error {
	return godotenv.Load()
}

func initConfig() error {
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	return viper.ReadInConfig()
}
