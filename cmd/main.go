package main

import (
	"database/sql"
	"time"

	"github.com/Yandex-School/SplitBill-backend/internal/api"
	"github.com/Yandex-School/SplitBill-backend/internal/config"
	"github.com/Yandex-School/SplitBill-backend/internal/repository"
	"github.com/Yandex-School/SplitBill-backend/internal/service"
	"github.com/Yandex-School/SplitBill-backend/migrations"
	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/segmentio/kafka-go"
	"golang.org/x/time/rate"
)

func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	db, err := connectDB(cfg.DatabaseDSN)
	if err != nil {
		panic(err)
	}

	if err := migrations.AutoMigrate(3, db); err != nil {
		panic(err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	var kafkaWriter *kafka.Writer
	if cfg.KafkaEnabled {
		kafkaWriter = config.NewKafkaWriter(cfg.KafkaBrokers, config.UserProductTopic)
	}

	// Initialize stores and services
	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	productRepo := repository.NewProductRepository(db)
	userProductRepo := repository.NewUserProductRepository(db)
	sessionStore := repository.NewRedisSessionStore(rdb)

	userService := service.NewUserService(userRepo, sessionStore, []byte(cfg.JWTSecret))
	roomService := service.NewRoomService(roomRepo)
	productService := service.NewProductService(productRepo, roomRepo)
	userProductService := service.NewUserProductService(userProductRepo, productRepo, userRepo, kafkaWriter)

	userHandler := api.NewUserHandler(userService)
	roomHandler := api.NewRoomHandler(roomService)
	productHandler := api.NewProductHandler(productService)
	userProductHandler := api.NewUserProductHandler(userProductService)

	e := echo.New()

	rateLimiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(20),
				Burst:     60,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.RealIP(), nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.RateLimiterWithConfig(rateLimiterConfig))

	// Public routes
	e.POST("/register", userHandler.Register)
	e.POST("/login", userHandler.Login)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "split-bill-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	// Authenticated routes
	v1 := e.Group("/v1", api.SessionMiddleware(userService))

	v1.POST("/rooms", roomHandler.CreateRoom)
	v1.GET("/rooms/", roomHandler.GetRooms)
	v1.GET("/rooms/:id", roomHandler.GetRoom)
	v1.PUT("/rooms/:id", roomHandler.UpdateRoom)
	v1.POST("/rooms/join/:id", roomHandler.JoinRoom)

	v1.POST("/products", productHandler.CreateProduct)
	v1.GET("/products/", productHandler.GetProducts)
	v1.GET("/products/:id", productHandler.GetProduct)
	v1.DELETE("/products/:id", productHandler.DeleteProduct)

	v1.POST("/user-products", userProductHandler.AddUserToProduct)
	v1.GET("/user-products/", userProductHandler.GetRoomUserProducts)
	v1.GET("/user-products/:id", userProductHandler.GetUserProducts)
	v1.PUT("/user-products/:id", userProductHandler.UpdateUserProduct)

	// Start server
	e.Logger.Fatal(e.Start(cfg.ServerAddr))
}
