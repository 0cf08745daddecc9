package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/queue"
	"storefront/internal/repository/mysql"
	"storefront/internal/router"
	"storefront/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, product cache disabled")
	}
	productCache := cache.New(rdb, "app")

	users := mysql.NewUserRepo(db)
	products := mysql.NewProductRepo(db)
	orders := mysql.NewOrderRepo(db)

	authSvc := service.NewAuthService(users, cfg)
	productSvc := service.NewProductService(products, productCache)
	orderSvc := service.NewOrderService(orders, users, queue.NewPublisher())

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.Register(e, cfg.JWTSecret,
		handler.NewAuthHandler(authSvc),
		handler.NewProductHandler(productSvc),
		handler.NewOrderHandler(orderSvc),
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
