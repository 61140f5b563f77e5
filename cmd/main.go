package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thriftly/checkout-service/internal/app"
	"github.com/thriftly/checkout-service/internal/config"
	"github.com/thriftly/checkout-service/internal/handler"
	"github.com/thriftly/checkout-service/internal/payments"
	"github.com/thriftly/checkout-service/internal/postgres"
	"github.com/thriftly/checkout-service/internal/repo"
	"github.com/thriftly/checkout-service/internal/service"
	"github.com/thriftly/checkout-service/internal/shippo"
	"github.com/thriftly/checkout-service/pkg/cache"
	"github.com/thriftly/checkout-service/pkg/trm"

	_ "github.com/thriftly/checkout-service/docs"

	"github.com/joho/godotenv"
)

// @title           Thrift Checkout Service API
// @version         1.0
// @description     Документация HTTP API
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	marketRepo := repo.NewPostgresRepo(db)
	txManager := trm.NewManager(db)
	orderCache := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)

	rateClient := shippo.NewClient(conf.Shippo)
	gateway := payments.NewStripeGateway(conf.Stripe)

	cartService := service.NewCartService(logger, marketRepo)
	shippingService := service.NewShippingService(logger, marketRepo, rateClient)
	checkoutService := service.NewCheckoutService(logger, txManager, marketRepo, gateway)
	orderService := service.NewOrderService(logger, txManager, marketRepo, orderCache)

	kafkaHandler := handler.NewKafkaHandler(logger, conf.Kafka, orderService)
	httpHandler := handler.NewHTTPHandler(logger, cartService, shippingService, checkoutService, orderService)

	handler.RegisterMetrics()

	app := app.New(logger, conf)

	app.SetHTTPHandlers(httpHandler)
	app.SetConsumers(kafkaHandler)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	orderCache.StartJanitor(ctx)
	if err := orderService.WarmUpCache(ctx, conf.Cache.Capacity); err != nil {
		logger.Warn("failed to warm up cache", slog.Any("error", err))
	}

	app.Start(ctx)
	<-ctx.Done()
	app.Stop()
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}
