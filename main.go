package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	api "github.com/giovaniif/locallawnpro/cmd/api"
	"github.com/giovaniif/locallawnpro/infra/config"
	"github.com/giovaniif/locallawnpro/infra/gateways"
	"github.com/giovaniif/locallawnpro/infra/logging"
	"github.com/giovaniif/locallawnpro/infra/loki"
	"github.com/giovaniif/locallawnpro/infra/metrics"
	"github.com/giovaniif/locallawnpro/infra/tracing"
	"github.com/giovaniif/locallawnpro/protocols"
	"github.com/giovaniif/locallawnpro/use_cases/customer"
	paymentintent "github.com/giovaniif/locallawnpro/use_cases/payment_intent"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	var sinks []io.Writer
	lokiWriter := loki.NewWriter(loki.Options{
		URL:    cfg.LokiURL,
		Labels: map[string]string{"job": cfg.ServiceName, "env": cfg.Env},
	})
	if lokiWriter != nil {
		sinks = append(sinks, lokiWriter)
		defer lokiWriter.Close()
	}

	logger := logging.MustNewLogger(logging.Options{
		Service: cfg.ServiceName,
		Env:     cfg.Env,
		LogFile: cfg.LogFile,
		Sinks:   sinks,
	})
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		logger.Warn("tracing_disabled", zap.Error(err))
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	if cfg.StripeSecretKey == "" {
		logger.Warn("stripe_secret_key_missing")
	}
	paymentGateway := metrics.NewInstrumentedPaymentGateway(gateways.NewStripeGateway(cfg.StripeSecretKey, gateways.StripeGatewayOptions{
		APIBase: cfg.StripeAPIBase,
		Logger:  logger.Named("stripe").Sugar(),
	}))

	idempotencyGateway := newIdempotencyGateway(ctx, cfg, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.Dependencies{
		CreatePaymentIntent: paymentintent.NewCreatePaymentIntent(paymentGateway, idempotencyGateway),
		RegisterCustomer:    customer.NewRegisterCustomer(paymentGateway),
		Logger:              logger,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
	})

	if err := api.StartServer(ctx, cfg, router, logger); err != nil {
		logger.Error("server_exit", zap.Error(err))
		os.Exit(1)
	}
}

func newIdempotencyGateway(ctx context.Context, cfg config.Config, logger *zap.Logger) protocols.IdempotencyGateway {
	if cfg.RedisAddr == "" {
		logger.Info("idempotency_store", zap.String("backend", "memory"))
		return gateways.NewIdempotencyGatewayMemory()
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("idempotency_store_redis_unreachable", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		_ = rdb.Close()
		return gateways.NewIdempotencyGatewayMemory()
	}
	logger.Info("idempotency_store", zap.String("backend", "redis"), zap.String("addr", cfg.RedisAddr))
	return gateways.NewIdempotencyGatewayRedis(rdb)
}
