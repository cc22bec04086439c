package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/giovaniif/locallawnpro/infra/config"
	"github.com/giovaniif/locallawnpro/infra/logging"
	"github.com/giovaniif/locallawnpro/infra/metrics"
	"github.com/giovaniif/locallawnpro/infra/requestid"
	"github.com/giovaniif/locallawnpro/infra/tracing"
	"github.com/giovaniif/locallawnpro/use_cases/customer"
	paymentintent "github.com/giovaniif/locallawnpro/use_cases/payment_intent"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	liveMessage          = "LocalLawnPro Backend is Live!"
	idempotencyKeyHeader = "Idempotency-Key"
)

type CreatePaymentIntentRequest struct {
	AmountCents *int64            `json:"amount_cents" binding:"required,gt=0"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
}

type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Dependencies struct {
	CreatePaymentIntent *paymentintent.CreatePaymentIntent
	RegisterCustomer    *customer.RegisterCustomer
	Logger              *zap.Logger
	CORSAllowedOrigins  []string
}

func NewRouter(deps Dependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			logging.FromContext(c.Request.Context()).Error("panic_recovered", zap.Any("panic", recovered))
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
		}),
		requestid.Middleware(),
		cors.New(corsConfig(deps.CORSAllowedOrigins)),
		tracing.Middleware(),
		logging.Middleware(logger),
		metrics.Middleware,
	)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, liveMessage)
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/create-payment-intent", func(c *gin.Context) {
		var request CreatePaymentIntentRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			writeError(c, paymentIntentBindError(err))
			return
		}
		confirmation, err := deps.CreatePaymentIntent.Create(c.Request.Context(), paymentintent.Input{
			AmountCents:    *request.AmountCents,
			Description:    request.Description,
			Metadata:       request.Metadata,
			IdempotencyKey: c.GetHeader(idempotencyKeyHeader),
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, confirmation)
	})

	r.POST("/create-customer", func(c *gin.Context) {
		var request CreateCustomerRequest
		if err := c.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
			writeError(c, customerBindError(err))
			return
		}
		confirmation, err := deps.RegisterCustomer.Register(c.Request.Context(), customer.Input{
			Name:  request.Name,
			Email: request.Email,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, confirmation)
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", idempotencyKeyHeader, requestid.Header},
		ExposeHeaders: []string{requestid.Header},
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// StartServer serves handler on cfg.Addr() until ctx is canceled, then shuts
// down gracefully within cfg.ShutdownTimeout.
func StartServer(ctx context.Context, cfg config.Config, handler http.Handler, logger *zap.Logger) error {
	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http_server_start", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("http_server_error", zap.Error(err))
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_error", zap.Error(err))
		return err
	}
	logger.Info("http_server_stopped")
	return nil
}
