package http

import (
	"context"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	echo "github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/acme/customer-service/internal/config"
	"github.com/acme/customer-service/internal/http/middleware"
	"github.com/acme/customer-service/internal/logger"
	"github.com/acme/customer-service/internal/metrics"
	"github.com/acme/customer-service/internal/repository"
	"github.com/acme/customer-service/internal/service/customers"
)

type Server struct{ e *echo.Echo }

func NewServer(cfg config.Config, mysqlDB *sqlx.DB, rds *redis.Client) *Server {
	customersRepo := repository.NewCustomersRepository(mysqlDB)
	svc := customers.New(customersRepo, logger.Log)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	return &Server{e: newRouter(cfg, svc, rds)}
}

// newRouter wires middleware and routes. Split from NewServer so tests
// can mount the routes over an in-memory store without MySQL or Redis.
func newRouter(cfg config.Config, svc *customers.Service, rds *redis.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMid.Recover(), echoMid.Logger(), middleware.RequestID())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Redis:          rds,
		RPS:            cfg.RateLimit.RPS,
		KeyPrefix:      "rl:ip:",
		Window:         time.Second,
		RetryAfterHint: true,
	})

	// routes
	api := e.Group("/api/customers", rlMW)
	api.GET("", listCustomersHandler(svc))
	api.GET("/page", pageCustomersHandler(svc))
	api.GET("/search", searchCustomersHandler(svc))
	api.GET("/search/page", searchPageCustomersHandler(svc))
	api.GET("/by-email", getByEmailHandler(svc))
	api.GET("/by-phone", getByPhoneHandler(svc))
	api.GET("/exists/email/:email", existsEmailHandler(svc))
	api.GET("/count/lastname/:lastName", countByLastNameHandler(svc))
	api.GET("/stats", statsHandler(svc))
	api.GET("/:id", getCustomerHandler(svc))
	api.POST("", createCustomerHandler(svc))
	api.PUT("/:id", updateCustomerHandler(svc))
	api.DELETE("/:id", deleteCustomerHandler(svc))

	return e
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }
