// Package server exposes the registry over HTTP. This surface is a caller of
// the registry services, not part of their contract; tests and other drivers
// use the services directly.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	catalogdomain "github.com/smallbiznis/subtrack/internal/catalog/domain"
	"github.com/smallbiznis/subtrack/internal/config"
	customerdomain "github.com/smallbiznis/subtrack/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/subtrack/internal/invoice/domain"
	"github.com/smallbiznis/subtrack/internal/observability/metrics"
	"github.com/smallbiznis/subtrack/internal/observability/tracing"
	paymentdomain "github.com/smallbiznis/subtrack/internal/payment/domain"
	"github.com/smallbiznis/subtrack/internal/providers/pdf"
	subscriptiondomain "github.com/smallbiznis/subtrack/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module wires the gin engine, the server, and the HTTP lifecycle.
var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, m *metrics.Registry) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogMiddleware(log))
	r.Use(tracing.GinMiddleware())
	r.Use(MetricsMiddleware(m))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, m *metrics.Registry) *gin.Engine {
	return NewEngine(log, m)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	customerSvc     customerdomain.Service
	catalogSvc      catalogdomain.Catalog
	subscriptionSvc subscriptiondomain.Service
	invoiceSvc      invoicedomain.Service
	paymentSvc      paymentdomain.Service
	customers       customerdomain.Repository
	services        catalogdomain.Repository
	subscriptions   subscriptiondomain.Repository
	pdf             pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	CustomerSvc     customerdomain.Service
	CatalogSvc      catalogdomain.Catalog
	SubscriptionSvc subscriptiondomain.Service
	InvoiceSvc      invoicedomain.Service
	PaymentSvc      paymentdomain.Service
	Customers       customerdomain.Repository
	Services        catalogdomain.Repository
	Subscriptions   subscriptiondomain.Repository
	PDF             pdf.Provider
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		customerSvc:     p.CustomerSvc,
		catalogSvc:      p.CatalogSvc,
		subscriptionSvc: p.SubscriptionSvc,
		invoiceSvc:      p.InvoiceSvc,
		paymentSvc:      p.PaymentSvc,
		customers:       p.Customers,
		services:        p.Services,
		subscriptions:   p.Subscriptions,
		pdf:             p.PDF,
	}
}

func registerRoutes(s *Server) {
	v1 := s.engine.Group("/v1")

	v1.POST("/customers", s.CreateCustomer)
	v1.GET("/customers", s.ListCustomers)
	v1.GET("/customers/:id", s.GetCustomerByID)
	v1.GET("/customers/:id/services", s.GetActiveServicesForCustomer)

	v1.POST("/services", s.CreateService)
	v1.GET("/services", s.ListServices)
	v1.GET("/services/:id", s.GetServiceByID)
	v1.GET("/services/:id/customers", s.GetCustomersSubscribedToService)

	v1.POST("/subscriptions", s.CreateSubscription)
	v1.GET("/subscriptions", s.ListSubscriptions)
	v1.POST("/subscriptions/:id/cancel", s.CancelSubscription)

	v1.POST("/invoices", s.CreateInvoice)
	v1.GET("/invoices", s.ListInvoices)
	v1.GET("/invoices/:id", s.GetInvoiceByID)
	v1.GET("/invoices/:id/pdf", s.GetInvoicePDF)

	v1.POST("/payments", s.ProcessPayment)
	v1.GET("/payments", s.ListPayments)
}
