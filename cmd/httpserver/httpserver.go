// Package httpserver manages server creation and api routing.
package httpserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/kantoor/internal/alertdelivery"
	"github.com/go-petr/kantoor/internal/alertrepo"
	"github.com/go-petr/kantoor/internal/alertservice"
	"github.com/go-petr/kantoor/internal/domain"
	"github.com/go-petr/kantoor/internal/kvrepo"
	"github.com/go-petr/kantoor/internal/ledgerdelivery"
	"github.com/go-petr/kantoor/internal/ledgerrepo"
	"github.com/go-petr/kantoor/internal/ledgerservice"
	"github.com/go-petr/kantoor/internal/middleware"
	"github.com/go-petr/kantoor/internal/ratedelivery"
	"github.com/go-petr/kantoor/internal/ratesource"
	"github.com/go-petr/kantoor/internal/scheduler"
	"github.com/go-petr/kantoor/internal/streamdelivery"
	"github.com/go-petr/kantoor/pkg/configpkg"
	"github.com/go-petr/kantoor/pkg/currencypkg"
)

// DriverMemory keeps all state in process memory instead of a database.
const DriverMemory = "memory"

// Feed names.
const (
	PortfolioFeed = "portfolio"
	TickerFeed    = "ticker"
)

const streamBufferSize = 16

// Server holds db connection, handlers router, background jobs and configuration.
type Server struct {
	DB        *sql.DB
	Engine    *gin.Engine
	Config    configpkg.Config
	Ledger    *ledgerservice.Service
	Alerts    *alertservice.Service
	Portfolio *ratesource.Feed
	Ticker    *ratesource.Feed
	Hub       *streamdelivery.Hub
	Scheduler *scheduler.Scheduler

	http *http.Server
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// kvStore is satisfied by every kvrepo backend.
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

func newStore(ctx context.Context, conn *sql.DB, config configpkg.Config) (kvStore, error) {
	if config.DBDriver == DriverMemory {
		return kvrepo.NewMemory(), nil
	}

	if conn == nil {
		return nil, fmt.Errorf("driver %q needs a database connection", config.DBDriver)
	}

	repo := kvrepo.NewRepoPGS(conn)
	if err := repo.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("cannot migrate kv store: %w", err)
	}

	return repo, nil
}

// New creates Server type with instantiated domains, routes and background jobs.
//
// conn may be nil when config.DBDriver is DriverMemory.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	ctx := logger.WithContext(context.Background())

	store, err := newStore(ctx, conn, config)
	if err != nil {
		return nil, err
	}

	portfolio := ratesource.NewFeed(PortfolioFeed, config.PortfolioRateInterval,
		ratesource.NewSynthetic(ratesource.DefaultBaselines), config.RateHistorySize, logger)
	ticker := ratesource.NewFeed(TickerFeed, config.TickerRateInterval,
		ratesource.NewSynthetic(ratesource.DefaultBaselines), config.RateHistorySize, logger)

	ledgerService := ledgerservice.New(ctx, portfolio, ledgerrepo.New(store))
	alertService := alertservice.New(ctx, alertrepo.New(store))
	hub := streamdelivery.NewHub(streamBufferSize, logger)

	ledgerService.Subscribe(func(state domain.LedgerState) {
		hub.Broadcast(streamdelivery.Message{Type: streamdelivery.TypeLedger, Data: state})
	})

	portfolio.Subscribe(func(t domain.RateTable) {
		hub.Broadcast(streamdelivery.Message{
			Type: streamdelivery.TypeRates,
			Data: streamdelivery.RatesUpdate{Feed: PortfolioFeed, Rates: t},
		})
	})

	ticker.Subscribe(func(t domain.RateTable) {
		hub.Broadcast(streamdelivery.Message{
			Type: streamdelivery.TypeRates,
			Data: streamdelivery.RatesUpdate{Feed: TickerFeed, Rates: t},
		})

		for _, a := range alertService.Evaluate(ctx, t) {
			hub.Broadcast(streamdelivery.Message{Type: streamdelivery.TypeAlert, Data: a})
		}
	})

	sched := scheduler.New(logger)

	for _, f := range []*ratesource.Feed{portfolio, ticker} {
		if err := sched.Every(f.Interval(), f); err != nil {
			return nil, err
		}
	}

	rateLimiter, err := middleware.NewLimiter(config.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("cannot create rate limiter: %w", err)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("currency", currencypkg.ValidCurrency)
		if err != nil {
			return nil, errors.New("cannot register currency validator")
		}
	}

	ledgerHandler := ledgerdelivery.NewHandler(ledgerService)
	rateHandler := ratedelivery.NewHandler(portfolio, ticker)
	alertHandler := alertdelivery.NewHandler(alertService)
	streamHandler := streamdelivery.NewHandler(hub, func() []streamdelivery.Message {
		return []streamdelivery.Message{
			{
				Type: streamdelivery.TypeRates,
				Data: streamdelivery.RatesUpdate{Feed: PortfolioFeed, Rates: portfolio.Current()},
			},
			{
				Type: streamdelivery.TypeRates,
				Data: streamdelivery.RatesUpdate{Feed: TickerFeed, Rates: ticker.Current()},
			},
			{
				Type: streamdelivery.TypeLedger,
				Data: ledgerService.State(ctx),
			},
		}
	}, originHosts(config.CORSAllowedOrigins))

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	if len(config.CORSAllowedOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins: config.CORSAllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowHeaders: []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		}))
	}

	engine.Use(middleware.RateLimit(rateLimiter))

	engine.GET("/balances", ledgerHandler.ListBalances)
	engine.GET("/balances/:code", ledgerHandler.GetBalance)
	engine.PUT("/balances/:code", ledgerHandler.UpdateBalance)
	engine.GET("/portfolio/value", ledgerHandler.GetPortfolioValue)
	engine.POST("/exchanges/quote", ledgerHandler.CreateQuote)
	engine.POST("/exchanges", ledgerHandler.CreateExchange)
	engine.GET("/transactions", ledgerHandler.ListTransactions)
	engine.POST("/transactions", ledgerHandler.CreateTransaction)

	engine.GET("/rates", rateHandler.GetRates)
	engine.GET("/rates/ticker", rateHandler.GetTicker)
	engine.GET("/rates/ticker/:code/stats", rateHandler.GetTickerStats)

	engine.GET("/alerts", alertHandler.List)
	engine.POST("/alerts", alertHandler.Create)
	engine.DELETE("/alerts/:id", alertHandler.Delete)

	engine.GET("/stream", streamHandler.Stream)

	server := &Server{
		DB:        conn,
		Engine:    engine,
		Config:    config,
		Ledger:    ledgerService,
		Alerts:    alertService,
		Portfolio: portfolio,
		Ticker:    ticker,
		Hub:       hub,
		Scheduler: sched,
		http: &http.Server{
			Addr:    config.ServerAddress,
			Handler: engine,
		},
	}

	return server, nil
}

// Start starts the background jobs and serves http until Stop is called.
// It returns http.ErrServerClosed after a graceful stop.
func (s *Server) Start() error {
	s.Scheduler.Start()

	return s.http.ListenAndServe()
}

// Stop waits for in-flight requests to finish, then stops the background jobs.
func (s *Server) Stop(ctx context.Context) error {
	err := s.http.Shutdown(ctx)

	s.Scheduler.Stop()

	return err
}

// originHosts turns CORS origins into the host patterns the WebSocket
// handshake checks.
func originHosts(origins []string) []string {
	hosts := make([]string, 0, len(origins))

	for _, o := range origins {
		if o == "*" {
			hosts = append(hosts, o)
			continue
		}

		u, err := url.Parse(o)
		if err != nil || u.Host == "" {
			continue
		}

		hosts = append(hosts, u.Host)
	}

	return hosts
}
