package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/avvvet/tracker-services/configs"
	nats "github.com/avvvet/tracker-services/internal/nats"
	"github.com/avvvet/tracker-services/internal/trackersvc/broker"
	trackercfg "github.com/avvvet/tracker-services/internal/trackersvc/config"
	"github.com/avvvet/tracker-services/internal/trackersvc/db"
	handlers "github.com/avvvet/tracker-services/internal/trackersvc/handlers"
	"github.com/avvvet/tracker-services/internal/trackersvc/service"
	"github.com/avvvet/tracker-services/internal/trackersvc/store"
	"github.com/avvvet/tracker-services/internal/trackersvc/store/postgres"
	"github.com/avvvet/tracker-services/internal/trackersvc/store/sqlite"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "tracker"

func main() {
	config.LoadEnv(SERVICE_NAME)

	cfg, err := trackercfg.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	instanceId := config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME+"_service_"+instanceId, cfg.LogDir, cfg.LogLevel)

	ctx := context.Background()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.DatabaseType, err)
	}
	defer st.Close()
	log.Printf("%s store ready", cfg.DatabaseType)

	// tracker events are optional
	var events service.EventPublisher = broker.Nop{}
	if cfg.EventsEnabled() {
		n, err := nats.Connect(cfg.NatsURL, cfg.NatsToken, SERVICE_NAME+" service "+instanceId)
		if err != nil {
			log.Errorf("Error: unable to connect to NATS server %v, tracker events disabled", err)
		} else {
			b := broker.NewBroker(n.Conn, cfg.EventsSubject, instanceId)
			defer b.Close()
			events = b
			log.Printf("NATS connection established successfully %s", n.Url)
		}
	}

	access := service.NewAccess(st)
	trackerService := service.NewTrackerService(access, st, events)
	statsService := service.NewStatsService(access, st, st)
	catalogService := service.NewCatalogService(st, st, st)
	gameService := service.NewGameService(st, st, st)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS(cfg.AllowedOrigins)

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	r.Use(httprate.LimitByIP(cfg.RateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(cfg.Port, trackerService, statsService, catalogService, gameService)
	h.InitAuth(cfg.JWTSecret)
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
		return
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}

// openStore connects the configured backend and makes sure its schema
// exists.
func openStore(ctx context.Context, cfg trackercfg.Config) (store.Store, error) {
	switch cfg.DatabaseType {
	case trackercfg.DatabaseSQLite:
		st, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		pool, err := db.Connect(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		if err := db.CreateSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return postgres.New(pool), nil
	}
}
