package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	log "github.com/sirupsen/logrus"
	config "github.com/yaya-apps/pokecard-services/configs"
	"github.com/yaya-apps/pokecard-services/internal/cardsvc/auth"
	"github.com/yaya-apps/pokecard-services/internal/cardsvc/broker"
	cardconfig "github.com/yaya-apps/pokecard-services/internal/cardsvc/config"
	"github.com/yaya-apps/pokecard-services/internal/cardsvc/db"
	handlers "github.com/yaya-apps/pokecard-services/internal/cardsvc/handlers"
	"github.com/yaya-apps/pokecard-services/internal/cardsvc/service"
	"github.com/yaya-apps/pokecard-services/internal/cardsvc/store"
	nats "github.com/yaya-apps/pokecard-services/internal/nats"
)

const SERVICE_NAME = "card"

var instanceId string

func init() {
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	cfg := cardconfig.Load()

	// pg connection
	dbpool, err := db.Connect(cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	cardStore := store.NewCardStore(dbpool)
	cardService := service.NewCardService(cardStore)

	// Connect to NATS, optional card event stream
	var b *broker.Broker
	n, err := nats.Connect()
	if err != nil {
		log.Warnf("unable to connect to NATS server, card events disabled %v", err)
	} else {
		defer n.Conn.Close()
		b = broker.NewBroker(n.Conn)
		log.Printf("NATS connection established successfully %s", n.Url)
	}

	// identity providers, injected rather than registered globally
	sessions := auth.NewSessions(cfg.SessionSecret, cfg.SessionTTL)
	providers := map[string]auth.ProviderConfig{
		"google": auth.GoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.BackendOrigin+"/callback"),
	}
	authHandler := auth.NewHandler(providers, sessions, cfg.FrontendOrigin+"/success", cfg.FrontendOrigin)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS(cfg.FrontendOrigin)

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimit := 100
	if rateLimitStr := os.Getenv("RATE_LIMIT"); rateLimitStr != "" {
		rateLimit, err = strconv.Atoi(rateLimitStr)
		if err != nil {
			log.Fatalf("Invalid RATE_LIMIT value: %v", err)
		}
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(cardService, b)
	h.SetRoutes(r)
	authHandler.SetRoutes(r)

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
	signal.Notify(stop, os.Interrupt)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
