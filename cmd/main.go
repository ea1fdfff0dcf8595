package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/rs/cors"

	"jarvis/clients"
	"jarvis/clients/gemini"
	"jarvis/clients/gmail"
	"jarvis/clients/launcher"
	"jarvis/clients/scraper"
	"jarvis/clients/search"
	"jarvis/clients/socketio"
	"jarvis/clients/spotify"
	"jarvis/config"
	"jarvis/db"
	"jarvis/handlers"
	"jarvis/middleware"
	"jarvis/services"
	"jarvis/services/commands"
	"jarvis/services/history"
	"jarvis/services/intents"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func run() error {
	log.Printf("🚀 Starting Jarvis assistant backend")

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	alerting := middleware.NewErrorAlertingMiddleware(cfg.SlackAlertWebhook, cfg.Environment)

	historyService, dbConn := setupHistory(cfg)
	if dbConn != nil {
		defer dbConn.Close()
	}

	var geminiClient clients.GenerativeClient
	if cfg.Gemini.IsConfigured() {
		geminiClient, err = gemini.NewGeminiClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return err
		}
	} else {
		log.Printf("⚠️ Gemini not configured, intent classification uses keyword rules only")
	}

	searchClient := search.NewSearchClient(cfg.Search.GoogleAPIKey, cfg.Search.GoogleEngineID)
	spotifyClient := spotify.NewSpotifyClient(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, cfg.Spotify.RefreshToken)
	gmailClient := gmail.NewGmailClient(cfg.Gmail.ClientID, cfg.Gmail.ClientSecret, cfg.Gmail.RefreshToken)
	launcherClient := launcher.NewLauncherClient()
	scraperClient := scraper.NewScraperClient()
	defer func() {
		if err := scraperClient.Close(); err != nil {
			log.Printf("⚠️ Failed to close scraper browser: %v", err)
		}
	}()

	rules := intents.NewRulesClassifier(cfg.Scraper.ExpenseTrackerURL)
	intentsService := intents.NewIntentsService(geminiClient, rules)
	commandsService := commands.NewCommandsService(
		intentsService,
		historyService,
		searchClient,
		gmailClient,
		spotifyClient,
		launcherClient,
		scraperClient,
		geminiClient,
		cfg.Scraper.ExpenseTrackerURL,
	)

	socketClient := socketio.NewSocketIOClient()
	messagesHandler := handlers.NewMessagesHandler(commandsService, socketClient)
	socketClient.RegisterMessageHandler(alerting.WrapMessageHandler(func(client *clients.Client, message any) {
		if err := messagesHandler.HandleMessage(client, message); err != nil {
			log.Printf("❌ Failed to handle push message from %s: %v", client.ID, err)
		}
	}))
	socketClient.RegisterConnectionHook(alerting.WrapConnectionHook(messagesHandler.WelcomeHook))
	socketClient.RegisterDisconnectionHook(alerting.WrapConnectionHook(func(client *clients.Client) error {
		log.Printf("📋 %d push clients still connected", socketClient.ConnectedClientCount())
		return nil
	}))

	router := mux.NewRouter()
	router.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	httpHandler := handlers.NewCommandsHTTPHandler(commandsService, historyService, launcherClient, spotifyClient)
	httpHandler.SetupEndpoints(router)
	socketClient.RegisterWithRouter(router)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSAllowedOrigins, ","),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	handler := alerting.HTTPMiddleware(corsMiddleware.Handler(router))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Printf("📋 Received signal %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	socketClient.Close()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Printf("✅ Shutdown complete")
	return nil
}

// setupHistory wires the command audit log when a database is configured and
// degrades to a no-op store otherwise.
func setupHistory(cfg *config.AppConfig) (services.CommandHistoryService, *sqlx.DB) {
	if !cfg.Database.IsConfigured() {
		log.Printf("⚠️ Database not configured, command history is disabled")
		return history.NewNoopHistoryService(), nil
	}

	conn, err := db.NewConnection(cfg.Database.URL)
	if err != nil {
		log.Printf("⚠️ Failed to connect to database, command history is disabled: %v", err)
		return history.NewNoopHistoryService(), nil
	}

	repo := db.NewPostgresCommandHistoryRepository(conn, cfg.Database.Schema)
	return history.NewHistoryService(repo), conn
}
