package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/printmaania/printmaania-gobackend/internal/config"
	"github.com/printmaania/printmaania-gobackend/internal/db"
	"github.com/printmaania/printmaania-gobackend/internal/handlers"
	"github.com/printmaania/printmaania-gobackend/internal/middleware"
	"github.com/printmaania/printmaania-gobackend/internal/notify"
	"github.com/printmaania/printmaania-gobackend/internal/services"
)

func main() {
	// Load .env
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Error loading .env: %s", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Mongo.URI == "" {
		log.Fatal("MONGOURI environment variable not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to MongoDB
	client, err := db.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()
	log.Println("Successfully connected to MongoDB")

	database := client.Database(cfg.Mongo.Database)

	// Notification dispatcher: only configured senders are registered.
	slogger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	var senders []notify.Sender
	if cfg.Mail.APIURL != "" && cfg.Mail.APIKey != "" {
		senders = append(senders, notify.NewMailer(cfg.Mail.APIURL, cfg.Mail.APIKey, cfg.Mail.FromAddress))
	}
	if cfg.WhatsApp.APIURL != "" && cfg.WhatsApp.Token != "" {
		senders = append(senders, notify.NewWhatsApp(cfg.WhatsApp.APIURL, cfg.WhatsApp.Token))
	}
	dispatcher := notify.NewDispatcher(slogger, senders...)
	dispatcher.Start(ctx)
	defer dispatcher.Stop()

	// Initialize services and handlers
	userService := services.NewUserService(database)
	googleService := services.NewGoogleService(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL)
	addressService := services.NewAddressService(database)
	productService := services.NewProductService(database)
	bannerService := services.NewBannerService(database)
	offerService := services.NewOfferService(database)
	orderService := services.NewOrderService(database)
	quoteService := services.NewQuoteService(database, dispatcher, cfg.Mail.AdminAddress, cfg.WhatsApp.AdminNumber)

	secret := []byte(cfg.JWT.Secret)
	authmw := middleware.NewAuth(userService, secret)

	userHandler := handlers.NewUserHandler(userService, googleService, secret, cfg.JWT.Expiry)
	addressHandler := handlers.NewAddressHandler(addressService)
	productHandler := handlers.NewProductHandler(productService)
	bannerHandler := handlers.NewBannerHandler(bannerService)
	offerHandler := handlers.NewOfferHandler(offerService)
	orderHandler := handlers.NewOrderHandler(orderService, addressService)
	quoteHandler := handlers.NewQuoteHandler(quoteService)

	// Set up router
	router := mux.NewRouter()
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET", "HEAD")

	api := router.PathPrefix("/api").Subrouter()

	// Auth
	api.HandleFunc("/auth/register", userHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", userHandler.Login).Methods("POST")
	api.HandleFunc("/auth/google", userHandler.GoogleLogin).Methods("POST")
	api.Handle("/user/update", authmw.Require(http.HandlerFunc(userHandler.Update))).Methods("PUT")

	// Address book
	api.Handle("/address", authmw.Require(http.HandlerFunc(addressHandler.Create))).Methods("POST")
	api.Handle("/address/myaddresses", authmw.Require(http.HandlerFunc(addressHandler.ListMine))).Methods("GET")
	api.Handle("/address/{id}", authmw.Require(http.HandlerFunc(addressHandler.Update))).Methods("PUT")
	api.Handle("/address/{id}", authmw.Require(http.HandlerFunc(addressHandler.Delete))).Methods("DELETE")

	// Catalog
	api.HandleFunc("/products", productHandler.List).Methods("GET")
	api.HandleFunc("/products/{id}", productHandler.Get).Methods("GET")
	api.Handle("/products", authmw.RequireAdmin(http.HandlerFunc(productHandler.Create))).Methods("POST")
	api.Handle("/products/{id}", authmw.RequireAdmin(http.HandlerFunc(productHandler.Update))).Methods("PUT")
	api.Handle("/products/{id}", authmw.RequireAdmin(http.HandlerFunc(productHandler.Delete))).Methods("DELETE")

	api.HandleFunc("/banners", bannerHandler.List).Methods("GET")
	api.Handle("/banners", authmw.RequireAdmin(http.HandlerFunc(bannerHandler.Create))).Methods("POST")
	api.Handle("/banners/{id}", authmw.RequireAdmin(http.HandlerFunc(bannerHandler.Delete))).Methods("DELETE")

	api.HandleFunc("/offers/all", offerHandler.List).Methods("GET")
	api.Handle("/offers", authmw.RequireAdmin(http.HandlerFunc(offerHandler.Create))).Methods("POST")
	api.Handle("/offers/{id}", authmw.RequireAdmin(http.HandlerFunc(offerHandler.Update))).Methods("PUT")
	api.Handle("/offers/{id}", authmw.RequireAdmin(http.HandlerFunc(offerHandler.Delete))).Methods("DELETE")

	// Orders
	api.Handle("/orders", authmw.Require(http.HandlerFunc(orderHandler.Create))).Methods("POST")
	api.Handle("/orders/myorders", authmw.Require(http.HandlerFunc(orderHandler.ListMine))).Methods("GET")
	api.Handle("/orders", authmw.RequireAdmin(http.HandlerFunc(orderHandler.ListAll))).Methods("GET")
	api.Handle("/orders/{id}/upload", authmw.Require(http.HandlerFunc(orderHandler.Upload))).Methods("PUT")
	api.Handle("/orders/{id}/cancel", authmw.Require(http.HandlerFunc(orderHandler.Cancel))).Methods("PUT")
	api.Handle("/orders/{id}/delivered", authmw.RequireAdmin(http.HandlerFunc(orderHandler.MarkDelivered))).Methods("PUT")
	api.Handle("/orders/{id}/tracking", authmw.RequireAdmin(http.HandlerFunc(orderHandler.AssignTracking))).Methods("PUT")

	// Bulk quotes
	api.Handle("/quotes", authmw.Optional(http.HandlerFunc(quoteHandler.Create))).Methods("POST")
	api.Handle("/quotes", authmw.RequireAdmin(http.HandlerFunc(quoteHandler.ListAll))).Methods("GET")
	api.Handle("/quotes/bulk", authmw.Require(http.HandlerFunc(quoteHandler.ListMine))).Methods("POST")
	api.Handle("/quotes/cancel/bulk/{id}", authmw.Require(http.HandlerFunc(quoteHandler.Cancel))).Methods("PUT")
	api.Handle("/quotes/{id}/confirm", authmw.RequireAdmin(http.HandlerFunc(quoteHandler.Confirm))).Methods("PUT")
	api.Handle("/quotes/{id}/tracking", authmw.RequireAdmin(http.HandlerFunc(quoteHandler.AssignTracking))).Methods("PUT")
	api.Handle("/quotes/{id}/delivered", authmw.RequireAdmin(http.HandlerFunc(quoteHandler.MarkDelivered))).Methods("PUT")

	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{cfg.Server.AllowedOrigin}),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)
	handler := gorillahandlers.LoggingHandler(os.Stdout, cors(router))

	// Start server
	server := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("Server running on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
