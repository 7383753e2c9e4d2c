package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diorsolutions/eco-shop/internal/config"
	"github.com/diorsolutions/eco-shop/internal/geo"
	"github.com/diorsolutions/eco-shop/internal/handlers"
	"github.com/diorsolutions/eco-shop/internal/notify"
	"github.com/diorsolutions/eco-shop/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

func main() {
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}

	if err := db.Migrate("migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll("static/uploads", 0o755); err != nil {
		slog.Error("Failed to create uploads directory", "error", err)
		os.Exit(1)
	}

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Shared services
	bus := notify.NewBus()
	var provider geo.Provider
	if cfg.GeoEndpoint != "" {
		provider = geo.NewHTTPProvider(cfg.GeoEndpoint)
	} else {
		provider = unavailableProvider{}
	}
	resolver := geo.NewResolver(provider)

	// 6. Setup Handlers
	shopHandler := &handlers.ShopHandler{
		Store:        db,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	orderHandler := &handlers.OrderHandler{
		Store:        db,
		Templates:    templates,
		SessionStore: sessionStore,
		Resolver:     resolver,
		Bus:          bus,
	}
	adminHandler := &handlers.AdminHandler{
		Store:        db,
		SessionStore: sessionStore,
		Templates:    templates,
		Bus:          bus,
		Gateway:      notify.LogGateway{},
		SupportPhone: cfg.SupportPhone,
	}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Rate Limiter on public writes
	rateLimiter := handlers.NewRateLimiter(10 * time.Second)

	// Storefront
	mux.HandleFunc("/{$}", shopHandler.Index)
	mux.HandleFunc("GET /product/{id}", shopHandler.ProductPage)
	mux.HandleFunc("GET /cart", shopHandler.CartView)
	mux.HandleFunc("POST /cart/add", shopHandler.AddToCart)
	mux.HandleFunc("POST /cart/update", shopHandler.UpdateCart)
	mux.HandleFunc("POST /cart/remove", shopHandler.RemoveFromCart)
	mux.HandleFunc("POST /cart/clear", shopHandler.ClearCart)

	// Checkout
	mux.HandleFunc("GET /checkout", orderHandler.CheckoutForm)
	mux.HandleFunc("POST /checkout", rateLimiter.Middleware(orderHandler.SubmitOrder))
	mux.HandleFunc("POST /checkout/locate", orderHandler.Locate)
	mux.HandleFunc("POST /checkout/locate/clear", orderHandler.ClearLocation)
	mux.HandleFunc("GET /messages", orderHandler.Messages)

	// Admin auth
	mux.HandleFunc("GET /login", adminHandler.LoginGet)
	mux.HandleFunc("POST /login", adminHandler.LoginPost)
	mux.HandleFunc("/logout", adminHandler.Logout)

	// Protected Routes
	mux.HandleFunc("GET /admin", adminHandler.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
	}))
	mux.HandleFunc("GET /admin/orders", adminHandler.AuthMiddleware(adminHandler.ListOrders))
	mux.HandleFunc("POST /admin/orders/update", adminHandler.AuthMiddleware(adminHandler.UpdateOrderStatus))
	mux.HandleFunc("GET /admin/events", adminHandler.AuthMiddleware(adminHandler.Events))
	mux.HandleFunc("GET /admin/products", adminHandler.AuthMiddleware(adminHandler.ListProducts))
	mux.HandleFunc("GET /admin/products/edit", adminHandler.AuthMiddleware(adminHandler.ProductForm))
	mux.HandleFunc("POST /admin/products", adminHandler.AuthMiddleware(adminHandler.SaveProduct))
	mux.HandleFunc("POST /admin/products/delete", adminHandler.AuthMiddleware(adminHandler.DeleteProduct))
	mux.HandleFunc("GET /admin/stats", adminHandler.AuthMiddleware(adminHandler.Statistics))

	// 7. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 8. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}

// unavailableProvider stands in when no positioning endpoint is configured;
// every resolve falls back to manual entry.
type unavailableProvider struct{}

func (unavailableProvider) Position(ctx context.Context, opts geo.Options) (geo.Position, error) {
	return geo.Position{}, &geo.Failure{Kind: geo.FailurePositionUnavailable}
}
