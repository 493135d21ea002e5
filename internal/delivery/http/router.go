package http

import (
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "contactrelay/docs"
	"contactrelay/internal/delivery/http/controllers"
	"contactrelay/internal/delivery/http/middleware"
)

// RouterConfig holds the settings the router and its middleware need.
type RouterConfig struct {
	RelayPath      string
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(relayPath string, relayController *controllers.RelayController) *http.ServeMux {
	mux := http.NewServeMux()

	// The relay answers every method itself so non-POST requests get the
	// plain-text 405 the landing page expects.
	mux.HandleFunc(relayPath, relayController.SendEmail)

	mux.HandleFunc("GET /health", controllers.Health)
	mux.HandleFunc("/health", controllers.MethodNotAllowed(http.MethodGet, http.MethodHead))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("/", controllers.NotFound)

	return mux
}

// NewHandler wraps the router with request IDs, panic recovery, request
// logging and CORS, outermost first.
func NewHandler(cfg RouterConfig, relayController *controllers.RelayController) http.Handler {
	var handler http.Handler = NewRouter(cfg.RelayPath, relayController)
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(cfg.Logger, handler)
	handler = chimw.Recoverer(handler)
	handler = chimw.RequestID(handler)
	return handler
}
