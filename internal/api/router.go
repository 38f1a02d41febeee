package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pickuphub/server/internal/api/handlers"
	"github.com/pickuphub/server/internal/api/middleware"
	"github.com/pickuphub/server/internal/auth"
	"github.com/pickuphub/server/internal/config"
	"github.com/pickuphub/server/internal/domain/events"
	"github.com/pickuphub/server/internal/domain/users"
	"github.com/pickuphub/server/internal/metrics"
	"github.com/pickuphub/server/internal/storage/postgres"
	"github.com/rs/zerolog"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, pool *pgxpool.Pool) (http.Handler, error) {
	repo, err := postgres.NewRepository(pool)
	if err != nil {
		return nil, err
	}

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, "pickuphub")
	usersService := users.NewService(repo.Users(), logger)
	eventsService := events.NewService(repo.Events())

	authHandler := handlers.NewAuthHandler(usersService, tokens)
	eventsHandler := handlers.NewEventsHandler(eventsService)

	requireUser := middleware.RequireUser(tokens)
	optionalUser := middleware.OptionalUser(tokens)

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz(pool))
	mux.Handle("/metrics", metrics.Handler())

	mux.Handle("/auth/register", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.Register),
	}))
	mux.Handle("/auth/login", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.Login),
	}))
	mux.Handle("/events", methodMux(map[string]http.Handler{
		http.MethodGet:  optionalUser(http.HandlerFunc(eventsHandler.List)),
		http.MethodPost: requireUser(http.HandlerFunc(eventsHandler.Create)),
	}))
	mux.Handle("/events/{id}/join", methodMux(map[string]http.Handler{
		http.MethodPost: requireUser(http.HandlerFunc(eventsHandler.Join)),
	}))
	mux.Handle("/events/{id}/leave", methodMux(map[string]http.Handler{
		http.MethodPost: requireUser(http.HandlerFunc(eventsHandler.Leave)),
	}))
	mux.Handle("/user/events", methodMux(map[string]http.Handler{
		http.MethodGet: requireUser(http.HandlerFunc(eventsHandler.UserEvents)),
	}))

	var handler http.Handler = mux
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.Tracing(handler)
	handler = middleware.CorrelationID(logger)(handler)
	return handler, nil
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
