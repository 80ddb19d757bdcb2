package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"trivia-app/internal/trivia"
)

const defaultHandlerTimeout = 10 * time.Second

func NewRouter(service *trivia.Service, logger *zap.Logger, handlerTimeout time.Duration) http.Handler {
	api := NewAPI(service, logger)
	if handlerTimeout <= 0 {
		handlerTimeout = defaultHandlerTimeout
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(api.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(handlerTimeout))

	r.Get("/health", api.HandleHealth)

	r.Route("/games", func(r chi.Router) {
		r.Post("/", api.HandleStartGame)
		r.Get("/recent", api.HandleRecentGames)
		r.Route("/{gameID}", func(r chi.Router) {
			r.Get("/", api.HandleGetGame)
			r.Delete("/", api.HandleEndGame)
			r.Post("/answers", api.HandleSubmitAnswer)
			r.Get("/result", api.HandleGetResult)
		})
	})
	r.Get("/players/{player}/stats", api.HandlePlayerStats)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})

	return r
}
