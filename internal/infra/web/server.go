package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"telegram-midjourney-bot/internal/domain"
	"telegram-midjourney-bot/internal/domain/model"
	"telegram-midjourney-bot/internal/infra/metrics"
	"telegram-midjourney-bot/internal/usecase"
)

// Server exposes the endpoint the generation service calls back on. The
// inbound notification is acknowledged with 200 regardless of whether the
// business logic succeeded: the sender's retry policy is outside our control
// and must not be amplified. 500 only escapes on a recovered panic.
type Server struct {
	dispatch usecase.DispatchUseCase
	log      *zerolog.Logger
}

func NewServer(dispatch usecase.DispatchUseCase, logger *zerolog.Logger) *Server {
	l := logger.With().Str("component", "WebhookServer").Logger()
	return &Server{dispatch: dispatch, log: &l}
}

// Router builds the chi router with webhook, health and metrics routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/webhook", s.handleWebhook)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error().Interface("panic", rec).Msg("webhook handler panicked")
			http.Error(w, "Error", http.StatusInternalServerError)
		}
	}()

	var n model.Notification
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil || n.Hash == "" {
		// Nothing to correlate; a redelivery would not help either, so ack.
		s.log.Warn().Err(err).Msg("malformed webhook payload")
		metrics.IncWebhookNotification("malformed")
		s.ack(w)
		return
	}

	s.log.Info().Str("hash", n.Hash).Str("status", string(n.Status)).Msg("received webhook")

	if err := s.dispatch.Dispatch(r.Context(), n); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Stale, duplicate, or never registered: ack and move on.
			metrics.IncWebhookNotification("unknown")
			s.ack(w)
			return
		}
		s.log.Error().Err(err).Str("hash", n.Hash).Msg("dispatch failed")
	}
	metrics.IncWebhookNotification(string(n.Status))
	s.ack(w)
}

func (s *Server) ack(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
