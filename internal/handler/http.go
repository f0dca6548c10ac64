package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/amaumene/jellysook/internal/domain"
	"github.com/amaumene/jellysook/internal/metrics"
	"github.com/amaumene/jellysook/internal/service"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const contentTypeJSON = "application/json"

type HTTPHandler struct {
	notificationSvc *service.NotificationService
}

func NewHTTPHandler(notificationSvc *service.NotificationService) *HTTPHandler {
	return &HTTPHandler{
		notificationSvc: notificationSvc,
	}
}

func (h *HTTPHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/jellyseerr", h.handleWebhook).Methods(http.MethodPost)
	router.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
}

// handleWebhook processes one media event synchronously within the
// request; nothing is queued and no state outlives the call.
func (h *HTTPHandler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	event, err := h.parseEvent(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{
			"message": "Data is not json!",
		})
		return
	}

	if err := h.notificationSvc.Process(r.Context(), event); err != nil {
		h.writeError(w, event, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Data received successfully!",
	})
}

func (h *HTTPHandler) parseEvent(r *http.Request) (*domain.MediaEvent, error) {
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	var event domain.MediaEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("unmarshalling json: %w", err)
	}
	return &event, nil
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, event *domain.MediaEvent, err error) {
	log.WithFields(log.Fields{
		"tmdbID": event.TMDBID,
		"error":  err,
	}).Error("failed to process media event")

	status := http.StatusBadGateway
	if errors.Is(err, domain.ErrMalformedEvent) {
		status = http.StatusBadRequest
	}

	h.writeJSON(w, status, map[string]string{
		"message": err.Error(),
	})
}

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *HTTPHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithField("error", err).Error("failed to encode json response")
	}
}
