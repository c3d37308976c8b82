package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/barberflow/barberflow/services/api/internal/model"
	"github.com/barberflow/barberflow/services/api/internal/schedule"
	"github.com/barberflow/barberflow/services/api/internal/storage"
)

type SettingsHandler struct {
	settings *storage.SettingsRepository
	logger   *slog.Logger
}

func NewSettingsHandler(settings *storage.SettingsRepository, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, logger: logger}
}

type settingsPayload struct {
	ShopName             string `json:"shop_name"`
	OpenTime             string `json:"open_time"`
	CloseTime            string `json:"close_time"`
	AppointmentDuration  int    `json:"appointment_duration_minutes"`
	NotifyOnBooking      bool   `json:"notify_on_booking"`
	NotifyOnCancellation bool   `json:"notify_on_cancellation"`
	WebhookURL           string `json:"webhook_url,omitempty"`
}

// Settings serves the singleton shop configuration: GET returns it (created
// with defaults on first read), PUT replaces it.
func (h *SettingsHandler) Settings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.Get(r.Context())
	if err != nil {
		h.logger.Error("settings load failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, settingsPayload{
		ShopName:             s.ShopName,
		OpenTime:             s.OpenTime,
		CloseTime:            s.CloseTime,
		AppointmentDuration:  s.AppointmentDuration,
		NotifyOnBooking:      s.NotifyOnBooking,
		NotifyOnCancellation: s.NotifyOnCancellation,
		WebhookURL:           s.WebhookURL,
	})
}

func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.ShopName = strings.TrimSpace(req.ShopName)
	req.OpenTime = strings.TrimSpace(req.OpenTime)
	req.CloseTime = strings.TrimSpace(req.CloseTime)
	req.WebhookURL = strings.TrimSpace(req.WebhookURL)

	openMin, err := schedule.MinuteOfDay(req.OpenTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "open_time must be HH:MM")
		return
	}
	closeMin, err := schedule.MinuteOfDay(req.CloseTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "close_time must be HH:MM")
		return
	}
	if closeMin <= openMin {
		writeError(w, http.StatusBadRequest, "close_time must be after open_time")
		return
	}
	if req.AppointmentDuration <= 0 || req.AppointmentDuration > closeMin-openMin {
		writeError(w, http.StatusBadRequest, "appointment_duration_minutes must fit within business hours")
		return
	}
	if req.WebhookURL != "" {
		u, err := url.Parse(req.WebhookURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			writeError(w, http.StatusBadRequest, "webhook_url must be an http(s) URL")
			return
		}
	}

	err = h.settings.Update(r.Context(), model.Settings{
		ShopName:             req.ShopName,
		OpenTime:             req.OpenTime,
		CloseTime:            req.CloseTime,
		AppointmentDuration:  req.AppointmentDuration,
		NotifyOnBooking:      req.NotifyOnBooking,
		NotifyOnCancellation: req.NotifyOnCancellation,
		WebhookURL:           req.WebhookURL,
	})
	if err != nil {
		h.logger.Error("settings update failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update settings")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
