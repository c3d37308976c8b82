package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/barberflow/barberflow/services/api/internal/model"
	"github.com/barberflow/barberflow/services/api/internal/storage"
)

type ServiceHandler struct {
	services *storage.ServiceRepository
	logger   *slog.Logger
}

func NewServiceHandler(services *storage.ServiceRepository, logger *slog.Logger) *ServiceHandler {
	return &ServiceHandler{services: services, logger: logger}
}

type serviceRequest struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	IsActive        *bool   `json:"is_active"`
}

type serviceItem struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	IsActive        bool    `json:"is_active"`
}

// Services serves the catalog: GET lists (?active=true filters), POST adds,
// PUT edits, DELETE removes by ?id=. Editing a price never rewrites snapshots
// on existing appointments.
func (h *ServiceHandler) Services(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	case http.MethodPut:
		h.update(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *ServiceHandler) list(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	services, err := h.services.List(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("service list failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list services")
		return
	}

	items := make([]serviceItem, 0, len(services))
	for _, s := range services {
		items = append(items, serviceItem{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
			IsActive:        s.IsActive,
		})
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ServiceHandler) create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeService(w, r, false)
	if !ok {
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	id, err := h.services.Create(r.Context(), model.Service{
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        active,
	})
	if err != nil {
		if storage.IsConflict(err) {
			writeError(w, http.StatusConflict, "a service with this name already exists")
			return
		}
		h.logger.Error("service create failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to create service")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *ServiceHandler) update(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeService(w, r, true)
	if !ok {
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	err := h.services.Update(r.Context(), model.Service{
		ID:              req.ID,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        active,
	})
	if err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "service not found")
			return
		}
		if storage.IsConflict(err) {
			writeError(w, http.StatusConflict, "a service with this name already exists")
			return
		}
		h.logger.Error("service update failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update service")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ServiceHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "id required")
		return
	}
	err := h.services.Delete(r.Context(), id)
	if err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "service not found")
			return
		}
		// Referenced snapshots keep a FK to services; deactivate instead.
		if storage.IsConflict(err) {
			writeError(w, http.StatusConflict, "service is referenced by appointments; deactivate it instead")
			return
		}
		h.logger.Error("service delete failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to delete service")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeService(w http.ResponseWriter, r *http.Request, needID bool) (serviceRequest, bool) {
	var req serviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return req, false
	}
	req.ID = strings.TrimSpace(req.ID)
	req.Name = strings.TrimSpace(req.Name)

	if needID && req.ID == "" {
		writeError(w, http.StatusBadRequest, "id required")
		return req, false
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return req, false
	}
	if req.DurationMinutes <= 0 || req.DurationMinutes > 8*60 {
		writeError(w, http.StatusBadRequest, "duration_minutes must be between 1 and 480")
		return req, false
	}
	if req.Price < 0 {
		writeError(w, http.StatusBadRequest, "price must not be negative")
		return req, false
	}
	return req, true
}
