package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/barberflow/barberflow/services/api/internal/model"
	"github.com/barberflow/barberflow/services/api/internal/reports"
	"github.com/barberflow/barberflow/services/api/internal/storage"
	"github.com/barberflow/barberflow/services/api/internal/validate"
)

type ClientHandler struct {
	clients *storage.ClientRepository
	appts   *storage.AppointmentRepository
	logger  *slog.Logger
}

func NewClientHandler(clients *storage.ClientRepository, appts *storage.AppointmentRepository, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{clients: clients, appts: appts, logger: logger}
}

type clientRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type clientItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	Activity  string `json:"activity"`
	CreatedAt string `json:"created_at"`
}

// Clients serves the roster: GET lists with activity buckets, POST adds,
// PUT edits, DELETE removes by ?id=.
func (h *ClientHandler) Clients(w http.ResponseWriter, r *http.Request) {
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

func (h *ClientHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clients, err := h.clients.List(ctx)
	if err != nil {
		h.logger.Error("client list failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list clients")
		return
	}
	appts, err := h.appts.ListAll(ctx)
	if err != nil {
		h.logger.Error("appointment list failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load appointment history")
		return
	}

	now := time.Now().UTC()
	items := make([]clientItem, 0, len(clients))
	for _, c := range clients {
		items = append(items, clientItem{
			ID:        c.ID,
			Name:      c.Name,
			Phone:     c.Phone,
			Email:     c.Email,
			Activity:  reports.ClientActivity(c.ID, appts, now),
			CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ClientHandler) create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAndValidate(w, r, false)
	if !ok {
		return
	}

	id, err := h.clients.Create(r.Context(), model.Client{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		if storage.IsConflict(err) {
			writeError(w, http.StatusConflict, "a client with this phone already exists")
			return
		}
		h.logger.Error("client create failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to create client")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *ClientHandler) update(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAndValidate(w, r, true)
	if !ok {
		return
	}

	err := h.clients.Update(r.Context(), model.Client{
		ID:    req.ID,
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "client not found")
			return
		}
		if storage.IsConflict(err) {
			writeError(w, http.StatusConflict, "a client with this phone already exists")
			return
		}
		h.logger.Error("client update failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update client")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ClientHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "id required")
		return
	}
	if err := h.clients.Delete(r.Context(), id); err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "client not found")
			return
		}
		h.logger.Error("client delete failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to delete client")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats returns one client's visit history summary: counts, lifetime spend
// over completed appointments, and the recency bucket.
func (h *ClientHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "id required")
		return
	}

	ctx := r.Context()
	if _, err := h.clients.Get(ctx, id); err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "client not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load client")
		return
	}
	appts, err := h.appts.ListAll(ctx)
	if err != nil {
		h.logger.Error("appointment list failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load appointment history")
		return
	}

	writeJSON(w, http.StatusOK, reports.StatsForClient(id, appts, time.Now().UTC()))
}

func (h *ClientHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, needID bool) (clientRequest, bool) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return req, false
	}
	req.ID = strings.TrimSpace(req.ID)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = validate.FormatPhone(req.Phone)

	if needID && req.ID == "" {
		writeError(w, http.StatusBadRequest, "id required")
		return req, false
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return req, false
	}
	if !validate.ValidPhone(req.Phone) {
		writeError(w, http.StatusBadRequest, "phone must be a valid (DD) NNNNN-NNNN number")
		return req, false
	}
	if !validate.ValidEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "invalid email")
		return req, false
	}
	return req, true
}
