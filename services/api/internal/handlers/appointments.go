package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/barberflow/barberflow/services/api/internal/cache"
	"github.com/barberflow/barberflow/services/api/internal/lifecycle"
	"github.com/barberflow/barberflow/services/api/internal/model"
	"github.com/barberflow/barberflow/services/api/internal/outbox"
	"github.com/barberflow/barberflow/services/api/internal/reports"
	"github.com/barberflow/barberflow/services/api/internal/schedule"
	"github.com/barberflow/barberflow/services/api/internal/storage"
	"github.com/jackc/pgx/v5"
)

const (
	dateLayout      = "2006-01-02"
	defaultSlotStep = 10 // minutes
)

var (
	errServiceLookup  = errors.New("failed to load services")
	errUnknownService = errors.New("one or more services do not exist or are inactive")
)

type AppointmentHandler struct {
	appts      *storage.AppointmentRepository
	clients    *storage.ClientRepository
	services   *storage.ServiceRepository
	settings   *storage.SettingsRepository
	outboxRepo *outbox.Repository
	cache      *cache.Reports
	logger     *slog.Logger
}

func NewAppointmentHandler(
	appts *storage.AppointmentRepository,
	clients *storage.ClientRepository,
	services *storage.ServiceRepository,
	settings *storage.SettingsRepository,
	outboxRepo *outbox.Repository,
	reportsCache *cache.Reports,
	logger *slog.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		appts:      appts,
		clients:    clients,
		services:   services,
		settings:   settings,
		outboxRepo: outboxRepo,
		cache:      reportsCache,
		logger:     logger,
	}
}

type createAppointmentRequest struct {
	ClientID   string   `json:"client_id"`
	Date       string   `json:"date"`
	StartTime  string   `json:"start_time"`
	ServiceIDs []string `json:"service_ids"`
	Notes      string   `json:"notes"`
}

type updateAppointmentRequest struct {
	ID         string   `json:"id"`
	ClientID   string   `json:"client_id"`
	Date       string   `json:"date"`
	StartTime  string   `json:"start_time"`
	ServiceIDs []string `json:"service_ids"`
	Notes      string   `json:"notes"`
}

type statusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type appointmentItem struct {
	ID           string            `json:"id"`
	ClientID     string            `json:"client_id"`
	ClientName   string            `json:"client_name"`
	ClientPhone  string            `json:"client_phone"`
	Date         string            `json:"date"`
	StartTime    string            `json:"start_time"`
	EndTime      string            `json:"end_time"`
	Services     []serviceSnapItem `json:"services"`
	Status       string            `json:"status"`
	Notes        string            `json:"notes,omitempty"`
	CancelledAt  string            `json:"cancelled_at,omitempty"`
	CancelReason string            `json:"cancel_reason,omitempty"`
	CompletedAt  string            `json:"completed_at,omitempty"`
	Total        float64           `json:"total"`
}

type serviceSnapItem struct {
	ServiceID       string  `json:"service_id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
}

func toItem(a model.Appointment) appointmentItem {
	item := appointmentItem{
		ID:           a.ID,
		ClientID:     a.ClientID,
		ClientName:   a.ClientName,
		ClientPhone:  a.ClientPhone,
		Date:         a.Date,
		StartTime:    a.StartTime,
		EndTime:      a.EndTime,
		Status:       a.Status,
		Notes:        a.Notes,
		CancelReason: a.CancelReason,
		Total:        a.Total(),
	}
	if a.CancelledAt != nil {
		item.CancelledAt = a.CancelledAt.UTC().Format(time.RFC3339)
	}
	if a.CompletedAt != nil {
		item.CompletedAt = a.CompletedAt.UTC().Format(time.RFC3339)
	}
	for _, s := range a.Services {
		item.Services = append(item.Services, serviceSnapItem{
			ServiceID:       s.ServiceID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		})
	}
	return item
}

// Appointments serves the collection route: GET lists (optionally filtered by
// ?date=), POST books, DELETE removes by ?id=.
func (h *AppointmentHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *AppointmentHandler) list(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))

	var appts []model.Appointment
	var err error
	if date != "" {
		if !validDate(date) {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		appts, err = h.appts.ListByDate(r.Context(), date)
	} else {
		appts, err = h.appts.ListAll(r.Context())
	}
	if err != nil {
		h.logger.Error("appointment list failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list appointments")
		return
	}

	items := make([]appointmentItem, 0, len(appts))
	for _, a := range appts {
		items = append(items, toItem(a))
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *AppointmentHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.ClientID = strings.TrimSpace(req.ClientID)
	req.Date = strings.TrimSpace(req.Date)
	req.StartTime = strings.TrimSpace(req.StartTime)
	if req.ClientID == "" || req.Date == "" || req.StartTime == "" {
		writeError(w, http.StatusBadRequest, "client_id, date and start_time required")
		return
	}
	if !validDate(req.Date) {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if len(req.ServiceIDs) == 0 {
		writeError(w, http.StatusBadRequest, "at least one service is required")
		return
	}

	ctx := r.Context()
	client, err := h.clients.Get(ctx, req.ClientID)
	if err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "client not found")
			return
		}
		h.logger.Error("client lookup failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load client")
		return
	}

	snaps, duration, err := h.snapshotServices(ctx, req.ServiceIDs)
	if err != nil {
		writeSnapshotError(w, err)
		return
	}
	endTime, err := schedule.EndTime(req.StartTime, duration)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start_time must be HH:MM")
		return
	}
	if open, err := h.withinBusinessHours(ctx, req.StartTime, endTime); err != nil {
		h.logger.Error("settings load failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	} else if !open {
		writeError(w, http.StatusUnprocessableEntity, "requested time is outside business hours")
		return
	}

	appt := &model.Appointment{
		ClientID:    client.ID,
		ClientName:  client.Name,
		ClientPhone: client.Phone,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     endTime,
		Services:    snaps,
		Status:      model.StatusScheduled,
		Notes:       strings.TrimSpace(req.Notes),
	}

	tx, err := h.appts.Begin(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if conflict, err := h.dayConflicts(ctx, tx, appt, ""); err != nil {
		h.logger.Error("conflict check failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to check availability")
		return
	} else if conflict {
		writeError(w, http.StatusConflict, "time slot conflicts with an existing appointment")
		return
	}

	id, err := h.appts.Create(ctx, tx, appt)
	if err != nil {
		if storage.IsConflict(err) {
			writeError(w, http.StatusConflict, "time slot conflicts with an existing appointment")
			return
		}
		h.logger.Error("appointment create failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to create appointment")
		return
	}
	appt.ID = id

	if err := h.emitAppointmentEvent(ctx, tx, outbox.EventAppointmentBooked, appt, ""); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to write outbox event")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to commit")
		return
	}
	h.cache.Bump(ctx)

	writeJSON(w, http.StatusCreated, toItem(*appt))
}

// update replaces the appointment's schedule fields and service list. Service
// ids already on the appointment keep their original price snapshot; only
// newly added services are priced from the live catalog.
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req updateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.ID = strings.TrimSpace(req.ID)
	req.Date = strings.TrimSpace(req.Date)
	req.StartTime = strings.TrimSpace(req.StartTime)
	if req.ID == "" || req.Date == "" || req.StartTime == "" {
		writeError(w, http.StatusBadRequest, "id, date and start_time required")
		return
	}
	if !validDate(req.Date) {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if len(req.ServiceIDs) == 0 {
		writeError(w, http.StatusBadRequest, "at least one service is required")
		return
	}

	ctx := r.Context()
	tx, err := h.appts.Begin(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	appt, err := h.appts.GetForUpdate(ctx, tx, req.ID)
	if err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "appointment not found")
			return
		}
		h.logger.Error("appointment load failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load appointment")
		return
	}

	snaps, duration, err := h.mergeSnapshots(ctx, appt.Services, req.ServiceIDs)
	if err != nil {
		writeSnapshotError(w, err)
		return
	}
	endTime, err := schedule.EndTime(req.StartTime, duration)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start_time must be HH:MM")
		return
	}
	if open, err := h.withinBusinessHours(ctx, req.StartTime, endTime); err != nil {
		h.logger.Error("settings load failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	} else if !open {
		writeError(w, http.StatusUnprocessableEntity, "requested time is outside business hours")
		return
	}

	if req.ClientID != "" && req.ClientID != appt.ClientID {
		client, err := h.clients.Get(ctx, req.ClientID)
		if err != nil {
			if storage.IsNotFound(err) {
				writeError(w, http.StatusNotFound, "client not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to load client")
			return
		}
		appt.ClientID = client.ID
		appt.ClientName = client.Name
		appt.ClientPhone = client.Phone
	}

	appt.Date = req.Date
	appt.StartTime = req.StartTime
	appt.EndTime = endTime
	appt.Services = snaps
	appt.Notes = strings.TrimSpace(req.Notes)

	if conflict, err := h.dayConflicts(ctx, tx, &appt, appt.ID); err != nil {
		h.logger.Error("conflict check failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to check availability")
		return
	} else if conflict {
		writeError(w, http.StatusConflict, "time slot conflicts with an existing appointment")
		return
	}

	if err := h.appts.Update(ctx, tx, &appt); err != nil {
		if storage.IsConflict(err) {
			writeError(w, http.StatusConflict, "time slot conflicts with an existing appointment")
			return
		}
		h.logger.Error("appointment update failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update appointment")
		return
	}
	if err := h.appts.ReplaceServices(ctx, tx, appt.ID, snaps); err != nil {
		h.logger.Error("service snapshot replace failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update appointment services")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to commit")
		return
	}
	h.cache.Bump(ctx)

	writeJSON(w, http.StatusOK, toItem(appt))
}

// Status applies a lifecycle transition. Re-applying the current status is a
// no-op: nothing is written and no event is emitted.
func (h *AppointmentHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.ID = strings.TrimSpace(req.ID)
	req.Status = strings.TrimSpace(req.Status)
	req.Reason = strings.TrimSpace(req.Reason)
	if req.ID == "" || req.Status == "" {
		writeError(w, http.StatusBadRequest, "id and status required")
		return
	}
	if !model.ValidStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	ctx := r.Context()
	tx, err := h.appts.Begin(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	appt, err := h.appts.GetForUpdate(ctx, tx, req.ID)
	if err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "appointment not found")
			return
		}
		h.logger.Error("appointment load failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load appointment")
		return
	}

	if appt.Status == req.Status {
		writeJSON(w, http.StatusOK, toItem(appt))
		return
	}

	// Un-cancelling re-occupies the time slot, so the overlap invariant must
	// be re-checked against the day's current calendar.
	if appt.Status == model.StatusCancelled && req.Status != model.StatusCancelled {
		if conflict, err := h.dayConflicts(ctx, tx, &appt, appt.ID); err != nil {
			h.logger.Error("conflict check failed", "err", err)
			writeError(w, http.StatusInternalServerError, "failed to check availability")
			return
		} else if conflict {
			writeError(w, http.StatusConflict, "time slot was taken while cancelled")
			return
		}
	}

	if err := lifecycle.Apply(&appt, req.Status, req.Reason, time.Now().UTC()); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.appts.UpdateStatus(ctx, tx, &appt); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update status")
		return
	}

	eventType := outbox.EventAppointmentStatusChanged
	if appt.Status == model.StatusCancelled {
		eventType = outbox.EventAppointmentCancelled
	}
	if err := h.emitAppointmentEvent(ctx, tx, eventType, &appt, req.Reason); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to write outbox event")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to commit")
		return
	}
	h.cache.Bump(ctx)

	writeJSON(w, http.StatusOK, toItem(appt))
}

func (h *AppointmentHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "id required")
		return
	}
	if err := h.appts.Delete(r.Context(), id); err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "appointment not found")
			return
		}
		h.logger.Error("appointment delete failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to delete appointment")
		return
	}
	h.cache.Bump(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Slots returns the free start times for a date, at the shop's configured
// hours. duration_minutes defaults to the shop's standard appointment length;
// step_minutes controls granularity.
func (h *AppointmentHandler) Slots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if !validDate(date) {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	ctx := r.Context()
	settings, err := h.settings.Get(ctx)
	if err != nil {
		h.logger.Error("settings load failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}

	duration := settings.AppointmentDuration
	if v := strings.TrimSpace(r.URL.Query().Get("duration_minutes")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 8*60 {
			writeError(w, http.StatusBadRequest, "invalid duration_minutes")
			return
		}
		duration = n
	}
	step := defaultSlotStep
	if v := strings.TrimSpace(r.URL.Query().Get("step_minutes")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 120 {
			writeError(w, http.StatusBadRequest, "invalid step_minutes")
			return
		}
		step = n
	}

	appts, err := h.appts.ListByDate(ctx, date)
	if err != nil {
		h.logger.Error("appointment list failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load appointments")
		return
	}

	free := schedule.FreeStarts(settings.OpenTime, settings.CloseTime, step, duration, date, toBookings(appts))
	if free == nil {
		free = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":             date,
		"duration_minutes": duration,
		"slots":            free,
	})
}

// Agenda is the daily view: the day's appointments in start order plus its
// status counts and realized revenue.
func (h *AppointmentHandler) Agenda(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = time.Now().UTC().Format(dateLayout)
	}
	if !validDate(date) {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	appts, err := h.appts.ListByDate(r.Context(), date)
	if err != nil {
		h.logger.Error("appointment list failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load appointments")
		return
	}
	reports.SortDay(appts)

	items := make([]appointmentItem, 0, len(appts))
	for _, a := range appts {
		items = append(items, toItem(a))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":         date,
		"appointments": items,
		"counts":       reports.CountByStatus(appts, date, date),
		"revenue":      reports.RevenueBetween(appts, date, date),
	})
}

func (h *AppointmentHandler) snapshotServices(ctx context.Context, ids []string) ([]model.ServiceSnapshot, int, error) {
	return h.mergeSnapshots(ctx, nil, ids)
}

// mergeSnapshots resolves ids against the catalog and hands off to
// buildSnapshots. Only ids not already on the appointment hit the database.
func (h *AppointmentHandler) mergeSnapshots(ctx context.Context, prior []model.ServiceSnapshot, ids []string) ([]model.ServiceSnapshot, int, error) {
	onAppointment := make(map[string]bool, len(prior))
	for _, s := range prior {
		onAppointment[s.ServiceID] = true
	}

	var missing []string
	for _, id := range ids {
		if !onAppointment[id] {
			missing = append(missing, id)
		}
	}

	catalog := map[string]model.Service{}
	if len(missing) > 0 {
		services, err := h.services.GetMany(ctx, missing)
		if err != nil {
			return nil, 0, errServiceLookup
		}
		for _, s := range services {
			catalog[s.ID] = s
		}
	}

	return buildSnapshots(prior, ids, catalog)
}

// buildSnapshots assembles the snapshot list for ids. Ids already present in
// prior keep their booking-time snapshot untouched, so historical prices
// survive an edit. New ids must resolve to an active catalog row; a missing
// or deactivated service rejects the whole list.
func buildSnapshots(prior []model.ServiceSnapshot, ids []string, catalog map[string]model.Service) ([]model.ServiceSnapshot, int, error) {
	priorByID := make(map[string]model.ServiceSnapshot, len(prior))
	for _, s := range prior {
		priorByID[s.ServiceID] = s
	}

	var snaps []model.ServiceSnapshot
	var duration int
	for _, id := range ids {
		if s, ok := priorByID[id]; ok {
			snaps = append(snaps, s)
			duration += s.DurationMinutes
			continue
		}
		s, ok := catalog[id]
		if !ok || !s.IsActive {
			return nil, 0, errUnknownService
		}
		snaps = append(snaps, model.ServiceSnapshot{
			ServiceID:       s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		})
		duration += s.DurationMinutes
	}
	if duration <= 0 {
		return nil, 0, errUnknownService
	}
	return snaps, duration, nil
}

func (h *AppointmentHandler) dayConflicts(ctx context.Context, tx pgx.Tx, appt *model.Appointment, excludeID string) (bool, error) {
	day, err := h.appts.LockDay(ctx, tx, appt.Date)
	if err != nil {
		return false, err
	}
	cand := schedule.Candidate{
		Date:            appt.Date,
		StartTime:       appt.StartTime,
		DurationMinutes: durationOf(appt.Services),
	}
	return schedule.HasConflict(cand, toBookings(day), excludeID), nil
}

func (h *AppointmentHandler) withinBusinessHours(ctx context.Context, start, end string) (bool, error) {
	settings, err := h.settings.Get(ctx)
	if err != nil {
		return false, err
	}
	return start >= settings.OpenTime && end <= settings.CloseTime, nil
}

func (h *AppointmentHandler) emitAppointmentEvent(ctx context.Context, tx pgx.Tx, eventType string, appt *model.Appointment, reason string) error {
	payload, err := json.Marshal(map[string]any{
		"appointment_id": appt.ID,
		"client_id":      appt.ClientID,
		"client_name":    appt.ClientName,
		"client_phone":   appt.ClientPhone,
		"date":           appt.Date,
		"start_time":     appt.StartTime,
		"end_time":       appt.EndTime,
		"status":         appt.Status,
		"total":          appt.Total(),
		"reason":         reason,
	})
	if err != nil {
		return err
	}
	return h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "appointment",
		AggregateID:   appt.ID,
		EventType:     eventType,
		Payload:       payload,
	})
}

func writeSnapshotError(w http.ResponseWriter, err error) {
	if errors.Is(err, errUnknownService) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func toBookings(appts []model.Appointment) []schedule.Booking {
	out := make([]schedule.Booking, 0, len(appts))
	for _, a := range appts {
		out = append(out, schedule.Booking{
			ID:        a.ID,
			Date:      a.Date,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
			Status:    a.Status,
		})
	}
	return out
}

func durationOf(snaps []model.ServiceSnapshot) int {
	var d int
	for _, s := range snaps {
		d += s.DurationMinutes
	}
	return d
}

func validDate(date string) bool {
	_, err := time.Parse(dateLayout, date)
	return err == nil
}
