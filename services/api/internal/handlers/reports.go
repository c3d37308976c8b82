package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/barberflow/barberflow/services/api/internal/cache"
	"github.com/barberflow/barberflow/services/api/internal/reports"
	"github.com/barberflow/barberflow/services/api/internal/storage"
)

const topSellerCount = 5

type ReportHandler struct {
	appts    *storage.AppointmentRepository
	products *storage.ProductRepository
	cache    *cache.Reports
	logger   *slog.Logger
}

func NewReportHandler(
	appts *storage.AppointmentRepository,
	products *storage.ProductRepository,
	reportsCache *cache.Reports,
	logger *slog.Logger,
) *ReportHandler {
	return &ReportHandler{appts: appts, products: products, cache: reportsCache, logger: logger}
}

// Summary reports status counts and realized revenue over [from, to]; both
// bounds default to today. Responses are memoized per collection version.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	today := time.Now().UTC().Format(dateLayout)
	from := strings.TrimSpace(r.URL.Query().Get("from"))
	to := strings.TrimSpace(r.URL.Query().Get("to"))
	if from == "" {
		from = today
	}
	if to == "" {
		to = today
	}
	if !validDate(from) || !validDate(to) {
		writeError(w, http.StatusBadRequest, "from and to must be YYYY-MM-DD")
		return
	}
	if from > to {
		writeError(w, http.StatusBadRequest, "from must not be after to")
		return
	}

	h.serveCached(w, r, "summary", from+":"+to, func() (any, error) {
		appts, err := h.appts.ListAll(r.Context())
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"from":    from,
			"to":      to,
			"counts":  reports.CountByStatus(appts, from, to),
			"revenue": reports.RevenueBetween(appts, from, to),
		}, nil
	})
}

// Monthly rolls a year up per calendar month; ?year= defaults to the current
// year.
func (h *ReportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	year := strings.TrimSpace(r.URL.Query().Get("year"))
	if year == "" {
		year = strconv.Itoa(time.Now().UTC().Year())
	}
	if len(year) != 4 {
		writeError(w, http.StatusBadRequest, "year must be YYYY")
		return
	}
	if _, err := strconv.Atoi(year); err != nil {
		writeError(w, http.StatusBadRequest, "year must be YYYY")
		return
	}

	h.serveCached(w, r, "monthly", year, func() (any, error) {
		appts, err := h.appts.ListAll(r.Context())
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"year":   year,
			"months": reports.MonthlyBreakdown(appts, year),
		}, nil
	})
}

// Products reports the inventory rollup: projected revenue/cost/profit from
// sold counts, top sellers, per-category revenue, and low-stock alerts.
func (h *ReportHandler) Products(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	h.serveCached(w, r, "products", "all", func() (any, error) {
		products, err := h.products.List(r.Context())
		if err != nil {
			return nil, err
		}
		return reports.ProductRollup(products, topSellerCount), nil
	})
}

// serveCached answers from the version-keyed cache when possible, otherwise
// computes the payload and stores it for the current version.
func (h *ReportHandler) serveCached(w http.ResponseWriter, r *http.Request, view, params string, compute func() (any, error)) {
	ctx := r.Context()
	version := h.cache.Version(ctx)

	if raw, ok := h.cache.Get(ctx, view, params, version); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(raw)
		return
	}

	payload, err := compute()
	if err != nil {
		h.logger.Error("report computation failed", "view", view, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to compute report")
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode report")
		return
	}
	h.cache.Set(ctx, view, params, version, raw)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
