package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/barberflow/barberflow/services/api/internal/cache"
	"github.com/barberflow/barberflow/services/api/internal/model"
	"github.com/barberflow/barberflow/services/api/internal/outbox"
	"github.com/barberflow/barberflow/services/api/internal/reports"
	"github.com/barberflow/barberflow/services/api/internal/storage"
)

type ProductHandler struct {
	products   *storage.ProductRepository
	appts      *storage.AppointmentRepository
	outboxRepo *outbox.Repository
	cache      *cache.Reports
	logger     *slog.Logger
}

func NewProductHandler(
	products *storage.ProductRepository,
	appts *storage.AppointmentRepository,
	outboxRepo *outbox.Repository,
	reportsCache *cache.Reports,
	logger *slog.Logger,
) *ProductHandler {
	return &ProductHandler{
		products:   products,
		appts:      appts,
		outboxRepo: outboxRepo,
		cache:      reportsCache,
		logger:     logger,
	}
}

type productRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Cost     float64 `json:"cost"`
	Stock    int     `json:"stock"`
	MinStock int     `json:"min_stock"`
}

type sellRequest struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type productItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Cost      float64 `json:"cost"`
	Stock     int     `json:"stock"`
	MinStock  int     `json:"min_stock"`
	SoldCount int     `json:"sold_count"`
	LowStock  bool    `json:"low_stock"`
}

func toProductItem(p model.Product) productItem {
	return productItem{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		Cost:      p.Cost,
		Stock:     p.Stock,
		MinStock:  p.MinStock,
		SoldCount: p.SoldCount,
		LowStock:  p.Stock <= p.MinStock,
	}
}

// Products serves the inventory: GET lists (?low_stock=true filters to items
// at or below their threshold), POST adds, PUT edits, DELETE removes by ?id=.
func (h *ProductHandler) Products(w http.ResponseWriter, r *http.Request) {
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

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		h.logger.Error("product list failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	if r.URL.Query().Get("low_stock") == "true" {
		products = reports.LowStock(products)
	}

	items := make([]productItem, 0, len(products))
	for _, p := range products {
		items = append(items, toProductItem(p))
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ProductHandler) create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeProduct(w, r, false)
	if !ok {
		return
	}

	id, err := h.products.Create(r.Context(), model.Product{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Cost:     req.Cost,
		Stock:    req.Stock,
		MinStock: req.MinStock,
	})
	if err != nil {
		h.logger.Error("product create failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to create product")
		return
	}
	h.cache.Bump(r.Context())
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *ProductHandler) update(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeProduct(w, r, true)
	if !ok {
		return
	}

	ctx := r.Context()
	current, err := h.products.Get(ctx, req.ID)
	if err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	err = h.products.Update(ctx, model.Product{
		ID:        req.ID,
		Name:      req.Name,
		Category:  req.Category,
		Price:     req.Price,
		Cost:      req.Cost,
		Stock:     req.Stock,
		MinStock:  req.MinStock,
		SoldCount: current.SoldCount,
	})
	if err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("product update failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update product")
		return
	}
	h.cache.Bump(ctx)
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "id required")
		return
	}
	if err := h.products.Delete(r.Context(), id); err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("product delete failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}
	h.cache.Bump(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Sell records a sale: stock drops by quantity but never below zero, and
// sold_count rises by the full quantity either way.
func (h *ProductHandler) Sell(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req sellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.ID = strings.TrimSpace(req.ID)
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id required")
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	ctx := r.Context()
	tx, err := h.appts.Begin(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	product, err := h.products.Sell(ctx, tx, req.ID, req.Quantity)
	if err != nil {
		if storage.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("product sell failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to record sale")
		return
	}

	payload, err := json.Marshal(map[string]any{
		"product_id": product.ID,
		"name":       product.Name,
		"quantity":   req.Quantity,
		"unit_price": product.Price,
		"stock":      product.Stock,
		"low_stock":  product.Stock <= product.MinStock,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode event")
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "product",
		AggregateID:   product.ID,
		EventType:     outbox.EventProductSold,
		Payload:       payload,
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to write outbox event")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to commit")
		return
	}
	h.cache.Bump(ctx)

	writeJSON(w, http.StatusOK, toProductItem(product))
}

func decodeProduct(w http.ResponseWriter, r *http.Request, needID bool) (productRequest, bool) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return req, false
	}
	req.ID = strings.TrimSpace(req.ID)
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)

	if needID && req.ID == "" {
		writeError(w, http.StatusBadRequest, "id required")
		return req, false
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return req, false
	}
	if req.Price < 0 || req.Cost < 0 {
		writeError(w, http.StatusBadRequest, "price and cost must not be negative")
		return req, false
	}
	if req.Stock < 0 || req.MinStock < 0 {
		writeError(w, http.StatusBadRequest, "stock and min_stock must not be negative")
		return req, false
	}
	return req, true
}
