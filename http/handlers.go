package http

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"aptprice/db"
	"aptprice/pricing"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"vnd": func(price int64) string { return pricing.FormatAmount(decimal.NewFromInt(price)) },
}).ParseFS(templateFS, "templates/index.html"))

const recentLimit = 5

// Handlers serves the estimate form and its JSON twin.
type Handlers struct {
	estimator *pricing.Estimator
	store     *db.Store
	flashes   *FlashStore
	logger    *zap.Logger
}

// NewHandlers wires the handlers. store may be nil when the estimate log is
// disabled.
func NewHandlers(estimator *pricing.Estimator, store *db.Store, flashes *FlashStore, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{estimator: estimator, store: store, flashes: flashes, logger: logger}
}

// RegisterHandlers mounts the form page and the JSON API on mux.
func RegisterHandlers(mux *http.ServeMux, h *Handlers) {
	mux.HandleFunc("GET /{$}", h.handleForm)
	mux.HandleFunc("POST /estimate", h.handleFormSubmit)

	mux.HandleFunc("GET /api/health", handleHealth)
	mux.HandleFunc("GET /api/districts", handleDistricts)
	mux.HandleFunc("GET /api/schema", handleSchema)
	mux.HandleFunc("POST /api/estimate", h.handleEstimate)
	mux.HandleFunc("GET /api/estimates/recent", h.handleRecent)
}

type bounds struct {
	Min, Max int
}

type pageData struct {
	Types     []pricing.TransactionType
	Districts []string
	Listing   pricing.Listing
	Area      bounds
	Bedroom   bounds
	Floor     bounds
	Result    *pricing.Estimate
	Error     string
	Recent    []db.EstimateRecord
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	data.Types = pricing.TransactionTypes()
	data.Districts = pricing.Districts()
	data.Area = bounds{pricing.MinArea, pricing.MaxArea}
	data.Bedroom = bounds{pricing.MinBedroom, pricing.MaxBedroom}
	data.Floor = bounds{pricing.MinFloor, pricing.MaxFloor}
	if h.store != nil {
		recent, err := h.store.RecentEstimates(recentLimit)
		if err != nil {
			h.logger.Warn("load recent estimates", zap.Error(err), zap.String("request_id", GetRequestID(r.Context())))
		}
		data.Recent = recent
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		h.logger.Error("render form", zap.Error(err))
	}
}

func (h *Handlers) handleForm(w http.ResponseWriter, r *http.Request) {
	data := pageData{Listing: pricing.DefaultListing()}
	if f, ok := h.flashes.Pop(r); ok {
		data.Listing = f.Listing
		data.Result = f.Result
		data.Error = f.Error
	}
	h.render(w, r, http.StatusOK, data)
}

func (h *Handlers) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	listing, err := parseListingForm(r)
	if err != nil {
		h.render(w, r, http.StatusBadRequest, pageData{Listing: listing, Error: err.Error()})
		return
	}

	est, err := h.estimate(r, listing)
	switch {
	case err == nil:
		h.flashes.Put(w, r, flash{Listing: listing, Result: &est})
	case errors.Is(err, pricing.ErrPredictionNotPossible):
		h.flashes.Put(w, r, flash{Listing: listing, Error: pricing.MsgPredictionNotPossible})
	case errors.Is(err, pricing.ErrInvalidListing):
		h.render(w, r, http.StatusBadRequest, pageData{Listing: listing, Error: err.Error()})
		return
	default:
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/#result", http.StatusSeeOther)
}

type estimateResponse struct {
	District string  `json:"district"`
	Raw      float64 `json:"raw"`
	Price    int64   `json:"price"`
	Display  string  `json:"display"`
}

func (h *Handlers) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var listing pricing.Listing
	if err := json.NewDecoder(r.Body).Decode(&listing); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	if listing.Type == "" {
		listing.Type = pricing.ForSale
	}

	est, err := h.estimate(r, listing)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, estimateResponse{
			District: est.Listing.District,
			Raw:      est.Raw,
			Price:    est.Price.IntPart(),
			Display:  est.Display,
		})
	case errors.Is(err, pricing.ErrPredictionNotPossible):
		writeError(w, http.StatusUnprocessableEntity, pricing.MsgPredictionNotPossible)
	case errors.Is(err, pricing.ErrInvalidListing):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// estimate runs the model and records successful results in the log.
func (h *Handlers) estimate(r *http.Request, listing pricing.Listing) (pricing.Estimate, error) {
	requestID := GetRequestID(r.Context())
	est, err := h.estimator.Estimate(r.Context(), listing)
	switch {
	case err == nil:
	case errors.Is(err, pricing.ErrPredictionNotPossible):
		h.logger.Info("negative prediction", zap.String("request_id", requestID), zap.Float64("raw", est.Raw), zap.String("district", listing.District))
		return est, err
	case errors.Is(err, pricing.ErrInvalidListing):
		return est, err
	default:
		h.logger.Error("estimate failed", zap.String("request_id", requestID), zap.Error(err))
		return est, err
	}

	h.logger.Debug("estimate served",
		zap.String("request_id", requestID),
		zap.String("district", listing.District),
		zap.Int("area", listing.Area),
		zap.Float64("raw", est.Raw),
	)
	if h.store != nil {
		if err := h.store.SaveEstimate(requestID, est); err != nil {
			h.logger.Warn("save estimate", zap.String("request_id", requestID), zap.Error(err))
		}
	}
	return est, nil
}

func (h *Handlers) handleRecent(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusNotFound, "estimate log disabled")
		return
	}
	limit := recentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	records, err := h.store.RecentEstimates(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": records})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleDistricts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"transaction_types": pricing.TransactionTypes(),
		"districts":         pricing.Districts(),
	})
}

func handleSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"feature_names": pricing.FeatureNames(),
		"width":         pricing.FeatureWidth,
	})
}

// parseListingForm reads the form fields. On a parse error the returned listing
// still carries whatever was readable so the form can be redisplayed.
func parseListingForm(r *http.Request) (pricing.Listing, error) {
	listing := pricing.DefaultListing()
	if err := r.ParseForm(); err != nil {
		return listing, err
	}
	if v := r.PostForm.Get("type"); v != "" {
		listing.Type = pricing.TransactionType(v)
	}
	if v := r.PostForm.Get("district"); v != "" {
		listing.District = v
	}

	fields := []struct {
		name string
		dst  *int
	}{
		{"area", &listing.Area},
		{"bedroom", &listing.Bedroom},
		{"floor", &listing.Floor},
	}
	for _, f := range fields {
		raw := r.PostForm.Get(f.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return listing, errors.New(f.name + " must be a whole number")
		}
		*f.dst = n
	}
	return listing, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
