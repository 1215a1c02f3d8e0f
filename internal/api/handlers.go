package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/marcosvbalencar/portfolio-advisor/internal/ingestion"
	"github.com/marcosvbalencar/portfolio-advisor/internal/kafka"
	"github.com/marcosvbalencar/portfolio-advisor/internal/marketdata"
	"github.com/marcosvbalencar/portfolio-advisor/internal/models"
	"github.com/marcosvbalencar/portfolio-advisor/internal/strategy"
)

// Store defines the persistence operations used by the handlers
type Store interface {
	SavePlan(clientID string, plan *models.RebalancingPlan) (int, error)
	GetLatestPlanByClient(clientID string) (*models.RebalancingPlan, error)
	SaveMarketPrices(prices []models.MarketPrice, asOf time.Time) error
	GetLatestMarketPrices() ([]models.MarketPrice, error)
}

// PlanCache defines the latest-plan cache used by the handlers
type PlanCache interface {
	SetLatest(ctx context.Context, clientID string, plan *models.RebalancingPlan) error
	GetLatest(ctx context.Context, clientID string) (*models.RebalancingPlan, bool, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	store    Store
	cache    PlanCache
	producer *kafka.Producer
	engine   *strategy.Engine
}

// NewHandler creates a new Handler
func NewHandler(store Store, cache PlanCache, producer *kafka.Producer, engine *strategy.Engine) *Handler {
	return &Handler{
		store:    store,
		cache:    cache,
		producer: producer,
		engine:   engine,
	}
}

// AdviceRequest is the input for plan generation. Assets, risk and house
// view come pre-structured from the upstream extraction stage; the price
// feed may be inlined as CSV or omitted to use the latest stored snapshot.
type AdviceRequest struct {
	ClientName      string           `json:"client_name"`
	Assets          []models.Asset   `json:"assets"`
	TotalValue      decimal.Decimal  `json:"total_value"`
	ProfileType     string           `json:"profile_type"`
	MaxEquityPct    *decimal.Decimal `json:"max_equity_pct,omitempty"`
	DriftTolerance  *decimal.Decimal `json:"drift_tolerance,omitempty"`
	HouseView       string           `json:"house_view"`
	MacroText       string           `json:"macro_text,omitempty"`
	MarketPricesCSV string           `json:"market_prices_csv,omitempty"`
}

// AdviceResponse carries the generated plan plus portfolio validation
// findings
type AdviceResponse struct {
	PlanID     int                        `json:"plan_id"`
	Plan       *models.RebalancingPlan    `json:"plan"`
	Validation models.PortfolioValidation `json:"validation"`
}

// GenerateAdvice handles POST /advice
func (h *Handler) GenerateAdvice(w http.ResponseWriter, r *http.Request) {
	var req AdviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.Assets) == 0 {
		http.Error(w, "assets are required", http.StatusBadRequest)
		return
	}
	if req.ClientName == "" {
		http.Error(w, "client_name is required", http.StatusBadRequest)
		return
	}

	profileType := ingestion.NormalizeProfileType(req.ProfileType)
	houseView := ingestion.NormalizeHouseView(req.HouseView, req.MacroText)

	risk := models.RiskProfile{
		ProfileType:    profileType,
		MaxEquityPct:   ingestion.DefaultMaxEquityPct(profileType),
		DriftTolerance: ingestion.DefaultDriftTolerance(),
	}
	if req.MaxEquityPct != nil {
		risk.MaxEquityPct = *req.MaxEquityPct
	}
	if req.DriftTolerance != nil {
		risk.DriftTolerance = *req.DriftTolerance
	}

	portfolio := ingestion.Aggregate(req.ClientName, req.Assets, req.TotalValue)
	validation := ingestion.Validate(portfolio)
	for _, issue := range validation.Issues {
		log.Printf("portfolio validation issue for %s: %s", req.ClientName, issue)
	}

	prices, err := h.resolvePrices(req.MarketPricesCSV)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	returns := marketdata.CalculateReturns(prices, portfolio.Assets)
	plan := h.engine.BuildPlan(portfolio, risk, houseView, returns)

	planID, err := h.store.SavePlan(req.ClientName, plan)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if h.cache != nil {
		if err := h.cache.SetLatest(r.Context(), req.ClientName, plan); err != nil {
			log.Printf("failed to cache plan for %s: %v", req.ClientName, err)
		}
	}

	if h.producer != nil {
		if err := h.producer.PublishPlanGenerated(r.Context(), req.ClientName, plan); err != nil {
			log.Printf("failed to publish plan event for %s: %v", req.ClientName, err)
		}
	}

	respondJSON(w, http.StatusCreated, AdviceResponse{
		PlanID:     planID,
		Plan:       plan,
		Validation: validation,
	})
}

// resolvePrices parses the inlined CSV when present, otherwise falls back
// to the latest stored snapshot
func (h *Handler) resolvePrices(csvContent string) ([]models.MarketPrice, error) {
	if strings.TrimSpace(csvContent) != "" {
		return marketdata.ParseFeed(strings.NewReader(csvContent)), nil
	}
	return h.store.GetLatestMarketPrices()
}

// GetLatestPlan handles GET /plans/{client}
func (h *Handler) GetLatestPlan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clientID := vars["client"]

	if h.cache != nil {
		plan, ok, err := h.cache.GetLatest(r.Context(), clientID)
		if err != nil {
			log.Printf("plan cache read failed for %s: %v", clientID, err)
		} else if ok {
			respondJSON(w, http.StatusOK, plan)
			return
		}
	}

	plan, err := h.store.GetLatestPlanByClient(clientID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, plan)
}

// SavePricesRequest is the input for a manual price snapshot upload
type SavePricesRequest struct {
	Prices []models.MarketPrice `json:"prices"`
	AsOf   string               `json:"as_of"`
}

// SavePrices handles POST /prices
func (h *Handler) SavePrices(w http.ResponseWriter, r *http.Request) {
	var req SavePricesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.Prices) == 0 {
		http.Error(w, "prices are required", http.StatusBadRequest)
		return
	}

	asOf := time.Now().Truncate(24 * time.Hour)
	if req.AsOf != "" {
		parsed, err := time.Parse("2006-01-02", req.AsOf)
		if err != nil {
			http.Error(w, "invalid as_of date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		asOf = parsed
	}

	if err := h.store.SaveMarketPrices(req.Prices, asOf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetPrices handles GET /prices
func (h *Handler) GetPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.store.GetLatestMarketPrices()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, prices)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
