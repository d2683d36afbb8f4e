package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/usecase/command"
	"github.com/tair/storefront/internal/cart/usecase/query"
	catalogquery "github.com/tair/storefront/internal/catalog/usecase/query"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/session"
)

// CartHandler handles HTTP requests for the session cart
type CartHandler struct {
	// Command handlers
	addHandler    *command.AddItemHandler
	updateHandler *command.UpdateQuantityHandler
	removeHandler *command.RemoveItemHandler

	// Query handlers
	getCartHandler *query.GetCartHandler

	// Add-to-cart resolves the product snapshot through the catalog
	productLookup *catalogquery.GetProductHandler

	repo           domain.CartRepository
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	openCarts      prometheus.Gauge
}

// NewCartHandler creates a new cart handler (manual DI)
func NewCartHandler(repo domain.CartRepository, productLookup *catalogquery.GetProductHandler, events command.EventPublisher) *CartHandler {
	return NewCartHandlerWithDI(
		command.NewAddItemHandler(repo, events),
		command.NewUpdateQuantityHandler(repo),
		command.NewRemoveItemHandler(repo),
		query.NewGetCartHandler(repo),
		productLookup,
		repo,
	)
}

// NewCartHandlerWithDI creates a new cart handler from its parts; used by Wire
func NewCartHandlerWithDI(
	addHandler *command.AddItemHandler,
	updateHandler *command.UpdateQuantityHandler,
	removeHandler *command.RemoveItemHandler,
	getCartHandler *query.GetCartHandler,
	productLookup *catalogquery.GetProductHandler,
	repo domain.CartRepository,
) *CartHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_requests_total",
			Help: "Total number of cart requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_cart_request_duration_seconds",
			Help:    "Duration of cart requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	openCarts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_cart_open_sessions",
			Help: "Number of sessions currently holding a cart",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(openCarts)

	return &CartHandler{
		addHandler:     addHandler,
		updateHandler:  updateHandler,
		removeHandler:  removeHandler,
		getCartHandler: getCartHandler,
		productLookup:  productLookup,
		repo:           repo,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		openCarts:      openCarts,
	}
}

// RegisterRoutes registers cart routes on the router
func (h *CartHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/cart", h.metricsMiddleware("/api/cart", h.GetCart)).Methods("GET")
	router.HandleFunc("/api/cart/items", h.metricsMiddleware("/api/cart/items", h.AddItem)).Methods("POST")
	router.HandleFunc("/api/cart/items/{productId:[0-9]+}", h.metricsMiddleware("/api/cart/items/{productId}", h.UpdateQuantity)).Methods("PATCH")
	router.HandleFunc("/api/cart/items/{productId:[0-9]+}", h.metricsMiddleware("/api/cart/items/{productId}", h.RemoveItem)).Methods("DELETE")
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.getCartHandler.Handle(r.Context(), query.GetCartQuery{
		SessionID: session.EnsureID(w, r),
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to get cart")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to get cart",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    view,
	})
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID int `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	product, err := h.productLookup.Handle(r.Context(), catalogquery.GetProductQuery{ID: req.ProductID})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Product not found",
		})
		return
	}

	line, err := h.addHandler.Handle(r.Context(), command.AddItemCommand{
		SessionID: session.EnsureID(w, r),
		Product:   *product,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to add item to cart")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.openCarts.Set(float64(h.repo.SessionCount()))

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Item added to cart",
		Data:    line,
	})
}

// UpdateQuantity handles PATCH /api/cart/items/{productId}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(mux.Vars(r)["productId"])
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	err = h.updateHandler.Handle(r.Context(), command.UpdateQuantityCommand{
		SessionID: session.EnsureID(w, r),
		ProductID: productID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidQuantity) {
			respondJSON(w, http.StatusUnprocessableEntity, Response{
				Success: false,
				Error:   err.Error(),
			})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to update quantity")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Quantity updated",
	})
}

// RemoveItem handles DELETE /api/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(mux.Vars(r)["productId"])
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return
	}

	err = h.removeHandler.Handle(r.Context(), command.RemoveItemCommand{
		SessionID: session.EnsureID(w, r),
		ProductID: productID,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to remove item")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Item removed",
	})
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *CartHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// Response is the JSON envelope shared by all storefront endpoints
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
