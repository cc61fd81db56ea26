package transport

import (
	"errors"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartItemRequest is one submitted cart line
type CartItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Qty       int    `json:"qty" validate:"required,min=1"`
}

// SaveCartRequest is the full-replacement cart payload
type SaveCartRequest struct {
	Items []CartItemRequest `json:"items" validate:"dive"`
}

// CartHandler handles HTTP requests for the user's cart
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.Get)
		r.Put("/", h.Save)
	})
}

// Get returns the caller's cart, empty if they have never saved one
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r, h.logger)
	if !ok {
		return
	}

	cart, err := h.cartService.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to get cart", zap.Error(err), zap.String("user_id", userID.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, cart)
}

// Save replaces the caller's cart with the submitted lines
func (h *CartHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r, h.logger)
	if !ok {
		return
	}

	var req SaveCartRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Cart validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lines := make([]service.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID in cart")
			return
		}
		lines = append(lines, service.CartLine{ProductID: productID, Qty: item.Qty})
	}

	cart, err := h.cartService.Save(r.Context(), userID, lines)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCartQty) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, repository.ErrUnknownCartProduct) {
			middleware.RespondWithError(w, http.StatusBadRequest, "cart references an unknown product")
			return
		}

		h.logger.Error("Failed to save cart", zap.Error(err), zap.String("user_id", userID.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}

	h.logger.Info("Cart saved", zap.String("user_id", userID.String()), zap.Int("items", len(cart.Items)))
	middleware.RespondWithJSON(w, http.StatusOK, cart)
}

// userIDFromContext resolves the authenticated user's ID, responding with
// an error itself when the ID is missing or malformed.
func userIDFromContext(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uuid.UUID, bool) {
	userIDStr, ok := middleware.GetUserID(r.Context())
	if !ok {
		logger.Error("User ID not found in context")
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		logger.Error("Invalid user ID format", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid user ID")
		return uuid.Nil, false
	}

	return userID, true
}
