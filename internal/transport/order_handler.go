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

// OrderItemRequest is one submitted checkout line. Price is the unit
// price the client saw, in integer currency units.
type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Qty       int    `json:"qty" validate:"required,min=1"`
	Price     int64  `json:"price" validate:"min=0"`
}

// CheckoutRequest is the checkout payload
type CheckoutRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Total int64              `json:"total" validate:"required,gt=0"`
}

// OrderHandler handles HTTP requests for checkout and order management
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Checkout)
		r.Get("/", h.History)
	})

	r.Route("/api/admin/orders", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminMiddleware)
		r.Get("/", h.ListAll)
		r.Delete("/{id}", h.Delete)
	})
}

// Checkout converts the submitted lines into an order. Stock checks,
// stock decrements, and the order insert succeed or fail as one unit.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r, h.logger)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Checkout validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lines := make([]service.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID in order")
			return
		}
		lines = append(lines, service.OrderLine{
			ProductID: productID,
			Qty:       item.Qty,
			Price:     item.Price,
		})
	}

	order, err := h.orderService.Checkout(r.Context(), userID, lines, req.Total)
	if err != nil {
		var stockErr *repository.InsufficientStockError
		if errors.As(err, &stockErr) {
			middleware.RespondWithError(w, http.StatusBadRequest, stockErr.Error())
			return
		}

		switch {
		case errors.Is(err, service.ErrEmptyOrder),
			errors.Is(err, service.ErrInvalidQuantity),
			errors.Is(err, service.ErrInvalidPrice),
			errors.Is(err, service.ErrInvalidTotal):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		h.logger.Error("Checkout failed", zap.Error(err), zap.String("user_id", userID.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to place order")
		return
	}

	h.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int64("total", order.Total),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

// History returns the caller's orders, newest first
func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r, h.logger)
	if !ok {
		return
	}

	orders, err := h.orderService.History(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to load order history", zap.Error(err), zap.String("user_id", userID.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load order history")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// ListAll returns every order for the admin console
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListAll(r.Context())
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// Delete removes an order and its items. Stock is not restored.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	if err := h.orderService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
			return
		}

		h.logger.Error("Failed to delete order", zap.Error(err), zap.String("order_id", id.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete order")
		return
	}

	h.logger.Info("Order deleted", zap.String("order_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "order deleted"})
}
