package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"brigade/internal/domain"
	apperrors "brigade/internal/errors"
	"brigade/internal/order/repository"
	"brigade/internal/order/service"
)

type LifecycleService interface {
	CreateOrder(ctx context.Context, params service.CreateOrderParams) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, f repository.OrderFilter) ([]domain.Order, error)
	SetOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
	SetItemStatus(ctx context.Context, orderID, itemID string, status domain.ItemStatus, preparedBy string) (*domain.Order, error)
	StartPreparing(ctx context.Context, orderID string) (*domain.Order, error)
	MarkOrderReady(ctx context.Context, orderID string) (*domain.Order, error)
	BumpOrder(ctx context.Context, orderID string) (*domain.Order, error)
	CancelOrder(ctx context.Context, orderID string) (*domain.Order, error)
}

type OrderController struct {
	service LifecycleService
	logger  *zap.Logger
}

func NewOrderController(service LifecycleService, logger *zap.Logger) *OrderController {
	return &OrderController{
		service: service,
		logger:  logger,
	}
}

func (c *OrderController) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := validateCreateOrderRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	items := make([]service.CartItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.CartItem{
			MenuItemID:          item.MenuItemID,
			Quantity:            item.Quantity,
			SpecialInstructions: item.SpecialInstructions,
		}
	}

	order, err := c.service.CreateOrder(r.Context(), service.CreateOrderParams{
		TableID:         req.TableID,
		Items:           items,
		CustomerName:    req.CustomerName,
		CustomerCount:   req.CustomerCount,
		SpecialRequests: req.SpecialRequests,
		CreatedBy:       req.CreatedBy,
	})
	if err != nil {
		c.handleServiceError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (c *OrderController) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var f repository.OrderFilter
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.OrderStatus(raw)
		if !status.Valid() {
			c.writeValidationError(w, traceID, "invalid status filter", apperrors.ValidationDetail{
				Field:   "status",
				Message: "unknown order status",
			})
			return
		}
		f.Status = &status
	}
	f.TableID = r.URL.Query().Get("tableId")

	orders, err := c.service.ListOrders(r.Context(), f)
	if err != nil {
		c.handleServiceError(w, traceID, err, logger)
		return
	}

	resp := ListOrdersResponse{Orders: make([]OrderResponse, len(orders))}
	for i := range orders {
		resp.Orders[i] = toOrderResponse(&orders[i])
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *OrderController) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	order, err := c.service.GetOrder(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		c.handleServiceError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (c *OrderController) HandleSetOrderStatus(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	status := domain.OrderStatus(req.Status)
	if !status.Valid() {
		c.writeValidationError(w, traceID, "invalid status", apperrors.ValidationDetail{
			Field:   "status",
			Message: "unknown order status",
		})
		return
	}

	order, err := c.service.SetOrderStatus(r.Context(), chi.URLParam(r, "orderId"), status)
	if err != nil {
		c.handleServiceError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (c *OrderController) HandleSetItemStatus(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req UpdateItemStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	status := domain.ItemStatus(req.Status)
	if !status.Valid() {
		c.writeValidationError(w, traceID, "invalid status", apperrors.ValidationDetail{
			Field:   "status",
			Message: "unknown item status",
		})
		return
	}

	order, err := c.service.SetItemStatus(
		r.Context(),
		chi.URLParam(r, "orderId"),
		chi.URLParam(r, "itemId"),
		status,
		req.PreparedBy,
	)
	if err != nil {
		c.handleServiceError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (c *OrderController) HandleStartPreparing(w http.ResponseWriter, r *http.Request) {
	c.handleTransition(w, r, c.service.StartPreparing)
}

func (c *OrderController) HandleMarkOrderReady(w http.ResponseWriter, r *http.Request) {
	c.handleTransition(w, r, c.service.MarkOrderReady)
}

func (c *OrderController) HandleBumpOrder(w http.ResponseWriter, r *http.Request) {
	c.handleTransition(w, r, c.service.BumpOrder)
}

func (c *OrderController) HandleCancelOrder(w http.ResponseWriter, r *http.Request) {
	c.handleTransition(w, r, c.service.CancelOrder)
}

func (c *OrderController) handleTransition(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, orderID string) (*domain.Order, error),
) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	order, err := op(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		c.handleServiceError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func validateCreateOrderRequest(req CreateOrderRequest) error {
	var details []apperrors.ValidationDetail

	if req.TableID == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "tableId",
			Message: "tableId is required",
		})
	}

	if len(req.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	if len(req.Items) > 100 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items exceeds maximum of 100",
		})
	}

	for idx, item := range req.Items {
		if item.MenuItemID == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].menuItemId",
				Message: "menuItemId is required",
			})
		}
		if item.Quantity < 1 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].quantity",
				Message: "quantity must be a positive integer",
			})
		}
	}

	if req.CustomerCount < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerCount",
			Message: "customerCount must be a positive integer",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func (c *OrderController) handleServiceError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusConflict, "CONFLICT", err.Error())
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeErrorResponse(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

func (c *OrderController) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, ErrorResponse{
		TraceID:   traceID,
		Status:    http.StatusBadRequest,
		Code:      "VALIDATION_ERROR",
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}

func (c *OrderController) writeErrorResponse(w http.ResponseWriter, traceID string, statusCode int, code string, message string) {
	c.writeJSON(w, statusCode, ErrorResponse{
		TraceID:   traceID,
		Status:    statusCode,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
