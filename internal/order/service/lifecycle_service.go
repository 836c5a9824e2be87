package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"brigade/internal/domain"
	apperrors "brigade/internal/errors"
	"brigade/internal/notify"
	"brigade/internal/order/repository"
)

type OrderRepository interface {
	List(ctx context.Context, f repository.OrderFilter) ([]domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	Save(ctx context.Context, order *domain.Order) error
	NextOrderNumber(ctx context.Context) (string, error)
}

type MenuItemRepository interface {
	FindByID(ctx context.Context, id string) (*domain.MenuItem, error)
}

type CartItem struct {
	MenuItemID          string
	Quantity            int
	SpecialInstructions string
}

type CreateOrderParams struct {
	TableID         string
	Items           []CartItem
	CustomerName    string
	CustomerCount   int
	SpecialRequests string
	CreatedBy       string
}

// LifecycleService drives orders through their status lifecycle. It
// reads the full order from the store, mutates it and writes the whole
// record back; there is no cross-call locking, so concurrent calls on
// the same order are last-write-wins.
type LifecycleService struct {
	orders   OrderRepository
	menu     MenuItemRepository
	notifier notify.Notifier
	logger   *zap.Logger
}

func NewLifecycleService(
	orders OrderRepository,
	menu MenuItemRepository,
	notifier notify.Notifier,
	logger *zap.Logger,
) *LifecycleService {
	return &LifecycleService{
		orders:   orders,
		menu:     menu,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *LifecycleService) CreateOrder(ctx context.Context, params CreateOrderParams) (*domain.Order, error) {
	if err := validateCreateOrderParams(params); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	items := make([]domain.OrderLineItem, 0, len(params.Items))
	for _, cartItem := range params.Items {
		menuItem, err := s.menu.FindByID(ctx, cartItem.MenuItemID)
		if err != nil {
			return nil, err
		}
		if !menuItem.Available {
			return nil, apperrors.NewConflictError(fmt.Sprintf("menu item %s is not available", menuItem.ID))
		}

		items = append(items, domain.OrderLineItem{
			ID:                  uuid.New().String(),
			MenuItemID:          menuItem.ID,
			Name:                menuItem.Name,
			Price:               menuItem.Price,
			PrepTimeMinutes:     menuItem.PrepTimeMinutes,
			Quantity:            cartItem.Quantity,
			Status:              domain.ItemStatusPending,
			SpecialInstructions: cartItem.SpecialInstructions,
		})
	}

	number, err := s.orders.NextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:              uuid.New().String(),
		Number:          number,
		TableID:         params.TableID,
		Items:           items,
		Status:          domain.OrderStatusPending,
		CustomerName:    params.CustomerName,
		CustomerCount:   params.CustomerCount,
		SpecialRequests: params.SpecialRequests,
		CreatedBy:       params.CreatedBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	order.Recalculate()

	if err := s.persist(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("orderId", order.ID),
		zap.String("orderNumber", order.Number),
		zap.String("tableId", order.TableID),
		zap.Int("itemCount", len(order.Items)),
		zap.Float64("total", order.Total),
	)
	s.notify(notify.EventNewOrder, order)

	return order, nil
}

func (s *LifecycleService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orders.FindByID(ctx, orderID)
}

func (s *LifecycleService) ListOrders(ctx context.Context, f repository.OrderFilter) ([]domain.Order, error) {
	return s.orders.List(ctx, f)
}

// SetOrderStatus overwrites the order-level status. Transitions are not
// validated against the forward sequence; the completedAt timestamp is
// stamped on every transition to completed and never cleared.
func (s *LifecycleService) SetOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order.Status = status
	order.UpdatedAt = now
	if status == domain.OrderStatusCompleted {
		order.CompletedAt = &now
	}

	if err := s.persist(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order status updated",
		zap.String("orderId", order.ID),
		zap.String("orderNumber", order.Number),
		zap.String("status", string(status)),
	)
	s.notify(notify.EventStatusChange, order)

	return order, nil
}

// SetItemStatus updates one line item's status, then re-derives the
// order-level status from the complete item set. Setting an item to
// ready stamps its preparedAt on every call, even if already set.
func (s *LifecycleService) SetItemStatus(ctx context.Context, orderID, itemID string, status domain.ItemStatus, preparedBy string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	item := order.Item(itemID)
	if item == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("item with id %s not found in order %s", itemID, orderID))
	}

	now := time.Now().UTC()
	item.Status = status
	if status == domain.ItemStatusReady {
		item.PreparedAt = &now
	}
	if preparedBy != "" {
		item.PreparedBy = preparedBy
	}

	previous := order.Status
	order.Status = domain.DeriveOrderStatus(order.Items, order.Status)
	order.UpdatedAt = now

	if err := s.persist(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("item status updated",
		zap.String("orderId", order.ID),
		zap.String("itemId", itemID),
		zap.String("itemStatus", string(status)),
		zap.String("orderStatus", string(order.Status)),
	)
	s.notify(notify.EventStatusChange, order)
	if order.Status == domain.OrderStatusReady && previous != domain.OrderStatusReady {
		s.notify(notify.EventOrderReady, order)
	}

	return order, nil
}

// StartPreparing moves the order to preparing and starts every item
// still pending. Items already advanced are untouched.
func (s *LifecycleService) StartPreparing(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.Status = domain.OrderStatusPreparing
	for i := range order.Items {
		if order.Items[i].Status == domain.ItemStatusPending {
			order.Items[i].Status = domain.ItemStatusPreparing
		}
	}
	order.UpdatedAt = time.Now().UTC()

	if err := s.persist(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order preparation started", zap.String("orderId", order.ID), zap.String("orderNumber", order.Number))
	s.notify(notify.EventStatusChange, order)

	return order, nil
}

// MarkOrderReady forces every item to ready, stamping preparedAt on all
// of them, and emits an orderReady notification unconditionally.
func (s *LifecycleService) MarkOrderReady(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for i := range order.Items {
		order.Items[i].Status = domain.ItemStatusReady
		t := now
		order.Items[i].PreparedAt = &t
	}
	order.Status = domain.OrderStatusReady
	order.UpdatedAt = now

	if err := s.persist(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order marked ready", zap.String("orderId", order.ID), zap.String("orderNumber", order.Number))
	s.notify(notify.EventOrderReady, order)

	return order, nil
}

// BumpOrder marks the order served without touching item statuses.
func (s *LifecycleService) BumpOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.Status = domain.OrderStatusServed
	order.UpdatedAt = time.Now().UTC()

	if err := s.persist(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order bumped", zap.String("orderId", order.ID), zap.String("orderNumber", order.Number))
	s.notify(notify.EventStatusChange, order)

	return order, nil
}

// CancelOrder marks the order cancelled. The record stays in the store;
// orders are never physically deleted.
func (s *LifecycleService) CancelOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.Status = domain.OrderStatusCancelled
	order.UpdatedAt = time.Now().UTC()

	if err := s.persist(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order cancelled", zap.String("orderId", order.ID), zap.String("orderNumber", order.Number))
	s.notify(notify.EventStatusChange, order)

	return order, nil
}

func (s *LifecycleService) persist(ctx context.Context, order *domain.Order) error {
	if err := s.orders.Save(ctx, order); err != nil {
		s.logger.Error("failed to save order", zap.String("orderId", order.ID), zap.Error(err))
		s.notifier.Notify(notify.Event{Kind: notify.EventError, OrderID: order.ID, OrderNumber: order.Number})
		return err
	}
	return nil
}

func (s *LifecycleService) notify(kind notify.EventKind, order *domain.Order) {
	s.notifier.Notify(notify.Event{
		Kind:        kind,
		OrderID:     order.ID,
		OrderNumber: order.Number,
		Status:      string(order.Status),
	})
}

func validateCreateOrderParams(params CreateOrderParams) error {
	var details []apperrors.ValidationDetail

	if params.TableID == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "tableId",
			Message: "tableId is required",
		})
	}

	if len(params.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	for idx, item := range params.Items {
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

	if params.CustomerCount < 0 {
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
