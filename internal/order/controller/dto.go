package controller

import (
	"time"

	"brigade/internal/domain"
	apperrors "brigade/internal/errors"
)

type CreateOrderRequest struct {
	TableID         string            `json:"tableId"`
	Items           []CreateOrderItem `json:"items"`
	CustomerName    string            `json:"customerName"`
	CustomerCount   int               `json:"customerCount"`
	SpecialRequests string            `json:"specialRequests"`
	CreatedBy       string            `json:"createdBy"`
}

type CreateOrderItem struct {
	MenuItemID          string `json:"menuItemId"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"specialInstructions"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type UpdateItemStatusRequest struct {
	Status     string `json:"status"`
	PreparedBy string `json:"preparedBy"`
}

type OrderResponse struct {
	ID              string              `json:"id"`
	Number          string              `json:"number"`
	TableID         string              `json:"tableId"`
	Items           []OrderItemResponse `json:"items"`
	Status          string              `json:"status"`
	Subtotal        float64             `json:"subtotal"`
	Tax             float64             `json:"tax"`
	Discount        float64             `json:"discount"`
	Total           float64             `json:"total"`
	CustomerName    string              `json:"customerName,omitempty"`
	CustomerCount   int                 `json:"customerCount,omitempty"`
	SpecialRequests string              `json:"specialRequests,omitempty"`
	CreatedBy       string              `json:"createdBy"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
	CompletedAt     *time.Time          `json:"completedAt,omitempty"`
}

type OrderItemResponse struct {
	ID                  string     `json:"id"`
	MenuItemID          string     `json:"menuItemId"`
	Name                string     `json:"name"`
	Price               float64    `json:"price"`
	PrepTimeMinutes     int        `json:"prepTimeMinutes"`
	Quantity            int        `json:"quantity"`
	Status              string     `json:"status"`
	SpecialInstructions string     `json:"specialInstructions,omitempty"`
	PreparedBy          string     `json:"preparedBy,omitempty"`
	PreparedAt          *time.Time `json:"preparedAt,omitempty"`
}

type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

type ErrorResponse struct {
	TraceID   string                       `json:"traceId"`
	Status    int                          `json:"status"`
	Code      string                       `json:"code"`
	Message   string                       `json:"message"`
	Details   []apperrors.ValidationDetail `json:"details,omitempty"`
	Timestamp time.Time                    `json:"timestamp"`
}

func toOrderResponse(order *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			ID:                  item.ID,
			MenuItemID:          item.MenuItemID,
			Name:                item.Name,
			Price:               item.Price,
			PrepTimeMinutes:     item.PrepTimeMinutes,
			Quantity:            item.Quantity,
			Status:              string(item.Status),
			SpecialInstructions: item.SpecialInstructions,
			PreparedBy:          item.PreparedBy,
			PreparedAt:          item.PreparedAt,
		}
	}

	return OrderResponse{
		ID:              order.ID,
		Number:          order.Number,
		TableID:         order.TableID,
		Items:           items,
		Status:          string(order.Status),
		Subtotal:        order.Subtotal,
		Tax:             order.Tax,
		Discount:        order.Discount,
		Total:           order.Total,
		CustomerName:    order.CustomerName,
		CustomerCount:   order.CustomerCount,
		SpecialRequests: order.SpecialRequests,
		CreatedBy:       order.CreatedBy,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		CompletedAt:     order.CompletedAt,
	}
}
