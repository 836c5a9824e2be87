package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"brigade/internal/domain"
	menurepo "brigade/internal/menu/repository"
	"brigade/internal/notify"
	"brigade/internal/order/repository"
	"brigade/internal/order/service"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	now := time.Now().UTC()
	menu := menurepo.NewMemoryMenuRepository(
		domain.MenuItem{ID: "menu-1", Name: "Margherita Pizza", Category: "mains", Price: 12.50, PrepTimeMinutes: 15, Available: true, CreatedAt: now, UpdatedAt: now},
		domain.MenuItem{ID: "menu-5", Name: "Ribeye Steak", Category: "mains", Price: 24.99, PrepTimeMinutes: 25, Available: true, CreatedAt: now, UpdatedAt: now},
	)
	store := repository.NewMemoryOrderStore()
	svc := service.NewLifecycleService(store, menu, notify.NewLogNotifier(zap.NewNop()), zap.NewNop())
	ctrl := NewOrderController(svc, zap.NewNop())

	r := chi.NewRouter()
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", ctrl.HandleCreateOrder)
		r.Get("/", ctrl.HandleListOrders)
		r.Route("/{orderId}", func(r chi.Router) {
			r.Get("/", ctrl.HandleGetOrder)
			r.Patch("/status", ctrl.HandleSetOrderStatus)
			r.Patch("/items/{itemId}/status", ctrl.HandleSetItemStatus)
			r.Post("/start", ctrl.HandleStartPreparing)
			r.Post("/ready", ctrl.HandleMarkOrderReady)
			r.Post("/bump", ctrl.HandleBumpOrder)
			r.Post("/cancel", ctrl.HandleCancelOrder)
		})
	})

	return r
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeOrder(t *testing.T, w *httptest.ResponseRecorder) OrderResponse {
	t.Helper()
	var resp OrderResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestOrderLifecycleFlow(t *testing.T) {
	handler := setupRouter(t)

	// Create
	w := doJSON(t, handler, http.MethodPost, "/api/v1/orders", map[string]any{
		"tableId":       "table-4",
		"customerCount": 2,
		"createdBy":     "user-1",
		"items": []map[string]any{
			{"menuItemId": "menu-5", "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := decodeOrder(t, w)
	assert.Equal(t, "ORD-001", order.Number)
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, 27.49, order.Total)
	require.Len(t, order.Items, 1)

	// Start preparing
	w = doJSON(t, handler, http.MethodPost, "/api/v1/orders/"+order.ID+"/start", nil)
	require.Equal(t, http.StatusOK, w.Code)
	order = decodeOrder(t, w)
	assert.Equal(t, "preparing", order.Status)
	assert.Equal(t, "preparing", order.Items[0].Status)

	// Item ready
	w = doJSON(t, handler, http.MethodPatch, "/api/v1/orders/"+order.ID+"/items/"+order.Items[0].ID+"/status", map[string]any{
		"status":     "ready",
		"preparedBy": "cook-1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	order = decodeOrder(t, w)
	assert.Equal(t, "ready", order.Status)
	assert.NotNil(t, order.Items[0].PreparedAt)

	// Item served
	w = doJSON(t, handler, http.MethodPatch, "/api/v1/orders/"+order.ID+"/items/"+order.Items[0].ID+"/status", map[string]any{
		"status": "served",
	})
	require.Equal(t, http.StatusOK, w.Code)
	order = decodeOrder(t, w)
	assert.Equal(t, "served", order.Status)

	// Complete
	w = doJSON(t, handler, http.MethodPatch, "/api/v1/orders/"+order.ID+"/status", map[string]any{
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, w.Code)
	order = decodeOrder(t, w)
	assert.Equal(t, "completed", order.Status)
	assert.NotNil(t, order.CompletedAt)
}

func TestCreateOrder_ValidationErrors(t *testing.T) {
	handler := setupRouter(t)

	w := doJSON(t, handler, http.MethodPost, "/api/v1/orders", map[string]any{
		"tableId": "",
		"items":   []map[string]any{},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
	assert.NotEmpty(t, resp.Details)
	assert.NotEmpty(t, resp.TraceID)
}

func TestCreateOrder_UnknownMenuItem(t *testing.T) {
	handler := setupRouter(t)

	w := doJSON(t, handler, http.MethodPost, "/api/v1/orders", map[string]any{
		"tableId":   "table-1",
		"createdBy": "user-1",
		"items": []map[string]any{
			{"menuItemId": "menu-404", "quantity": 1},
		},
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "NOT_FOUND", resp.Code)
	assert.Contains(t, resp.Message, "menu-404")
}

func TestGetOrder_NotFound(t *testing.T) {
	handler := setupRouter(t)

	w := doJSON(t, handler, http.MethodGet, "/api/v1/orders/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetOrderStatus_InvalidStatus(t *testing.T) {
	handler := setupRouter(t)

	w := doJSON(t, handler, http.MethodPost, "/api/v1/orders", map[string]any{
		"tableId":   "table-1",
		"createdBy": "user-1",
		"items":     []map[string]any{{"menuItemId": "menu-1", "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	order := decodeOrder(t, w)

	w = doJSON(t, handler, http.MethodPatch, "/api/v1/orders/"+order.ID+"/status", map[string]any{
		"status": "teleported",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListOrders_StatusFilter(t *testing.T) {
	handler := setupRouter(t)

	for i := 0; i < 2; i++ {
		w := doJSON(t, handler, http.MethodPost, "/api/v1/orders", map[string]any{
			"tableId":   "table-1",
			"createdBy": "user-1",
			"items":     []map[string]any{{"menuItemId": "menu-1", "quantity": 1}},
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, handler, http.MethodGet, "/api/v1/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list ListOrdersResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Len(t, list.Orders, 2)

	// Cancel one and filter.
	w = doJSON(t, handler, http.MethodPost, "/api/v1/orders/"+list.Orders[0].ID+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, handler, http.MethodGet, "/api/v1/orders?status=cancelled", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list = ListOrdersResponse{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Len(t, list.Orders, 1)
	assert.Equal(t, "cancelled", list.Orders[0].Status)

	// The cancelled order is still listed overall.
	w = doJSON(t, handler, http.MethodGet, "/api/v1/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list = ListOrdersResponse{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	assert.Len(t, list.Orders, 2)

	w = doJSON(t, handler, http.MethodGet, "/api/v1/orders?status=nonsense", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkOrderReadyAndBump(t *testing.T) {
	handler := setupRouter(t)

	w := doJSON(t, handler, http.MethodPost, "/api/v1/orders", map[string]any{
		"tableId":   "table-1",
		"createdBy": "user-1",
		"items": []map[string]any{
			{"menuItemId": "menu-1", "quantity": 1},
			{"menuItemId": "menu-5", "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	order := decodeOrder(t, w)

	w = doJSON(t, handler, http.MethodPost, "/api/v1/orders/"+order.ID+"/ready", nil)
	require.Equal(t, http.StatusOK, w.Code)
	order = decodeOrder(t, w)
	assert.Equal(t, "ready", order.Status)
	for _, item := range order.Items {
		assert.Equal(t, "ready", item.Status)
		assert.NotNil(t, item.PreparedAt)
	}

	w = doJSON(t, handler, http.MethodPost, "/api/v1/orders/"+order.ID+"/bump", nil)
	require.Equal(t, http.StatusOK, w.Code)
	order = decodeOrder(t, w)
	assert.Equal(t, "served", order.Status)
}
