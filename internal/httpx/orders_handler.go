package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	kafkax "github.com/kadianKunal/OrderManagement/internal/kafka"
	"github.com/kadianKunal/OrderManagement/internal/orders"
	"github.com/kadianKunal/OrderManagement/internal/redisx"
)

// Publisher is the event sink for order lifecycle events.
// *kafka.Producer satisfies it.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// OrdersHandler maps the HTTP surface onto the order service.
// Redis, Placed and Cancelled are optional: when nil, the read cache and
// event publishing are skipped.
type OrdersHandler struct {
	Orders    *orders.Service
	Redis     *redis.Client
	Placed    Publisher
	Cancelled Publisher
	Log       *zap.Logger
	Service   string // producer name stamped into event envelopes
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Get("/orders", h.listOrders)
	r.Get("/orders/{id}", h.getOrder)
	r.Post("/orders", h.createOrder)
	r.Delete("/orders/{id}", h.cancelOrder)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Orders.GetAllOrders(ctx)
	if err != nil {
		h.log().Error("list orders", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if list == nil {
		list = []orders.Order{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// warm cache first
	key := fmt.Sprintf(redisx.KeyOrderCache, id)
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(s))
			return
		}
	}

	order, err := h.Orders.GetOrderByID(ctx, id)
	if err != nil {
		h.log().Error("get order", zap.Int("order_id", id), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if order == nil {
		h.log().Warn("order not found", zap.Int("order_id", id))
		w.WriteHeader(http.StatusNotFound)
		return
	}

	b, _ := json.Marshal(order)
	if h.Redis != nil {
		_ = h.Redis.Set(ctx, key, b, redisx.TTLOrderCache).Err()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var order orders.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	summary, err := h.Orders.PlaceOrder(ctx, &order)
	if err != nil {
		// the failure's own message is the body, nothing more specific
		h.log().Error("failed to execute order", zap.Error(err))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(err.Error()))
		return
	}

	h.publishPlaced(r, &order, summary)
	writeJSON(w, http.StatusCreated, summary)
}

func (h *OrdersHandler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deleted, err := h.Orders.DeleteOrder(ctx, id)

	// the cached body is stale once the delete path has run at all: a
	// failed restore still means the store row is gone
	if h.Redis != nil {
		_ = h.Redis.Del(ctx, fmt.Sprintf(redisx.KeyOrderCache, id)).Err()
	}

	if err != nil {
		h.log().Error("failed to cancel order", zap.Int("order_id", id), zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if !deleted {
		h.log().Warn("order not cancelled", zap.Int("order_id", id))
		w.WriteHeader(http.StatusNotFound)
		return
	}

	h.publishCancelled(r, id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrdersHandler) publishPlaced(r *http.Request, order *orders.Order, summary *orders.OrderSummary) {
	if h.Placed == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: strconv.Itoa(summary.ID),
	}
	ev.Payload = kafkax.MustMarshal(orders.OrderPlacedPayload{
		OrderID:      summary.ID,
		CustomerName: summary.CustomerName,
		TotalAmount:  summary.TotalAmount,
		Items:        order.BookDetails,
	})
	h.Placed.Publish(orders.PartitionKey(summary.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *OrdersHandler) publishCancelled(r *http.Request, id int) {
	if h.Cancelled == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderCancelled,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: strconv.Itoa(id),
	}
	ev.Payload = kafkax.MustMarshal(orders.OrderCancelledPayload{OrderID: id})
	h.Cancelled.Publish(orders.PartitionKey(id), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderCancelled)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *OrdersHandler) log() *zap.Logger {
	if h.Log == nil {
		return zap.NewNop()
	}
	return h.Log
}
