package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadianKunal/OrderManagement/internal/inventory"
	"github.com/kadianKunal/OrderManagement/internal/orders"
)

// Full placement path through the real inventory client: controller ->
// service -> HTTP inventory -> store.
func TestPlacement_EndToEnd(t *testing.T) {
	inventorySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/books/order", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]orders.Book{{ID: 1, Title: "Dune", Price: 10.0, Quantity: 12}})
	}))
	defer inventorySrv.Close()

	r := NewRouter()
	h := &OrdersHandler{
		Orders: orders.NewService(newStubStore(), inventory.NewClient(inventorySrv.URL, 2*time.Second), nil),
	}
	h.Register(r)

	rec := do(t, r, http.MethodPost, "/orders", placeOrderBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var summary orders.OrderSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 20.0, summary.TotalAmount)
	require.Len(t, summary.Books, 1)
	assert.Equal(t, 2, summary.Books[0].Quantity)
	assert.Equal(t, 10.0, summary.Books[0].Price)
}

func TestPlacement_EndToEnd_Rejected(t *testing.T) {
	inventorySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("out of stock"))
	}))
	defer inventorySrv.Close()

	store := newStubStore()
	r := NewRouter()
	h := &OrdersHandler{
		Orders: orders.NewService(store, inventory.NewClient(inventorySrv.URL, 2*time.Second), nil),
	}
	h.Register(r)

	rec := do(t, r, http.MethodPost, "/orders", placeOrderBody)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "out of stock", rec.Body.String())
	assert.Empty(t, store.byID)
}
