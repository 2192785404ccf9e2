package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Delete("/orders/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(RequestTotal.WithLabelValues("DELETE", "/orders/{id}", "404"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/orders/abc", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/orders/def", nil))

	after := testutil.ToFloat64(RequestTotal.WithLabelValues("DELETE", "/orders/{id}", "404"))
	assert.Equal(t, before+2, after)
}

func TestObserveStoreAndAssets(t *testing.T) {
	var err error = errors.New("timeout")
	ObserveStore("items", "find", time.Now(), &err)
	ObserveStore("items", "find", time.Now(), nil)

	before := testutil.ToFloat64(AssetOps.WithLabelValues("delete", "error"))
	RecordAsset("delete", errors.New("denied"))
	assert.Equal(t, before+1, testutil.ToFloat64(AssetOps.WithLabelValues("delete", "error")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	OrdersCreated.Inc()

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Contains(t, string(body), "delivery_orders_created_total")
}
