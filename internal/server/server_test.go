package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"retailgenie/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0"},
		Auth: config.AuthConfig{
			SecretKey:    "test-secret",
			JWTSecret:    "test-jwt-secret",
			APIKeyPrefix: "rg_",
		},
		CORS: config.CORSConfig{Origins: []string{"https://retailgenie-1.onrender.com"}},
	}

	srv := NewServer(cfg, zap.NewNop(), client)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, ts *httptest.Server, method, path, token string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if resp.StatusCode == http.StatusNoContent {
		return resp, nil
	}
	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func registerAndLogin(t *testing.T, ts *httptest.Server) string {
	t.Helper()

	resp, body := doJSON(t, ts, "POST", "/api/v1/auth/register", "", map[string]interface{}{
		"name":          "Ana",
		"email":         "ana@example.com",
		"password":      "secret123",
		"business_name": "Ana's Shop",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func createProduct(t *testing.T, ts *httptest.Server, token string, name string, price float64, stock int) string {
	t.Helper()

	resp, body := doJSON(t, ts, "POST", "/api/v1/products", token, map[string]interface{}{
		"name":     name,
		"category": "Test",
		"price":    price,
		"stock":    stock,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	product := body["product"].(map[string]interface{})
	return product["id"].(string)
}

func TestHealthAndStatus(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, ts, "GET", "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, _ = doJSON(t, ts, "GET", "/status", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts)

	resp, body := doJSON(t, ts, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "ana@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, body = doJSON(t, ts, "GET", "/api/v1/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	user := body["user"].(map[string]interface{})
	assert.Equal(t, "ana@example.com", user["email"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "password_hash")
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	ts := newTestServer(t)
	registerAndLogin(t, ts)

	resp, body := doJSON(t, ts, "POST", "/api/v1/auth/register", "", map[string]interface{}{
		"name":          "Copycat",
		"email":         "ana@example.com",
		"password":      "secret123",
		"business_name": "Copy Shop",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestProfileRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, ts, "GET", "/api/v1/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestProductsFallBackToSamplesWhenEmpty(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, ts, "GET", "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "fallback", body["mode"])
	assert.NotEmpty(t, body["products"])
}

func TestProductFilterMissesReturnEmptyNotSamples(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts)
	createProduct(t, ts, token, "Coffee", 10, 100)

	resp, body := doJSON(t, ts, "GET", "/api/v1/products?category=Books", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "mode")
	assert.Empty(t, body["products"])
	assert.InDelta(t, 0, body["count"].(float64), 1e-9)
}

func TestProductLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts)

	id := createProduct(t, ts, token, "Coffee", 19.99, 100)

	resp, body := doJSON(t, ts, "GET", "/api/v1/products/"+id, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	product := body["product"].(map[string]interface{})
	assert.InDelta(t, 1999.0, product["value"].(float64), 1e-6)

	// Unauthenticated writes are rejected
	resp, _ = doJSON(t, ts, "POST", "/api/v1/products", "", map[string]interface{}{"name": "X", "price": 1})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, ts, "DELETE", "/api/v1/products/"+id, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, ts, "GET", "/api/v1/products/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrderPricingIsServerAuthoritative(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts)
	id := createProduct(t, ts, token, "Coffee", 10, 100)

	resp, body := doJSON(t, ts, "POST", "/api/v1/orders", token, map[string]interface{}{
		"customer_id": "c1",
		"items": []map[string]interface{}{
			{"product_id": id, "quantity": 3, "price": 999},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	order := body["order"].(map[string]interface{})
	assert.InDelta(t, 30.0, order["total"].(float64), 1e-6)
	items := order["items"].([]interface{})
	first := items[0].(map[string]interface{})
	assert.InDelta(t, 10.0, first["price"].(float64), 1e-6)
	assert.Equal(t, "pending", order["status"])
}

func TestLowStockEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts)

	for i, stock := range []int{0, 5, 9, 10, 20} {
		createProduct(t, ts, token, fmt.Sprintf("P%d", i), 10, stock)
	}

	resp, body := doJSON(t, ts, "GET", "/api/v1/inventory/low-stock?threshold=10", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	products := body["products"].([]interface{})
	require.Len(t, products, 2)
	assert.InDelta(t, 5, products[0].(map[string]interface{})["stock"].(float64), 1e-9)
	assert.InDelta(t, 9, products[1].(map[string]interface{})["stock"].(float64), 1e-9)
}

func TestWishlistDuplicateConflicts(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts)
	id := createProduct(t, ts, token, "Coffee", 10, 100)

	resp, _ := doJSON(t, ts, "POST", "/api/v1/wishlist/add", token, map[string]interface{}{"product_id": id})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, ts, "POST", "/api/v1/wishlist/add", token, map[string]interface{}{"product_id": id})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestAnonymousCartServesSample(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, ts, "GET", "/api/v1/cart", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "fallback", body["mode"])
	assert.NotNil(t, body["cart"])
}

func TestAuthenticatedCartStartsEmpty(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts)

	resp, body := doJSON(t, ts, "GET", "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "mode")

	cart := body["cart"].(map[string]interface{})
	assert.Empty(t, cart["items"])
	assert.InDelta(t, 0, cart["total_items"].(float64), 1e-9)
}

func TestPreferencesFirstSaveBootstraps(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts)

	// A user who never saved still reads the defaults
	resp, body := doJSON(t, ts, "GET", "/api/v1/profile/preferences", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	prefs := body["preferences"].(map[string]interface{})
	assert.Equal(t, "light", prefs["theme"])

	resp, body = doJSON(t, ts, "PUT", "/api/v1/profile/preferences", token, map[string]interface{}{"theme": "dark"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	prefs = body["preferences"].(map[string]interface{})
	assert.Equal(t, "dark", prefs["theme"])
	assert.Equal(t, "USD", prefs["currency"])

	resp, body = doJSON(t, ts, "GET", "/api/v1/profile/preferences", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	prefs = body["preferences"].(map[string]interface{})
	assert.Equal(t, "dark", prefs["theme"])
}

func TestFeedbackSentimentMajorityAndFallback(t *testing.T) {
	ts := newTestServer(t)

	// No feedback yet: deterministic sample with the majority label
	resp, body := doJSON(t, ts, "GET", "/api/v1/feedback/sentiment", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "fallback", body["mode"])
	sentiment := body["sentiment"].(map[string]interface{})
	assert.Equal(t, "positive", sentiment["overall_sentiment"])

	for _, rating := range []int{1, 1, 5} {
		resp, _ = doJSON(t, ts, "POST", "/api/v1/feedback", "", map[string]interface{}{
			"rating":  rating,
			"message": "noted",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body = doJSON(t, ts, "GET", "/api/v1/feedback/sentiment", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "mode")
	sentiment = body["sentiment"].(map[string]interface{})
	assert.Equal(t, "negative", sentiment["overall_sentiment"])
	assert.InDelta(t, 2, sentiment["negative"].(float64), 1e-9)
	assert.InDelta(t, 3, sentiment["total"].(float64), 1e-9)
}

func TestAnalyticsPayloadIsTopLevel(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, ts, "GET", "/api/v1/analytics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "fallback", body["mode"])
	assert.Contains(t, body, "overview")
	assert.Contains(t, body, "sales_trend")
	assert.Equal(t, "week", body["time_range"])
}

func TestMLSentimentFallbackMode(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, ts, "GET", "/api/v1/ml/sentiment/analysis", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "fallback", body["mode"])
	analysis, ok := body["analysis"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, analysis, "overall_sentiment")
	assert.Contains(t, analysis, "sentiment_distribution")
}

func TestMLOptimizeUnknownProduct(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, ts, "POST", "/api/v1/ml/pricing/optimize", "", map[string]interface{}{"product_id": "ghost"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestUnknownRouteListsEndpoints(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, ts, "GET", "/api/v1/not-a-thing", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["endpoints"])
}

func TestCORSPreflightForKnownOrigin(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest("OPTIONS", ts.URL+"/api/v1/products", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://retailgenie-1.onrender.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "https://retailgenie-1.onrender.com",
		resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestPlainOptionsAnswered(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest("OPTIONS", ts.URL+"/api/v1/products", nil)
	require.NoError(t, err)

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDatabaseStatusAndInit(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, ts, "GET", "/api/v1/database/status", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, body = doJSON(t, ts, "POST", "/api/v1/database/init", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
}
