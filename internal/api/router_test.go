package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"supplychain-service/internal/adapters/repositories/memory"
	"supplychain-service/internal/adapters/repositories/repotest"
	"supplychain-service/internal/domain"
	"supplychain-service/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Vendors.CreateVendor(ctx, repotest.Vendor("V-1", "Bengal Meats")))
	require.NoError(t, store.Products.CreateProduct(ctx, repotest.Product("P-1", "Premium Beef Steak", domain.ProductBeef, 850)))

	h := NewRouter(Deps{
		Routes:   services.NewRouteService(store.Routes, nil, nil),
		Products: services.NewProductService(store.Products),
		Vendors:  services.NewVendorService(store.Vendors),
		Orders:   services.NewOrderService(store.Orders, store.Vendors, store.Products),
		KPIs:     services.NewKPIService(store),
		Logger:   zap.NewNop(),
		Now:      func() time.Time { return testNow },
	})

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (*http.Response, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, rdr)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

const karimRoute = `{
	"routeNumber": "RT-2026-001",
	"driverName": "Karim",
	"vehicleId": "DHA-KA-11-2345",
	"origin": "Dhaka",
	"destination": "Chittagong",
	"distance": 253.5,
	"temperature": 2,
	"scheduledDate": "2026-03-14",
	"estimatedTime": "6h 30m",
	"status": "In Transit",
	"gpsLocation": true,
	"products": [{"productName": "Premium Beef Steak", "quantity": 40}]
}`

type routeBody struct {
	ID            string `json:"id"`
	DriverName    string `json:"driverName"`
	ScheduledDate string `json:"scheduledDate"`
	Status        string `json:"status"`
	Products      []struct {
		ProductName string `json:"productName"`
		Quantity    int    `json:"quantity"`
	} `json:"products"`
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, b := do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(b))
	assert.NotEmpty(t, resp.Header.Get("Content-Type"))
}

func TestRouteLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp, b := do(t, srv, http.MethodPost, "/api/routes", karimRoute)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(b))
	created := decode[routeBody](t, b)
	assert.Regexp(t, `^R-[0-9A-F]{8}$`, created.ID)
	assert.Equal(t, "/api/routes/"+created.ID, resp.Header.Get("Location"))
	assert.Equal(t, "2026-03-14", created.ScheduledDate)

	resp, b = do(t, srv, http.MethodGet, "/api/routes/"+created.ID+"/tracking", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tracking := decode[struct {
		Progress int `json:"progress"`
		Timeline []struct {
			Label       string `json:"label"`
			Description string `json:"description"`
			State       string `json:"state"`
		} `json:"timeline"`
		GPSNote string `json:"gpsNote"`
	}](t, b)
	assert.Equal(t, 65, tracking.Progress)
	require.Len(t, tracking.Timeline, 3)
	assert.Equal(t, "Driver Karim is en route to Chittagong.", tracking.Timeline[1].Description)
	assert.Equal(t, "completed", tracking.Timeline[0].State)
	assert.Equal(t, "current", tracking.Timeline[1].State)
	assert.Equal(t, "pending", tracking.Timeline[2].State)
	assert.Equal(t, "Live GPS ping received.", tracking.GPSNote)

	replace := strings.Replace(karimRoute, `"In Transit"`, `"Delivered"`, 1)
	replace = strings.Replace(replace, `"products": [{"productName": "Premium Beef Steak", "quantity": 40}]`, `"products": []`, 1)
	resp, b = do(t, srv, http.MethodPut, "/api/routes/"+created.ID, replace)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(b))
	updated := decode[routeBody](t, b)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Delivered", updated.Status)
	assert.Empty(t, updated.Products)

	resp, b = do(t, srv, http.MethodGet, "/api/routes/"+created.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Delivered", decode[routeBody](t, b).Status)
}

func TestRouteNotFound(t *testing.T) {
	srv := newTestServer(t)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/routes/R-MISSING", ""},
		{http.MethodGet, "/api/routes/R-MISSING/tracking", ""},
		{http.MethodPut, "/api/routes/R-MISSING", karimRoute},
		{http.MethodGet, "/api/nothing-here", ""},
	} {
		resp, b := do(t, srv, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, tc.path)
		assert.Equal(t, "not found", decode[errorBody](t, b).Error)
	}
}

func TestRouteValidation(t *testing.T) {
	srv := newTestServer(t)

	resp, b := do(t, srv, http.MethodPost, "/api/routes", `{"status": "Teleported"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[errorBody](t, b)
	assert.Equal(t, "DriverName is required", body.Fields["driverName"])
	assert.Equal(t, "ScheduledDate is required", body.Fields["scheduledDate"])
	assert.Contains(t, body.Fields, "status")

	resp, b = do(t, srv, http.MethodPost, "/api/routes", strings.Replace(karimRoute, "2026-03-14", "14/03/2026", 1))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[errorBody](t, b).Fields, "scheduledDate")

	resp, b = do(t, srv, http.MethodPost, "/api/routes", `{"routeNumber": "RT-1", "color": "red"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid json body", decode[errorBody](t, b).Error)

	resp, b = do(t, srv, http.MethodPost, "/api/routes", karimRoute+`{}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "body must contain only one JSON object", decode[errorBody](t, b).Error)
}

func TestRouteListFiltersAndFacets(t *testing.T) {
	srv := newTestServer(t)

	for _, swap := range []struct{ driver, status, date string }{
		{"Karim", "In Transit", "2026-03-14"},
		{"Rahim", "Delivered", "2026-03-12"},
		{"Salma", "Scheduled", "2026-03-20"},
	} {
		body := strings.NewReplacer(`"Karim"`, `"`+swap.driver+`"`, `"In Transit"`, `"`+swap.status+`"`, "2026-03-14", swap.date).Replace(karimRoute)
		resp, b := do(t, srv, http.MethodPost, "/api/routes", body)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(b))
	}

	resp, b := do(t, srv, http.MethodGet, "/api/routes?status=delivered,scheduled", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[struct {
		Routes []routeBody `json:"routes"`
	}](t, b)
	require.Len(t, list.Routes, 2)
	assert.Equal(t, "Rahim", list.Routes[0].DriverName)
	assert.Equal(t, "Salma", list.Routes[1].DriverName)

	resp, b = do(t, srv, http.MethodGet, "/api/routes?from=2026-03-13&to=2026-03-14&q=kar", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list = decode[struct {
		Routes []routeBody `json:"routes"`
	}](t, b)
	require.Len(t, list.Routes, 1)
	assert.Equal(t, "Karim", list.Routes[0].DriverName)

	resp, _ = do(t, srv, http.MethodGet, "/api/routes?from=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, b = do(t, srv, http.MethodGet, "/api/routes/facets", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{
		"statuses": ["Delivered", "In Transit", "Scheduled"],
		"drivers": ["Karim", "Rahim", "Salma"],
		"origins": ["Dhaka"],
		"destinations": ["Chittagong"]
	}`, string(b))

	resp, b = do(t, srv, http.MethodGet, "/api/routes/stats", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"totalRoutes":3,"inTransit":1,"delivered":1,"avgTemperature":2}`, string(b))
}

func TestProductsAndVendors(t *testing.T) {
	srv := newTestServer(t)

	resp, b := do(t, srv, http.MethodPost, "/api/products", `{
		"name": "Broiler Chicken", "type": "chicken", "weight": 1.8,
		"retailPrice": 320, "wholesalePrice": "260.50", "district": "Gazipur"
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(b))
	assert.Contains(t, string(b), `"wholesalePrice":260.5`)

	resp, b = do(t, srv, http.MethodPost, "/api/products", `{"name": "Mystery", "type": "beef"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "WholesalePrice is required", decode[errorBody](t, b).Fields["wholesalePrice"])

	resp, b = do(t, srv, http.MethodGet, "/api/products?type=chicken&max_price=400", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	products := decode[struct {
		Products []struct {
			Name string `json:"name"`
		} `json:"products"`
	}](t, b)
	require.Len(t, products.Products, 1)
	assert.Equal(t, "Broiler Chicken", products.Products[0].Name)

	resp, _ = do(t, srv, http.MethodGet, "/api/products?min_price=cheap", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, b = do(t, srv, http.MethodPost, "/api/vendors", `{"name": "Agora", "email": "buy@agora.example", "phone": "+8802", "type": "retailer"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(b))

	resp, b = do(t, srv, http.MethodGet, "/api/vendors", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[struct {
		Vendors []json.RawMessage `json:"vendors"`
	}](t, b).Vendors, 2)
}

func TestOrders(t *testing.T) {
	srv := newTestServer(t)

	resp, b := do(t, srv, http.MethodPost, "/api/orders", `{"vendorId": "V-1", "productId": "P-1", "quantity": 10}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(b))
	order := decode[struct {
		ID          string      `json:"id"`
		VendorName  string      `json:"vendorName"`
		TotalAmount json.Number `json:"totalAmount"`
		Status      string      `json:"status"`
	}](t, b)
	assert.Equal(t, "Bengal Meats", order.VendorName)
	assert.Equal(t, json.Number("6800"), order.TotalAmount)
	assert.Equal(t, "Pending", order.Status)

	resp, b = do(t, srv, http.MethodPost, "/api/orders", `{"vendorId": "V-404", "productId": "P-1", "quantity": 1}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[errorBody](t, b).Fields, "vendorId")

	resp, b = do(t, srv, http.MethodPatch, "/api/orders/"+order.ID+"/status", `{"status": "Shipped"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(b))
	assert.Contains(t, string(b), `"status":"Shipped"`)

	resp, _ = do(t, srv, http.MethodPatch, "/api/orders/ORD-404/status", `{"status": "Shipped"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodDelete, "/api/orders", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestKPIs(t *testing.T) {
	srv := newTestServer(t)

	resp, b := do(t, srv, http.MethodPost, "/api/orders", `{"vendorId": "V-1", "productId": "P-1", "quantity": 2, "unitPrice": 800}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(b))

	resp, b = do(t, srv, http.MethodGet, "/api/kpis", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	kpis := decode[map[string]any](t, b)
	assert.EqualValues(t, 1, kpis["totalProducts"])
	assert.EqualValues(t, 1, kpis["activeOrders"])
	assert.EqualValues(t, 1600, kpis["totalRevenue"])

	resp, b = do(t, srv, http.MethodGet, "/api/kpis/export", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="dashboard-report-2026-03-14.csv"`, resp.Header.Get("Content-Disposition"))
	assert.Equal(t, "Metric,Value\n"+
		"Total Products,1\n"+
		"Total Vendors,1\n"+
		"Total Orders,1\n"+
		"Total Revenue,1600\n"+
		"Average FCR,2.1\n"+
		"Average Weight,1.5\n"+
		"Average Wholesale Price,680\n"+
		"Average Retail Price,850", string(b))
}
