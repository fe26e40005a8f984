package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nurpe/courier-payroll/internal/auth"
	httphandler "github.com/nurpe/courier-payroll/internal/http"
	"github.com/nurpe/courier-payroll/internal/http/middleware"
	"github.com/nurpe/courier-payroll/internal/model"
	"github.com/nurpe/courier-payroll/internal/repository/memory"
	"github.com/nurpe/courier-payroll/internal/service"
)

const password = "entregas2024"

type stubGenerator struct {
	content []byte
}

func (g stubGenerator) Generate(model.DeliveryReport) ([]byte, error) {
	return g.content, nil
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	now := func() time.Time { return time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC) }
	couriers := memory.NewCouriers()
	deliveries := memory.NewDeliveries()
	closings := memory.NewClosings()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	issuer := auth.NewIssuer("secret", time.Hour, time.Now)

	handler := httphandler.NewHandler(
		service.NewCourierService(couriers, now),
		service.NewDeliveryService(deliveries, couriers, now),
		service.NewReportService(couriers, deliveries, stubGenerator{[]byte("%PDF-1.3")}, stubGenerator{[]byte("PK")}, now, time.UTC),
		service.NewPayrollService(couriers, deliveries, closings, now, time.UTC),
		auth.NewGate(string(hash), issuer),
		zerolog.Nop(),
	)
	router := httphandler.NewRouter(handler, middleware.Auth(auth.NewParser("secret")), "test", []string{"*"}, zerolog.Nop())

	srv := &testServer{t: t, router: router}
	rec := srv.do(http.MethodPost, "/auth/login", gin.H{"password": password})
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	srv.token = login.AccessToken
	return srv
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Data
}

func (s *testServer) createCourier(name string) model.Courier {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/couriers", gin.H{"name": name})
	require.Equal(s.t, http.StatusCreated, rec.Code)
	return decodeData[model.Courier](s.t, rec)
}

func (s *testServer) createDelivery(body gin.H) model.Delivery {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/deliveries", body)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[model.Delivery](s.t, rec)
}

func TestPublicRoutes(t *testing.T) {
	srv := newTestServer(t)
	srv.token = ""

	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, srv.do(http.MethodPost, "/auth/login", gin.H{"password": "nope"}).Code)
	assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodPost, "/auth/login", gin.H{}).Code)
	assert.Equal(t, http.StatusUnauthorized, srv.do(http.MethodGet, "/couriers", nil).Code)
}

func TestCourierRoutes(t *testing.T) {
	srv := newTestServer(t)

	ana := srv.createCourier("  Ana ")
	assert.Equal(t, "Ana", ana.Name)

	assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodPost, "/couriers", gin.H{"name": " "}).Code)

	rec := srv.do(http.MethodPut, "/couriers/"+ana.ID.String(), gin.H{"name": "Ana Lima"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ana Lima", decodeData[model.Courier](t, rec).Name)

	assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodPut, "/couriers/not-a-uuid", gin.H{"name": "X"}).Code)

	rec = srv.do(http.MethodGet, "/couriers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]model.Courier](t, rec), 1)

	assert.Equal(t, http.StatusNoContent, srv.do(http.MethodDelete, "/couriers/"+ana.ID.String(), nil).Code)
	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodDelete, "/couriers/"+ana.ID.String(), nil).Code)
}

func TestDeliveryRoutes(t *testing.T) {
	srv := newTestServer(t)
	ana := srv.createCourier("Ana")

	created := srv.createDelivery(gin.H{
		"courier_id":       ana.ID.String(),
		"date":             "2024-03-10",
		"package_count":    "12",
		"additional_value": "5,5",
	})
	assert.Equal(t, 95.5, created.TotalValue)
	assert.False(t, created.Paid)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), created.Date.UTC())

	t.Run("rejects bad input", func(t *testing.T) {
		cases := map[string]gin.H{
			"missing packages": {"courier_id": ana.ID.String(), "date": "2024-03-10"},
			"blank packages":   {"courier_id": ana.ID.String(), "date": "2024-03-10", "package_count": ""},
			"bad date":         {"courier_id": ana.ID.String(), "date": "yesterday", "package_count": 1},
			"bad courier":      {"courier_id": "x", "date": "2024-03-10", "package_count": 1},
		}
		for name, body := range cases {
			t.Run(name, func(t *testing.T) {
				assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodPost, "/deliveries", body).Code)
			})
		}
	})

	t.Run("unknown courier", func(t *testing.T) {
		rec := srv.do(http.MethodPost, "/deliveries", gin.H{
			"courier_id":    "6f1c2a34-5b6d-4e7f-8a9b-0c1d2e3f4a5b",
			"date":          "2024-03-10",
			"package_count": 1,
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("update recomputes total", func(t *testing.T) {
		rec := srv.do(http.MethodPut, "/deliveries/"+created.ID.String(), gin.H{
			"courier_id":    ana.ID.String(),
			"date":          "10/03/2024",
			"package_count": 2,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, 15.0, decodeData[model.Delivery](t, rec).TotalValue)
	})

	t.Run("toggle paid and filter", func(t *testing.T) {
		rec := srv.do(http.MethodPatch, "/deliveries/"+created.ID.String()+"/paid", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decodeData[model.Delivery](t, rec).Paid)

		rec = srv.do(http.MethodGet, "/deliveries?paid=true&courier_id=all&from=2024-03-01&to=2024-03-31", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeData[[]model.Delivery](t, rec), 1)

		rec = srv.do(http.MethodGet, "/deliveries?paid=false", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decodeData[[]model.Delivery](t, rec))

		assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodGet, "/deliveries?paid=maybe", nil).Code)
		assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodGet, "/deliveries?from=2024-03-31&to=2024-03-01", nil).Code)
	})

	t.Run("delete", func(t *testing.T) {
		path := "/deliveries/" + created.ID.String()
		assert.Equal(t, http.StatusNoContent, srv.do(http.MethodDelete, path, nil).Code)
		assert.Equal(t, http.StatusNotFound, srv.do(http.MethodGet, path, nil).Code)
	})
}

func TestReportRoutes(t *testing.T) {
	srv := newTestServer(t)
	ana := srv.createCourier("Ana")
	bia := srv.createCourier("Bia")
	srv.createDelivery(gin.H{"courier_id": ana.ID.String(), "date": "2024-03-10", "package_count": 4, "additional_value": 1})
	srv.createDelivery(gin.H{"courier_id": ana.ID.String(), "date": "2024-03-01", "package_count": 10})
	srv.createDelivery(gin.H{"courier_id": bia.ID.String(), "date": "2024-02-20", "package_count": 2})

	t.Run("summary defaults to the current month", func(t *testing.T) {
		rec := srv.do(http.MethodGet, "/reports/summary?courier_id=all", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		report := decodeData[model.DeliveryReport](t, rec)
		assert.Equal(t, model.Summary{Count: 2, TotalPackages: 14, TotalValue: 106, TotalAdditional: 1}, report.Summary)
		require.Len(t, report.Groups, 2)
		assert.Equal(t, "10/03/2024", report.Groups[0].Date)
	})

	t.Run("summary exports", func(t *testing.T) {
		rec := srv.do(http.MethodGet, "/reports/summary/pdf?courier_id="+ana.ID.String(), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "relatorio-entregas-ana-20-03-2024.pdf")

		rec = srv.do(http.MethodGet, "/reports/summary/xlsx", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "relatorio-entregas-todos-20-03-2024.xlsx")
	})

	t.Run("fortnight", func(t *testing.T) {
		rec := srv.do(http.MethodGet, "/reports/fortnight?year=2024&month=2&half=second", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		report := decodeData[model.FortnightReport](t, rec)
		assert.Equal(t, 2, report.Summary.TotalPackages)

		assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodGet, "/reports/fortnight?year=2024&month=2&half=third", nil).Code)
		assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodGet, "/reports/fortnight?year=2024&half=first", nil).Code)
	})

	t.Run("biweekly", func(t *testing.T) {
		rec := srv.do(http.MethodGet, "/couriers/"+ana.ID.String()+"/biweekly?reference=2024-03-20", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, model.BiweeklyTotal{Packages: 4, Value: 31}, decodeData[model.BiweeklyTotal](t, rec))
	})

	t.Run("courier totals and closings", func(t *testing.T) {
		rec := srv.do(http.MethodGet, "/reports/couriers", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeData[[]model.CourierTotals](t, rec), 2)

		rec = srv.do(http.MethodGet, "/payroll/closings?courier_id=all", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decodeData[[]model.PayrollClosing](t, rec))
	})
}
