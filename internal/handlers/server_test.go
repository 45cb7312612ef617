package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-ops/internal/auth"
	"github.com/ukydev/fleet-ops/internal/db"
	"github.com/ukydev/fleet-ops/internal/fixtures"
	"github.com/ukydev/fleet-ops/internal/kv"
	"github.com/ukydev/fleet-ops/internal/models"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	authService := auth.NewService("test-secret", 0)
	svc := db.New(kv.NewMemory(), authService, db.Options{})
	return NewServer(svc, authService)
}

func doRequest(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success, "expected success, got error: %s", resp.Error)
	require.NoError(t, json.Unmarshal(resp.Data, dst))
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleLogin(t *testing.T) {
	s := newTestServer(t)

	t.Run("valid credentials", func(t *testing.T) {
		w := doRequest(t, s, "POST", "/api/auth/login", models.LoginRequest{
			Email:    "faisal@aktobe.om",
			Password: fixtures.DefaultPassword,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.LoginResponse
		decodeData(t, w, &resp)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "faisal@aktobe.om", resp.User.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doRequest(t, s, "POST", "/api/auth/login", models.LoginRequest{
			Email:    "faisal@aktobe.om",
			Password: "nope",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		w := doRequest(t, s, "POST", "/api/auth/login", models.LoginRequest{
			Email:    "nobody@aktobe.om",
			Password: fixtures.DefaultPassword,
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandleVehicles(t *testing.T) {
	s := newTestServer(t)

	t.Run("list seeds fixtures", func(t *testing.T) {
		w := doRequest(t, s, "GET", "/api/fleet/vehicles", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var vehicles []models.Vehicle
		decodeData(t, w, &vehicles)
		assert.Len(t, vehicles, 3)
	})

	t.Run("get by id", func(t *testing.T) {
		w := doRequest(t, s, "GET", "/api/fleet/vehicles/veh_001", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var v models.Vehicle
		decodeData(t, w, &v)
		assert.Equal(t, "AKT-EX-17", v.AssetCode)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		w := doRequest(t, s, "GET", "/api/fleet/vehicles/veh_999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("create requires asset code", func(t *testing.T) {
		w := doRequest(t, s, "POST", "/api/fleet/vehicles", models.Vehicle{Make: "CAT"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("create then get", func(t *testing.T) {
		w := doRequest(t, s, "POST", "/api/fleet/vehicles", models.Vehicle{AssetCode: "AKT-DZ-01", Make: "CAT", Model: "D6"})
		require.Equal(t, http.StatusCreated, w.Code)

		var created models.Vehicle
		decodeData(t, w, &created)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, models.VehicleActive, created.Status)

		w = doRequest(t, s, "GET", "/api/fleet/vehicles/"+created.ID, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHandleTelemetrySeries(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, "GET", "/api/fleet/vehicles/veh_001/telemetry", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var series []models.TelemetryEvent
	decodeData(t, w, &series)
	assert.Len(t, series, 20)
	for _, ev := range series {
		assert.Equal(t, "veh_001", ev.VehicleID)
	}
}

func TestHandleMaintenanceQueue(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, "GET", "/api/maintenance/queue", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var queue db.Queue
	decodeData(t, w, &queue)
	require.Len(t, queue.Overdue, 1)
	assert.Equal(t, "veh_003", queue.Overdue[0].ID)
	require.Len(t, queue.DueSoon, 1)
	assert.Equal(t, "veh_001", queue.DueSoon[0].ID)
	require.Len(t, queue.HighRisk, 1)
	assert.Equal(t, "veh_003", queue.HighRisk[0].ID)
	assert.Len(t, queue.OpenWorkOrders, 1)
}

func TestHandleAlertStatus(t *testing.T) {
	s := newTestServer(t)

	t.Run("ack open alert", func(t *testing.T) {
		w := doRequest(t, s, "PUT", "/api/alerts/al_7007/status", map[string]string{"status": "acked"})
		require.Equal(t, http.StatusOK, w.Code)

		var al models.Alert
		decodeData(t, w, &al)
		assert.Equal(t, models.AlertAcked, al.Status)
	})

	t.Run("closed alert is terminal", func(t *testing.T) {
		w := doRequest(t, s, "PUT", "/api/alerts/al_7007/status", map[string]string{"status": "closed"})
		require.Equal(t, http.StatusOK, w.Code)

		w = doRequest(t, s, "PUT", "/api/alerts/al_7007/status", map[string]string{"status": "open"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleCreateShift(t *testing.T) {
	s := newTestServer(t)

	t.Run("missing team fails", func(t *testing.T) {
		w := doRequest(t, s, "POST", "/api/shifts", models.Shift{
			Date:      "2026-02-01",
			ProjectID: "p_1",
			SiteID:    "s_1",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("create then check in", func(t *testing.T) {
		w := doRequest(t, s, "POST", "/api/shifts", models.Shift{
			Date:             "2026-02-01",
			ProjectID:        "p_1",
			SiteID:           "s_1",
			TeamID:           "t_2",
			PlannedStart:     "06:00",
			PlannedEnd:       "14:00",
			HeadcountPlanned: 12,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var created models.Shift
		decodeData(t, w, &created)
		assert.Equal(t, models.ShiftPlanned, created.Status)

		headcount := 11
		w = doRequest(t, s, "POST", "/api/shifts/"+created.ID+"/checkin", map[string]*int{"headcount": &headcount})
		require.Equal(t, http.StatusOK, w.Code)

		var active models.Shift
		decodeData(t, w, &active)
		assert.Equal(t, models.ShiftActive, active.Status)
		assert.NotEmpty(t, active.ActualStart)

		w = doRequest(t, s, "GET", "/api/shifts/"+created.ID+"/updates", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var updates []models.ShiftUpdate
		decodeData(t, w, &updates)
		require.NotEmpty(t, updates)
		assert.Equal(t, models.UpdateCheckin, updates[len(updates)-1].Type)
	})
}

func TestHandleBillingSummary(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, "GET", "/api/billing/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary models.BillingSummary
	decodeData(t, w, &summary)
	assert.InDelta(t, 26501.25, summary.TotalBilled, 0.001)
	assert.InDelta(t, 4800.00, summary.PendingAmount, 0.001)
	assert.InDelta(t, 9200.75, summary.OverdueAmount, 0.001)
	assert.Equal(t, 3, summary.InvoiceCount)
}

func TestHandleTenders(t *testing.T) {
	s := newTestServer(t)

	t.Run("filter by status", func(t *testing.T) {
		w := doRequest(t, s, "GET", "/api/tenders?status=bidding", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var tenders []models.Tender
		decodeData(t, w, &tenders)
		require.Len(t, tenders, 1)
		assert.Equal(t, "tnd_001", tenders[0].ID)
	})

	t.Run("unknown status is 400", func(t *testing.T) {
		w := doRequest(t, s, "GET", "/api/tenders?status=imaginary", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleLanguage(t *testing.T) {
	s := newTestServer(t)

	t.Run("defaults to english", func(t *testing.T) {
		w := doRequest(t, s, "GET", "/api/auth/language", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]string
		decodeData(t, w, &resp)
		assert.Equal(t, "en", resp["language"])
	})

	t.Run("set arabic", func(t *testing.T) {
		w := doRequest(t, s, "PUT", "/api/auth/language", map[string]string{"language": "ar"})
		require.Equal(t, http.StatusOK, w.Code)

		w = doRequest(t, s, "GET", "/api/auth/language", nil)
		var resp map[string]string
		decodeData(t, w, &resp)
		assert.Equal(t, "ar", resp["language"])
	})

	t.Run("rejects unknown language", func(t *testing.T) {
		w := doRequest(t, s, "PUT", "/api/auth/language", map[string]string{"language": "fr"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// doAuthedRequest goes through the full handler chain with a bearer token
// for the given role.
func doAuthedRequest(t *testing.T, s *Server, role models.Role, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	token, err := s.auth.GenerateToken(&models.User{ID: "u_t", Email: "t@aktobe.om", Role: role})
	require.NoError(t, err)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHandleSeed(t *testing.T) {
	s := newTestServer(t)

	t.Run("admin resets collections", func(t *testing.T) {
		// Mutate, seed, then verify the mutation is gone.
		w := doRequest(t, s, "POST", "/api/fleet/vehicles", models.Vehicle{AssetCode: "AKT-XX-99"})
		require.Equal(t, http.StatusCreated, w.Code)

		w = doAuthedRequest(t, s, models.RoleAdmin, "POST", "/api/admin/seed", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doRequest(t, s, "GET", "/api/fleet/vehicles", nil)
		var vehicles []models.Vehicle
		decodeData(t, w, &vehicles)
		assert.Len(t, vehicles, 3)
	})

	t.Run("non-admin roles are rejected", func(t *testing.T) {
		w := doAuthedRequest(t, s, models.RoleFleetManager, "POST", "/api/admin/seed", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doAuthedRequest(t, s, models.RoleOpsManager, "POST", "/api/admin/seed", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no token", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/admin/seed", nil)
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
