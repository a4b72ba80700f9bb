package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ranchbook/internal/auth"
	"ranchbook/internal/models"
	"ranchbook/internal/storage"
)

const (
	testSessionSecret  = "test-session-secret"
	testIdentitySecret = "test-identity-secret"
)

type testEnv struct {
	server *httptest.Server
	store  *storage.Memory
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()
	store := storage.NewMemory()
	am := auth.NewManager(store, testSessionSecret, testIdentitySecret, 24*time.Hour, nil, zap.NewNop().Sugar())
	server := httptest.NewServer(NewRouter(store, am, zap.NewNop().Sugar()))
	t.Cleanup(server.Close)
	return &testEnv{server: server, store: store}
}

// loginAs logs a user in through the real login endpoint and optionally
// promotes them first so the session sees the final role.
func (e *testEnv) loginAs(t *testing.T, subject, email string, role models.Role) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":         subject,
		"email":       email,
		"given_name":  "Test",
		"family_name": "User",
		"iat":         time.Now().Unix(),
	}
	idToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testIdentitySecret))
	require.NoError(t, err)

	body, _ := json.Marshal(map[string]string{"id_token": idToken})
	resp, err := http.Post(e.server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	require.NotEmpty(t, loginResp.Token)

	if role != models.RolePartner {
		_, err := e.store.UpdateUserRole(context.Background(), subject, role)
		require.NoError(t, err)
	}
	return loginResp.Token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	env := setupTestServer(t)

	for _, path := range []string{"/api/livestock", "/api/transactions/summary", "/api/auth/user"} {
		resp, err := http.Get(env.server.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestEmptyCollectionsEncodeAsArrays(t *testing.T) {
	env := setupTestServer(t)
	token := env.loginAs(t, "partner-1", "sarah@ranch-partners.com", models.RolePartner)

	// Empty stores serve [] on every list endpoint, never null.
	paths := []string{
		"/api/livestock",
		"/api/transactions",
		"/api/inventory",
		"/api/inventory/low-stock",
		"/api/health-records",
		"/api/health-records/upcoming",
	}
	for _, path := range paths {
		resp := env.do(t, "GET", path, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		assert.Equal(t, "[]", strings.TrimSpace(string(body)), path)
	}
}

func TestLivestockAndFinancialFlow(t *testing.T) {
	env := setupTestServer(t)
	token := env.loginAs(t, "partner-1", "sarah@ranch-partners.com", models.RolePartner)

	// Partners may create livestock.
	resp := env.do(t, "POST", "/api/livestock", token, map[string]any{
		"tagId": "C-100", "breed": "Angus", "gender": "female",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decodeBody[models.Livestock](t, resp)
	assert.Equal(t, models.HealthHealthy, created.HealthStatus)
	assert.True(t, created.IsActive)

	resp = env.do(t, "GET", "/api/livestock", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	animals := decodeBody[[]models.Livestock](t, resp)
	require.Len(t, animals, 1)
	assert.Equal(t, "C-100", animals[0].TagID)

	// Record a sale dated today and check the summary reflects it.
	resp = env.do(t, "POST", "/api/transactions", token, map[string]any{
		"type": "income", "category": "livestock_sales", "description": "sale",
		"amount": "500.00", "date": time.Now().Format(time.RFC3339),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, "GET", "/api/transactions/summary", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decodeBody[map[string]string](t, resp)
	assert.Equal(t, "500", summary["totalIncome"])
	assert.Equal(t, "500", summary["monthlyRevenue"])
	assert.Equal(t, "0", summary["totalExpenses"])
	assert.Equal(t, "500", summary["netProfit"])
}

func TestDuplicateTagIDConflicts(t *testing.T) {
	env := setupTestServer(t)
	token := env.loginAs(t, "partner-1", "sarah@ranch-partners.com", models.RolePartner)

	resp := env.do(t, "POST", "/api/livestock", token, map[string]any{
		"tagId": "C-100", "breed": "Angus", "gender": "female",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, "POST", "/api/livestock", token, map[string]any{
		"tagId": "C-100", "breed": "Hereford", "gender": "male",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestPartnerCannotDelete(t *testing.T) {
	env := setupTestServer(t)
	partner := env.loginAs(t, "partner-1", "sarah@ranch-partners.com", models.RolePartner)

	resp := env.do(t, "POST", "/api/livestock", partner, map[string]any{
		"tagId": "C-100", "breed": "Angus", "gender": "female",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decodeBody[models.Livestock](t, resp)

	resp = env.do(t, "DELETE", fmt.Sprintf("/api/livestock/%d", created.ID), partner, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// No partial deletion happened.
	resp = env.do(t, "GET", "/api/livestock", partner, nil)
	animals := decodeBody[[]models.Livestock](t, resp)
	require.Len(t, animals, 1)
	assert.True(t, animals[0].IsActive)
}

func TestAdminSoftDeleteIdempotent(t *testing.T) {
	env := setupTestServer(t)
	admin := env.loginAs(t, "admin-1", "john@ranch-partners.com", models.RoleAdmin)

	resp := env.do(t, "POST", "/api/livestock", admin, map[string]any{
		"tagId": "C-100", "breed": "Angus", "gender": "female",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decodeBody[models.Livestock](t, resp)

	path := fmt.Sprintf("/api/livestock/%d", created.ID)
	resp = env.do(t, "DELETE", path, admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, "GET", "/api/livestock", admin, nil)
	animals := decodeBody[[]models.Livestock](t, resp)
	assert.Empty(t, animals)

	// Deleting again is a no-op, not an error.
	resp = env.do(t, "DELETE", path, admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestLowStockBoundaryFlow(t *testing.T) {
	env := setupTestServer(t)
	token := env.loginAs(t, "partner-1", "sarah@ranch-partners.com", models.RolePartner)

	resp := env.do(t, "POST", "/api/inventory", token, map[string]any{
		"name": "Cattle Feed Premium", "category": "feed",
		"quantity": "10", "unit": "tons", "minStockLevel": "10",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	item := decodeBody[models.InventoryItem](t, resp)

	// Quantity equal to the minimum counts as low.
	resp = env.do(t, "GET", "/api/inventory/low-stock", token, nil)
	low := decodeBody[[]models.InventoryItem](t, resp)
	require.Len(t, low, 1)

	resp = env.do(t, "PUT", fmt.Sprintf("/api/inventory/%d", item.ID), token, map[string]any{"quantity": "11"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, "GET", "/api/inventory/low-stock", token, nil)
	low = decodeBody[[]models.InventoryItem](t, resp)
	assert.Empty(t, low)
}

func TestOwnerRoleManagementAndSelfProtection(t *testing.T) {
	env := setupTestServer(t)
	owner := env.loginAs(t, "owner-1", "boss@ranch-partners.com", models.RoleOwner)
	env.loginAs(t, "partner-1", "sarah@ranch-partners.com", models.RolePartner)

	// Owner promotes another user.
	resp := env.do(t, "PUT", "/api/admin/users/partner-1/role", owner, map[string]string{"role": "admin"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	promoted := decodeBody[models.User](t, resp)
	assert.Equal(t, models.RoleAdmin, promoted.Role)

	// Never their own role, regardless of payload.
	resp = env.do(t, "PUT", "/api/admin/users/owner-1/role", owner, map[string]string{"role": "owner"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Never their own account.
	resp = env.do(t, "DELETE", "/api/admin/users/owner-1", owner, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Deactivating another user is soft: they stay listed but cannot act.
	resp = env.do(t, "DELETE", "/api/admin/users/partner-1", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, "GET", "/api/partners", owner, nil)
	users := decodeBody[[]models.User](t, resp)
	assert.Len(t, users, 2)

	// Invalid role values are rejected before storage.
	resp = env.do(t, "PUT", "/api/admin/users/partner-1/role", owner, map[string]string{"role": "superuser"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminEndpointsForbiddenBelowOwner(t *testing.T) {
	env := setupTestServer(t)
	admin := env.loginAs(t, "admin-1", "john@ranch-partners.com", models.RoleAdmin)
	env.loginAs(t, "partner-1", "sarah@ranch-partners.com", models.RolePartner)

	resp := env.do(t, "PUT", "/api/admin/users/partner-1/role", admin, map[string]string{"role": "admin"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, "DELETE", "/api/admin/users/partner-1", admin, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestDeactivatedUserSessionRejected(t *testing.T) {
	env := setupTestServer(t)
	owner := env.loginAs(t, "owner-1", "boss@ranch-partners.com", models.RoleOwner)
	partner := env.loginAs(t, "partner-1", "sarah@ranch-partners.com", models.RolePartner)

	resp := env.do(t, "DELETE", "/api/admin/users/partner-1", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The deactivated partner's live session stops working immediately.
	resp = env.do(t, "GET", "/api/livestock", partner, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestLogoutRevokesSession(t *testing.T) {
	env := setupTestServer(t)
	token := env.loginAs(t, "partner-1", "sarah@ranch-partners.com", models.RolePartner)

	resp := env.do(t, "POST", "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, "GET", "/api/livestock", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestHealthRecordsUpcomingWindow(t *testing.T) {
	env := setupTestServer(t)
	token := env.loginAs(t, "partner-1", "sarah@ranch-partners.com", models.RolePartner)

	now := time.Now()
	post := func(due time.Time) {
		resp := env.do(t, "POST", "/api/health-records", token, map[string]any{
			"livestockId": 1, "recordType": "vaccination", "description": "annual shots",
			"date": now.Format(time.RFC3339), "nextDueDate": due.Format(time.RFC3339),
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
	post(now.Add(3 * 24 * time.Hour))  // inside the window
	post(now.Add(10 * 24 * time.Hour)) // beyond it

	resp := env.do(t, "GET", "/api/health-records/upcoming", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	upcoming := decodeBody[[]models.HealthRecord](t, resp)
	assert.Len(t, upcoming, 1)

	resp = env.do(t, "GET", "/api/health-records", token, nil)
	all := decodeBody[[]models.HealthRecord](t, resp)
	assert.Len(t, all, 2)
}

func TestCSVExportAndNoData(t *testing.T) {
	env := setupTestServer(t)
	token := env.loginAs(t, "partner-1", "sarah@ranch-partners.com", models.RolePartner)

	// Nothing stored yet: export refuses rather than emitting an empty file.
	resp := env.do(t, "GET", "/api/export/csv/livestock", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, "POST", "/api/livestock", token, map[string]any{
		"tagId": "C-100", "breed": "Angus", "gender": "female",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, "GET", "/api/export/csv/livestock", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "attachment; filename=livestock_export.csv", resp.Header.Get("Content-Disposition"))
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "tagId")
	assert.Contains(t, string(body), `"C-100"`)
}

func TestReportsSnapshot(t *testing.T) {
	env := setupTestServer(t)
	token := env.loginAs(t, "partner-1", "sarah@ranch-partners.com", models.RolePartner)

	resp := env.do(t, "POST", "/api/livestock", token, map[string]any{
		"tagId": "C-100", "breed": "Angus", "gender": "female", "healthStatus": "monitoring",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, "GET", "/api/reports/livestock", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	report := decodeBody[map[string]json.RawMessage](t, resp)
	require.Contains(t, report, "summary")
	require.Contains(t, report, "generatedAt")

	var summary struct {
		Total      int `json:"total"`
		Monitoring int `json:"monitoring"`
	}
	require.NoError(t, json.Unmarshal(report["summary"], &summary))
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.Monitoring)

	resp = env.do(t, "GET", "/api/reports/feed", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestLivestockStatsEndpoint(t *testing.T) {
	env := setupTestServer(t)
	token := env.loginAs(t, "partner-1", "sarah@ranch-partners.com", models.RolePartner)

	for i, status := range []string{"healthy", "monitoring", "sick", "healthy"} {
		resp := env.do(t, "POST", "/api/livestock", token, map[string]any{
			"tagId": fmt.Sprintf("C-%03d", i+1), "breed": "Angus", "gender": "female", "healthStatus": status,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp := env.do(t, "GET", "/api/livestock/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decodeBody[map[string]int](t, resp)
	assert.Equal(t, 4, stats["total"])
	assert.Equal(t, 2, stats["healthy"])
	assert.Equal(t, 1, stats["monitoring"])
	assert.Equal(t, 1, stats["sick"])
}

func TestValidationRejectedBeforeStorage(t *testing.T) {
	env := setupTestServer(t)
	token := env.loginAs(t, "partner-1", "sarah@ranch-partners.com", models.RolePartner)

	cases := []struct {
		name string
		path string
		body map[string]any
	}{
		{"missing tagId", "/api/livestock", map[string]any{"breed": "Angus", "gender": "female"}},
		{"bad gender", "/api/livestock", map[string]any{"tagId": "C-1", "breed": "Angus", "gender": "steer"}},
		{"bad type", "/api/transactions", map[string]any{"type": "transfer", "category": "x", "description": "y", "amount": "1", "date": time.Now().Format(time.RFC3339)}},
		{"negative amount", "/api/transactions", map[string]any{"type": "income", "category": "x", "description": "y", "amount": "-5", "date": time.Now().Format(time.RFC3339)}},
		{"missing quantity", "/api/inventory", map[string]any{"name": "Feed", "category": "feed", "unit": "tons"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.do(t, "POST", tc.path, token, tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			resp.Body.Close()
		})
	}

	// Nothing made it into storage.
	resp := env.do(t, "GET", "/api/livestock", token, nil)
	assert.Empty(t, decodeBody[[]models.Livestock](t, resp))
}

func TestOwnerAuditTrail(t *testing.T) {
	env := setupTestServer(t)
	owner := env.loginAs(t, "owner-1", "boss@ranch-partners.com", models.RoleOwner)
	env.loginAs(t, "partner-1", "sarah@ranch-partners.com", models.RolePartner)

	resp := env.do(t, "PUT", "/api/admin/users/partner-1/role", owner, map[string]string{"role": "admin"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, "GET", "/api/admin/audit", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	logs := decodeBody[[]models.AuditLog](t, resp)
	require.NotEmpty(t, logs)
	assert.Equal(t, "user.role_change", logs[0].Action)
}
