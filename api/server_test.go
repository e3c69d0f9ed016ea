package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/garnizeh/buildsite/api"
	migrations "github.com/garnizeh/buildsite/db"
	"github.com/garnizeh/buildsite/internal/config"
	dbpkg "github.com/garnizeh/buildsite/internal/db"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	ctx := context.Background()
	database, err := dbpkg.New(ctx, ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := dbpkg.Migrate(ctx, database, migrations.Migrations); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cfg := &config.Config{
		Addr:         ":0",
		JWTSecret:    "test-secret",
		APITimeout:   5 * time.Second,
		DatabasePath: ":memory:",
	}

	srv := httptest.NewServer(api.SetupRoutes(cfg, "test", "test", database))
	t.Cleanup(srv.Close)
	return srv
}

// do issues a request and decodes the JSON response into out when out
// is non-nil.
func do(t *testing.T, srv *httptest.Server, method, path, token string, body, out any) int {
	t.Helper()

	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, srv.URL+path, payload)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			t.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func login(t *testing.T, srv *httptest.Server, email, password string) string {
	t.Helper()

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	status := do(t, srv, http.MethodPost, "/api/login", "", map[string]string{
		"email": email, "password": password,
	}, &resp)
	if status != http.StatusOK {
		t.Fatalf("login failed with status %d", status)
	}
	if resp.AccessToken == "" {
		t.Fatalf("login returned empty token")
	}
	return resp.AccessToken
}

func TestServer_AuthFlow(t *testing.T) {
	srv := newTestServer(t)

	register := map[string]string{
		"email": "alice@example.com", "password": "pw123", "full_name": "Alice",
	}
	if status := do(t, srv, http.MethodPost, "/api/register", "", register, nil); status != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", status)
	}
	if status := do(t, srv, http.MethodPost, "/api/register", "", register, nil); status != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", status)
	}

	var errResp map[string]string
	status := do(t, srv, http.MethodPost, "/api/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	}, &errResp)
	if status != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d", status)
	}
	if errResp["error"] != "invalid email or password" {
		t.Fatalf("unexpected login error: %q", errResp["error"])
	}

	token := login(t, srv, "alice@example.com", "pw123")

	var me struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
	}
	if status := do(t, srv, http.MethodGet, "/api/me", token, nil, &me); status != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", status)
	}
	if me.Email != "alice@example.com" || me.FullName != "Alice" {
		t.Fatalf("unexpected me payload: %+v", me)
	}
}

func TestServer_ProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/me", "/api/projects", "/api/companies", "/api/bids"} {
		if status := do(t, srv, http.MethodGet, path, "", nil, nil); status != http.StatusUnauthorized {
			t.Fatalf("GET %s without token: expected 401, got %d", path, status)
		}
	}
	if status := do(t, srv, http.MethodPost, "/api/projects", "", map[string]string{"name": "x"}, nil); status != http.StatusUnauthorized {
		t.Fatalf("POST /api/projects without token: expected 401, got %d", status)
	}
}

func TestServer_ProjectLifecycle(t *testing.T) {
	srv := newTestServer(t)

	if status := do(t, srv, http.MethodPost, "/api/register", "", map[string]string{
		"email": "pm@example.com", "password": "pw123", "full_name": "Pat Morgan",
	}, nil); status != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", status)
	}
	token := login(t, srv, "pm@example.com", "pw123")

	// create with defaults
	var project struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		Status   string  `json:"status"`
		Progress int     `json:"progress"`
		Budget   float64 `json:"budget"`
	}
	if status := do(t, srv, http.MethodPost, "/api/projects", token, map[string]any{"name": "Tower"}, &project); status != http.StatusCreated {
		t.Fatalf("create project: expected 201, got %d", status)
	}
	if project.ID == "" || project.Status != "planning" || project.Progress != 0 || project.Budget != 0 {
		t.Fatalf("unexpected created project: %+v", project)
	}

	if status := do(t, srv, http.MethodPost, "/api/projects", token, map[string]any{"description": "no name"}, nil); status != http.StatusBadRequest {
		t.Fatalf("create without name: expected 400, got %d", status)
	}
	if status := do(t, srv, http.MethodPost, "/api/projects", token, map[string]any{"name": "Bad dates", "start_date": "03/01/2026"}, nil); status != http.StatusBadRequest {
		t.Fatalf("create with bad date: expected 400, got %d", status)
	}

	// detail carries empty child collections, not null
	var detail struct {
		ID           string            `json:"id"`
		Documents    []json.RawMessage `json:"documents"`
		Bids         []json.RawMessage `json:"bids"`
		Inspections  []json.RawMessage `json:"inspections"`
		ChangeOrders []json.RawMessage `json:"change_orders"`
	}
	if status := do(t, srv, http.MethodGet, "/api/projects/"+project.ID, token, nil, &detail); status != http.StatusOK {
		t.Fatalf("get project: expected 200, got %d", status)
	}
	if detail.Documents == nil || detail.Bids == nil || detail.Inspections == nil || detail.ChangeOrders == nil {
		t.Fatalf("expected empty child arrays, got %+v", detail)
	}

	// partial update
	var updated struct {
		Name     string `json:"name"`
		Progress int    `json:"progress"`
		Status   string `json:"status"`
	}
	if status := do(t, srv, http.MethodPut, "/api/projects/"+project.ID, token, map[string]any{"progress": 50}, &updated); status != http.StatusOK {
		t.Fatalf("update project: expected 200, got %d", status)
	}
	if updated.Progress != 50 || updated.Name != "Tower" || updated.Status != "planning" {
		t.Fatalf("partial update touched other fields: %+v", updated)
	}

	var errResp map[string]string
	if status := do(t, srv, http.MethodPut, "/api/projects/"+project.ID, token, map[string]any{"progress": 150}, &errResp); status != http.StatusBadRequest {
		t.Fatalf("progress 150: expected 400, got %d", status)
	}
	if errResp["error"] != "progress must be between 0 and 100" {
		t.Fatalf("unexpected progress error: %q", errResp["error"])
	}

	if status := do(t, srv, http.MethodPut, "/api/projects/no-such-id", token, map[string]any{"progress": 10}, nil); status != http.StatusNotFound {
		t.Fatalf("update missing project: expected 404, got %d", status)
	}
}

func TestServer_CascadeDelete(t *testing.T) {
	srv := newTestServer(t)

	if status := do(t, srv, http.MethodPost, "/api/register", "", map[string]string{
		"email": "gc@example.com", "password": "pw123", "full_name": "Gil Chu",
	}, nil); status != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", status)
	}
	token := login(t, srv, "gc@example.com", "pw123")

	var project struct {
		ID string `json:"id"`
	}
	if status := do(t, srv, http.MethodPost, "/api/projects", token, map[string]any{"name": "Teardown"}, &project); status != http.StatusCreated {
		t.Fatalf("create project: expected 201, got %d", status)
	}

	var doc, bid, insp, co struct {
		ID string `json:"id"`
	}
	if status := do(t, srv, http.MethodPost, "/api/documents", token, map[string]any{
		"project_id": project.ID, "name": "Plans",
	}, &doc); status != http.StatusCreated {
		t.Fatalf("create document: expected 201, got %d", status)
	}
	if status := do(t, srv, http.MethodPost, "/api/bids", token, map[string]any{
		"project_id": project.ID, "title": "Concrete", "amount": 5000.25,
	}, &bid); status != http.StatusCreated {
		t.Fatalf("create bid: expected 201, got %d", status)
	}
	if status := do(t, srv, http.MethodPost, "/api/inspections", token, map[string]any{
		"project_id": project.ID, "title": "Footing",
	}, &insp); status != http.StatusCreated {
		t.Fatalf("create inspection: expected 201, got %d", status)
	}
	// change orders require an amount; credits are negative
	if status := do(t, srv, http.MethodPost, "/api/change_orders", token, map[string]any{
		"project_id": project.ID, "title": "Conduit credit", "amount": -340.50,
	}, &co); status != http.StatusCreated {
		t.Fatalf("create change order: expected 201, got %d", status)
	}
	if status := do(t, srv, http.MethodPost, "/api/change_orders", token, map[string]any{
		"project_id": project.ID, "title": "No amount",
	}, nil); status != http.StatusBadRequest {
		t.Fatalf("change order without amount: expected 400, got %d", status)
	}

	var amountCheck struct {
		Amount float64 `json:"amount"`
	}
	if status := do(t, srv, http.MethodGet, "/api/change_orders/"+co.ID, token, nil, &amountCheck); status != http.StatusOK {
		t.Fatalf("get change order: expected 200, got %d", status)
	}
	if amountCheck.Amount != -340.50 {
		t.Fatalf("negative amount did not round-trip: %v", amountCheck.Amount)
	}

	var msg map[string]string
	if status := do(t, srv, http.MethodDelete, "/api/projects/"+project.ID, token, nil, &msg); status != http.StatusOK {
		t.Fatalf("delete project: expected 200, got %d", status)
	}
	if msg["message"] != "project deleted successfully" {
		t.Fatalf("unexpected delete message: %q", msg["message"])
	}

	for _, check := range []struct {
		path string
	}{
		{"/api/projects/" + project.ID},
		{"/api/documents/" + doc.ID},
		{"/api/bids/" + bid.ID},
		{"/api/inspections/" + insp.ID},
		{"/api/change_orders/" + co.ID},
	} {
		if status := do(t, srv, http.MethodGet, check.path, token, nil, nil); status != http.StatusNotFound {
			t.Fatalf("GET %s after cascade: expected 404, got %d", check.path, status)
		}
	}

	if status := do(t, srv, http.MethodDelete, "/api/projects/"+project.ID, token, nil, nil); status != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", status)
	}
}

func TestServer_CompaniesAndProfiles(t *testing.T) {
	srv := newTestServer(t)

	if status := do(t, srv, http.MethodPost, "/api/register", "", map[string]string{
		"email": "owner@example.com", "password": "pw123", "full_name": "Olive Ng",
	}, nil); status != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", status)
	}
	token := login(t, srv, "owner@example.com", "pw123")

	var company struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}
	if status := do(t, srv, http.MethodPost, "/api/companies", token, map[string]any{"name": "Skyline Holdings"}, &company); status != http.StatusCreated {
		t.Fatalf("create company: expected 201, got %d", status)
	}
	if company.Type != "contractor" {
		t.Fatalf("expected default company type contractor, got %q", company.Type)
	}

	// companies are never removed
	if status := do(t, srv, http.MethodDelete, "/api/companies/"+company.ID, token, nil, nil); status != http.StatusMethodNotAllowed {
		t.Fatalf("DELETE company: expected 405, got %d", status)
	}

	var me struct {
		ID string `json:"id"`
	}
	if status := do(t, srv, http.MethodGet, "/api/me", token, nil, &me); status != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", status)
	}

	// attach the profile to the company
	var profile struct {
		CompanyID *string `json:"company_id"`
		Role      string  `json:"role"`
	}
	if status := do(t, srv, http.MethodPut, "/api/profiles/"+me.ID, token, map[string]any{
		"company_id": company.ID, "role": "owner",
	}, &profile); status != http.StatusOK {
		t.Fatalf("update profile: expected 200, got %d", status)
	}
	if profile.CompanyID == nil || *profile.CompanyID != company.ID || profile.Role != "owner" {
		t.Fatalf("profile update not applied: %+v", profile)
	}

	if status := do(t, srv, http.MethodDelete, "/api/profiles/"+me.ID, token, nil, nil); status != http.StatusMethodNotAllowed {
		t.Fatalf("DELETE profile: expected 405, got %d", status)
	}
}
