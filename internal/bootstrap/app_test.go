package bootstrap_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"succession-backend/internal/bootstrap"
	"succession-backend/internal/shared/auth"
	"succession-backend/internal/shared/config"
)

func newTestApp(t *testing.T, mutate ...func(*config.Config)) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("ENV", "dev")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		Env:             "dev",
		LockBackend:     "memory",
		TracingExporter: "none",
		SeedOnStart:     true,
		ChatRateRPS:     100,
		ChatRateBurst:   100,
	}
	for _, fn := range mutate {
		fn(&cfg)
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := auth.SignJWT(auth.Claims{
		Email:            userID + "@example.com",
		Role:             role,
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
	})
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	return "Bearer " + token
}

type caller struct {
	t      *testing.T
	router http.Handler
	header map[string]string
}

func (c caller) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.header {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	c.router.ServeHTTP(resp, req)
	return resp
}

func decode(t *testing.T, resp *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func guest(t *testing.T, app *bootstrap.App, id string) caller {
	return caller{t: t, router: app.Router, header: map[string]string{"X-Guest-Id": id}}
}

func member(t *testing.T, app *bootstrap.App, userID, role string) caller {
	return caller{t: t, router: app.Router, header: map[string]string{"Authorization": bearer(t, userID, role)}}
}

var sampleAssessment = map[string]any{
	"performance":     3.5,
	"experienceYears": 3,
	"adcScore":        68,
	"competencies": map[string]float64{
		"Strategic Thinking":     3.0,
		"Product Vision":         2.5,
		"Stakeholder Management": 3.5,
		"Data Analysis":          4.0,
		"User Research":          3.0,
		"Technical Acumen":       3.5,
	},
}

func TestHealthAndMetricsArePublic(t *testing.T) {
	app := newTestApp(t)
	anon := caller{t: t, router: app.Router}

	resp := anon.do(http.MethodGet, "/api/v1/health", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected health 200, got %d", resp.Code)
	}
	var health struct {
		OK      bool   `json:"ok"`
		Storage string `json:"storage"`
	}
	decode(t, resp, &health)
	if !health.OK || health.Storage != "memory" {
		t.Fatalf("unexpected health body: %+v", health)
	}

	resp = anon.do(http.MethodGet, "/metrics", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected metrics 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "gap_analysis_started_total") {
		t.Fatalf("metrics body missing gap counters: %s", resp.Body.String())
	}

	resp = anon.do(http.MethodGet, "/api/v1/success-profiles", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", resp.Code)
	}
}

func TestGuestChatConversation(t *testing.T) {
	app := newTestApp(t)
	g := guest(t, app, "visitor-1")

	resp := g.do(http.MethodPost, "/api/v1/chat/sessions", map[string]string{"sessionKey": "tab-1", "source": "widget"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected open 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var sess struct {
		ID string `json:"id"`
	}
	decode(t, resp, &sess)
	if sess.ID == "" {
		t.Fatalf("expected session id")
	}

	resp = g.do(http.MethodPost, "/api/v1/chat/sessions/"+sess.ID+"/messages", map[string]string{"content": "What's your name?"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected send 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var sent struct {
		OK bool `json:"ok"`
	}
	decode(t, resp, &sent)
	if !sent.OK {
		t.Fatalf("expected ok=true")
	}

	resp = g.do(http.MethodGet, "/api/v1/chat/sessions/"+sess.ID+"/messages", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected list 200, got %d", resp.Code)
	}
	var msgs []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	decode(t, resp, &msgs)
	if len(msgs) != 3 {
		t.Fatalf("expected welcome plus one exchange, got %d messages", len(msgs))
	}
	if msgs[1].Role != "user" || msgs[2].Role != "assistant" {
		t.Fatalf("unexpected roles: %+v", msgs)
	}
	if !strings.HasPrefix(msgs[2].Content, "My name is LokYodha Assistant.") {
		t.Fatalf("unexpected reply: %q", msgs[2].Content)
	}

	other := guest(t, app, "visitor-2")
	resp = other.do(http.MethodGet, "/api/v1/chat/sessions/"+sess.ID+"/messages", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for another guest, got %d", resp.Code)
	}
}

func TestGuestsCannotReachMemberRoutes(t *testing.T) {
	app := newTestApp(t)
	g := guest(t, app, "visitor-1")

	resp := g.do(http.MethodPost, "/api/v1/gap/analyze", map[string]string{"targetRoleKey": "senior-product-manager"})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for guest analyze, got %d", resp.Code)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decode(t, resp, &body)
	if body.Error.Code != "login_required" {
		t.Fatalf("expected login_required, got %q", body.Error.Code)
	}
}

func TestGapAnalysisToPlanFlow(t *testing.T) {
	app := newTestApp(t)
	m := member(t, app, "emp-1", "employee")

	resp := m.do(http.MethodPost, "/api/v1/gap/analyze", map[string]string{"targetRoleKey": "senior-product-manager"})
	if resp.Code != http.StatusPreconditionFailed {
		t.Fatalf("expected 412 before assessment, got %d", resp.Code)
	}

	resp = m.do(http.MethodPut, "/api/v1/assessments/me", sampleAssessment)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected assessment 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = m.do(http.MethodPost, "/api/v1/gap/analyze", map[string]string{"targetRoleKey": "senior-product-manager"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected analyze 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var result struct {
		Overlap []string `json:"overlap"`
		Gaps    []struct {
			Competency string `json:"competency"`
		} `json:"gaps"`
	}
	decode(t, resp, &result)
	if len(result.Overlap) != 2 || len(result.Gaps) != 4 {
		t.Fatalf("unexpected analysis: overlap=%v gaps=%d", result.Overlap, len(result.Gaps))
	}

	resp = m.do(http.MethodPost, "/api/v1/gap/analyze", map[string]string{"targetRoleKey": "chief-of-staff"})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown profile, got %d", resp.Code)
	}

	resp = m.do(http.MethodPost, "/api/v1/gap/plan", map[string]string{"targetRoleKey": "senior-product-manager"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected plan 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var plan struct {
		ID         string `json:"id"`
		Status     string `json:"status"`
		Progress   int    `json:"progress"`
		Activities []struct {
			Completed bool `json:"completed"`
		} `json:"activities"`
	}
	decode(t, resp, &plan)
	if plan.Status != "active" || plan.Progress != 0 || len(plan.Activities) == 0 {
		t.Fatalf("unexpected plan: %+v", plan)
	}

	resp = m.do(http.MethodPatch, fmt.Sprintf("/api/v1/plans/%s/activities/0", plan.ID), map[string]bool{"done": true})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected activity 200, got %d: %s", resp.Code, resp.Body.String())
	}
	decode(t, resp, &plan)
	if !plan.Activities[0].Completed || plan.Progress == 0 {
		t.Fatalf("expected first activity done with progress, got %+v", plan)
	}

	resp = m.do(http.MethodPatch, fmt.Sprintf("/api/v1/plans/%s/activities/99", plan.ID), map[string]bool{"done": true})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad index, got %d", resp.Code)
	}

	resp = m.do(http.MethodGet, "/api/v1/analytics/dashboard", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected dashboard 200, got %d", resp.Code)
	}
	var dash struct {
		Personal struct {
			ActivePlans int `json:"activePlans"`
		} `json:"personal"`
		Organizational *struct{} `json:"organizational"`
	}
	decode(t, resp, &dash)
	if dash.Personal.ActivePlans != 1 || dash.Organizational != nil {
		t.Fatalf("unexpected dashboard: %+v", dash)
	}
}

func TestPrivilegedRoutes(t *testing.T) {
	app := newTestApp(t)
	emp := member(t, app, "emp-1", "employee")
	committee := member(t, app, "hr-1", "committee")

	if resp := emp.do(http.MethodGet, "/api/v1/me", nil); resp.Code != http.StatusOK {
		t.Fatalf("expected me 200, got %d", resp.Code)
	}

	if resp := emp.do(http.MethodGet, "/api/v1/employees", nil); resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for employee listing, got %d", resp.Code)
	}
	if resp := committee.do(http.MethodGet, "/api/v1/employees", nil); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for committee listing, got %d", resp.Code)
	}

	resp := committee.do(http.MethodGet, "/api/v1/analytics/dashboard", nil)
	var dash struct {
		Organizational *struct {
			TotalEmployees int `json:"totalEmployees"`
		} `json:"organizational"`
	}
	decode(t, resp, &dash)
	if dash.Organizational == nil {
		t.Fatalf("expected organizational block for committee")
	}
}

func TestChatRateLimit(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) {
		cfg.ChatRateRPS = 0.001
		cfg.ChatRateBurst = 2
	})
	g := guest(t, app, "visitor-1")

	resp := g.do(http.MethodPost, "/api/v1/chat/sessions", map[string]string{"sessionKey": "tab-1"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected open 200, got %d", resp.Code)
	}
	var sess struct {
		ID string `json:"id"`
	}
	decode(t, resp, &sess)

	path := "/api/v1/chat/sessions/" + sess.ID + "/messages"
	if resp := g.do(http.MethodPost, path, map[string]string{"content": "hi"}); resp.Code != http.StatusOK {
		t.Fatalf("expected first send 200, got %d", resp.Code)
	}
	resp = g.do(http.MethodPost, path, map[string]string{"content": "hi again"})
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}
