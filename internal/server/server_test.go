package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/solarishq/solaris/internal/assistant"
	authdomain "github.com/solarishq/solaris/internal/auth/domain"
	"github.com/solarishq/solaris/internal/auth/session"
	"github.com/solarishq/solaris/internal/config"
	"github.com/solarishq/solaris/internal/journey"
	projectdomain "github.com/solarishq/solaris/internal/project/domain"
	"github.com/solarishq/solaris/internal/report"
	"github.com/solarishq/solaris/internal/scheme"
	subsidydomain "github.com/solarishq/solaris/internal/subsidy/domain"
	trackerdomain "github.com/solarishq/solaris/internal/tracker/domain"
	"go.uber.org/zap"
)

const testToken = "session-token"

type fakeAuthService struct {
	user       *authdomain.User
	loginCalls int
}

func (f *fakeAuthService) Register(ctx context.Context, req authdomain.RegisterRequest) (*authdomain.User, error) {
	_ = ctx
	f.user.Email = req.Email
	return f.user, nil
}

func (f *fakeAuthService) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	f.loginCalls++
	_ = ctx
	_ = req
	return &authdomain.LoginResult{
		User:      f.user,
		RawToken:  testToken,
		ExpiresAt: time.Now().Add(time.Hour),
		SessionID: snowflake.ID(300),
	}, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, rawToken string) error {
	_ = ctx
	_ = rawToken
	return nil
}

func (f *fakeAuthService) Authenticate(ctx context.Context, rawToken string) (*authdomain.Session, error) {
	_ = ctx
	if rawToken != testToken {
		return nil, authdomain.ErrInvalidSession
	}
	return &authdomain.Session{ID: snowflake.ID(300), UserID: f.user.ID}, nil
}

func (f *fakeAuthService) GetUser(ctx context.Context, id snowflake.ID) (*authdomain.User, error) {
	_ = ctx
	if id != f.user.ID {
		return nil, authdomain.ErrUserNotFound
	}
	return f.user, nil
}

func (f *fakeAuthService) UpdateProfile(ctx context.Context, id snowflake.ID, req authdomain.UpdateProfileRequest) (*authdomain.User, error) {
	_ = ctx
	_ = id
	if req.Name != nil {
		f.user.Name = *req.Name
	}
	return f.user, nil
}

func (f *fakeAuthService) SaveEstimate(ctx context.Context, id snowflake.ID, snap authdomain.EstimateSnapshot) error {
	_ = ctx
	_ = id
	_ = snap
	return nil
}

type fakeSubsidyService struct {
	journey *journey.Journey
	bundle  *subsidydomain.ResultBundle
	err     error
}

func (f *fakeSubsidyService) Journey(ctx context.Context, userID snowflake.ID) (*journey.Journey, error) {
	_ = ctx
	_ = userID
	return f.journey, nil
}

func (f *fakeSubsidyService) SaveProfile(ctx context.Context, userID snowflake.ID, req subsidydomain.ProfileRequest) error {
	_ = ctx
	_ = userID
	f.journey = &journey.Journey{
		State:           req.State,
		ConsumerSegment: req.ConsumerSegment,
		MonthlyBillINR:  req.MonthlyBillINR,
		Provider:        req.Provider,
		GridConnection:  req.GridConnection,
	}
	return nil
}

func (f *fakeSubsidyService) SaveSite(ctx context.Context, userID snowflake.ID, req subsidydomain.SiteRequest) error {
	_ = ctx
	_ = userID
	if !f.journey.HasProfile() {
		return subsidydomain.ErrProfileIncomplete
	}
	f.journey.RoofAreaM2 = req.RoofAreaM2
	f.journey.RoofType = req.RoofType
	return nil
}

func (f *fakeSubsidyService) Results(ctx context.Context, userID snowflake.ID, filters scheme.ResultFilters) (*subsidydomain.ResultBundle, error) {
	_ = ctx
	_ = userID
	_ = filters
	if f.err != nil {
		return nil, f.err
	}
	return f.bundle, nil
}

func (f *fakeSubsidyService) Restart(ctx context.Context, userID snowflake.ID) error {
	_ = ctx
	_ = userID
	f.journey = nil
	return nil
}

func (f *fakeSubsidyService) ListSubmissions(ctx context.Context, userID snowflake.ID) ([]subsidydomain.Submission, error) {
	_ = ctx
	_ = userID
	return nil, nil
}

func (f *fakeSubsidyService) GetSubmission(ctx context.Context, userID, id snowflake.ID) (*subsidydomain.Submission, error) {
	_ = ctx
	_ = userID
	_ = id
	return nil, subsidydomain.ErrSubmissionNotFound
}

type fakeProjectService struct{}

func (f *fakeProjectService) Create(ctx context.Context, userID snowflake.ID, req projectdomain.CreateRequest) (*projectdomain.Project, error) {
	_ = ctx
	_ = userID
	return &projectdomain.Project{ID: snowflake.ID(10), Name: req.Name}, nil
}

func (f *fakeProjectService) List(ctx context.Context, userID snowflake.ID) ([]projectdomain.Project, error) {
	_ = ctx
	_ = userID
	return nil, nil
}

func (f *fakeProjectService) Get(ctx context.Context, userID, id snowflake.ID) (*projectdomain.Project, error) {
	_ = ctx
	_ = userID
	_ = id
	return nil, projectdomain.ErrProjectNotFound
}

func (f *fakeProjectService) Delete(ctx context.Context, userID, id snowflake.ID) error {
	_ = ctx
	_ = userID
	_ = id
	return nil
}

type fakeTrackerService struct{}

func (f *fakeTrackerService) AddEntry(ctx context.Context, userID snowflake.ID, req trackerdomain.EntryRequest) (*trackerdomain.EnergyLog, error) {
	_ = ctx
	_ = userID
	return &trackerdomain.EnergyLog{ID: snowflake.ID(11), AmountKwh: req.AmountKwh}, nil
}

func (f *fakeTrackerService) BuildContext(ctx context.Context, userID snowflake.ID) (*trackerdomain.Context, error) {
	_ = ctx
	_ = userID
	return &trackerdomain.Context{}, nil
}

type testHarness struct {
	server  *Server
	auth    *fakeAuthService
	subsidy *fakeSubsidyService
}

func newTestServer(t *testing.T) *testHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	auth := &fakeAuthService{
		user: &authdomain.User{
			ID:               snowflake.ID(200),
			Email:            "asha@example.com",
			Name:             "Asha",
			JourneyCompleted: true,
		},
	}
	subsidy := &fakeSubsidyService{}

	cfg := config.Config{}
	srv := NewServer(ServerParams{
		Gin:          engine,
		Cfg:          cfg,
		Log:          zap.NewNop(),
		Authsvc:      auth,
		Sessions:     session.NewManager(cfg),
		Subsidysvc:   subsidy,
		Projectsvc:   &fakeProjectService{},
		Trackersvc:   &fakeTrackerService{},
		Assistantsvc: assistant.NewService(zap.NewNop(), assistant.NewClient(cfg), nil, nil),
		Reports:      report.NewGenerator(),
		Policy:       config.StaticPolicyHolder(config.DefaultPolicy()),
	})

	return &testHarness{server: srv, auth: auth, subsidy: subsidy}
}

func (h *testHarness) do(method, path string, body []byte, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: testToken})
	}
	w := httptest.NewRecorder()
	h.server.Engine().ServeHTTP(w, req)
	return w
}

func TestAuthRequiredRejectsMissingCookie(t *testing.T) {
	h := newTestServer(t)

	w := h.do(http.MethodGet, "/auth/me", nil, false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	h := newTestServer(t)

	body, _ := json.Marshal(LoginRequest{Email: "asha@example.com", Password: "sunny-roof-9"})
	w := h.do(http.MethodPost, "/auth/login", body, false)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if h.auth.loginCalls != 1 {
		t.Fatalf("login calls = %d", h.auth.loginCalls)
	}

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == session.DefaultCookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil || sessionCookie.Value != testToken {
		t.Fatalf("session cookie not set: %+v", w.Result().Cookies())
	}
	if !sessionCookie.HttpOnly {
		t.Fatal("session cookie must be http-only")
	}
}

func TestMeReturnsCurrentUser(t *testing.T) {
	h := newTestServer(t)

	w := h.do(http.MethodGet, "/auth/me", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		User UserView `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.User.Email != "asha@example.com" {
		t.Fatalf("user = %+v", resp.User)
	}
}

func TestResultsWithoutJourneyRedirectsToWizard(t *testing.T) {
	h := newTestServer(t)
	h.subsidy.err = subsidydomain.ErrJourneyIncomplete

	w := h.do(http.MethodGet, "/subsidy/results", nil, true)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/subsidy/" {
		t.Fatalf("location = %q, want /subsidy/", loc)
	}
}

func TestSiteStepWithoutProfileRedirects(t *testing.T) {
	h := newTestServer(t)

	w := h.do(http.MethodGet, "/subsidy/site", nil, true)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/subsidy/" {
		t.Fatalf("location = %q, want /subsidy/", loc)
	}
}

func TestWizardStepsAdvance(t *testing.T) {
	h := newTestServer(t)

	profile, _ := json.Marshal(ProfileForm{State: "Delhi", ConsumerSegment: "residential", GridConnection: true})
	w := h.do(http.MethodPost, "/subsidy/", profile, true)
	if w.Code != http.StatusOK {
		t.Fatalf("save profile status = %d: %s", w.Code, w.Body.String())
	}

	w = h.do(http.MethodGet, "/subsidy/site", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("site step after profile status = %d", w.Code)
	}

	area := 30.0
	site, _ := json.Marshal(SiteForm{RoofAreaM2: &area, RoofType: "rcc"})
	w = h.do(http.MethodPost, "/subsidy/site", site, true)
	if w.Code != http.StatusOK {
		t.Fatalf("save site status = %d: %s", w.Code, w.Body.String())
	}
}

func TestAssistantChatRejectsBlankMessage(t *testing.T) {
	h := newTestServer(t)

	body, _ := json.Marshal(assistant.ChatRequest{Message: "   "})
	w := h.do(http.MethodPost, "/subsidy/ai-chat", body, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["error"] == "" {
		t.Fatalf("expected error payload, got %v", resp)
	}
}

func TestAssistantChatUnconfiguredReportsError(t *testing.T) {
	h := newTestServer(t)

	body, _ := json.Marshal(assistant.ChatRequest{Message: "what size do I need?"})
	w := h.do(http.MethodPost, "/subsidy/ai-chat", body, true)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500: %s", w.Code, w.Body.String())
	}
}

func TestDashboardGatedOnJourneyCompletion(t *testing.T) {
	h := newTestServer(t)
	h.auth.user.JourneyCompleted = false

	w := h.do(http.MethodGet, "/dashboard", nil, true)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/subsidy/" {
		t.Fatalf("location = %q, want /subsidy/", loc)
	}

	h.auth.user.JourneyCompleted = true
	w = h.do(http.MethodGet, "/dashboard", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestVendorsSplitRecommended(t *testing.T) {
	h := newTestServer(t)
	kw := 3.0
	h.auth.user.LastSystemKw = &kw

	w := h.do(http.MethodGet, "/subsidy/vendors", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Recommended []json.RawMessage `json:"recommended"`
		Others      []json.RawMessage `json:"others"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Recommended) == 0 {
		t.Fatal("at least the top vendor must be recommended")
	}
}

func TestFinanceBanks(t *testing.T) {
	h := newTestServer(t)

	w := h.do(http.MethodGet, "/finance/banks", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Banks []json.RawMessage `json:"banks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Banks) == 0 {
		t.Fatal("bank catalog should not be empty")
	}
}

func TestInvalidJSONIsBadRequest(t *testing.T) {
	h := newTestServer(t)

	w := h.do(http.MethodPost, "/subsidy/", []byte("{not json"), true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}
}
