package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"skrbl-automation-platform/internal/config"
	"skrbl-automation-platform/internal/domain"
	"skrbl-automation-platform/internal/domain/model"
	"skrbl-automation-platform/internal/domain/ports/repository"
	"skrbl-automation-platform/internal/infra/api"
	red "skrbl-automation-platform/internal/infra/redis"
	"skrbl-automation-platform/internal/usecase"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(nil)
	return &logger
}

// -----------------------------
// Stub use cases
// -----------------------------

type stubJobs struct {
	usecase.JobUseCase
	GetFunc func(ctx context.Context, id string) (*model.Job, error)
}

func (s *stubJobs) Get(ctx context.Context, id string) (*model.Job, error) {
	return s.GetFunc(ctx, id)
}

type stubLeads struct {
	SubmitFunc func(ctx context.Context, sub usecase.LeadSubmission) (string, error)
}

func (s *stubLeads) Submit(ctx context.Context, sub usecase.LeadSubmission) (string, error) {
	return s.SubmitFunc(ctx, sub)
}

type stubDrip struct {
	ProcessDueFunc func(ctx context.Context, now time.Time) (int, error)
}

func (s *stubDrip) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	if s.ProcessDueFunc != nil {
		return s.ProcessDueFunc(ctx, now)
	}
	return 0, nil
}

type stubVerification struct {
	SendCodeFunc func(ctx context.Context, phone, vipTier, message string) (string, error)
}

func (s *stubVerification) SendCode(ctx context.Context, phone, vipTier, message string) (string, error) {
	return s.SendCodeFunc(ctx, phone, vipTier, message)
}

func (s *stubVerification) VerifyCode(ctx context.Context, phone, code string) error {
	return nil
}

type stubSysLogs struct {
	ListFunc func(ctx context.Context, f repository.SystemLogFilter) ([]*model.SystemLog, error)
}

func (s *stubSysLogs) List(ctx context.Context, f repository.SystemLogFilter) ([]*model.SystemLog, error) {
	if s.ListFunc != nil {
		return s.ListFunc(ctx, f)
	}
	return []*model.SystemLog{}, nil
}

type stubAnalytics struct{}

func (s *stubAnalytics) History(ctx context.Context, f repository.WorkflowLogFilter) ([]*model.WorkflowLog, error) {
	return []*model.WorkflowLog{}, nil
}

type stubRoles struct {
	Roles map[string]model.Role
}

func (s *stubRoles) FindByUserID(ctx context.Context, tx repository.Tx, userID string) (*model.UserRole, error) {
	role, ok := s.Roles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &model.UserRole{UserID: userID, Role: role}, nil
}

func (s *stubRoles) Save(ctx context.Context, tx repository.Tx, r *model.UserRole) error {
	return nil
}

// fakeRedis backs the rate limiter with an in-memory counter.
type fakeRedis struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newFakeRedis() *fakeRedis { return &fakeRedis{counts: make(map[string]int64)} }

func (f *fakeRedis) Ping(ctx context.Context) error { return nil }
func (f *fakeRedis) Incr(ctx context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[key]++
	return f.counts[key], nil
}
func (f *fakeRedis) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return nil
}
func (f *fakeRedis) Close() error { return nil }

// -----------------------------
// Harness
// -----------------------------

func testConfig() *config.Config {
	return &config.Config{
		Cron:      config.CronConfig{Secret: "cron-secret"},
		Security:  config.SecurityConfig{JWTSecret: "jwt-secret"},
		RateLimit: config.RateLimitConfig{Window: time.Minute, Max: 100},
	}
}

func newTestServer(t *testing.T, cfg *config.Config, d api.Deps) *httptest.Server {
	t.Helper()
	if d.Limiter == nil {
		d.Limiter = red.NewRateLimiter(newFakeRedis())
	}
	srv := api.NewServer(cfg, d, newTestLogger())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doJSON(t *testing.T, method, url string, body interface{}, header http.Header) (*http.Response, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp, env
}

// -----------------------------
// Tests
// -----------------------------

func TestLeadSubmitEndpoint(t *testing.T) {
	leads := &stubLeads{
		SubmitFunc: func(ctx context.Context, sub usecase.LeadSubmission) (string, error) {
			if strings.TrimSpace(sub.Name) == "" || !strings.Contains(sub.Email, "@") {
				return "", domain.ErrInvalidArgument
			}
			return "lead-1", nil
		},
	}
	ts := newTestServer(t, testConfig(), api.Deps{Leads: leads})

	t.Run("valid submission returns the lead id", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodPost, ts.URL+"/api/leads/submit",
			map[string]string{"name": "Ada", "email": "ada@x.com"}, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		if !env.Success {
			t.Fatalf("expected success envelope, got error %q", env.Error)
		}
		var data struct {
			LeadID string `json:"leadId"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil || data.LeadID != "lead-1" {
			t.Errorf("unexpected data: %s", env.Data)
		}
	})

	t.Run("missing fields yield 400 with an error envelope", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodPost, ts.URL+"/api/leads/submit",
			map[string]string{"email": "ada@x.com"}, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.StatusCode)
		}
		if env.Success || env.Error == "" {
			t.Errorf("expected error envelope, got %+v", env)
		}
	})
}

func TestJobStatusEndpoint(t *testing.T) {
	created := time.Now().Add(-time.Minute)
	jobs := &stubJobs{
		GetFunc: func(ctx context.Context, id string) (*model.Job, error) {
			if id != "job-1" {
				return nil, domain.ErrNotFound
			}
			return &model.Job{
				ID: "job-1", Type: "social_content", Status: model.JobStatusInProgress,
				Progress: 40, CreatedAt: created, UpdatedAt: created,
			}, nil
		},
	}
	ts := newTestServer(t, testConfig(), api.Deps{Jobs: jobs})

	t.Run("known job returns its status and progress", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodGet, ts.URL+"/api/jobs/job-1", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var data struct {
			Status   string `json:"status"`
			Progress int    `json:"progress"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if data.Status != "in_progress" || data.Progress != 40 {
			t.Errorf("unexpected job view: %+v", data)
		}
	})

	t.Run("unknown job returns 404", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodGet, ts.URL+"/api/jobs/nope", nil, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", resp.StatusCode)
		}
		if env.Success {
			t.Error("expected error envelope")
		}
	})
}

func TestSendVerificationEndpoint(t *testing.T) {
	verification := &stubVerification{
		SendCodeFunc: func(ctx context.Context, phone, vipTier, message string) (string, error) {
			if phone == "+15550000000" {
				return "", fmt.Errorf("%w: twilio: status 500", domain.ErrUpstream)
			}
			return "sms-1", nil
		},
	}
	ts := newTestServer(t, testConfig(), api.Deps{Verification: verification})

	t.Run("successful send returns the provider message id", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodPost, ts.URL+"/api/sms/send-verification",
			map[string]string{"phoneNumber": "+15551234567"}, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var data struct {
			MessageID string `json:"messageId"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil || data.MessageID != "sms-1" {
			t.Errorf("unexpected data: %s", env.Data)
		}
	})

	t.Run("provider failure maps to 502", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodPost, ts.URL+"/api/sms/send-verification",
			map[string]string{"phoneNumber": "+15550000000"}, nil)
		if resp.StatusCode != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", resp.StatusCode)
		}
		if env.Success || env.Error == "" {
			t.Errorf("expected error envelope, got %+v", env)
		}
		if strings.Contains(env.Error, "twilio") {
			t.Errorf("provider detail must not leak to the client, got %q", env.Error)
		}
	})
}

func TestCronEndpointRequiresSecret(t *testing.T) {
	drip := &stubDrip{
		ProcessDueFunc: func(ctx context.Context, now time.Time) (int, error) { return 3, nil },
	}
	ts := newTestServer(t, testConfig(), api.Deps{Drip: drip})

	t.Run("missing secret is unauthorized", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/cron/process-drip", nil, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("wrong secret is unauthorized", func(t *testing.T) {
		h := http.Header{}
		h.Set("x-cron-secret", "guess")
		resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/cron/process-drip", nil, h)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("correct secret processes the batch", func(t *testing.T) {
		h := http.Header{}
		h.Set("x-cron-secret", "cron-secret")
		resp, env := doJSON(t, http.MethodPost, ts.URL+"/api/cron/process-drip", nil, h)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var data struct {
			Processed int `json:"processed"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil || data.Processed != 3 {
			t.Errorf("unexpected data: %s", env.Data)
		}
	})
}

func TestSystemLogsRequireAdmin(t *testing.T) {
	cfg := testConfig()
	roles := &stubRoles{Roles: map[string]model.Role{
		"admin-1": model.RoleAdmin,
		"user-1":  model.RoleUser,
	}}
	ts := newTestServer(t, cfg, api.Deps{SysLogs: &stubSysLogs{}, Roles: roles})

	bearer := func(t *testing.T, userID string) http.Header {
		t.Helper()
		token, err := api.MintAdminToken(cfg.Security.JWTSecret, userID, time.Minute)
		if err != nil {
			t.Fatalf("mint token: %v", err)
		}
		h := http.Header{}
		h.Set("Authorization", "Bearer "+token)
		return h
	}

	t.Run("no token is unauthorized", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/system/logs", nil, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("non-admin subject is unauthorized", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/system/logs", nil, bearer(t, "user-1"))
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("admin subject reads logs", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodGet, ts.URL+"/api/system/logs", nil, bearer(t, "admin-1"))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		if !env.Success {
			t.Errorf("expected success envelope, got %q", env.Error)
		}
	})
}

func TestAnalyticsRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.Max = 2
	ts := newTestServer(t, cfg, api.Deps{Analytics: &stubAnalytics{}})

	for i := 0; i < 2; i++ {
		resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/analytics/history", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, resp.StatusCode)
		}
	}

	resp, env := doJSON(t, http.MethodGet, ts.URL+"/api/analytics/history", nil, nil)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after the limit, got %d", resp.StatusCode)
	}
	if env.Success || env.Error == "" {
		t.Errorf("expected error envelope, got %+v", env)
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t, testConfig(), api.Deps{})

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}
