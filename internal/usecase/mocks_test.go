package usecase_test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"skrbl-automation-platform/internal/domain"
	"skrbl-automation-platform/internal/domain/model"
	"skrbl-automation-platform/internal/domain/ports/adapter"
	"skrbl-automation-platform/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

// =============================
// Repositories
// =============================

// memJobRepo is an in-memory JobRepository that mirrors the store semantics:
// transitions only touch non-terminal rows and progress never moves backwards.
type memJobRepo struct {
	mu        sync.Mutex
	store     map[string]*model.Job
	createErr error
}

var _ repository.JobRepository = (*memJobRepo)(nil)

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{store: make(map[string]*model.Job)}
}

func (m *memJobRepo) Create(ctx context.Context, tx repository.Tx, job *model.Job) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *job
	m.store[job.ID] = &cp
	return nil
}

func (m *memJobRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (m *memJobRepo) ApplyTransition(ctx context.Context, tx repository.Tx, id string, upd repository.JobUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	if j.Status.Terminal() {
		return domain.ErrTerminalJob
	}
	if upd.Status != nil {
		j.Status = *upd.Status
	}
	if upd.Progress != nil && *upd.Progress > j.Progress {
		j.Progress = *upd.Progress
	}
	if upd.Output != nil {
		j.Output = upd.Output
	}
	if upd.Error != nil {
		j.Error = *upd.Error
	}
	j.UpdatedAt = time.Now()
	return nil
}

func (m *memJobRepo) ClaimQueued(ctx context.Context, jobType string) (*model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, j := range m.store {
		if j.Type == jobType && j.Status == model.JobStatusQueued {
			j.Status = model.JobStatusInProgress
			j.Progress = 10
			cp := *j
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ---- Mock ContentRepository ----

type MockContentRepo struct {
	mu    sync.Mutex
	Saved []*model.GeneratedContent

	SaveFunc        func(ctx context.Context, tx repository.Tx, c *model.GeneratedContent) error
	FindByJobIDFunc func(ctx context.Context, tx repository.Tx, jobID string) (*model.GeneratedContent, error)
	ListByUserFunc  func(ctx context.Context, tx repository.Tx, userID string, limit int) ([]*model.GeneratedContent, error)
}

var _ repository.ContentRepository = (*MockContentRepo)(nil)

func (m *MockContentRepo) Save(ctx context.Context, tx repository.Tx, c *model.GeneratedContent) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, c)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.Saved = append(m.Saved, &cp)
	return nil
}

func (m *MockContentRepo) FindByJobID(ctx context.Context, tx repository.Tx, jobID string) (*model.GeneratedContent, error) {
	if m.FindByJobIDFunc != nil {
		return m.FindByJobIDFunc(ctx, tx, jobID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.Saved) - 1; i >= 0; i-- {
		if m.Saved[i].JobID == jobID {
			cp := *m.Saved[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockContentRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string, limit int) ([]*model.GeneratedContent, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, tx, userID, limit)
	}
	return nil, nil
}

// ---- Mock SequenceRepository ----

type MockSequenceRepo struct {
	SaveFunc                func(ctx context.Context, tx repository.Tx, seq *model.EmailSequence) error
	FindByIDFunc            func(ctx context.Context, tx repository.Tx, id string) (*model.EmailSequence, error)
	FindActiveByTriggerFunc func(ctx context.Context, tx repository.Tx, triggerType, role string) ([]*model.EmailSequence, error)
	ListAllFunc             func(ctx context.Context, tx repository.Tx) ([]*model.EmailSequence, error)
}

var _ repository.SequenceRepository = (*MockSequenceRepo)(nil)

func (m *MockSequenceRepo) Save(ctx context.Context, tx repository.Tx, seq *model.EmailSequence) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, seq)
	}
	return nil
}

func (m *MockSequenceRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.EmailSequence, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, tx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockSequenceRepo) FindActiveByTrigger(ctx context.Context, tx repository.Tx, triggerType, role string) ([]*model.EmailSequence, error) {
	if m.FindActiveByTriggerFunc != nil {
		return m.FindActiveByTriggerFunc(ctx, tx, triggerType, role)
	}
	return nil, nil
}

func (m *MockSequenceRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.EmailSequence, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, tx)
	}
	return nil, nil
}

// ---- Mock EnrollmentRepository ----

type MockEnrollmentRepo struct {
	mu       sync.Mutex
	Inserted []*model.SequenceEnrollment
	Advanced []string

	InsertFunc     func(ctx context.Context, tx repository.Tx, e *model.SequenceEnrollment) error
	ListByUserFunc func(ctx context.Context, tx repository.Tx, userID string) ([]*model.SequenceEnrollment, error)
	ListDueFunc    func(ctx context.Context, tx repository.Tx, now time.Time, limit int) ([]*model.SequenceEnrollment, error)
	AdvanceFunc    func(ctx context.Context, tx repository.Tx, id string, nextStep int, done bool, processedAt time.Time) error
}

var _ repository.EnrollmentRepository = (*MockEnrollmentRepo)(nil)

func (m *MockEnrollmentRepo) Insert(ctx context.Context, tx repository.Tx, e *model.SequenceEnrollment) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, tx, e)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, prev := range m.Inserted {
		if prev.UserID == e.UserID && prev.SequenceID == e.SequenceID && prev.Active {
			return domain.ErrAlreadyEnrolled
		}
	}
	cp := *e
	m.Inserted = append(m.Inserted, &cp)
	return nil
}

func (m *MockEnrollmentRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.SequenceEnrollment, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, tx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.SequenceEnrollment
	for _, e := range m.Inserted {
		if e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockEnrollmentRepo) ListDue(ctx context.Context, tx repository.Tx, now time.Time, limit int) ([]*model.SequenceEnrollment, error) {
	if m.ListDueFunc != nil {
		return m.ListDueFunc(ctx, tx, now, limit)
	}
	return nil, nil
}

func (m *MockEnrollmentRepo) Advance(ctx context.Context, tx repository.Tx, id string, nextStep int, done bool, processedAt time.Time) error {
	if m.AdvanceFunc != nil {
		return m.AdvanceFunc(ctx, tx, id, nextStep, done, processedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Advanced = append(m.Advanced, id)
	return nil
}

// ---- Mock LeadRepository ----

type MockLeadRepo struct {
	mu         sync.Mutex
	Leads      []*model.Lead
	Activities []*model.LeadActivity

	SaveFunc         func(ctx context.Context, tx repository.Tx, lead *model.Lead) error
	SaveActivityFunc func(ctx context.Context, tx repository.Tx, act *model.LeadActivity) error
}

var _ repository.LeadRepository = (*MockLeadRepo)(nil)

func (m *MockLeadRepo) Save(ctx context.Context, tx repository.Tx, lead *model.Lead) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, lead)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *lead
	m.Leads = append(m.Leads, &cp)
	return nil
}

func (m *MockLeadRepo) SaveActivity(ctx context.Context, tx repository.Tx, act *model.LeadActivity) error {
	if m.SaveActivityFunc != nil {
		return m.SaveActivityFunc(ctx, tx, act)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *act
	m.Activities = append(m.Activities, &cp)
	return nil
}

func (m *MockLeadRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.Leads {
		if l.ID == id {
			cp := *l
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ---- Mock VerificationRepository ----

type MockVerificationRepo struct {
	mu       sync.Mutex
	Saved    []*model.SMSVerification
	Verified []string
}

var _ repository.VerificationRepository = (*MockVerificationRepo)(nil)

func (m *MockVerificationRepo) Save(ctx context.Context, tx repository.Tx, v *model.SMSVerification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *v
	m.Saved = append(m.Saved, &cp)
	return nil
}

func (m *MockVerificationRepo) FindLatestByPhone(ctx context.Context, tx repository.Tx, phone string) (*model.SMSVerification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.Saved) - 1; i >= 0; i-- {
		if m.Saved[i].PhoneNumber == phone {
			cp := *m.Saved[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockVerificationRepo) MarkVerified(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Verified = append(m.Verified, id)
	return nil
}

// ---- Mock ContactRepository ----

type MockContactRepo struct {
	mu    sync.Mutex
	Saved []*model.ContactRequest

	SaveFunc func(ctx context.Context, tx repository.Tx, c *model.ContactRequest) error
}

var _ repository.ContactRepository = (*MockContactRepo)(nil)

func (m *MockContactRepo) Save(ctx context.Context, tx repository.Tx, c *model.ContactRequest) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, c)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.Saved = append(m.Saved, &cp)
	return nil
}

func (m *MockContactRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string, limit int) ([]*model.ContactRequest, error) {
	return nil, nil
}

// ---- Mock log repositories ----

type MockSystemLogRepo struct {
	mu    sync.Mutex
	Saved []*model.SystemLog

	ListFunc func(ctx context.Context, tx repository.Tx, f repository.SystemLogFilter) ([]*model.SystemLog, error)
}

var _ repository.SystemLogRepository = (*MockSystemLogRepo)(nil)

func (m *MockSystemLogRepo) Save(ctx context.Context, tx repository.Tx, entry *model.SystemLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *entry
	m.Saved = append(m.Saved, &cp)
	return nil
}

func (m *MockSystemLogRepo) List(ctx context.Context, tx repository.Tx, f repository.SystemLogFilter) ([]*model.SystemLog, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, tx, f)
	}
	return nil, nil
}

type MockWorkflowLogRepo struct {
	mu    sync.Mutex
	Saved []*model.WorkflowLog

	ListFunc func(ctx context.Context, tx repository.Tx, f repository.WorkflowLogFilter) ([]*model.WorkflowLog, error)
}

var _ repository.WorkflowLogRepository = (*MockWorkflowLogRepo)(nil)

func (m *MockWorkflowLogRepo) Save(ctx context.Context, tx repository.Tx, entry *model.WorkflowLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *entry
	m.Saved = append(m.Saved, &cp)
	return nil
}

func (m *MockWorkflowLogRepo) List(ctx context.Context, tx repository.Tx, f repository.WorkflowLogFilter) ([]*model.WorkflowLog, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, tx, f)
	}
	return nil, nil
}

// =============================
// Adapters
// =============================

type MockAI struct {
	mu    sync.Mutex
	Calls []string

	GenerateFunc func(ctx context.Context, prompt string, maxTokens int) (string, error)
}

var _ adapter.TextGenerator = (*MockAI)(nil)

func (m *MockAI) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, prompt)
	m.mu.Unlock()
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, maxTokens)
	}
	return "enriched copy", nil
}

func (m *MockAI) Name() string { return "mock" }

type sentMail struct {
	To, Subject, Body string
}

type MockMailer struct {
	mu   sync.Mutex
	Sent []sentMail

	SendFunc       func(ctx context.Context, to, subject, body string) (string, error)
	ConfiguredFunc func() bool
}

var _ adapter.Mailer = (*MockMailer)(nil)

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) (string, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, subject, body)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, sentMail{to, subject, body})
	return "mail-1", nil
}

func (m *MockMailer) Configured() bool {
	if m.ConfiguredFunc != nil {
		return m.ConfiguredFunc()
	}
	return true
}

type MockSMS struct {
	mu   sync.Mutex
	Sent []string

	SendFunc       func(ctx context.Context, to, body string) (string, error)
	ConfiguredFunc func() bool
}

var _ adapter.SMSSender = (*MockSMS)(nil)

func (m *MockSMS) Send(ctx context.Context, to, body string) (string, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, body)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, to)
	return "sms-1", nil
}

func (m *MockSMS) Configured() bool {
	if m.ConfiguredFunc != nil {
		return m.ConfiguredFunc()
	}
	return true
}

type MockWebhook struct {
	mu     sync.Mutex
	Events []string

	TriggerFunc func(ctx context.Context, event string, payload map[string]any) error
}

var _ adapter.WorkflowTrigger = (*MockWebhook)(nil)

func (m *MockWebhook) Trigger(ctx context.Context, event string, payload map[string]any) error {
	if m.TriggerFunc != nil {
		return m.TriggerFunc(ctx, event, payload)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockWebhook) Configured() bool { return true }
