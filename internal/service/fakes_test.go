package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/events"
)

// fakeUserRepo is an in-memory stand-in for the Postgres user repository.
type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	user.ID = fmt.Sprintf("user-%d", f.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return f.find(func(u *domain.User) bool { return u.Username == username })
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return f.find(func(u *domain.User) bool { return u.Email == email })
}

func (f *fakeUserRepo) GetByResetDigest(_ context.Context, digest string) (*domain.User, error) {
	return f.find(func(u *domain.User) bool {
		return u.ResetTokenDigest != nil && *u.ResetTokenDigest == digest
	})
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	return f.mutate(id, func(u *domain.User) { u.LastLogin = &at })
}

func (f *fakeUserRepo) MarkVerified(_ context.Context, id string) error {
	return f.mutate(id, func(u *domain.User) { u.Verified = true })
}

func (f *fakeUserRepo) SetResetTicket(_ context.Context, id, digest string, expires time.Time) error {
	return f.mutate(id, func(u *domain.User) {
		u.ResetTokenDigest = &digest
		u.ResetTokenExpires = &expires
	})
}

func (f *fakeUserRepo) ResetPassword(_ context.Context, id, passwordHash string) error {
	return f.mutate(id, func(u *domain.User) {
		u.PasswordHash = passwordHash
		u.ResetTokenDigest = nil
		u.ResetTokenExpires = nil
	})
}

func (f *fakeUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if match(user) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) mutate(id string, apply func(*domain.User)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	apply(user)
	user.UpdatedAt = time.Now()
	return nil
}

// fakeRoles resolves roles from a fixed set.
type fakeRoles struct {
	roles []domain.Role
}

func newFakeRoles() *fakeRoles {
	return &fakeRoles{roles: []domain.Role{
		{ID: "role-admin", Name: domain.RoleAdmin},
		{ID: "role-client", Name: domain.RoleClient},
		{ID: "role-agent", Name: domain.RoleAgent},
		{ID: "role-company", Name: domain.RoleCompany},
	}}
}

func (f *fakeRoles) GetByID(_ context.Context, id string) (*domain.Role, error) {
	for _, role := range f.roles {
		if role.ID == id {
			copied := role
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeRoles) GetByName(_ context.Context, name domain.RoleName) (*domain.Role, error) {
	for _, role := range f.roles {
		if role.Name == name {
			copied := role
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// captureDispatcher records published events synchronously so tests can
// assert on payloads without timing concerns.
type captureDispatcher struct {
	mu       sync.Mutex
	events   []events.Event
	handlers map[events.EventType][]events.EventHandler
}

func newCaptureDispatcher() *captureDispatcher {
	return &captureDispatcher{handlers: make(map[events.EventType][]events.EventHandler)}
}

func (d *captureDispatcher) Publish(ctx context.Context, event events.Event) {
	d.mu.Lock()
	d.events = append(d.events, event)
	handlers := append([]events.EventHandler{}, d.handlers[event.Type]...)
	d.mu.Unlock()
	for _, handler := range handlers {
		_ = handler(ctx, event)
	}
}

func (d *captureDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
}

func (d *captureDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}

func (d *captureDispatcher) lastOfType(eventType events.EventType) (events.Event, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := len(d.events) - 1; i >= 0; i-- {
		if d.events[i].Type == eventType {
			return d.events[i], true
		}
	}
	return events.Event{}, false
}

// fakeAgentRepo stores agents in memory and records applied decisions.
type fakeAgentRepo struct {
	mu        sync.Mutex
	seq       int
	agents    map[string]*domain.Agent
	decisions map[string]domain.DecisionUpdate
}

func newFakeAgentRepo() *fakeAgentRepo {
	return &fakeAgentRepo{
		agents:    make(map[string]*domain.Agent),
		decisions: make(map[string]domain.DecisionUpdate),
	}
}

func (f *fakeAgentRepo) Create(_ context.Context, agent *domain.Agent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	agent.ID = fmt.Sprintf("agent-%d", f.seq)
	agent.Status = domain.StatusPending
	stored := *agent
	f.agents[agent.ID] = &stored
	return nil
}

func (f *fakeAgentRepo) GetByID(_ context.Context, id string) (*domain.Agent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	agent, ok := f.agents[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *agent
	return &copied, nil
}

func (f *fakeAgentRepo) GetByUserID(_ context.Context, userID string) (*domain.Agent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, agent := range f.agents {
		if agent.UserID == userID {
			copied := *agent
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAgentRepo) List(_ context.Context) ([]domain.Agent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Agent, 0, len(f.agents))
	for _, agent := range f.agents {
		out = append(out, *agent)
	}
	return out, nil
}

func (f *fakeAgentRepo) ApplyDecision(_ context.Context, id string, dec domain.DecisionUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	agent, ok := f.agents[id]
	if !ok {
		return pgx.ErrNoRows
	}
	agent.Status = dec.Status
	agent.Verified = dec.Flag
	agent.VerifiedBy = &dec.ActorID
	agent.VerifiedAt = &dec.DecidedAt
	agent.VerificationNotes = dec.Notes
	f.decisions[id] = dec
	return nil
}

// fakeCompanyRepo mirrors fakeAgentRepo for companies.
type fakeCompanyRepo struct {
	mu        sync.Mutex
	seq       int
	companies map[string]*domain.Company
	decisions map[string]domain.DecisionUpdate
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{
		companies: make(map[string]*domain.Company),
		decisions: make(map[string]domain.DecisionUpdate),
	}
}

func (f *fakeCompanyRepo) Create(_ context.Context, company *domain.Company) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	company.ID = fmt.Sprintf("company-%d", f.seq)
	company.Status = domain.StatusPending
	stored := *company
	f.companies[company.ID] = &stored
	return nil
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (*domain.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	company, ok := f.companies[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *company
	return &copied, nil
}

func (f *fakeCompanyRepo) List(_ context.Context) ([]domain.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Company, 0, len(f.companies))
	for _, company := range f.companies {
		out = append(out, *company)
	}
	return out, nil
}

func (f *fakeCompanyRepo) ApplyDecision(_ context.Context, id string, dec domain.DecisionUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	company, ok := f.companies[id]
	if !ok {
		return pgx.ErrNoRows
	}
	company.Status = dec.Status
	company.Verified = dec.Flag
	company.VerifiedBy = &dec.ActorID
	company.VerifiedAt = &dec.DecidedAt
	company.VerificationNotes = dec.Notes
	f.decisions[id] = dec
	return nil
}

// fakePropertyRepo backs one property kind.
type fakePropertyRepo struct {
	mu         sync.Mutex
	seq        int
	properties map[string]*domain.Property
	decisions  map[string]domain.DecisionUpdate
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{
		properties: make(map[string]*domain.Property),
		decisions:  make(map[string]domain.DecisionUpdate),
	}
}

func (f *fakePropertyRepo) Create(_ context.Context, property *domain.Property) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	property.ID = fmt.Sprintf("property-%d", f.seq)
	property.Status = domain.StatusPending
	stored := *property
	f.properties[property.ID] = &stored
	return nil
}

func (f *fakePropertyRepo) GetByID(_ context.Context, id string) (*domain.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	property, ok := f.properties[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *property
	return &copied, nil
}

func (f *fakePropertyRepo) List(_ context.Context) ([]domain.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Property, 0, len(f.properties))
	for _, property := range f.properties {
		out = append(out, *property)
	}
	return out, nil
}

func (f *fakePropertyRepo) ListPending(_ context.Context) ([]domain.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Property
	for _, property := range f.properties {
		if property.Status == domain.StatusPending {
			out = append(out, *property)
		}
	}
	return out, nil
}

func (f *fakePropertyRepo) ApplyDecision(_ context.Context, id string, dec domain.DecisionUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	property, ok := f.properties[id]
	if !ok {
		return pgx.ErrNoRows
	}
	property.Status = dec.Status
	property.Approved = dec.Flag
	property.ApprovedBy = &dec.ActorID
	property.ApprovedAt = &dec.DecidedAt
	property.RejectionReason = dec.Reason
	f.decisions[id] = dec
	return nil
}

// captureMailer records sends instead of delivering.
type captureMailer struct {
	mu         sync.Mutex
	approvals  []string
	rejections []string
	reasons    []string
}

func (m *captureMailer) SendVerificationEmail(_ context.Context, _, _, _ string) error {
	return nil
}

func (m *captureMailer) SendPasswordResetEmail(_ context.Context, _, _ string) error {
	return nil
}

func (m *captureMailer) SendApprovalEmail(_ context.Context, to, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.approvals = append(m.approvals, to)
	return nil
}

func (m *captureMailer) SendRejectionEmail(_ context.Context, to, _, _, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejections = append(m.rejections, to)
	m.reasons = append(m.reasons, reason)
	return nil
}
