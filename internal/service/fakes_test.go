package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/emberworks/studio-portal/internal/domain"
	"github.com/emberworks/studio-portal/internal/repository"
)

// In-memory collaborators shared by the service tests. Each fake mirrors the
// repository contract: absent rows surface as pgx.ErrNoRows, and an injected
// err overrides every call to simulate a store outage.

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
	err     error
	created []*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*domain.User{}, byID: map[string]*domain.User{}}
}

func (f *fakeUserRepo) add(user *domain.User) {
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if f.err != nil {
		return f.err
	}
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.add(user)
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.add(user)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) ListWithRoles(ctx context.Context) ([]repository.UserWithRole, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]repository.UserWithRole, 0, len(f.byID))
	for _, user := range f.byID {
		out = append(out, repository.UserWithRole{User: *user})
	}
	return out, nil
}

type fakeRoleRepo struct {
	byID   map[string]*domain.Role
	byName map[string]*domain.Role
	err    error
}

func newFakeRoleRepo(roles ...*domain.Role) *fakeRoleRepo {
	f := &fakeRoleRepo{byID: map[string]*domain.Role{}, byName: map[string]*domain.Role{}}
	for _, role := range roles {
		f.byID[role.ID] = role
		f.byName[role.Name] = role
	}
	return f
}

func (f *fakeRoleRepo) GetByID(ctx context.Context, id string) (*domain.Role, error) {
	if f.err != nil {
		return nil, f.err
	}
	role, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return role, nil
}

func (f *fakeRoleRepo) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	if f.err != nil {
		return nil, f.err
	}
	role, ok := f.byName[name]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return role, nil
}

func (f *fakeRoleRepo) List(ctx context.Context) ([]domain.Role, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Role, 0, len(f.byID))
	for _, role := range f.byID {
		out = append(out, *role)
	}
	return out, nil
}

func (f *fakeRoleRepo) ListWithPermissions(ctx context.Context) ([]repository.RoleWithPermissions, error) {
	return nil, f.err
}

type fakePermRepo struct {
	perms []domain.Permission
	err   error
}

func (f *fakePermRepo) ListByIDs(ctx context.Context, ids []string) ([]domain.Permission, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Permission, 0, len(ids))
	for _, id := range ids {
		for _, perm := range f.perms {
			if perm.ID == id {
				out = append(out, perm)
			}
		}
	}
	return out, nil
}

func (f *fakePermRepo) List(ctx context.Context) ([]domain.Permission, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.perms, nil
}

type fakeTicketRepo struct {
	byID    map[string]*domain.Ticket
	err     error
	replies map[string][]domain.ConversationEntry
	updates []repository.TicketUpdate
}

func newFakeTicketRepo(tickets ...*domain.Ticket) *fakeTicketRepo {
	f := &fakeTicketRepo{byID: map[string]*domain.Ticket{}, replies: map[string][]domain.ConversationEntry{}}
	for _, ticket := range tickets {
		f.byID[ticket.ID] = ticket
	}
	return f
}

func (f *fakeTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	if f.err != nil {
		return f.err
	}
	if ticket.ID == "" {
		ticket.ID = "ticket-1"
	}
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	f.byID[ticket.ID] = ticket
	return nil
}

func (f *fakeTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	if f.err != nil {
		return nil, f.err
	}
	ticket, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return ticket, nil
}

func (f *fakeTicketRepo) List(ctx context.Context) ([]domain.Ticket, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Ticket, 0, len(f.byID))
	for _, ticket := range f.byID {
		out = append(out, *ticket)
	}
	return out, nil
}

func (f *fakeTicketRepo) ListByUser(ctx context.Context, userID string) ([]domain.Ticket, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Ticket
	for _, ticket := range f.byID {
		if ticket.UserID == userID {
			out = append(out, *ticket)
		}
	}
	return out, nil
}

func (f *fakeTicketRepo) AppendReply(ctx context.Context, id string, entry domain.ConversationEntry) error {
	if f.err != nil {
		return f.err
	}
	ticket, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.Conversation = append(ticket.Conversation, entry)
	f.replies[id] = append(f.replies[id], entry)
	return nil
}

func (f *fakeTicketRepo) Update(ctx context.Context, id string, upd repository.TicketUpdate) error {
	if f.err != nil {
		return f.err
	}
	ticket, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if upd.Status != nil {
		ticket.Status = *upd.Status
	}
	if upd.AssignedTo != nil {
		ticket.AssignedTo = upd.AssignedTo
	}
	f.updates = append(f.updates, upd)
	return nil
}

type fakeDevLogRepo struct {
	byID map[string]*domain.DevLog
	err  error
}

func newFakeDevLogRepo(logs ...*domain.DevLog) *fakeDevLogRepo {
	f := &fakeDevLogRepo{byID: map[string]*domain.DevLog{}}
	for _, log := range logs {
		f.byID[log.ID] = log
	}
	return f
}

func (f *fakeDevLogRepo) Create(ctx context.Context, log *domain.DevLog) error {
	if f.err != nil {
		return f.err
	}
	if log.ID == "" {
		log.ID = "devlog-1"
	}
	f.byID[log.ID] = log
	return nil
}

func (f *fakeDevLogRepo) GetByID(ctx context.Context, id string) (*domain.DevLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	log, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return log, nil
}

func (f *fakeDevLogRepo) ListActive(ctx context.Context) ([]domain.DevLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.DevLog
	for _, log := range f.byID {
		if !log.Archived {
			out = append(out, *log)
		}
	}
	return out, nil
}

func (f *fakeDevLogRepo) UpdateWithRevision(ctx context.Context, id, title, content, category, actorID string) error {
	if f.err != nil {
		return f.err
	}
	log, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	log.Revisions = domain.AppendCapped(log.Revisions, domain.Revision{
		Content:   log.Content,
		UpdatedAt: log.UpdatedAt,
		UpdatedBy: actorID,
	}, domain.DevLogRevisionCap)
	log.Title = title
	log.Content = content
	log.Category = category
	log.UpdatedAt = time.Now()
	return nil
}

func (f *fakeDevLogRepo) Archive(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	log, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	log.Archived = true
	return nil
}

type fakeSettingsRepo struct {
	settings domain.SiteSettings
	err      error
	writes   []bool
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (domain.SiteSettings, error) {
	if f.err != nil {
		return domain.SiteSettings{}, f.err
	}
	return f.settings, nil
}

func (f *fakeSettingsRepo) SetMaintenanceMode(ctx context.Context, enabled bool) error {
	if f.err != nil {
		return f.err
	}
	f.settings.MaintenanceMode = enabled
	f.writes = append(f.writes, enabled)
	return nil
}

type auditCall struct {
	actorID  string
	action   string
	details  map[string]any
	targetID string
}

type recordingAuditor struct {
	calls []auditCall
}

func (r *recordingAuditor) Record(ctx context.Context, actorID, action string, details map[string]any, targetID ...string) {
	call := auditCall{actorID: actorID, action: action, details: details}
	if len(targetID) > 0 {
		call.targetID = targetID[0]
	}
	r.calls = append(r.calls, call)
}
