package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/myne7x/store-api/internal/core/domain"
	"github.com/myne7x/store-api/internal/core/ports"
)

type stubTaskRepo struct {
	byID      map[string]*domain.Task
	createErr error
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{byID: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, tk *domain.Task) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *tk
	r.byID[tk.ID] = &clone
	return nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	tk, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *tk
	return &clone, nil
}

func (r *stubTaskRepo) ListByUser(_ context.Context, userID string) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, tk := range r.byID {
		if tk.AssignedTo == userID || tk.AssignedBy == userID {
			clone := *tk
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubTaskRepo) UpdateStatus(_ context.Context, id, status string, at time.Time) error {
	tk, ok := r.byID[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	tk.Status = status
	tk.UpdatedAt = at
	return nil
}

type stubProfileRepo struct {
	byUserID  map[string]*domain.Profile
	upsertErr error
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{byUserID: make(map[string]*domain.Profile)}
}

func (r *stubProfileRepo) FindByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	p, ok := r.byUserID[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

// Upsert mimics the real repo: first write creates with the given role,
// later writes only refresh the self-service fields.
func (r *stubProfileRepo) Upsert(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	existing, ok := r.byUserID[p.UserID]
	if !ok {
		clone := *p
		r.byUserID[p.UserID] = &clone
		out := clone
		return &out, nil
	}
	existing.Email = p.Email
	existing.FullName = p.FullName
	existing.AvatarURL = p.AvatarURL
	existing.FacebookLink = p.FacebookLink
	existing.TelegramLink = p.TelegramLink
	existing.WhatsappLink = p.WhatsappLink
	existing.UpdatedAt = p.UpdatedAt
	clone := *existing
	return &clone, nil
}

func (r *stubProfileRepo) UpdateRole(_ context.Context, userID string, role domain.Role, at time.Time) error {
	p, ok := r.byUserID[userID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.Role = role
	p.UpdatedAt = at
	return nil
}

func seedProfile(repo *stubProfileRepo, userID string, role domain.Role) {
	repo.byUserID[userID] = &domain.Profile{
		ID:     "profile-" + userID,
		UserID: userID,
		Email:  userID + "@example.com",
		Role:   role,
	}
}

func newTaskFixture() (*stubTaskRepo, *stubProfileRepo, *stubNotifier, *TaskService) {
	tasks := newStubTaskRepo()
	profiles := newStubProfileRepo()
	notifier := &stubNotifier{}
	svc := NewTaskService(tasks, profiles, notifier, discardLogger)
	return tasks, profiles, notifier, svc
}

func TestTask_Assign_Success(t *testing.T) {
	tasks, profiles, notifier, svc := newTaskFixture()
	seedProfile(profiles, "user-1", domain.RoleUser)

	task, err := svc.Assign(context.Background(), ports.AssignTaskInput{
		AssignerID:   "admin-1",
		AssignerRole: domain.RoleAdmin,
		AssigneeID:   "user-1",
		Title:        "Review uploads",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if task.Status != domain.TaskStatusOpen {
		t.Errorf("expected default status open, got %q", task.Status)
	}
	if task.AssignedBy != "admin-1" || task.AssignedTo != "user-1" {
		t.Errorf("assignment parties wrong: %+v", task)
	}
	if _, ok := tasks.byID[task.ID]; !ok {
		t.Error("task must be persisted")
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.sent))
	}
	if notifier.sent[0].Type != domain.NotifyTaskAssigned {
		t.Errorf("expected task_assigned notification, got %q", notifier.sent[0].Type)
	}
	if notifier.sent[0].UserID != "user-1" {
		t.Errorf("notification must target the assignee, got %q", notifier.sent[0].UserID)
	}
}

func TestTask_Assign_UserRoleForbidden(t *testing.T) {
	_, profiles, notifier, svc := newTaskFixture()
	seedProfile(profiles, "user-1", domain.RoleUser)

	_, err := svc.Assign(context.Background(), ports.AssignTaskInput{
		AssignerID:   "user-2",
		AssignerRole: domain.RoleUser,
		AssigneeID:   "user-1",
		Title:        "Nope",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Error("no notification on a forbidden assignment")
	}
}

func TestTask_Assign_UnknownAssignee(t *testing.T) {
	_, _, _, svc := newTaskFixture()

	_, err := svc.Assign(context.Background(), ports.AssignTaskInput{
		AssignerID:   "admin-1",
		AssignerRole: domain.RoleAdmin,
		AssigneeID:   "ghost",
		Title:        "Haunt",
	})
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestTask_Assign_MissingTitle(t *testing.T) {
	_, profiles, _, svc := newTaskFixture()
	seedProfile(profiles, "user-1", domain.RoleUser)

	_, err := svc.Assign(context.Background(), ports.AssignTaskInput{
		AssignerID:   "admin-1",
		AssignerRole: domain.RoleAdmin,
		AssigneeID:   "user-1",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestTask_List_CoversBothSides(t *testing.T) {
	tasks, profiles, _, svc := newTaskFixture()
	seedProfile(profiles, "user-1", domain.RoleUser)
	seedProfile(profiles, "user-2", domain.RoleUser)

	seed := func(id, by, to string) {
		tasks.byID[id] = &domain.Task{ID: id, AssignedBy: by, AssignedTo: to, Title: id, Status: domain.TaskStatusOpen}
	}
	seed("t1", "admin-1", "user-1") // user-1 as assignee
	seed("t2", "user-1", "user-2")  // user-1 as assigner
	seed("t3", "admin-1", "user-2") // unrelated to user-1

	out, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Errorf("expected 2 tasks for user-1, got %d", len(out))
	}
}

func TestTask_UpdateStatus_ByAssignee(t *testing.T) {
	tasks, _, _, svc := newTaskFixture()
	tasks.byID["t1"] = &domain.Task{ID: "t1", AssignedBy: "admin-1", AssignedTo: "user-1", Status: domain.TaskStatusOpen}

	task, err := svc.UpdateStatus(context.Background(), "t1", "user-1", "done")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Status != "done" {
		t.Errorf("expected status done, got %q", task.Status)
	}
	if tasks.byID["t1"].Status != "done" {
		t.Error("status must be persisted")
	}
}

func TestTask_UpdateStatus_ByAssigner(t *testing.T) {
	tasks, _, _, svc := newTaskFixture()
	tasks.byID["t1"] = &domain.Task{ID: "t1", AssignedBy: "admin-1", AssignedTo: "user-1", Status: domain.TaskStatusOpen}

	if _, err := svc.UpdateStatus(context.Background(), "t1", "admin-1", "cancelled"); err != nil {
		t.Fatalf("assigner must be allowed to update, got %v", err)
	}
}

func TestTask_UpdateStatus_StrangerForbidden(t *testing.T) {
	tasks, _, _, svc := newTaskFixture()
	tasks.byID["t1"] = &domain.Task{ID: "t1", AssignedBy: "admin-1", AssignedTo: "user-1", Status: domain.TaskStatusOpen}

	_, err := svc.UpdateStatus(context.Background(), "t1", "user-99", "done")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for a third party, got %v", err)
	}
	if tasks.byID["t1"].Status != domain.TaskStatusOpen {
		t.Error("status must be unchanged after a forbidden update")
	}
}

func TestTask_UpdateStatus_NotFound(t *testing.T) {
	_, _, _, svc := newTaskFixture()

	_, err := svc.UpdateStatus(context.Background(), "no-such-task", "user-1", "done")
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}
