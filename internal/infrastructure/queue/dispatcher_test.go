package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/myne7x/store-api/internal/core/domain"
	"github.com/myne7x/store-api/internal/core/ports"
)

// recordingNotificationRepo is a concurrency-safe stub that can fail the
// first N creates.
type recordingNotificationRepo struct {
	mu        sync.Mutex
	created   []*domain.Notification
	failFirst int
	calls     int
}

func (r *recordingNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.calls <= r.failFirst {
		return errors.New("write failed")
	}
	clone := *n
	r.created = append(r.created, &clone)
	return nil
}

func (r *recordingNotificationRepo) ListByUser(context.Context, string) ([]*domain.Notification, error) {
	return nil, nil
}
func (r *recordingNotificationRepo) MarkRead(context.Context, string, string) error { return nil }
func (r *recordingNotificationRepo) MarkAllRead(context.Context, string) (int64, error) {
	return 0, nil
}

func (r *recordingNotificationRepo) snapshot() []*domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Notification, len(r.created))
	copy(out, r.created)
	return out
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestDispatcher_PersistsNotification(t *testing.T) {
	repo := &recordingNotificationRepo{}
	d := NewDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Notify(ports.NotificationInput{
		UserID:    "user-1",
		Type:      domain.NotifyRequestApproved,
		Title:     "Payment request approved",
		Message:   "done",
		RelatedID: "req-1",
	})

	waitFor(t, 2*time.Second, func() bool { return len(repo.snapshot()) == 1 })

	n := repo.snapshot()[0]
	if n.ID == "" {
		t.Error("notification must get an id")
	}
	if n.UserID != "user-1" {
		t.Errorf("user_id: got %q", n.UserID)
	}
	if n.NotificationType != domain.NotifyRequestApproved {
		t.Errorf("type: got %q", n.NotificationType)
	}
	if n.Read {
		t.Error("new notifications must be unread")
	}
	if n.CreatedAt.IsZero() {
		t.Error("created_at must be stamped")
	}
}

func TestDispatcher_RetriesOnce(t *testing.T) {
	repo := &recordingNotificationRepo{failFirst: 1}
	d := NewDispatcher(1, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Notify(ports.NotificationInput{UserID: "user-1", Type: domain.NotifyTaskAssigned, Title: "t"})

	waitFor(t, 2*time.Second, func() bool { return len(repo.snapshot()) == 1 })
}

func TestDispatcher_DropsAfterSecondFailure(t *testing.T) {
	repo := &recordingNotificationRepo{failFirst: 2}
	d := NewDispatcher(1, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Notify(ports.NotificationInput{UserID: "user-1", Type: domain.NotifyTaskAssigned, Title: "t"})
	// The next notification must still get through.
	d.Notify(ports.NotificationInput{UserID: "user-1", Type: domain.NotifyRequestRejected, Title: "u"})

	waitFor(t, 2*time.Second, func() bool { return len(repo.snapshot()) == 1 })

	if got := repo.snapshot()[0].NotificationType; got != domain.NotifyRequestRejected {
		t.Errorf("surviving notification: expected request_rejected, got %q", got)
	}
}

func TestDispatcher_SameUserSameWorker(t *testing.T) {
	d := NewDispatcher(4, &recordingNotificationRepo{}, zerolog.Nop())

	first := d.shardIndex("user-abc")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("user-abc"); got != first {
			t.Fatalf("shard index must be deterministic: got %d then %d", first, got)
		}
	}
}

func TestDispatcher_PreservesPerUserOrder(t *testing.T) {
	repo := &recordingNotificationRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 20; i++ {
		title := string(rune('a' + i))
		d.Notify(ports.NotificationInput{UserID: "user-1", Type: domain.NotifyProductUpload, Title: title})
	}

	waitFor(t, 2*time.Second, func() bool { return len(repo.snapshot()) == 20 })

	created := repo.snapshot()
	for i := 1; i < len(created); i++ {
		if created[i-1].Title >= created[i].Title {
			t.Fatalf("order violated at %d: %q before %q", i, created[i-1].Title, created[i].Title)
		}
	}
}
