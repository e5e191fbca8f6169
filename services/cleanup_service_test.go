// services/cleanup_service_test.go
package services

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeCleaner struct {
	mu    sync.Mutex
	calls []fakeDeleteCall
	err   error
}

type fakeDeleteCall struct {
	chatID     int64
	messageIDs []int
}

func (f *fakeCleaner) DeleteMessages(chatID int64, messageIDs []int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fakeDeleteCall{chatID: chatID, messageIDs: messageIDs})
	return f.err
}

func (f *fakeCleaner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestCleanup(t *testing.T) (*CleanupService, *ChatConfigService, *fakeCleaner) {
	t.Helper()
	chats := NewChatConfigService(newTestDB(t))
	cleaner := &fakeCleaner{}
	svc, err := NewCleanupService(chats, cleaner)
	if err != nil {
		t.Fatalf("NewCleanupService: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc, chats, cleaner
}

func enableAutoDelete(t *testing.T, chats *ChatConfigService, chatID int64, minutes int) {
	t.Helper()
	if _, err := chats.Toggle(chatID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if err := chats.SetDelay(chatID, minutes); err != nil {
		t.Fatalf("SetDelay: %v", err)
	}
}

func TestFireDeletesWhenDue(t *testing.T) {
	svc, chats, cleaner := newTestCleanup(t)
	enableAutoDelete(t, chats, -1, 10)

	svc.fire(-1, []int{100, 101}, time.Now().Add(-10*time.Minute))

	if cleaner.callCount() != 1 {
		t.Fatalf("delete calls = %d, want 1", cleaner.callCount())
	}
	call := cleaner.calls[0]
	if call.chatID != -1 || len(call.messageIDs) != 2 {
		t.Errorf("call = %+v", call)
	}
}

func TestFireNoOpWhenDisabled(t *testing.T) {
	svc, chats, cleaner := newTestCleanup(t)
	enableAutoDelete(t, chats, -1, 10)

	// Auto-delete gets switched off between scheduling and firing.
	if _, err := chats.Toggle(-1); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	svc.fire(-1, []int{100}, time.Now().Add(-10*time.Minute))

	if cleaner.callCount() != 0 {
		t.Errorf("delete calls = %d, want 0", cleaner.callCount())
	}
}

func TestFireReArmsWhenDelayGrew(t *testing.T) {
	svc, chats, cleaner := newTestCleanup(t)
	enableAutoDelete(t, chats, -1, 60)

	// Scheduled a moment ago under a shorter delay; the job should re-arm
	// for the remainder instead of deleting now.
	svc.fire(-1, []int{100}, time.Now().Add(-1*time.Minute))

	if cleaner.callCount() != 0 {
		t.Errorf("delete calls = %d, want 0 (job re-armed)", cleaner.callCount())
	}
}

func TestFireSwallowsCleanerErrors(t *testing.T) {
	svc, chats, cleaner := newTestCleanup(t)
	enableAutoDelete(t, chats, -1, 10)
	cleaner.err = errors.New("chat unreachable")

	svc.fire(-1, []int{100}, time.Now().Add(-10*time.Minute))

	if cleaner.callCount() != 1 {
		t.Errorf("delete calls = %d, want 1", cleaner.callCount())
	}
}

func TestScheduleSkipsDisabledChats(t *testing.T) {
	svc, _, cleaner := newTestCleanup(t)

	// No config row at all: nothing gets scheduled, nothing fires.
	svc.Schedule(-1, 100, 101)
	svc.Schedule(-1)

	time.Sleep(50 * time.Millisecond)
	if cleaner.callCount() != 0 {
		t.Errorf("delete calls = %d, want 0", cleaner.callCount())
	}
}
