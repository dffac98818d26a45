package helpers

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/DragonEmporer001/fiverr-clone/internal/domain"
	"github.com/DragonEmporer001/fiverr-clone/internal/policy"
	"github.com/DragonEmporer001/fiverr-clone/internal/store"
)

func NewTestSQLiteStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func NewTestPolicyEngine(t *testing.T) *policy.Engine {
	t.Helper()

	e, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return e
}

// Notification is one call recorded by RecordingNotifier.
type Notification struct {
	UserIDs []string
	Event   domain.Event
}

// RecordingNotifier keeps every notification in memory.
type RecordingNotifier struct {
	mu    sync.Mutex
	calls []Notification
}

func (n *RecordingNotifier) Notify(_ context.Context, userIDs []string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var ev domain.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, Notification{UserIDs: append([]string(nil), userIDs...), Event: ev})
	return nil
}

func (n *RecordingNotifier) Calls() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.calls...)
}
