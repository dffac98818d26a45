package service

import (
	"context"
	"time"

	"github.com/DragonEmporer001/fiverr-clone/internal/policy"
	"github.com/DragonEmporer001/fiverr-clone/internal/store"
)

// Notifier pushes an event to the listed users.
type Notifier interface {
	Notify(ctx context.Context, userIDs []string, v interface{}) error
}

type Service struct {
	store        store.Store
	policyEngine *policy.Engine
	notifier     Notifier
	now          func() time.Time
}

// New wires the service. notifier may be nil.
func New(store store.Store, policyEngine *policy.Engine, notifier Notifier) *Service {
	return &Service{
		store:        store,
		policyEngine: policyEngine,
		notifier:     notifier,
		now:          time.Now,
	}
}
