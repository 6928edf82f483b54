package mock

import (
	"context"
	"sync"

	"github.com/dev-mohitbeniwal/ems/api/model"
)

// Notice is one call made on a RecordingNotifier.
type Notice struct {
	Kind     string
	UserID   string
	PolicyID string
	Count    int
}

// RecordingNotifier keeps every notification in memory.
type RecordingNotifier struct {
	mu      sync.Mutex
	Notices []Notice
}

func (n *RecordingNotifier) record(notice Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Notices = append(n.Notices, notice)
}

func (n *RecordingNotifier) NotifyPolicyPublished(ctx context.Context, policy model.Policy, recipients int) error {
	n.record(Notice{Kind: "published", PolicyID: policy.ID, Count: recipients})
	return nil
}

func (n *RecordingNotifier) SendReminder(ctx context.Context, employee model.Employee, policy model.Policy, count int) error {
	n.record(Notice{Kind: "reminder", UserID: employee.ID, PolicyID: policy.ID, Count: count})
	return nil
}

func (n *RecordingNotifier) Escalate(ctx context.Context, employee model.Employee, policy model.Policy, count int) error {
	n.record(Notice{Kind: "escalation", UserID: employee.ID, PolicyID: policy.ID, Count: count})
	return nil
}

// Of returns the notices of one kind in order.
func (n *RecordingNotifier) Of(kind string) []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []Notice
	for _, notice := range n.Notices {
		if notice.Kind == kind {
			out = append(out, notice)
		}
	}
	return out
}
