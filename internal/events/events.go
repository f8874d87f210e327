// Package events publishes ledger notifications to other processes, such as
// the chat bot that pushes budget alerts to users.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// BudgetAlert is sent when a write leaves a category at or above the warning
// threshold of its monthly budget. Amounts are decimal strings.
type BudgetAlert struct {
	Owner     string    `json:"owner"`
	Category  string    `json:"category"`
	Period    string    `json:"period"`
	Spent     string    `json:"spent"`
	Limit     string    `json:"limit"`
	Percent   string    `json:"percent"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ToJSON converts the message to JSON bytes.
func (m *BudgetAlert) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BudgetAlertFromJSON decodes a message produced by ToJSON.
func BudgetAlertFromJSON(data []byte) (*BudgetAlert, error) {
	var msg BudgetAlert
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Publisher delivers notifications. Implementations must be safe for
// concurrent use.
type Publisher interface {
	PublishBudgetAlert(ctx context.Context, alert BudgetAlert) error
	Close() error
}

// Nop discards every message. It is used when no broker is configured.
type Nop struct{}

func (Nop) PublishBudgetAlert(context.Context, BudgetAlert) error { return nil }
func (Nop) Close() error                                           { return nil }

// Recorder keeps published messages in memory.
type Recorder struct {
	mu     sync.Mutex
	alerts []BudgetAlert
}

func (r *Recorder) PublishBudgetAlert(_ context.Context, alert BudgetAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, alert)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Alerts returns a copy of everything published so far.
func (r *Recorder) Alerts() []BudgetAlert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]BudgetAlert(nil), r.alerts...)
}
