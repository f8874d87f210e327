package events

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestBudgetAlertJSON(t *testing.T) {
	alert := BudgetAlert{
		Owner:     "ana",
		Category:  "Pets",
		Period:    "2025-03",
		Spent:     "80",
		Limit:     "100",
		Percent:   "80",
		Status:    "Warning",
		Timestamp: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}

	data, err := alert.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	got, err := BudgetAlertFromJSON(data)
	if err != nil {
		t.Fatalf("BudgetAlertFromJSON failed: %v", err)
	}
	if *got != alert {
		t.Errorf("Round trip mismatch: got %+v, want %+v", *got, alert)
	}

	if _, err := BudgetAlertFromJSON([]byte("{")); err == nil {
		t.Error("Expected error for malformed message")
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	var p Publisher = &r

	for i := range 3 {
		if err := p.PublishBudgetAlert(context.Background(), BudgetAlert{Category: fmt.Sprint(i)}); err != nil {
			t.Fatalf("PublishBudgetAlert failed: %v", err)
		}
	}

	alerts := r.Alerts()
	if len(alerts) != 3 {
		t.Fatalf("Expected 3 alerts, got %d", len(alerts))
	}
	alerts[0].Category = "changed"
	if r.Alerts()[0].Category != "0" {
		t.Error("Alerts must return a copy")
	}
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
		{40, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			if got := exponentialBackoff(tt.attempt); got != tt.expected {
				t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, got, tt.expected)
			}
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"EOF", errors.New("unexpected EOF"), true},
		{"broken pipe", errors.New("write: broken pipe"), true},
		{"auth failure", errors.New("Exception (403) Reason: \"username or password not allowed\""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConnectionError(tt.err); got != tt.expected {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestNewAMQPPublisher_InvalidURL(t *testing.T) {
	_, err := NewAMQPPublisher(context.Background(), "not-a-url", "ex", "q", 3, nil)
	if err == nil {
		t.Fatal("Expected error for invalid URL")
	}
}
