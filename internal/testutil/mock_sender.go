// Package testutil provides test utilities and helpers for notify-agent-mcp tests.
package testutil

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/notify-agent/notify-agent-mcp/internal/notify"
)

// CallRecord records a single sender call with metadata.
type CallRecord struct {
	Notification notify.Notification
	Timestamp    time.Time
	Error        error
}

// MockSenderBuilder provides a fluent API for configuring mock sender behavior.
type MockSenderBuilder struct {
	responses    []error
	currentIndex int
	calls        []CallRecord
	unavailable  bool
	mu           sync.Mutex
}

// NewMockSenderBuilder creates a new MockSenderBuilder. With no queued
// responses every Send succeeds.
func NewMockSenderBuilder() *MockSenderBuilder {
	return &MockSenderBuilder{
		responses: make([]error, 0),
		calls:     make([]CallRecord, 0),
	}
}

// WithSuccess queues a successful Send.
func (b *MockSenderBuilder) WithSuccess() *MockSenderBuilder {
	b.responses = append(b.responses, nil)
	return b
}

// WithError queues a failing Send.
func (b *MockSenderBuilder) WithError(err error) *MockSenderBuilder {
	b.responses = append(b.responses, err)
	return b
}

// ThenSuccess queues another successful Send.
func (b *MockSenderBuilder) ThenSuccess() *MockSenderBuilder {
	return b.WithSuccess()
}

// ThenError queues another failing Send.
func (b *MockSenderBuilder) ThenError(err error) *MockSenderBuilder {
	return b.WithError(err)
}

// Unavailable makes the sender report an unsupported platform.
func (b *MockSenderBuilder) Unavailable() *MockSenderBuilder {
	b.unavailable = true
	return b
}

// Build returns the configured MockSender.
func (b *MockSenderBuilder) Build() *MockSender {
	return &MockSender{builder: b}
}

// MockSender implements notify.Sender and records every call.
type MockSender struct {
	builder *MockSenderBuilder
}

// NewMockSender returns a sender on which every Send succeeds.
func NewMockSender() *MockSender {
	return NewMockSenderBuilder().Build()
}

// Send records the call and returns the next queued response.
func (m *MockSender) Send(_ context.Context, n notify.Notification) error {
	m.builder.mu.Lock()
	defer m.builder.mu.Unlock()

	record := CallRecord{Notification: n, Timestamp: time.Now()}
	if m.builder.currentIndex < len(m.builder.responses) {
		record.Error = m.builder.responses[m.builder.currentIndex]
		m.builder.currentIndex++
	}
	m.builder.calls = append(m.builder.calls, record)
	return record.Error
}

// Available reports whether the builder marked the sender unavailable.
func (m *MockSender) Available() bool {
	return !m.builder.unavailable
}

// GetCalls returns all recorded calls.
func (m *MockSender) GetCalls() []CallRecord {
	m.builder.mu.Lock()
	defer m.builder.mu.Unlock()

	result := make([]CallRecord, len(m.builder.calls))
	copy(result, m.builder.calls)
	return result
}

// GetCallCount returns the number of Send calls made.
func (m *MockSender) GetCallCount() int {
	m.builder.mu.Lock()
	defer m.builder.mu.Unlock()
	return len(m.builder.calls)
}

// Titles returns the titles of all sent notifications in call order.
func (m *MockSender) Titles() []string {
	calls := m.GetCalls()
	titles := make([]string, len(calls))
	for i, c := range calls {
		titles[i] = c.Notification.Title
	}
	return titles
}

// CountTitlesContaining returns how many sent titles contain substr.
func (m *MockSender) CountTitlesContaining(substr string) int {
	n := 0
	for _, title := range m.Titles() {
		if strings.Contains(title, substr) {
			n++
		}
	}
	return n
}

// AssertSent verifies that a notification with the given title and message was sent.
func (m *MockSender) AssertSent(t *testing.T, title, message string) {
	t.Helper()

	calls := m.GetCalls()
	for _, call := range calls {
		if call.Notification.Title == title && call.Notification.Message == message {
			return
		}
	}

	t.Errorf("expected notification %q - %q, but it was not found in %d calls", title, message, len(calls))
}

// AssertNotCalled verifies that Send was never called.
func (m *MockSender) AssertNotCalled(t *testing.T) {
	t.Helper()

	if n := m.GetCallCount(); n > 0 {
		t.Errorf("expected Send to not be called, but was called %d times", n)
	}
}

// AssertCallCount verifies the number of Send calls.
func (m *MockSender) AssertCallCount(t *testing.T, expected int) {
	t.Helper()

	if n := m.GetCallCount(); n != expected {
		t.Errorf("expected Send to be called %d times, got %d", expected, n)
	}
}

// Reset clears all recorded calls and rewinds the response queue.
func (m *MockSender) Reset() {
	m.builder.mu.Lock()
	defer m.builder.mu.Unlock()

	m.builder.calls = make([]CallRecord, 0)
	m.builder.currentIndex = 0
}
