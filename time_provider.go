package reagent

import "time"

// TimeProvider supplies the current time to agents. It allows injecting a
// fixed time source for testing and provides formatting helpers for use in
// prompt templates.
//
// All methods are accessible in templates via the .Time field:
//
//	Today is {{.Time.Today}} ({{.Time.Weekday}})
//	Current time: {{.Time.Format "3:04 PM"}}
type TimeProvider interface {
	// Now returns the current time.
	Now() time.Time

	// Today returns today's date as a string (YYYY-MM-DD).
	Today() string

	// Weekday returns the current day of the week (e.g., "Monday").
	Weekday() string

	// Format returns the current time formatted with the given layout,
	// using Go's time layout format.
	Format(layout string) string
}

// DefaultTimeProvider is the standard TimeProvider using the system clock.
type DefaultTimeProvider struct{}

// NewDefaultTimeProvider creates a new DefaultTimeProvider.
func NewDefaultTimeProvider() *DefaultTimeProvider {
	return &DefaultTimeProvider{}
}

// Now returns the current system time.
func (p *DefaultTimeProvider) Now() time.Time {
	return time.Now()
}

// Today returns today's date as YYYY-MM-DD.
func (p *DefaultTimeProvider) Today() string {
	return time.Now().Format("2006-01-02")
}

// Weekday returns the current day of the week.
func (p *DefaultTimeProvider) Weekday() string {
	return time.Now().Weekday().String()
}

// Format returns the current time formatted with the given layout.
func (p *DefaultTimeProvider) Format(layout string) string {
	return time.Now().Format(layout)
}

// MockTimeProvider is a TimeProvider that returns a fixed time. Use in
// tests for deterministic prompts.
type MockTimeProvider struct {
	Fixed time.Time
}

// NewMockTimeProvider creates a MockTimeProvider frozen at t.
func NewMockTimeProvider(t time.Time) *MockTimeProvider {
	return &MockTimeProvider{Fixed: t}
}

// Now returns the fixed time.
func (p *MockTimeProvider) Now() time.Time {
	return p.Fixed
}

// Today returns the fixed date as YYYY-MM-DD.
func (p *MockTimeProvider) Today() string {
	return p.Fixed.Format("2006-01-02")
}

// Weekday returns the fixed day of the week.
func (p *MockTimeProvider) Weekday() string {
	return p.Fixed.Weekday().String()
}

// Format returns the fixed time formatted with the given layout.
func (p *MockTimeProvider) Format(layout string) string {
	return p.Fixed.Format(layout)
}

var (
	_ TimeProvider = (*DefaultTimeProvider)(nil)
	_ TimeProvider = (*MockTimeProvider)(nil)
)
