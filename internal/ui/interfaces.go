package ui

// Prompter defines interface for user interaction
type Prompter interface {
	ConfirmCreate(plan string) (bool, error)
}

// DefaultPrompter implements the actual prompting logic
type DefaultPrompter struct{}

// ConfirmCreate prompts user to confirm PR creation
func (p *DefaultPrompter) ConfirmCreate(plan string) (bool, error) {
	return ConfirmCreate(plan)
}

// MockPrompter for testing
type MockPrompter struct {
	Confirmed         bool
	ConfirmationError error

	// Call tracking
	ConfirmCreateCalled bool
	LastPlan            string
}

// ConfirmCreate mocks confirmation
func (m *MockPrompter) ConfirmCreate(plan string) (bool, error) {
	m.ConfirmCreateCalled = true
	m.LastPlan = plan
	return m.Confirmed, m.ConfirmationError
}
