// Package domain defines the core domain models for the job-post agent.
package domain

// Step represents a named stage of the conversational workflow.
type Step string

const (
	StepCollectingBasics  Step = "collecting_basics"
	StepCollectingDetails Step = "collecting_details"
	StepFinalizing        Step = "finalizing"
	StepComplete          Step = "complete"
)

// Terminal reports whether the step is the terminal workflow stage.
func (s Step) Terminal() bool {
	return s == StepComplete
}

// Valid reports whether the step is one of the known workflow stages.
func (s Step) Valid() bool {
	switch s {
	case StepCollectingBasics, StepCollectingDetails, StepFinalizing, StepComplete:
		return true
	}
	return false
}
