package domain

// TurnResult is what one conversational turn returns to the caller.
type TurnResult struct {
	Reply       string `json:"reply"`
	SessionID   string `json:"session_id"`
	CurrentStep Step   `json:"current_step"`
	IsComplete  bool   `json:"is_complete"`
	Record      Record `json:"record"`
}
