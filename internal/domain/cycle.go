package domain

import "time"

// PromptSnapshot freezes the prompt a user saw on a given day so later
// catalog edits never rewrite history.
type PromptSnapshot struct {
	PromptID   string
	PromptText string
}

// DailyStatus is the per-(user, date) cycle state.
type DailyStatus struct {
	ID            string
	UserID        string
	DateLocal     string
	Prompt        PromptSnapshot
	HasReflection bool
	HasMood       bool
	DidSwapPrompt bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PromptHistoryEntry records which prompt and tags were served on a day.
// It feeds the rotation rules and is written together with DailyStatus.
type PromptHistoryEntry struct {
	ID        string
	UserID    string
	DateLocal string
	PromptID  string
	TagsUsed  []string
	CreatedAt time.Time
}

// PrimaryTag returns the first tag used, or "general" when none were recorded.
func (h *PromptHistoryEntry) PrimaryTag() string {
	if len(h.TagsUsed) == 0 {
		return "general"
	}
	return h.TagsUsed[0]
}
