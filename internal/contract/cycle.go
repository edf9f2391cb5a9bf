package contract

// PromptView is the prompt shown for a day.
type PromptView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// PrimaryCTAReflect is the only call to action the today view offers.
const PrimaryCTAReflect = "reflect"

type TodayResponse struct {
	DateLocal           string     `json:"dateLocal"`
	OnboardingCompleted bool       `json:"onboardingCompleted"`
	HasReflected        bool       `json:"hasReflected"`
	HasMood             bool       `json:"hasMood"`
	Prompt              PromptView `json:"prompt"`
	DidSwapPrompt       bool       `json:"didSwapPrompt"`
	PrimaryCTA          string     `json:"primaryCta"`
}

type SwapResponse struct {
	DateLocal     string     `json:"dateLocal"`
	Prompt        PromptView `json:"prompt"`
	DidSwapPrompt bool       `json:"didSwapPrompt"`
}

type ReminderResponse struct {
	DateLocal string `json:"dateLocal"`
	Pool      string `json:"pool"`
	Message   string `json:"message"`
}
