package coaching

// Resource is one crisis support contact.
type Resource struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SafetyResponse replaces coaching when a reflection is flagged.
type SafetyResponse struct {
	Message   string     `json:"message"`
	Resources []Resource `json:"resources"`
}

// SupportResponse returns the fixed crisis-support payload.
func SupportResponse() SafetyResponse {
	return SafetyResponse{
		Message: "It sounds like you might be going through a difficult time. " +
			"Your feelings are valid, and support is available. " +
			"Please consider reaching out to someone who can help.",
		Resources: []Resource{
			{Label: "US - 988 Suicide & Crisis Lifeline", Value: "Call or text 988"},
			{Label: "UK - Samaritans", Value: "Call 116 123 (free, 24/7)"},
			{Label: "International", Value: "Contact your local emergency services"},
			{Label: "Crisis Text Line (US)", Value: "Text HOME to 741741"},
		},
	}
}
