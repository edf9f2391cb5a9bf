package contract

// ReflectRequest submits the day's reflection. An empty Date means today in
// the user's timezone.
type ReflectRequest struct {
	Date         string
	ResponseText string
}

type ScoresView struct {
	Specificity int `json:"specificity"`
	Meaning     int `json:"meaning"`
	Emotion     int `json:"emotion"`
}

type CoachView struct {
	Type   string      `json:"type"`
	Text   string      `json:"text"`
	Scores *ScoresView `json:"scores,omitempty"`
}

type ResourceView struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type SafeResponseView struct {
	Message   string         `json:"message"`
	Resources []ResourceView `json:"resources"`
}

// ReflectResponse carries either Coach or SafeResponse, never both.
type ReflectResponse struct {
	Saved            bool              `json:"saved"`
	DateLocal        string            `json:"dateLocal"`
	SafetyFlagged    bool              `json:"safetyFlagged"`
	SafeResponse     *SafeResponseView `json:"safeResponse,omitempty"`
	Coach            *CoachView        `json:"coach,omitempty"`
	SuccessMessage   string            `json:"successMessage,omitempty"`
	CurrentStreak    int               `json:"currentStreak"`
	TotalReflections int               `json:"totalReflections"`
}

type AddendumRequest struct {
	Date string
	Text string
}

type AddendumResponse struct {
	Saved     bool   `json:"saved"`
	DateLocal string `json:"dateLocal"`
	Text      string `json:"text"`
}

type StreaksResponse struct {
	AsOf             string `json:"asOf"`
	CurrentStreak    int    `json:"currentStreak"`
	LongestStreak    int    `json:"longestStreak"`
	TotalReflections int    `json:"totalReflections"`
}
