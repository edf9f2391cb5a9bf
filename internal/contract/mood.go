package contract

// MoodRequest logs or replaces the day's mood.
type MoodRequest struct {
	Date   string
	Rating int
	Tags   []string
	Note   string
}

type MoodResponse struct {
	Saved     bool     `json:"saved"`
	DateLocal string   `json:"dateLocal"`
	Rating    int      `json:"rating"`
	Tags      []string `json:"tags"`
	Note      string   `json:"note,omitempty"`
}
