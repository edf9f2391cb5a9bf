package contract

const (
	DefaultSummaryLimit = 12
	MaxSummaryLimit     = 50
)

// SummariesRequest lists summaries. Type is "", "weekly" or "monthly";
// a zero Limit uses DefaultSummaryLimit.
type SummariesRequest struct {
	Type  string
	Limit int
}

func NewSummariesRequest() SummariesRequest {
	return SummariesRequest{Limit: DefaultSummaryLimit}
}

type SummaryView struct {
	ID               string `json:"id"`
	PeriodType       string `json:"periodType"`
	PeriodStartLocal string `json:"periodStartLocal"`
	PeriodEndLocal   string `json:"periodEndLocal"`
	SummaryText      string `json:"summaryText"`
}

type SummariesResponse struct {
	Summaries []SummaryView `json:"summaries"`
}
