package contract

import "time"

const (
	DefaultMomentLimit = 20
	MaxMomentLimit     = 100
	MaxMomentTextRunes = 280
)

type MomentCreateRequest struct {
	Text     string
	ImageURL string
}

type MomentListRequest struct {
	Cursor string
	Search string
	Limit  int
}

func NewMomentListRequest() MomentListRequest {
	return MomentListRequest{Limit: DefaultMomentLimit}
}

type MomentView struct {
	ID        string    `json:"id"`
	Text      string    `json:"text,omitempty"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// MomentListResponse pages newest first. NextCursor is empty on the last page.
type MomentListResponse struct {
	Moments    []MomentView `json:"moments"`
	NextCursor string       `json:"nextCursor,omitempty"`
}
