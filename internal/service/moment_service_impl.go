package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/alexanderramin/bluum/internal/blob"
	"github.com/alexanderramin/bluum/internal/contract"
	"github.com/alexanderramin/bluum/internal/domain"
	"github.com/alexanderramin/bluum/internal/repository"
	"github.com/google/uuid"
)

type momentService struct {
	moments  repository.MomentRepo
	store    blob.Store
	clock    Clock
	observer UseCaseObserver
}

// NewMomentService builds the moments service. store may be nil, in which
// case image uploads are rejected.
func NewMomentService(moments repository.MomentRepo, store blob.Store, clock Clock, observers ...UseCaseObserver) MomentService {
	return &momentService{
		moments:  moments,
		store:    store,
		clock:    clockOrDefault(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *momentService) Create(ctx context.Context, user *domain.User, req contract.MomentCreateRequest) (view *contract.MomentView, err error) {
	fields := map[string]any{"user_id": user.ID}
	done := observe(ctx, s.observer, "create-moment", s.clock, fields)
	defer func() { done(err) }()

	imageURL := strings.TrimSpace(req.ImageURL)
	text := ""
	if strings.TrimSpace(req.Text) != "" {
		if text, err = cleanText("Moment text", req.Text, 1, contract.MaxMomentTextRunes); err != nil {
			return nil, err
		}
	}
	if text == "" && imageURL == "" {
		return nil, domain.Validationf("A moment needs text or an image")
	}
	fields["has_image"] = imageURL != ""

	// v7 ids sort by creation time, which the cursor relies on.
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	m := &domain.GratitudeMoment{
		ID:        id.String(),
		UserID:    user.ID,
		Text:      text,
		ImageURL:  imageURL,
		CreatedAt: s.clock(),
	}
	if err := s.moments.Create(ctx, m); err != nil {
		return nil, err
	}
	v := momentView(m)
	return &v, nil
}

func (s *momentService) List(ctx context.Context, user *domain.User, req contract.MomentListRequest) (*contract.MomentListResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = contract.DefaultMomentLimit
	}
	limit = domain.ClampInt(limit, 1, contract.MaxMomentLimit)

	// One extra row tells us whether another page exists.
	rows, err := s.moments.List(ctx, repository.MomentQuery{
		UserID: user.ID,
		Cursor: strings.TrimSpace(req.Cursor),
		Search: strings.TrimSpace(req.Search),
		Limit:  limit + 1,
	})
	if err != nil {
		return nil, err
	}

	resp := &contract.MomentListResponse{Moments: make([]contract.MomentView, 0, limit)}
	if len(rows) > limit {
		rows = rows[:limit]
		resp.NextCursor = rows[limit-1].ID
	}
	for _, m := range rows {
		resp.Moments = append(resp.Moments, momentView(m))
	}
	return resp, nil
}

func (s *momentService) UploadImage(ctx context.Context, user *domain.User, contentType string, r io.Reader) (url string, err error) {
	fields := map[string]any{"user_id": user.ID, "content_type": contentType}
	done := observe(ctx, s.observer, "upload-moment-image", s.clock, fields)
	defer func() { done(err) }()

	if s.store == nil {
		return "", domain.Validationf("Image uploads are not configured")
	}
	url, err = s.store.Put(ctx, user.ID, contentType, r)
	switch {
	case errors.Is(err, blob.ErrTooLarge):
		return "", domain.Validationf("Image must be %d MB or smaller", blob.MaxImageBytes>>20)
	case errors.Is(err, blob.ErrUnsupportedType):
		return "", domain.Validationf("Unsupported image type %q", contentType)
	case err != nil:
		return "", err
	}
	return url, nil
}

func momentView(m *domain.GratitudeMoment) contract.MomentView {
	return contract.MomentView{
		ID:        m.ID,
		Text:      m.Text,
		ImageURL:  m.ImageURL,
		CreatedAt: m.CreatedAt,
	}
}
