package service

import (
	"context"
	"io"

	"github.com/alexanderramin/bluum/internal/coaching"
	"github.com/alexanderramin/bluum/internal/contract"
	"github.com/alexanderramin/bluum/internal/domain"
)

type UserService interface {
	// Resolve finds or creates the user for an identity-provider id.
	Resolve(ctx context.Context, externalID string) (*domain.User, error)
	Onboard(ctx context.Context, user *domain.User, req contract.OnboardRequest) (*domain.User, error)
}

// CycleResult is the day's state and whether this call created it.
type CycleResult struct {
	Status *domain.DailyStatus
	IsNew  bool
}

type CycleService interface {
	Today(ctx context.Context, user *domain.User, date string) (*contract.TodayResponse, error)
	GetOrCreate(ctx context.Context, userID, dateLocal string) (*CycleResult, error)
	Swap(ctx context.Context, user *domain.User, date string) (*contract.SwapResponse, error)
}

type ReflectionService interface {
	Submit(ctx context.Context, user *domain.User, req contract.ReflectRequest) (*contract.ReflectResponse, error)
	AddAddendum(ctx context.Context, user *domain.User, req contract.AddendumRequest) (*contract.AddendumResponse, error)
}

type MoodService interface {
	Log(ctx context.Context, user *domain.User, req contract.MoodRequest) (*contract.MoodResponse, error)
}

type StreakService interface {
	Get(ctx context.Context, user *domain.User, asOf string) (*contract.StreaksResponse, error)
}

type SummaryService interface {
	List(ctx context.Context, user *domain.User, req contract.SummariesRequest) (*contract.SummariesResponse, error)
}

type MomentService interface {
	Create(ctx context.Context, user *domain.User, req contract.MomentCreateRequest) (*contract.MomentView, error)
	List(ctx context.Context, user *domain.User, req contract.MomentListRequest) (*contract.MomentListResponse, error)
	UploadImage(ctx context.Context, user *domain.User, contentType string, r io.Reader) (string, error)
}

type ReminderService interface {
	Preview(ctx context.Context, user *domain.User, pool, date string) (*contract.ReminderResponse, error)
}

// ReflectionEvaluator moderates and coaches a reflection. It never fails;
// degraded stages come back as fallbacks.
type ReflectionEvaluator interface {
	Evaluate(ctx context.Context, in coaching.Input) coaching.Evaluation
}
