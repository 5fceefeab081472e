package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/metrics"
	"github.com/kindredapp/kindred-backend/internal/repository"
)

const (
	DefaultMaxDistanceKm = 50.0
	DefaultLimit         = 20
)

// Params controls one ranking pass. Callers that want defaults start from
// DefaultParams; an explicit zero is invalid, not "use the default".
type Params struct {
	MaxDistanceKm float64
	Limit         int
}

func DefaultParams() Params {
	return Params{MaxDistanceKm: DefaultMaxDistanceKm, Limit: DefaultLimit}
}

type MatchUseCase struct {
	profileRepo      repository.ProfileRepository
	locationRepo     repository.LocationRepository
	userInterestRepo repository.UserInterestRepository
	queryTimeout     time.Duration
}

func NewMatchUseCase(
	profileRepo repository.ProfileRepository,
	locationRepo repository.LocationRepository,
	userInterestRepo repository.UserInterestRepository,
	queryTimeout time.Duration,
) *MatchUseCase {
	return &MatchUseCase{
		profileRepo:      profileRepo,
		locationRepo:     locationRepo,
		userInterestRepo: userInterestRepo,
		queryTimeout:     queryTimeout,
	}
}

// FindMatches assembles the candidate universe for the requester and returns
// the ranked, limited result set. The operation is read-only and safe to run
// concurrently. A requester with no profile gets an empty list, not an error:
// match semantics degrade gracefully to "no one".
func (uc *MatchUseCase) FindMatches(ctx context.Context, requesterID int, params Params) ([]domain.MatchResult, error) {
	if params.MaxDistanceKm <= 0 {
		metrics.MatchRequestsTotal.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("%w: max_distance_km must be positive", domain.ErrInvalidMatchParams)
	}
	if params.Limit < 1 {
		metrics.MatchRequestsTotal.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("%w: limit_results must be at least 1", domain.ErrInvalidMatchParams)
	}

	if uc.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.queryTimeout)
		defer cancel()
	}

	start := time.Now()

	if _, err := uc.profileRepo.GetByUserID(ctx, requesterID); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			metrics.MatchRequestsTotal.WithLabelValues("unknown_requester").Inc()
			return []domain.MatchResult{}, nil
		}
		metrics.MatchRequestsTotal.WithLabelValues("error").Inc()
		return nil, storeFailure("get requester profile", err)
	}

	requesterLoc, err := uc.locationRepo.GetActiveForUser(ctx, requesterID)
	if err != nil {
		metrics.MatchRequestsTotal.WithLabelValues("error").Inc()
		return nil, storeFailure("get requester location", err)
	}

	candidates, err := uc.assembleCandidates(ctx, requesterID)
	if err != nil {
		metrics.MatchRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	results := Rank(requesterLoc, candidates, params.MaxDistanceKm, params.Limit)

	metrics.MatchRequestsTotal.WithLabelValues("ok").Inc()
	metrics.MatchDuration.Observe(time.Since(start).Seconds())
	metrics.MatchResultsReturned.Observe(float64(len(results)))

	return results, nil
}

// assembleCandidates builds one row per other user: the profile, the active
// location if any, and the shared-interest count (a single grouped join, not
// a per-pair scan).
func (uc *MatchUseCase) assembleCandidates(ctx context.Context, requesterID int) ([]*domain.MatchCandidate, error) {
	profiles, err := uc.profileRepo.ListExcluding(ctx, requesterID)
	if err != nil {
		return nil, storeFailure("list candidate profiles", err)
	}

	sharedCounts, err := uc.userInterestRepo.SharedCounts(ctx, requesterID)
	if err != nil {
		return nil, storeFailure("count shared interests", err)
	}

	locations, err := uc.locationRepo.ListActive(ctx)
	if err != nil {
		return nil, storeFailure("list active locations", err)
	}

	candidates := make([]*domain.MatchCandidate, 0, len(profiles))
	for _, p := range profiles {
		candidates = append(candidates, &domain.MatchCandidate{
			Profile:         *p,
			Location:        locations[p.UserID],
			SharedInterests: sharedCounts[p.UserID],
		})
	}
	return candidates, nil
}

// storeFailure wraps read-path failures as retryable: the ranker performs no
// retries of its own, so the caller decides when to try again.
func storeFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
}
