package match

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kindredapp/kindred-backend/internal/domain"
)

type stubStore struct {
	profiles  map[int]*domain.Profile
	locations map[int]*domain.Location
	shared    map[int]map[int]int // requester -> candidate -> count

	profileErr  error
	listErr     error
	locationErr error
	sharedErr   error
}

func newStubStore() *stubStore {
	return &stubStore{
		profiles:  make(map[int]*domain.Profile),
		locations: make(map[int]*domain.Location),
		shared:    make(map[int]map[int]int),
	}
}

func (s *stubStore) addProfile(userID int, username string) {
	s.profiles[userID] = &domain.Profile{ID: userID, UserID: userID, Username: username, DisplayName: username}
}

func (s *stubStore) setLocation(userID int, lat, lon float64) {
	s.locations[userID] = &domain.Location{UserID: userID, Latitude: lat, Longitude: lon, IsActive: true}
}

func (s *stubStore) setShared(requesterID, candidateID, count int) {
	if s.shared[requesterID] == nil {
		s.shared[requesterID] = make(map[int]int)
	}
	s.shared[requesterID][candidateID] = count
}

func (s *stubStore) Create(ctx context.Context, profile *domain.Profile) error { return nil }

func (s *stubStore) GetByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	p, ok := s.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (s *stubStore) Update(ctx context.Context, profile *domain.Profile) error { return nil }

func (s *stubStore) ListExcluding(ctx context.Context, userID int) ([]*domain.Profile, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*domain.Profile
	// Deterministic order by user id, matching the SQL implementation.
	for id := 0; id < 1000; id++ {
		if id == userID {
			continue
		}
		if p, ok := s.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubStore) SetActive(ctx context.Context, userID int, lat, lon float64) (*domain.Location, error) {
	return nil, nil
}

func (s *stubStore) Deactivate(ctx context.Context, userID int) error { return nil }

func (s *stubStore) GetActiveForUser(ctx context.Context, userID int) (*domain.Location, error) {
	if s.locationErr != nil {
		return nil, s.locationErr
	}
	return s.locations[userID], nil
}

func (s *stubStore) ListActive(ctx context.Context) (map[int]*domain.Location, error) {
	if s.locationErr != nil {
		return nil, s.locationErr
	}
	return s.locations, nil
}

func (s *stubStore) Add(ctx context.Context, userID, interestID int) error    { return nil }
func (s *stubStore) Remove(ctx context.Context, userID, interestID int) error { return nil }

func (s *stubStore) ListForUser(ctx context.Context, userID int) ([]*domain.Interest, error) {
	return nil, nil
}

func (s *stubStore) SharedCounts(ctx context.Context, userID int) (map[int]int, error) {
	if s.sharedErr != nil {
		return nil, s.sharedErr
	}
	counts := make(map[int]int)
	for candidateID, count := range s.shared[userID] {
		counts[candidateID] = count
	}
	return counts, nil
}

func newUseCase(store *stubStore) *MatchUseCase {
	return NewMatchUseCase(store, store, store, 0)
}

func TestFindMatchesRejectsInvalidParams(t *testing.T) {
	store := newStubStore()
	store.addProfile(1, "alice")
	uc := newUseCase(store)
	ctx := context.Background()

	tests := []struct {
		name   string
		params Params
	}{
		{"negative max distance", Params{MaxDistanceKm: -5, Limit: 20}},
		{"zero max distance", Params{MaxDistanceKm: 0, Limit: 20}},
		{"negative limit", Params{MaxDistanceKm: 50, Limit: -1}},
		{"zero limit", Params{MaxDistanceKm: 50, Limit: 0}},
		{"all zero", Params{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.FindMatches(ctx, 1, tt.params); !errors.Is(err, domain.ErrInvalidMatchParams) {
				t.Errorf("got %v, want ErrInvalidMatchParams", err)
			}
		})
	}
}

func TestFindMatchesUnknownRequesterReturnsEmpty(t *testing.T) {
	store := newStubStore()
	store.addProfile(2, "bob")
	uc := newUseCase(store)

	results, err := uc.FindMatches(context.Background(), 999, DefaultParams())
	if err != nil {
		t.Fatalf("expected graceful empty list, got error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty list for unknown requester, got %d rows", len(results))
	}
}

func TestFindMatchesNeverReturnsSelf(t *testing.T) {
	store := newStubStore()
	for id := 1; id <= 5; id++ {
		store.addProfile(id, "user")
		store.setLocation(id, 10, 10)
	}
	for id := 2; id <= 5; id++ {
		store.setShared(1, id, 2)
	}
	store.setShared(1, 1, 3) // poisoned row: a self count must be ignored
	uc := newUseCase(store)

	results, err := uc.FindMatches(context.Background(), 1, DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range results {
		if r.UserID == 1 {
			t.Fatalf("requester appeared in their own match results")
		}
	}
	if len(results) != 4 {
		t.Errorf("expected 4 candidates, got %d", len(results))
	}
}

func TestFindMatchesLocationUnknownScenario(t *testing.T) {
	// Requester has no active location; candidate with a location and one
	// shared interest comes back with nil distance and score 10.
	store := newStubStore()
	store.addProfile(1, "alice")
	store.addProfile(2, "bob")
	store.setLocation(2, 48.8566, 2.3522)
	store.setShared(1, 2, 1)
	uc := newUseCase(store)

	results, err := uc.FindMatches(context.Background(), 1, DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].DistanceKm != nil {
		t.Errorf("expected nil distance, got %v", *results[0].DistanceKm)
	}
	if results[0].CompatibilityScore != 10 {
		t.Errorf("expected score 10, got %v", results[0].CompatibilityScore)
	}
}

func TestFindMatchesLimit(t *testing.T) {
	store := newStubStore()
	store.addProfile(1, "alice")
	for id := 2; id <= 10; id++ {
		store.addProfile(id, "user")
		store.setShared(1, id, id)
	}
	uc := newUseCase(store)

	results, err := uc.FindMatches(context.Background(), 1, Params{MaxDistanceKm: 50, Limit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected exactly 1 result, got %d", len(results))
	}
	// The single returned row is the highest scorer.
	if results[0].UserID != 10 {
		t.Errorf("expected user 10 (most shared interests), got %d", results[0].UserID)
	}
}

func TestFindMatchesStoreFailureIsRetryable(t *testing.T) {
	store := newStubStore()
	store.addProfile(1, "alice")
	store.listErr = errors.New("connection refused")
	uc := newUseCase(store)

	_, err := uc.FindMatches(context.Background(), 1, DefaultParams())
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if !domain.IsRetryable(err) {
		t.Errorf("store failure should be retryable")
	}
}

func TestFindMatchesAppliesQueryTimeout(t *testing.T) {
	store := newStubStore()
	store.addProfile(1, "alice")
	uc := NewMatchUseCase(blockingProfileRepo{store}, store, store, 10*time.Millisecond)

	_, err := uc.FindMatches(context.Background(), 1, DefaultParams())
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected timeout surfaced as ErrStoreUnavailable, got %v", err)
	}
}

type blockingProfileRepo struct {
	*stubStore
}

func (b blockingProfileRepo) GetByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
