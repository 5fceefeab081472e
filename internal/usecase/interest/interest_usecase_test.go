package interest

import (
	"context"
	"errors"
	"testing"

	"github.com/kindredapp/kindred-backend/internal/domain"
)

type stubInterestRepo struct {
	interests map[int]*domain.Interest
	nextID    int
}

func newStubInterestRepo() *stubInterestRepo {
	return &stubInterestRepo{interests: make(map[int]*domain.Interest), nextID: 1}
}

func (r *stubInterestRepo) Create(_ context.Context, interest *domain.Interest) error {
	interest.ID = r.nextID
	r.nextID++
	r.interests[interest.ID] = interest
	return nil
}

func (r *stubInterestRepo) GetByID(_ context.Context, id int) (*domain.Interest, error) {
	interest, ok := r.interests[id]
	if !ok {
		return nil, domain.ErrInterestNotFound
	}
	return interest, nil
}

func (r *stubInterestRepo) ListRoots(_ context.Context) ([]*domain.Interest, error) {
	var out []*domain.Interest
	for id := 0; id < r.nextID; id++ {
		if interest, ok := r.interests[id]; ok && interest.ParentID == nil {
			out = append(out, interest)
		}
	}
	return out, nil
}

func (r *stubInterestRepo) ListChildren(_ context.Context, parentID int) ([]*domain.Interest, error) {
	var out []*domain.Interest
	for id := 0; id < r.nextID; id++ {
		if interest, ok := r.interests[id]; ok && interest.ParentID != nil && *interest.ParentID == parentID {
			out = append(out, interest)
		}
	}
	return out, nil
}

func (r *stubInterestRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.interests[id]; !ok {
		return domain.ErrInterestNotFound
	}
	delete(r.interests, id)
	return nil
}

type stubUserInterestRepo struct {
	declared map[int]map[int]bool
}

func newStubUserInterestRepo() *stubUserInterestRepo {
	return &stubUserInterestRepo{declared: make(map[int]map[int]bool)}
}

func (r *stubUserInterestRepo) Add(_ context.Context, userID, interestID int) error {
	if r.declared[userID] == nil {
		r.declared[userID] = make(map[int]bool)
	}
	if r.declared[userID][interestID] {
		return domain.ErrInterestAlreadyDeclared
	}
	r.declared[userID][interestID] = true
	return nil
}

func (r *stubUserInterestRepo) Remove(_ context.Context, userID, interestID int) error {
	if !r.declared[userID][interestID] {
		return domain.ErrInterestNotFound
	}
	delete(r.declared[userID], interestID)
	return nil
}

func (r *stubUserInterestRepo) ListForUser(_ context.Context, userID int) ([]*domain.Interest, error) {
	var out []*domain.Interest
	for id := range r.declared[userID] {
		out = append(out, &domain.Interest{ID: id})
	}
	return out, nil
}

func (r *stubUserInterestRepo) SharedCounts(_ context.Context, userID int) (map[int]int, error) {
	return map[int]int{}, nil
}

func TestCreateCustom(t *testing.T) {
	ctx := context.Background()
	repo := newStubInterestRepo()
	uc := NewInterestUseCase(repo, newStubUserInterestRepo())

	root, err := uc.CreateCustom(ctx, &CreateInterestRequest{Name: "Music", Category: "arts"})
	if err != nil {
		t.Fatalf("CreateCustom() error = %v", err)
	}
	if root.Level != 0 {
		t.Errorf("root level = %d, want 0", root.Level)
	}
	if !root.IsCustom {
		t.Error("IsCustom = false, want true")
	}

	child, err := uc.CreateCustom(ctx, &CreateInterestRequest{ParentID: &root.ID, Name: "Jazz", Category: "arts"})
	if err != nil {
		t.Fatalf("CreateCustom() child error = %v", err)
	}
	if child.Level != 1 {
		t.Errorf("child level = %d, want 1", child.Level)
	}

	missing := 999
	if _, err := uc.CreateCustom(ctx, &CreateInterestRequest{ParentID: &missing, Name: "Orphan", Category: "misc"}); !errors.Is(err, domain.ErrInterestNotFound) {
		t.Errorf("unknown parent error = %v, want ErrInterestNotFound", err)
	}
}

func TestTaxonomyListing(t *testing.T) {
	ctx := context.Background()
	repo := newStubInterestRepo()
	uc := NewInterestUseCase(repo, newStubUserInterestRepo())

	root, _ := uc.CreateCustom(ctx, &CreateInterestRequest{Name: "Sports", Category: "active"})
	if _, err := uc.CreateCustom(ctx, &CreateInterestRequest{ParentID: &root.ID, Name: "Climbing", Category: "active"}); err != nil {
		t.Fatalf("CreateCustom() error = %v", err)
	}

	roots, err := uc.ListRoots(ctx)
	if err != nil {
		t.Fatalf("ListRoots() error = %v", err)
	}
	if len(roots) != 1 || roots[0].Name != "Sports" {
		t.Errorf("roots = %+v, want only Sports", roots)
	}

	children, err := uc.ListChildren(ctx, root.ID)
	if err != nil {
		t.Fatalf("ListChildren() error = %v", err)
	}
	if len(children) != 1 || children[0].Name != "Climbing" {
		t.Errorf("children = %+v, want only Climbing", children)
	}

	if _, err := uc.ListChildren(ctx, 999); !errors.Is(err, domain.ErrInterestNotFound) {
		t.Errorf("unknown parent error = %v, want ErrInterestNotFound", err)
	}
}

func TestDeclareAndRemove(t *testing.T) {
	ctx := context.Background()
	repo := newStubInterestRepo()
	userInterests := newStubUserInterestRepo()
	uc := NewInterestUseCase(repo, userInterests)

	interest, _ := uc.CreateCustom(ctx, &CreateInterestRequest{Name: "Hiking", Category: "active"})

	if err := uc.Declare(ctx, 1, interest.ID); err != nil {
		t.Fatalf("Declare() error = %v", err)
	}
	if err := uc.Declare(ctx, 1, 999); !errors.Is(err, domain.ErrInterestNotFound) {
		t.Errorf("unknown interest error = %v, want ErrInterestNotFound", err)
	}
	if err := uc.Declare(ctx, 1, interest.ID); !errors.Is(err, domain.ErrInterestAlreadyDeclared) {
		t.Errorf("duplicate declare error = %v, want ErrInterestAlreadyDeclared", err)
	}

	declared, err := uc.ListDeclared(ctx, 1)
	if err != nil {
		t.Fatalf("ListDeclared() error = %v", err)
	}
	if len(declared) != 1 {
		t.Errorf("declared = %d interests, want 1", len(declared))
	}

	if err := uc.Remove(ctx, 1, interest.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	declared, _ = uc.ListDeclared(ctx, 1)
	if len(declared) != 0 {
		t.Errorf("declared = %d after remove, want 0", len(declared))
	}
}
