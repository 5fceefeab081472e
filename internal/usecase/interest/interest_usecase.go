package interest

import (
	"context"
	"fmt"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/repository"
)

type InterestUseCase struct {
	interestRepo     repository.InterestRepository
	userInterestRepo repository.UserInterestRepository
}

func NewInterestUseCase(
	interestRepo repository.InterestRepository,
	userInterestRepo repository.UserInterestRepository,
) *InterestUseCase {
	return &InterestUseCase{
		interestRepo:     interestRepo,
		userInterestRepo: userInterestRepo,
	}
}

type CreateInterestRequest struct {
	ParentID    *int   `json:"parent_id"`
	Name        string `json:"name" binding:"required,max=64"`
	Category    string `json:"category" binding:"required,max=64"`
	Icon        string `json:"icon" binding:"max=64"`
	Description string `json:"description" binding:"max=250"`
}

// ListRoots returns the top of the taxonomy (level 0, no parent).
func (uc *InterestUseCase) ListRoots(ctx context.Context) ([]*domain.Interest, error) {
	return uc.interestRepo.ListRoots(ctx)
}

func (uc *InterestUseCase) ListChildren(ctx context.Context, parentID int) ([]*domain.Interest, error) {
	if _, err := uc.interestRepo.GetByID(ctx, parentID); err != nil {
		return nil, err
	}
	return uc.interestRepo.ListChildren(ctx, parentID)
}

// CreateCustom adds a user-defined node; its level is one below the parent,
// or 0 when rootless.
func (uc *InterestUseCase) CreateCustom(ctx context.Context, req *CreateInterestRequest) (*domain.Interest, error) {
	level := 0
	if req.ParentID != nil {
		parent, err := uc.interestRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("invalid parent interest: %w", err)
		}
		level = parent.Level + 1
	}

	interest := &domain.Interest{
		ParentID:    req.ParentID,
		Name:        req.Name,
		Category:    req.Category,
		Level:       level,
		IsCustom:    true,
		Icon:        req.Icon,
		Description: req.Description,
	}
	if err := uc.interestRepo.Create(ctx, interest); err != nil {
		return nil, err
	}
	return interest, nil
}

// Declare adds an interest to the user's declared set.
func (uc *InterestUseCase) Declare(ctx context.Context, userID, interestID int) error {
	if _, err := uc.interestRepo.GetByID(ctx, interestID); err != nil {
		return err
	}
	return uc.userInterestRepo.Add(ctx, userID, interestID)
}

func (uc *InterestUseCase) Remove(ctx context.Context, userID, interestID int) error {
	return uc.userInterestRepo.Remove(ctx, userID, interestID)
}

func (uc *InterestUseCase) ListDeclared(ctx context.Context, userID int) ([]*domain.Interest, error) {
	return uc.userInterestRepo.ListForUser(ctx, userID)
}
