package profile

import (
	"context"
	"fmt"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/repository"
)

type ProfileUseCase struct {
	profileRepo  repository.ProfileRepository
	locationRepo repository.LocationRepository
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	locationRepo repository.LocationRepository,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo:  profileRepo,
		locationRepo: locationRepo,
	}
}

// CreateProfileRequest is the first-save payload.
type CreateProfileRequest struct {
	Username    string `json:"username" binding:"required,username"`
	DisplayName string `json:"display_name" binding:"required,max=64"`
	Bio         string `json:"bio" binding:"max=500"`
	AvatarURL   string `json:"avatar_url" binding:"omitempty,url"`
}

type UpdateProfileRequest struct {
	Username    *string `json:"username" binding:"omitempty,username"`
	DisplayName *string `json:"display_name" binding:"omitempty,max=64"`
	Bio         *string `json:"bio" binding:"omitempty,max=500"`
	AvatarURL   *string `json:"avatar_url" binding:"omitempty,url"`
}

// UpdateLocationRequest carries the coordinate granted by the user.
// Pointers keep zero coordinates (the equator, the prime meridian) from
// tripping the required check.
type UpdateLocationRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required,latitude"`
	Longitude *float64 `json:"longitude" binding:"required,longitude"`
}

func (uc *ProfileUseCase) CreateProfile(ctx context.Context, userID int, req *CreateProfileRequest) (*domain.Profile, error) {
	if _, err := uc.profileRepo.GetByUserID(ctx, userID); err == nil {
		return nil, domain.ErrProfileAlreadyExists
	}

	profile := &domain.Profile{
		UserID:      userID,
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
	}
	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID int) (*domain.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}

func (uc *ProfileUseCase) GetProfileByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}

// UpdateProfile applies the owner's partial update.
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID int, req *UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		profile.Username = *req.Username
	}
	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateLocation records a new active coordinate, retiring the previous one.
func (uc *ProfileUseCase) UpdateLocation(ctx context.Context, userID int, req *UpdateLocationRequest) (*domain.Location, error) {
	location, err := uc.locationRepo.SetActive(ctx, userID, *req.Latitude, *req.Longitude)
	if err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}
	return location, nil
}

// ClearLocation withdraws location sharing; the user becomes
// location-unknown for matching.
func (uc *ProfileUseCase) ClearLocation(ctx context.Context, userID int) error {
	return uc.locationRepo.Deactivate(ctx, userID)
}

func (uc *ProfileUseCase) GetMyLocation(ctx context.Context, userID int) (*domain.Location, error) {
	return uc.locationRepo.GetActiveForUser(ctx, userID)
}
