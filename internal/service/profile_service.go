// Package service contains business logic between HTTP handlers and repositories.
package service

import (
	"context"

	"resonate/internal/models"
	"resonate/internal/repository"
	"resonate/internal/validation"
)

type ProfileService struct {
	userRepo repository.UserRepository
}

// UpdateProfileInput carries a sparse profile update. Pointer fields that are
// nil were absent from the request and are left untouched.
type UpdateProfileInput struct {
	UserID         uint
	Name           *string
	Bio            *string
	Sex            *models.Sex
	Interests      *models.SexList
	ProfilePicture *string
	Tracks         map[string]models.Track
}

func NewProfileService(userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

func (s *ProfileService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *ProfileService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile validates the provided fields and writes only those columns.
func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	fields := map[string]interface{}{}

	if in.Name != nil {
		if err := validation.ValidateName(*in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		fields["name"] = *in.Name
	}
	if in.Bio != nil {
		if err := validation.ValidateBio(*in.Bio); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		fields["bio"] = *in.Bio
	}
	if in.Sex != nil {
		if err := validation.ValidateSex(*in.Sex); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		fields["sex"] = *in.Sex
	}
	if in.Interests != nil {
		if err := validation.ValidateInterests(*in.Interests); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		fields["interests"] = *in.Interests
	}
	if in.ProfilePicture != nil {
		fields["profile_picture"] = *in.ProfilePicture
	}
	for slot, track := range in.Tracks {
		if (&models.User{}).TrackSlot(slot) == nil {
			return nil, models.NewValidationError("unknown track slot: " + slot)
		}
		fields[slot] = track
	}

	if err := s.userRepo.UpdateFields(ctx, in.UserID, fields); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, in.UserID)
}
