package service

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"ecocart.dev/ecocart/api/pkg/global"
	"ecocart.dev/ecocart/api/pkg/images"
	"ecocart.dev/ecocart/api/pkg/models"
	"ecocart.dev/ecocart/api/pkg/mongo"
)

const (
	// PasswordHashCost is the bcrypt work factor for stored credentials.
	PasswordHashCost = 10

	// MaxProfileImageSize caps profile picture uploads at 2 MiB.
	MaxProfileImageSize = 2 << 20
)

type AccountService struct {
	users   UserRepo
	images  ImageStore
	cleaner ImageCleaner
	log     *slog.Logger
	cost    int
}

func NewAccountService(users UserRepo, store ImageStore, cleaner ImageCleaner, log *slog.Logger) *AccountService {
	return &AccountService{
		users:   users,
		images:  store,
		cleaner: cleaner,
		log:     log,
		cost:    PasswordHashCost,
	}
}

func (s *AccountService) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := validate(&req, "Name, email and password are required"); err != nil {
		return err
	}

	_, err := s.users.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return global.NewConflict("User already exists")
	case !errors.Is(err, mongo.ErrNotFound):
		return global.NewInternalError("Internal Server Error", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return global.NewInternalError("Failed to process password", err)
	}

	if err := s.users.Create(ctx, models.NewUser(req.Email, string(hashed), req.Name)); err != nil {
		// Two registrations raced past the lookup; the unique index decides.
		if errors.Is(err, mongo.ErrDuplicate) {
			return global.NewConflict("User already exists")
		}
		return global.NewInternalError("Internal Server Error", err)
	}

	s.log.Info("user registered", slog.String("email", req.Email))
	return nil
}

// Login checks the credentials and returns the account without its
// password hash.
func (s *AccountService) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	if err := validate(&req, "Email and password are required"); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, mongo.ErrNotFound) {
		return nil, global.NewUnauthenticated("Invalid email or password")
	}
	if err != nil {
		return nil, global.NewInternalError("Internal Server Error", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, global.NewUnauthenticated("Invalid email or password")
	}

	return user.Sanitized(), nil
}

// UpdateProfile overwrites every profile field; optional fields that were
// not sent are cleared. It returns the profile image reference in effect
// after the update, or "" when the user has none.
func (s *AccountService) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest, image *images.Upload) (string, error) {
	if err := validate(&req, "Email, name, username, and pronouns are required"); err != nil {
		return "", err
	}
	if image != nil && image.Size > MaxProfileImageSize {
		return "", global.NewValidationError("Profile image is too large",
			global.ValidationError{Field: "profileImage", Message: "File must be at most 2MB", Code: "too_large"})
	}

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", userStoreError(err, "Profile update failed")
	}

	var newRef string
	if image != nil {
		if newRef, err = s.images.Save(images.DirProfiles, image); err != nil {
			return "", uploadError("profileImage", err)
		}
	}

	if err := s.users.UpdateByEmail(ctx, req.Email, req.ProfileUpdate(newRef)); err != nil {
		s.cleaner.Enqueue(newRef)
		return "", userStoreError(err, "Profile update failed")
	}

	if newRef == "" {
		return existing.ProfileImageURL, nil
	}
	if existing.ProfileImageURL != "" {
		s.cleaner.Enqueue(existing.ProfileImageURL)
	}
	return newRef, nil
}

// ChangePassword replaces the stored hash. The current password is not
// asked for.
func (s *AccountService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	if err := validate(&req, "Email and a new password of at least 6 characters are required"); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
	if err != nil {
		return global.NewInternalError("Failed to process password", err)
	}

	if err := s.users.UpdateByEmail(ctx, req.Email, bson.M{"password": string(hashed)}); err != nil {
		return userStoreError(err, "Failed to change password")
	}
	return nil
}

func userStoreError(err error, message string) error {
	if errors.Is(err, mongo.ErrNotFound) {
		return global.NewNotFound("User not found")
	}
	return global.NewInternalError(message, err)
}
