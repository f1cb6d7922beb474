package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"forkful/internal/models"
	"forkful/internal/repository"
	"forkful/internal/validation"
)

// UserService handles account signup, lookup and password changes.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// SignupInput is the account creation payload.
type SignupInput struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// Signup validates the payload, checks uniqueness and creates the
// account with a bcrypt password hash.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	fe := models.NewFieldErrors()
	if err := validation.ValidateEmail(in.Email); err != nil {
		fe.Add("email", err.Error())
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		fe.Add("username", err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		fe.Add("password", err.Error())
	}
	if in.FirstName == "" {
		fe.Add("first_name", "First name is required")
	}
	if len(in.FirstName) > 150 {
		fe.Add("first_name", "First name too long (max 150 characters)")
	}
	if in.LastName == "" {
		fe.Add("last_name", "Last name is required")
	}
	if len(in.LastName) > 150 {
		fe.Add("last_name", "Last name too long (max 150 characters)")
	}
	if fe.HasErrors() {
		return nil, fe
	}

	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		fe.Add("email", "A user with this email already exists")
	}
	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		fe.Add("username", "A user with this username already exists")
	}
	if fe.HasErrors() {
		return nil, fe
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:     in.Email,
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  string(hash),
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies email+password and returns the account. Banned
// accounts cannot authenticate.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if !user.IsActive {
		return nil, models.NewForbiddenError("Account is disabled")
	}
	return user, nil
}

// GetProfile returns one user with the per-viewer subscription flag.
func (s *UserService) GetProfile(ctx context.Context, id, currentUserID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id, currentUserID)
}

// ListUsers pages through accounts.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.User, error) {
	return s.userRepo.List(ctx, limit, offset, currentUserID)
}

// SetPassword changes the user's password after verifying the current
// one.
func (s *UserService) SetPassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID, 0)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return models.NewValidationError("Current password is incorrect")
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		fe := models.NewFieldErrors()
		fe.Add("new_password", err.Error())
		return fe
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hash))
}

// IsStaff reports whether the user has staff privileges.
func (s *UserService) IsStaff(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID, 0)
	if err != nil {
		return false, err
	}
	return user.IsStaff, nil
}
