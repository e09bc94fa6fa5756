package user

import (
	"context"
	"errors"
	"log"

	"veriloan/internal/models"
	"veriloan/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	GetByID(id uint) (*models.User, error)
	Create(ctx context.Context, input *models.CreateUserInput) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(page, limit int) ([]*models.User, int64, error)
}

type service struct {
	repo     repositories.UserRepository
	registry repositories.VerifiedApplicantRepository
}

func NewService(repo repositories.UserRepository, registry repositories.VerifiedApplicantRepository) Service {
	return &service{
		repo:     repo,
		registry: registry,
	}
}

func (s *service) GetByID(id uint) (*models.User, error) {
	return s.repo.GetByID(id)
}

// Create registers a new user. Registration also touches the cross-bank
// registry: a known applicant registering here counts as one more
// institution, an unknown one gets a fresh record with a count of 1.
func (s *service) Create(ctx context.Context, input *models.CreateUserInput) (*models.User, error) {
	if input.Email == "" {
		return nil, errors.New("email is required")
	}

	existingUser, _ := s.repo.GetByEmail(input.Email)
	if existingUser != nil {
		return nil, errors.New("user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	role := input.Role
	if role != models.RoleAdmin {
		role = models.RoleCustomer
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashedPassword),
		Role:     role,
		Active:   true,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	if err := s.registry.EnsureExists(ctx, user.Email); err != nil {
		// The user exists either way; the registry row can be repaired by the
		// next admin upsert, so log rather than fail the registration.
		log.Printf("Failed to update registry bank count for %s: %v", user.Email, err)
	}

	return user, nil
}

func (s *service) Update(user *models.User) error {
	return s.repo.Update(user)
}

func (s *service) Delete(id uint) error {
	return s.repo.Delete(id)
}

func (s *service) List(page, limit int) ([]*models.User, int64, error) {
	offset := (page - 1) * limit
	return s.repo.List(offset, limit)
}
