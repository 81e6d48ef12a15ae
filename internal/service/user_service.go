package service

import (
	"errors"

	"go-jossydiva-api/internal/model"
	"go-jossydiva-api/internal/repository"
	"go-jossydiva-api/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken     = errors.New("email already registered")
	ErrSelfDelete     = errors.New("cannot delete your own account")
	ErrPasswordLength = errors.New("password must be at least 6 characters")
)

type UserService interface {
	GetUsers() ([]model.UserResponse, error)
	GetUser(id uuid.UUID) (*model.UserResponse, error)
	CreateUser(req *model.User, password string) (*model.UserResponse, error)
	UpdateUser(id uuid.UUID, req *model.User) (*model.UserResponse, error)
	DeleteUser(id uuid.UUID, actorID string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}
	return responses, nil
}

func (s *userService) GetUser(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	response := user.ToResponse()
	return &response, nil
}

func (s *userService) CreateUser(req *model.User, password string) (*model.UserResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if len(password) < 6 {
		return nil, ErrPasswordLength
	}

	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, ErrEmailTaken
	}

	if req.Role == "" {
		req.Role = model.RoleStaff
	}
	req.IsActive = true
	if err := req.SetPassword(password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(req); err != nil {
		return nil, err
	}

	response := req.ToResponse()
	return &response, nil
}

func (s *userService) UpdateUser(id uuid.UUID, req *model.User) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if req.Email != "" && req.Email != user.Email {
		if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
			return nil, ErrEmailTaken
		}
		user.Email = req.Email
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Role != "" {
		if req.Role != model.RoleAdmin && req.Role != model.RoleStaff {
			return nil, errors.New("invalid role")
		}
		user.Role = req.Role
	}
	user.IsActive = req.IsActive

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	response := user.ToResponse()
	return &response, nil
}

func (s *userService) DeleteUser(id uuid.UUID, actorID string) error {
	if id.String() == actorID {
		return ErrSelfDelete
	}
	if _, err := s.userRepo.FindByID(id); err != nil {
		return ErrUserNotFound
	}
	return s.userRepo.Delete(id)
}
