package service

import (
	"context"

	domainerrors "yamdb/internal/errors"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/policy"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/validation"
)

// UserService covers admin user management (addressed by username) and the
// caller's own profile.
type UserService interface {
	List(ctx context.Context, search string, page repository.Page) (*dto.Paginated[dto.UserResponse], error)
	Get(ctx context.Context, username string) (*dto.UserResponse, error)
	Create(ctx context.Context, req dto.CreateUserDTO) (*dto.UserResponse, error)
	Update(ctx context.Context, username string, req dto.UpdateUserDTO) (*dto.UserResponse, error)
	Delete(ctx context.Context, username string) error

	Me(ctx context.Context, actor *models.User) (*dto.UserResponse, error)
	// UpdateMe ignores any role in req.
	UpdateMe(ctx context.Context, actor *models.User, req dto.UpdateUserDTO) (*dto.UserResponse, error)
}

type userService struct {
	userRepo  repository.UserRepository
	validator *validation.Validator
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo, validator: validation.New()}
}

func (s *userService) List(ctx context.Context, search string, page repository.Page) (*dto.Paginated[dto.UserResponse], error) {
	users, total, err := s.userRepo.List(ctx, search, page)
	if err != nil {
		return nil, err
	}
	data := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		data = append(data, dto.FromUser(&users[i]))
	}
	return dto.NewPaginated(data, total, page.Number, page.Size), nil
}

func (s *userService) Get(ctx context.Context, username string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	resp := dto.FromUser(user)
	return &resp, nil
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserDTO) (*dto.UserResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	role := models.RoleUser
	if req.Role != "" {
		parsed, err := models.ParseRole(req.Role)
		if err != nil {
			return nil, domainerrors.FieldInvalid("role", err.Error())
		}
		role = parsed
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}
	if err := s.checkUnique(ctx, user, ""); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := dto.FromUser(user)
	return &resp, nil
}

func (s *userService) Update(ctx context.Context, username string, req dto.UpdateUserDTO) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, user, req, true)
}

func (s *userService) Delete(ctx context.Context, username string) error {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, user.ID)
}

func (s *userService) Me(ctx context.Context, actor *models.User) (*dto.UserResponse, error) {
	if err := policy.Enforce(policy.SubjectOf(actor), policy.Profile, policy.Read, ""); err != nil {
		return nil, err
	}
	resp := dto.FromUser(actor)
	return &resp, nil
}

func (s *userService) UpdateMe(ctx context.Context, actor *models.User, req dto.UpdateUserDTO) (*dto.UserResponse, error) {
	if err := policy.Enforce(policy.SubjectOf(actor), policy.Profile, policy.Update, ""); err != nil {
		return nil, err
	}
	me := *actor
	return s.update(ctx, &me, req, false)
}

func (s *userService) update(ctx context.Context, user *models.User, req dto.UpdateUserDTO, withRole bool) (*dto.UserResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	req.ApplyTo(user, withRole)
	if err := s.checkUnique(ctx, user, user.ID); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := dto.FromUser(user)
	return &resp, nil
}

// checkUnique reports a field-level conflict when another account (not selfID)
// already holds the username or email.
func (s *userService) checkUnique(ctx context.Context, user *models.User, selfID string) error {
	if other, err := s.userRepo.FindByUsername(ctx, user.Username); err == nil {
		if other.ID != selfID {
			return domainerrors.ConflictOn("username", "a user with this username already exists")
		}
	} else if !domainerrors.Is(err, domainerrors.ErrNotFound) {
		return err
	}

	if other, err := s.userRepo.FindByEmail(ctx, user.Email); err == nil {
		if other.ID != selfID {
			return domainerrors.ConflictOn("email", "a user with this email already exists")
		}
	} else if !domainerrors.Is(err, domainerrors.ErrNotFound) {
		return err
	}
	return nil
}
