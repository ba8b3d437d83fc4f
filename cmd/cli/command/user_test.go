package command

import (
	"bytes"
	"context"
	"testing"

	domainerrors "yamdb/internal/errors"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserService struct {
	got dto.CreateUserDTO
	err error
}

func (s *stubUserService) List(ctx context.Context, search string, page repository.Page) (*dto.Paginated[dto.UserResponse], error) {
	return nil, nil
}

func (s *stubUserService) Get(ctx context.Context, username string) (*dto.UserResponse, error) {
	return nil, nil
}

func (s *stubUserService) Create(ctx context.Context, req dto.CreateUserDTO) (*dto.UserResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.UserResponse{Username: req.Username, Email: req.Email, Role: req.Role}, nil
}

func (s *stubUserService) Update(ctx context.Context, username string, req dto.UpdateUserDTO) (*dto.UserResponse, error) {
	return nil, nil
}

func (s *stubUserService) Delete(ctx context.Context, username string) error {
	return nil
}

func (s *stubUserService) Me(ctx context.Context, actor *models.User) (*dto.UserResponse, error) {
	return nil, nil
}

func (s *stubUserService) UpdateMe(ctx context.Context, actor *models.User, req dto.UpdateUserDTO) (*dto.UserResponse, error) {
	return nil, nil
}

func TestCreateUser(t *testing.T) {
	svc := &stubUserService{}
	var out bytes.Buffer

	req := dto.CreateUserDTO{Username: "root", Email: "root@example.com", Role: "admin"}
	require.NoError(t, createUser(context.Background(), &out, svc, req))

	assert.Equal(t, req, svc.got)
	assert.Contains(t, out.String(), "Username: root")
	assert.Contains(t, out.String(), "Role: admin")
}

func TestCreateUser_Conflict(t *testing.T) {
	svc := &stubUserService{err: domainerrors.ConflictOn("username", "username already taken")}
	var out bytes.Buffer

	err := createUser(context.Background(), &out, svc, dto.CreateUserDTO{Username: "root", Email: "root@example.com"})

	assert.ErrorIs(t, err, domainerrors.ErrConflict)
	assert.Empty(t, out.String())
}

func TestCreateUserFlags(t *testing.T) {
	for _, name := range []string{"username", "email", "role", "first-name", "last-name", "bio"} {
		assert.NotNil(t, createUserCmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "user", createUserCmd.Flags().Lookup("role").DefValue)
}
