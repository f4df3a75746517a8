package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdhoang/mockmate/config"
	"github.com/tdhoang/mockmate/internal/dto"
	"github.com/tdhoang/mockmate/internal/model"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	byID    map[string]*model.User
	byEmail map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func (f *fakeUserRepo) Create(user *model.User) error {
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(f.byID)+1)
	}
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) FindByID(id string) (*model.User, error) {
	if user, ok := f.byID[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	if user, ok := f.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func testAuthService(repo *fakeUserRepo) AuthService {
	return NewAuthService(repo, &config.Config{SessionSecret: "test-secret"})
}

func TestSignUp(t *testing.T) {
	t.Run("creates a user with a hashed password", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := testAuthService(repo)

		err := svc.SignUp(context.Background(), dto.SignUpRequest{
			Name:     "Thu Hoang",
			Email:    "thu@example.com",
			Password: "correct horse",
		})
		require.NoError(t, err)

		user, err := repo.FindByEmail("thu@example.com")
		require.NoError(t, err)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "correct horse", user.PasswordHash)
	})

	t.Run("duplicate email is a validation error", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := testAuthService(repo)
		req := dto.SignUpRequest{Name: "Thu", Email: "thu@example.com", Password: "correct horse"}

		require.NoError(t, svc.SignUp(context.Background(), req))
		err := svc.SignUp(context.Background(), req)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestSignInAndVerifySession(t *testing.T) {
	repo := newFakeUserRepo()
	svc := testAuthService(repo)
	signup := dto.SignUpRequest{Name: "Thu", Email: "thu@example.com", Password: "correct horse"}
	require.NoError(t, svc.SignUp(context.Background(), signup))

	t.Run("round trip", func(t *testing.T) {
		token, user, err := svc.SignIn(context.Background(), dto.SignInRequest{
			Email:    "thu@example.com",
			Password: "correct horse",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "thu@example.com", user.Email)

		verified, err := svc.VerifySession(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, verified.ID)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		_, _, err := svc.SignIn(context.Background(), dto.SignInRequest{
			Email:    "thu@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("unknown email is unauthorized", func(t *testing.T) {
		_, _, err := svc.SignIn(context.Background(), dto.SignInRequest{
			Email:    "nobody@example.com",
			Password: "correct horse",
		})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		_, err := svc.VerifySession(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		other := NewAuthService(repo, &config.Config{SessionSecret: "different-secret"})
		token, _, err := other.SignIn(context.Background(), dto.SignInRequest{
			Email:    "thu@example.com",
			Password: "correct horse",
		})
		require.NoError(t, err)

		_, err = svc.VerifySession(context.Background(), token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}
