package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) FindByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Create(ctx context.Context, u model.User) (model.User, error) {
	args := m.Called(ctx, u)
	created, _ := args.Get(0).(model.User)
	return created, args.Error(1)
}

func (m *UserRepoMock) UpdateLastLogin(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name       string
		in         RegisterInput
		wantStatus int
	}{
		{"bad email", RegisterInput{Email: "not-an-email", Password: "longenoughpassword"}, http.StatusBadRequest},
		{"short password", RegisterInput{Email: "maria@example.com", Password: "short"}, http.StatusBadRequest},
		{"unknown role", RegisterInput{Email: "maria@example.com", Password: "longenoughpassword", Role: "ADMIN"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UserRepoMock)
			uc := NewAuthUsecase(users, "test-secret", zap.NewNop())

			_, err := uc.Register(context.Background(), tt.in)

			he, ok := AsHTTPError(err)
			assert.True(t, ok)
			assert.Equal(t, tt.wantStatus, he.Status)
			users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := new(UserRepoMock)
	uc := NewAuthUsecase(users, "test-secret", zap.NewNop())

	users.On("FindByEmail", mock.Anything, "maria@example.com").Return(model.User{ID: 1}, nil)

	_, err := uc.Register(context.Background(), RegisterInput{
		Email:    "maria@example.com",
		Password: "longenoughpassword",
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterDefaultsToBuyer(t *testing.T) {
	users := new(UserRepoMock)
	uc := NewAuthUsecase(users, "test-secret", zap.NewNop())

	users.On("FindByEmail", mock.Anything, "maria@example.com").Return(model.User{}, repo.ErrNotFound)

	var created model.User
	users.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { created = args.Get(1).(model.User) }).
		Return(model.User{ID: 1, Email: "maria@example.com", Role: model.RoleBuyer}, nil)

	out, err := uc.Register(context.Background(), RegisterInput{
		Email:    "maria@example.com",
		Password: "longenoughpassword",
	})

	assert.NoError(t, err)
	assert.Equal(t, model.RoleBuyer, out.Role)
	assert.Equal(t, model.RoleBuyer, created.Role)
	assert.True(t, created.IsActive)

	//平文を保存しない
	assert.NotEqual(t, "longenoughpassword", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("longenoughpassword")))
}

func TestLoginIssuesToken(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("longenoughpassword"), bcrypt.MinCost)
	assert.NoError(t, err)

	users := new(UserRepoMock)
	uc := NewAuthUsecase(users, "test-secret", zap.NewNop())

	users.On("FindByEmail", mock.Anything, "maria@example.com").Return(model.User{
		ID: 7, Email: "maria@example.com", PasswordHash: string(hashed),
		Role: model.RoleBuyer, IsActive: true,
	}, nil)
	users.On("UpdateLastLogin", mock.Anything, int64(7)).Return(nil)

	out, err := uc.Login(context.Background(), LoginInput{
		Email:    "maria@example.com",
		Password: "longenoughpassword",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), out.User.ID)
	assert.True(t, out.ExpiresAt.After(time.Now()))

	token, err := jwt.Parse(out.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "7", claims["sub"])
	assert.Equal(t, "BUYER", claims["role"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("longenoughpassword"), bcrypt.MinCost)
	assert.NoError(t, err)

	active := model.User{ID: 7, PasswordHash: string(hashed), Role: model.RoleBuyer, IsActive: true}
	inactive := active
	inactive.IsActive = false

	tests := []struct {
		name     string
		stored   model.User
		storeErr error
		password string
	}{
		{"unknown email", model.User{}, repo.ErrNotFound, "longenoughpassword"},
		{"wrong password", active, nil, "wrongpassword"},
		{"inactive user", inactive, nil, "longenoughpassword"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UserRepoMock)
			uc := NewAuthUsecase(users, "test-secret", zap.NewNop())
			users.On("FindByEmail", mock.Anything, "maria@example.com").Return(tt.stored, tt.storeErr)

			_, err := uc.Login(context.Background(), LoginInput{Email: "maria@example.com", Password: tt.password})

			//どの失敗も同じ401を返す
			he, ok := AsHTTPError(err)
			assert.True(t, ok)
			assert.Equal(t, http.StatusUnauthorized, he.Status)
			assert.Equal(t, "invalid credentials", he.Message)
		})
	}
}
