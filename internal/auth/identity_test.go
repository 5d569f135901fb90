package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "smartblog/internal/errors"
	"smartblog/internal/model"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestIdentityResolver_Resolve(t *testing.T) {
	jwtService := NewJWTService("test-secret", 30)

	validToken, err := jwtService.Generate("user@example.com")
	assert.NoError(t, err)

	expiredToken, err := NewJWTService("test-secret", -1).Generate("user@example.com")
	assert.NoError(t, err)

	tests := []struct {
		name          string
		token         string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "active user resolves",
			token: validToken,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "user@example.com").Return(&model.User{
					Email:  "user@example.com",
					Active: true,
				}, nil)
			},
		},
		{
			name:          "malformed token",
			token:         "not-a-token",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrUnauthorized,
		},
		{
			name:          "expired token",
			token:         expiredToken,
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrUnauthorized,
		},
		{
			// Valid token whose subject no longer exists surfaces the same
			// error as a bad token.
			name:  "subject not found",
			token: validToken,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "user@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUnauthorized,
		},
		{
			name:  "inactive user",
			token: validToken,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "user@example.com").Return(&model.User{
					Email:  "user@example.com",
					Active: false,
				}, nil)
			},
			expectedError: apperrors.ErrAccountInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			resolver := NewIdentityResolver(jwtService, mockRepo)
			user, err := resolver.Resolve(context.Background(), tt.token)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, "user@example.com", user.Email)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
