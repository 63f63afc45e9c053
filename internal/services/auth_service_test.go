package services_test

import (
	"errors"
	"testing"
	"time"

	"walkup/internal/apperr"
	"walkup/internal/models"
	"walkup/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func newAuthService(repo *MockUserRepository) *services.AuthService {
	return services.NewAuthService(repo, nil, testJWTSecret, time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	// Successful registration
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, errors.New("not found")).Once()
	mockRepo.On("GetByUsername", "testuser").Return(nil, errors.New("not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		user := args.Get(0).(*models.User)
		assert.Equal(t, "testuser", user.Username)
		assert.Equal(t, "test@example.com", user.Email)
		assert.Equal(t, models.RoleUser, user.Role)
		// The stored password must be a bcrypt hash, never the plaintext.
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	}).Return(nil).Once()

	err := authService.Register("testuser", "Test@Example.com", "password123")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Email already registered
	mockRepo.On("GetByEmail", "test@example.com").Return(&models.User{ID: "1"}, nil).Once()
	err = authService.Register("testuser", "test@example.com", "password123")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "User already exists with this email")
	mockRepo.AssertExpectations(t)

	// Username already taken
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, errors.New("not found")).Once()
	mockRepo.On("GetByUsername", "testuser").Return(&models.User{ID: "1"}, nil).Once()
	err = authService.Register("testuser", "test@example.com", "password123")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	mockRepo.AssertExpectations(t)

	// Password too short fails before any repository call
	err = authService.Register("testuser", "test@example.com", "short")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// Missing fields
	err = authService.Register("", "test@example.com", "password123")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}

	// Successful login
	mockRepo.On("GetByEmail", "test@example.com").Return(user, nil).Once()
	token, loggedIn, err := authService.Login("test@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["id"])
	assert.Equal(t, "testuser", claims["userName"])
	assert.Equal(t, models.RoleUser, claims["role"])
	mockRepo.AssertExpectations(t)

	// Wrong password
	mockRepo.On("GetByEmail", "test@example.com").Return(user, nil).Once()
	_, _, err = authService.Login("test@example.com", "wrongpassword")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "Invalid email or password")
	mockRepo.AssertExpectations(t)

	// Unknown email produces the exact same message as a wrong password
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, errors.New("not found")).Once()
	_, _, err = authService.Login("nobody@example.com", "password123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid email or password")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	// Garbage token
	_, err := authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid token")

	// Token signed with the wrong secret
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	foreignString, _ := foreign.SignedString([]byte("another_secret"))
	_, err = authService.ValidateToken(foreignString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid token")

	// Expired token gets its own message
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	expiredString, _ := expired.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Token expired")
}

func TestAuthService_ForgotPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)
	authService := services.NewAuthService(mockRepo, mockMailer, testJWTSecret, time.Hour)

	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
	}

	var savedToken string
	mockRepo.On("GetByEmail", "test@example.com").Return(user, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		updated := args.Get(0).(*models.User)
		assert.NotNil(t, updated.ResetPasswordToken)
		assert.NotNil(t, updated.ResetPasswordExpires)
		savedToken = *updated.ResetPasswordToken
		// 32 random bytes, hex encoded
		assert.Len(t, savedToken, 64)
		assert.WithinDuration(t, time.Now().Add(time.Hour), *updated.ResetPasswordExpires, time.Minute)
	}).Return(nil).Once()
	mockMailer.On("SendPasswordResetEmail", "test@example.com", "testuser", mock.AnythingOfType("string")).Return(nil).Once()

	err := authService.ForgotPassword("test@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, savedToken)
	mockRepo.AssertExpectations(t)
	mockMailer.AssertExpectations(t)

	// Unknown email reports success and sends nothing
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, errors.New("not found")).Once()
	err = authService.ForgotPassword("nobody@example.com")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockMailer.AssertNotCalled(t, "SendPasswordResetEmail", "nobody@example.com", mock.Anything, mock.Anything)
}

func TestAuthService_ResetPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	oldHash, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	token := "sometoken"
	expires := time.Now().Add(30 * time.Minute)
	user := &models.User{
		ID:                   "user-123",
		Username:             "testuser",
		Email:                "test@example.com",
		Password:             string(oldHash),
		ResetPasswordToken:   &token,
		ResetPasswordExpires: &expires,
	}

	// Successful reset replaces the hash and clears the token
	mockRepo.On("GetByResetToken", "sometoken", mock.AnythingOfType("time.Time")).Return(user, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		updated := args.Get(0).(*models.User)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newpassword")))
		assert.Nil(t, updated.ResetPasswordToken)
		assert.Nil(t, updated.ResetPasswordExpires)
	}).Return(nil).Once()

	err := authService.ResetPassword("sometoken", "newpassword")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Unknown or expired token
	mockRepo.On("GetByResetToken", "expiredtoken", mock.AnythingOfType("time.Time")).Return(nil, errors.New("not found")).Once()
	err = authService.ResetPassword("expiredtoken", "newpassword")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "Invalid or expired reset token")
	mockRepo.AssertExpectations(t)

	// New password too short fails before the lookup
	err = authService.ResetPassword("sometoken", "short")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
