package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"walkup/internal/apperr"
	"walkup/internal/models"
	"walkup/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is deliberately above the library default; password hashes are
// long-lived.
const bcryptCost = 12

const resetTokenTTL = time.Hour

// AuthService handles registration, login, password recovery and session
// token validation.
type AuthService struct {
	userRepo  repositories.UserRepository
	mailer    Mailer
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService. mailer may be nil, in which case
// no email is sent.
func NewAuthService(userRepo repositories.UserRepository, mailer Mailer, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		mailer:    mailer,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Register creates a new account with a salted password hash. Duplicate email
// or username fails with a conflict; the welcome email is best-effort.
func (s *AuthService) Register(username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" || email == "" || password == "" {
		return apperr.Validation("All fields are required")
	}
	if len(password) < 6 {
		return apperr.Validation("Password must be at least 6 characters long")
	}

	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return apperr.Conflict("User already exists with this email")
	}
	if existing, err := s.userRepo.GetByUsername(username); err == nil && existing != nil {
		return apperr.Conflict("Username is already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return apperr.Internal(err, "failed to hash password")
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return apperr.Internal(err, "failed to register user")
	}

	if s.mailer != nil {
		go func() {
			if err := s.mailer.SendWelcomeEmail(email, username); err != nil {
				log.Printf("Welcome email failed to send: %v", err)
			}
		}()
	}

	return nil
}

// Login verifies credentials and issues a signed session token. A wrong
// password and an unknown email produce the same error, so callers cannot
// probe which accounts exist.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil || user == nil {
		return "", nil, apperr.Unauthorized("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.Unauthorized("Invalid email or password")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       user.ID,
		"role":     user.Role,
		"email":    user.Email,
		"userName": user.Username,
		"exp":      now.Add(s.tokenTTL).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, apperr.Internal(err, "failed to generate token")
	}

	return tokenString, user, nil
}

// ValidateToken parses and verifies a session token and returns its claims.
// An expired token and an otherwise invalid one are distinguished only in the
// error message.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if vErr, ok := err.(*jwt.ValidationError); ok && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, apperr.Unauthorized("Token expired")
		}
		return nil, apperr.Unauthorized("Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperr.Unauthorized("Invalid token")
	}
	return claims, nil
}

// ForgotPassword stores a one-hour reset token on the account and dispatches
// the reset email. The outcome is identical whether or not the email exists,
// so the endpoint cannot be used to enumerate accounts.
func (s *AuthService) ForgotPassword(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return apperr.Validation("Email is required")
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil || user == nil {
		// Pretend success for unknown addresses.
		return nil
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return apperr.Internal(err, "failed to generate reset token")
	}
	resetToken := hex.EncodeToString(tokenBytes)
	expires := time.Now().Add(resetTokenTTL)

	user.ResetPasswordToken = &resetToken
	user.ResetPasswordExpires = &expires
	if err := s.userRepo.Update(user); err != nil {
		return apperr.Internal(err, "failed to store reset token")
	}

	if s.mailer != nil {
		if err := s.mailer.SendPasswordResetEmail(user.Email, user.Username, resetToken); err != nil {
			log.Printf("Password reset email failed to send: %v", err)
		}
	}

	return nil
}

// ResetPassword consumes a reset token: it replaces the password hash and
// clears the token so it cannot be used twice.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if token == "" || newPassword == "" {
		return apperr.Validation("Token and new password are required")
	}
	if len(newPassword) < 6 {
		return apperr.Validation("Password must be at least 6 characters long")
	}

	user, err := s.userRepo.GetByResetToken(token, time.Now())
	if err != nil || user == nil {
		return apperr.Validation("Invalid or expired reset token")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return apperr.Internal(err, "failed to hash password")
	}

	user.Password = string(hashedPassword)
	user.ResetPasswordToken = nil
	user.ResetPasswordExpires = nil
	if err := s.userRepo.Update(user); err != nil {
		return apperr.Internal(err, "failed to update password")
	}

	return nil
}
