package service

import (
	"net/mail"
	"strings"
	"time"

	"github.com/careerconnect/careerconnect/config"
	"github.com/careerconnect/careerconnect/database"
	"github.com/careerconnect/careerconnect/database/model"
	"github.com/careerconnect/careerconnect/logger"
	"github.com/careerconnect/careerconnect/util/crypto"

	"gorm.io/gorm"
)

const MinPasswordLength = 6

// AuthService covers registration, login and the password reset flow.
type AuthService struct {
	tokens *TokenService
}

// NewAuthService signs tokens with the configured JWT secret.
func NewAuthService() (*AuthService, error) {
	secret, err := config.GetJWTSecret()
	if err != nil {
		return nil, err
	}
	return &AuthService{tokens: NewTokenService(secret)}, nil
}

func (s *AuthService) Tokens() *TokenService {
	return s.tokens
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Token  string
	User   model.User
	Claims *Claims
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// Register creates a user with role "user". The unique index on email
// decides duplicates, so two concurrent registrations cannot both succeed.
func (s *AuthService) Register(name, email, password string) (*model.User, error) {
	return createUser(name, email, password, model.RoleUser)
}

func createUser(name, email, password string, role model.Role) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrRegistrationRequired
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := database.GetDB().Create(user).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	logger.Infof("user registered: %s (%s)", user.Email, user.Role)
	return user, nil
}

// Login checks the credentials and issues a one hour access token. Unknown
// email and wrong password produce the same error.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	var user model.User
	err := database.GetDB().Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !crypto.CheckPasswordHash(user.PasswordHash, password) {
		logger.Warningf("failed login for %s", user.Email)
		return nil, ErrInvalidCredentials
	}

	token, claims, err := s.tokens.Issue(user.ID, AccessToken)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user, Claims: claims}, nil
}

// Authenticate resolves a bearer token to the user id it was issued for.
func (s *AuthService) Authenticate(raw string) (string, error) {
	claims, err := s.tokens.Parse(raw, AccessToken)
	if err != nil {
		return "", ErrUnauthorized.withCause(err)
	}
	return claims.UserID, nil
}

// PasswordReset describes an issued reset token. Delivery is out of band:
// the link is written to the log and the token is handed back to the caller.
type PasswordReset struct {
	Token     string
	Link      string
	ExpiresAt time.Time
}

func (s *AuthService) IssuePasswordResetToken(email string) (*PasswordReset, error) {
	var user model.User
	err := database.GetDB().Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	token, claims, err := s.tokens.Issue(user.ID, ResetToken)
	if err != nil {
		return nil, err
	}
	link := config.GetResetURL() + "/" + token
	logger.Noticef("password reset link for %s: %s", user.Email, link)
	return &PasswordReset{Token: token, Link: link, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// ResetPassword consumes a reset token. The redemption row and the new hash
// are written in one transaction; the redemption primary key rejects a
// second use of the same token.
func (s *AuthService) ResetPassword(raw, newPassword string) error {
	claims, err := s.tokens.Parse(raw, ResetToken)
	if err != nil {
		return ErrInvalidResetToken.withCause(err)
	}
	if strings.TrimSpace(newPassword) == "" {
		return NewValidationError("New password is required")
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := crypto.HashPasswordAsBcrypt(newPassword)
	if err != nil {
		return err
	}

	return database.GetDB().Transaction(func(tx *gorm.DB) error {
		redemption := &model.PasswordResetRedemption{
			JTI:        claims.ID,
			UserID:     claims.UserID,
			ExpiresAt:  claims.ExpiresAt.Time,
			RedeemedAt: time.Now(),
		}
		if err := tx.Create(redemption).Error; err != nil {
			if database.IsDuplicate(err) {
				return ErrInvalidResetToken
			}
			return err
		}
		res := tx.Model(&model.User{}).Where("id = ?", claims.UserID).Update("password_hash", hash)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidResetToken
		}
		return nil
	})
}

// PurgeExpiredRedemptions drops redemption rows whose token can no longer
// verify anyway.
func PurgeExpiredRedemptions() (int64, error) {
	res := database.GetDB().Where("expires_at < ?", time.Now()).Delete(&model.PasswordResetRedemption{})
	return res.RowsAffected, res.Error
}
