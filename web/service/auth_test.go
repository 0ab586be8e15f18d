package service

import (
	"errors"
	"testing"
	"time"

	"github.com/careerconnect/careerconnect/database"
	"github.com/careerconnect/careerconnect/database/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	auth := setup(t)

	u, err := auth.Register("Ann", " Ann@Example.com ", "password1")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", u.Email)
	assert.Equal(t, model.RoleUser, u.Role)
	assert.NotEqual(t, "password1", u.PasswordHash)

	_, err = auth.Register("Ann Again", "ann@example.com", "password2")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	var count int64
	database.GetDB().Model(&model.User{}).Where("email = ?", "ann@example.com").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegisterValidation(t *testing.T) {
	auth := setup(t)
	tests := []struct {
		name, uname, email, password string
		want                         error
	}{
		{"blank name", " ", "a@b.co", "password1", ErrRegistrationRequired},
		{"blank email", "A", "", "password1", ErrRegistrationRequired},
		{"blank password", "A", "a@b.co", "", ErrRegistrationRequired},
		{"bad email", "A", "not-an-email", "password1", ErrInvalidEmail},
		{"short password", "A", "a@b.co", "123", ErrPasswordTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Register(tt.uname, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, KindValidation, AsError(err).Kind)
		})
	}
}

func TestLogin(t *testing.T) {
	auth := setup(t)
	u := mustRegister(t, auth, "Ann", "ann@example.com")

	res, err := auth.Login("ann@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)
	assert.Equal(t, AccessTokenTTL, res.Claims.ExpiresAt.Sub(res.Claims.IssuedAt.Time))

	claims, err := auth.Tokens().Parse(res.Token, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	id, err := auth.Authenticate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	_, errWrongPass := auth.Login("ann@example.com", "password2")
	_, errUnknown := auth.Login("nobody@example.com", "password1")
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.Equal(t, errWrongPass.Error(), errUnknown.Error())
}

func TestAccessTokenExpiry(t *testing.T) {
	auth := setup(t)
	mustRegister(t, auth, "Ann", "ann@example.com")
	res, err := auth.Login("ann@example.com", "password1")
	require.NoError(t, err)

	auth.tokens.now = func() time.Time { return time.Now().Add(AccessTokenTTL + time.Minute) }
	defer func() { auth.tokens.now = time.Now }()

	_, err = auth.Authenticate(res.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestTamperedAndForeignTokens(t *testing.T) {
	auth := setup(t)
	u := mustRegister(t, auth, "Ann", "ann@example.com")

	other := NewTokenService("another-secret")
	forged, _, err := other.Issue(u.ID, AccessToken)
	require.NoError(t, err)
	_, err = auth.Authenticate(forged)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = auth.Authenticate("not.a.jwt")
	assert.ErrorIs(t, err, ErrUnauthorized)

	reset, err := auth.IssuePasswordResetToken("ann@example.com")
	require.NoError(t, err)
	_, err = auth.Authenticate(reset.Token)
	assert.ErrorIs(t, err, ErrUnauthorized, "reset token must not work as bearer")

	login, err := auth.Login("ann@example.com", "password1")
	require.NoError(t, err)
	assert.ErrorIs(t, auth.ResetPassword(login.Token, "newpassword"), ErrInvalidResetToken)
}

func TestPasswordReset(t *testing.T) {
	auth := setup(t)
	mustRegister(t, auth, "Ann", "ann@example.com")

	_, err := auth.IssuePasswordResetToken("ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	reset, err := auth.IssuePasswordResetToken("ann@example.com")
	require.NoError(t, err)
	assert.Contains(t, reset.Link, reset.Token)
	assert.WithinDuration(t, time.Now().Add(ResetTokenTTL), reset.ExpiresAt, 2*time.Second)

	require.NoError(t, auth.ResetPassword(reset.Token, "brandnew1"))
	assert.ErrorIs(t, auth.ResetPassword(reset.Token, "brandnew2"), ErrInvalidResetToken)

	_, err = auth.Login("ann@example.com", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login("ann@example.com", "brandnew1")
	assert.NoError(t, err)
}

func TestPasswordResetChecksTokenBeforePassword(t *testing.T) {
	auth := setup(t)
	u := mustRegister(t, auth, "Ann", "ann@example.com")
	reset, err := auth.IssuePasswordResetToken("ann@example.com")
	require.NoError(t, err)

	forged, _, err := NewTokenService("another-secret").Issue(u.ID, ResetToken)
	require.NoError(t, err)
	assert.ErrorIs(t, auth.ResetPassword(forged, "123"), ErrInvalidResetToken)
	assert.ErrorIs(t, auth.ResetPassword("garbage", ""), ErrInvalidResetToken)

	assert.ErrorIs(t, auth.ResetPassword(reset.Token, "123"), ErrPasswordTooShort)
	var svcErr *Error
	require.ErrorAs(t, auth.ResetPassword(reset.Token, "  "), &svcErr)
	assert.Equal(t, KindValidation, svcErr.Kind)

	require.NoError(t, auth.ResetPassword(reset.Token, "brandnew1"), "rejected attempts do not redeem the token")
}

func TestPasswordResetRejectsExpiredAndDeletedUser(t *testing.T) {
	auth := setup(t)
	u := mustRegister(t, auth, "Ann", "ann@example.com")

	reset, err := auth.IssuePasswordResetToken("ann@example.com")
	require.NoError(t, err)

	auth.tokens.now = func() time.Time { return time.Now().Add(ResetTokenTTL + time.Second) }
	assert.ErrorIs(t, auth.ResetPassword(reset.Token, "brandnew1"), ErrInvalidResetToken)
	auth.tokens.now = time.Now

	users := UserService{}
	require.NoError(t, users.DeleteUser(u.ID))
	assert.ErrorIs(t, auth.ResetPassword(reset.Token, "brandnew1"), ErrInvalidResetToken)

	var count int64
	database.GetDB().Model(&model.PasswordResetRedemption{}).Count(&count)
	assert.Zero(t, count, "failed redemption must roll back")
}

func TestPurgeExpiredRedemptions(t *testing.T) {
	setup(t)
	db := database.GetDB()
	require.NoError(t, db.Create(&model.PasswordResetRedemption{JTI: "old", ExpiresAt: time.Now().Add(-time.Hour)}).Error)
	require.NoError(t, db.Create(&model.PasswordResetRedemption{JTI: "fresh", ExpiresAt: time.Now().Add(time.Hour)}).Error)

	n, err := PurgeExpiredRedemptions()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
