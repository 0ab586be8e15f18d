package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	AccessToken TokenType = "access"
	ResetToken  TokenType = "reset"
)

const (
	AccessTokenTTL = time.Hour
	ResetTokenTTL  = 15 * time.Minute
)

// Claims is the payload of every token we sign. Type keeps a reset token from
// being accepted as a bearer credential and vice versa.
type Claims struct {
	UserID string    `json:"id"`
	Type   TokenType `json:"typ"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 tokens.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), now: time.Now}
}

func ttlFor(typ TokenType) time.Duration {
	if typ == ResetToken {
		return ResetTokenTTL
	}
	return AccessTokenTTL
}

// Issue signs a token of the given type for userID.
func (s *TokenService) Issue(userID string, typ TokenType) (string, *Claims, error) {
	now := s.now().Truncate(time.Second)
	claims := &Claims{
		UserID: userID,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttlFor(typ))),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// Parse verifies signature, expiry and type of raw.
func (s *TokenService) Parse(raw string, typ TokenType) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if claims.Type != typ {
		return nil, errors.New("unexpected token type")
	}
	if claims.UserID == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}
