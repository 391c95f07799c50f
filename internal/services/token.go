package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/elevennote/elevennote/internal/models"
)

// TokenValidity is how long an issued token stays valid.
const TokenValidity = 14 * 24 * time.Hour

// TokenConfig carries the signing settings for issued tokens.
type TokenConfig struct {
	Secret     string
	Issuer     string
	Audience   string
	IDClaimKey string // claim name holding the numeric user id
}

// TokenIssuer turns a username/password pair into a signed bearer token, or
// refuses with ErrInvalidCredentials. It holds no per-request state.
type TokenIssuer struct {
	db  *gorm.DB
	cfg TokenConfig
}

func NewTokenIssuer(db *gorm.DB, cfg TokenConfig) *TokenIssuer {
	if cfg.IDClaimKey == "" {
		cfg.IDClaimKey = "Id"
	}
	return &TokenIssuer{db: db, cfg: cfg}
}

// IssueToken validates the credentials and mints an HS256 token carrying the
// user's id, username, email and display name. Unknown username and wrong
// password produce the same outcome so callers cannot enumerate users.
func (s *TokenIssuer) IssueToken(ctx context.Context, username, password string) (*models.TokenResponse, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("LOWER(username) = LOWER(?)", username).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateToken(&user)
}

func (s *TokenIssuer) generateToken(user *models.User) (*models.TokenResponse, error) {
	issuedAt := time.Now()
	expiresAt := issuedAt.Add(TokenValidity)

	// MapClaims rather than a claims struct: the id claim key is configurable.
	claims := jwt.MapClaims{
		s.cfg.IDClaimKey: user.ID,
		"Username":       user.Username,
		"Email":          user.Email,
		"Name":           displayName(user),
		"iss":            s.cfg.Issuer,
		"aud":            s.cfg.Audience,
		"iat":            jwt.NewNumericDate(issuedAt),
		"exp":            jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, err
	}

	return &models.TokenResponse{
		Token:     signed,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// displayName is "first last" trimmed, falling back to the username when both
// name parts are blank.
func displayName(user *models.User) string {
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		return user.Username
	}
	return name
}
