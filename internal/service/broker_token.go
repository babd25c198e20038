package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/guttosm/print-pricing-service/internal/domain/model"
)

var (
	// ErrInvalidToken is returned when token is invalid or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrTokenSecretNotConfigured is returned when no signing secret is set.
	ErrTokenSecretNotConfigured = errors.New("broker token secret not configured")
)

// DefaultBrokerTokenTTL is the lifetime of tokens issued by IssueToken.
const DefaultBrokerTokenTTL = 24 * time.Hour

// BrokerClaims are the claims carried by a broker bearer token.
type BrokerClaims struct {
	AccountID string `json:"account_id"`
	Broker    bool   `json:"broker"`
	jwt.RegisteredClaims
}

// BrokerTokenService verifies the bearer tokens issued to storefront accounts.
type BrokerTokenService interface {
	// Verify validates a token and returns the identity it carries.
	Verify(tokenString string) (model.BrokerIdentity, error)
	// IssueToken signs a token for an identity. Used by operators and tests.
	IssueToken(identity model.BrokerIdentity, ttl time.Duration) (string, error)
}

// BrokerTokenConfig holds configuration for the broker token service.
type BrokerTokenConfig struct {
	Secret string
	Issuer string
}

// BrokerTokenServiceImpl implements BrokerTokenService with HS256 JWTs.
type BrokerTokenServiceImpl struct {
	secret []byte
	issuer string
}

// NewBrokerTokenService creates a new broker token service.
func NewBrokerTokenService(cfg BrokerTokenConfig) *BrokerTokenServiceImpl {
	return &BrokerTokenServiceImpl{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
	}
}

// Verify validates a token and returns the identity it carries.
// The issuer is checked when one is configured.
func (s *BrokerTokenServiceImpl) Verify(tokenString string) (model.BrokerIdentity, error) {
	if len(s.secret) == 0 {
		return model.BrokerIdentity{}, ErrTokenSecretNotConfigured
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &BrokerClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return model.BrokerIdentity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*BrokerClaims)
	if !ok || !token.Valid || claims.AccountID == "" {
		return model.BrokerIdentity{}, ErrInvalidToken
	}

	return model.BrokerIdentity{AccountID: claims.AccountID, IsBroker: claims.Broker}, nil
}

// IssueToken signs a token for an identity.
func (s *BrokerTokenServiceImpl) IssueToken(identity model.BrokerIdentity, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrTokenSecretNotConfigured
	}
	if ttl <= 0 {
		ttl = DefaultBrokerTokenTTL
	}

	now := time.Now()
	claims := &BrokerClaims{
		AccountID: identity.AccountID,
		Broker:    identity.IsBroker,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   identity.AccountID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign broker token: %w", err)
	}
	return signed, nil
}
