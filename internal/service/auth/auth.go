package service_auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNoSession    = errors.New("session not found")
	ErrInternal     = errors.New("internal error")
)

// SessionCache keeps one entry per live session so that sign-out revokes a
// token before its JWT expiry.
type SessionCache interface {
	Set(key string, value string, ttl time.Duration) error
	Get(key string) (string, error)
	Delete(key string) error
}

type Service struct {
	secret       []byte
	sessionCache SessionCache
	ttl          time.Duration
}

func New(secret string, sessionCache SessionCache, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &Service{
		secret:       []byte(secret),
		sessionCache: sessionCache,
		ttl:          ttl,
	}
}

// Issue mints a signed token carrying the user id and a fresh session id,
// and registers the session in the cache.
func (s *Service) Issue(userID uuid.UUID) (string, error) {
	sessionID := uuid.New().String()

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Join(ErrInternal, err)
	}

	if err := s.sessionCache.Set(sessionID, userID.String(), s.ttl); err != nil {
		return "", errors.Join(ErrInternal, err)
	}

	return token, nil
}

// Verify checks the signature and that the session is still registered, and
// returns the authenticated user id.
func (s *Service) Verify(token string) (uuid.UUID, error) {
	claims, err := s.parse(token)
	if err != nil {
		return uuid.Nil, err
	}

	stored, err := s.sessionCache.Get(claims.ID)
	if err != nil {
		return uuid.Nil, errors.Join(ErrInternal, err)
	}
	if stored == "" || stored != claims.Subject {
		return uuid.Nil, ErrNoSession
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}

// Revoke drops the token's session from the cache.
func (s *Service) Revoke(token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}

	if err := s.sessionCache.Delete(claims.ID); err != nil {
		return errors.Join(ErrInternal, err)
	}

	return nil
}

func (s *Service) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
