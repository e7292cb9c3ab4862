//go:build !integration
// +build !integration

package service_auth

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
)

type ServiceAuthUnitSuite struct {
	suite.Suite
}

type sessionCacheFake struct {
	mu       sync.Mutex
	sessions map[string]string
}

func newSessionCacheFake() *sessionCacheFake {
	return &sessionCacheFake{sessions: make(map[string]string)}
}

func (c *sessionCacheFake) Set(key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[key] = value
	return nil
}

func (c *sessionCacheFake) Get(key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessions[key], nil
}

func (c *sessionCacheFake) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, key)
	return nil
}

func (suite *ServiceAuthUnitSuite) TestIssueAndVerify(t provider.T) {
	t.Parallel()

	t.Run("Should verify a freshly issued token", func(t provider.T) {
		t.Parallel()
		service := New("test-secret", newSessionCacheFake(), time.Hour)
		userID := uuid.New()

		token, err := service.Issue(userID)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		got, err := service.Verify(token)
		assert.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("Should reject a token signed with another secret", func(t provider.T) {
		t.Parallel()
		cache := newSessionCacheFake()
		issuer := New("secret-a", cache, time.Hour)
		verifier := New("secret-b", cache, time.Hour)

		token, err := issuer.Issue(uuid.New())
		assert.NoError(t, err)

		_, err = verifier.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Should reject garbage input", func(t provider.T) {
		t.Parallel()
		service := New("test-secret", newSessionCacheFake(), time.Hour)

		_, err := service.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func (suite *ServiceAuthUnitSuite) TestRevoke(t provider.T) {
	t.Parallel()

	t.Run("Should invalidate the session before the token expires", func(t provider.T) {
		t.Parallel()
		service := New("test-secret", newSessionCacheFake(), time.Hour)
		userID := uuid.New()

		token, err := service.Issue(userID)
		assert.NoError(t, err)

		assert.NoError(t, service.Revoke(token))

		_, err = service.Verify(token)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("Should leave other sessions of the same user alive", func(t provider.T) {
		t.Parallel()
		service := New("test-secret", newSessionCacheFake(), time.Hour)
		userID := uuid.New()

		first, err := service.Issue(userID)
		assert.NoError(t, err)
		second, err := service.Issue(userID)
		assert.NoError(t, err)

		assert.NoError(t, service.Revoke(first))

		got, err := service.Verify(second)
		assert.NoError(t, err)
		assert.Equal(t, userID, got)
	})
}

func TestServiceAuthUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(ServiceAuthUnitSuite))
}
