package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionContext(t *testing.T, userID *uuid.UUID, sessionHeader string) *gin.Context {
	t.Helper()

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if sessionHeader != "" {
		c.Request.Header.Set("X-Session-ID", sessionHeader)
	}
	if userID != nil {
		c.Set("user_id", *userID)
	}
	return c
}

func TestGetSessionID(t *testing.T) {
	t.Run("no header falls back to the user ID", func(t *testing.T) {
		userID := uuid.New()
		sessionID := GetSessionID(sessionContext(t, &userID, ""))
		require.NotNil(t, sessionID)
		assert.Equal(t, userID, *sessionID)
	})

	t.Run("unparseable header falls back to the user ID", func(t *testing.T) {
		userID := uuid.New()
		sessionID := GetSessionID(sessionContext(t, &userID, "caisse-1"))
		require.NotNil(t, sessionID)
		assert.Equal(t, userID, *sessionID)
	})

	t.Run("no authenticated user yields no session", func(t *testing.T) {
		assert.Nil(t, GetSessionID(sessionContext(t, nil, uuid.NewString())))
	})

	t.Run("session key is bound to the user", func(t *testing.T) {
		// Two cashiers sending the same terminal session ID must never
		// land on the same cart
		header := uuid.NewString()
		first := uuid.New()
		second := uuid.New()

		firstSession := GetSessionID(sessionContext(t, &first, header))
		secondSession := GetSessionID(sessionContext(t, &second, header))
		require.NotNil(t, firstSession)
		require.NotNil(t, secondSession)
		assert.NotEqual(t, *firstSession, *secondSession)

		// And the derived key never equals the raw header value either
		assert.NotEqual(t, header, firstSession.String())
	})

	t.Run("same user and terminal always resolve the same session", func(t *testing.T) {
		header := uuid.NewString()
		userID := uuid.New()

		first := GetSessionID(sessionContext(t, &userID, header))
		second := GetSessionID(sessionContext(t, &userID, header))
		require.NotNil(t, first)
		require.NotNil(t, second)
		assert.Equal(t, *first, *second)
	})

	t.Run("distinct terminals of one user get distinct sessions", func(t *testing.T) {
		userID := uuid.New()

		first := GetSessionID(sessionContext(t, &userID, uuid.NewString()))
		second := GetSessionID(sessionContext(t, &userID, uuid.NewString()))
		require.NotNil(t, first)
		require.NotNil(t, second)
		assert.NotEqual(t, *first, *second)
	})
}
