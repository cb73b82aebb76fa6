package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) string {
	role, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	return role.(string)
}

// GetSessionID resolves the cart session for the request. A terminal may
// pin its own session via the X-Session-ID header; the key is derived from
// the header AND the authenticated user, so a cart is only ever reachable by
// the cashier who opened it, whatever session ID the client sends. Without
// the header the cashier's user ID is the session, one open cart per cashier.
func GetSessionID(c *gin.Context) *uuid.UUID {
	userID := GetUserID(c)
	if userID == nil {
		return nil
	}

	if header := c.GetHeader("X-Session-ID"); header != "" {
		if terminalID, err := uuid.Parse(header); err == nil {
			sessionID := uuid.NewSHA1(*userID, terminalID[:])
			return &sessionID
		}
	}
	return userID
}
