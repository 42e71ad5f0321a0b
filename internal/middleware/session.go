package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/alimgiray/gitmentor/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "session"
	stateCookie   = "oauth_state"
	sessionTTL    = 24 * time.Hour
	stateTTL      = 10 * time.Minute
)

type SessionData struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionMiddleware handles session management using cookies
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get session from cookie
		sessionData := getSessionFromCookie(c)

		// Set session data in context
		c.Set("session", sessionData)

		c.Next()
	}
}

// getSessionFromCookie extracts and validates session data from cookie
func getSessionFromCookie(c *gin.Context) *SessionData {
	cookie, err := c.Cookie(sessionCookie)
	if err != nil {
		return nil
	}

	data, ok := verifyCookieValue(cookie)
	if !ok {
		return nil
	}

	decodedData, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		return nil
	}

	var sessionData SessionData
	if err := json.Unmarshal(decodedData, &sessionData); err != nil {
		return nil
	}

	// Check if session is expired
	if time.Now().After(sessionData.ExpiresAt) {
		return nil
	}

	return &sessionData
}

// SetSession creates a new session cookie
func SetSession(c *gin.Context, userID, username string) error {
	sessionData := SessionData{
		UserID:    userID,
		Username:  username,
		ExpiresAt: time.Now().Add(sessionTTL),
	}

	data, err := json.Marshal(sessionData)
	if err != nil {
		return err
	}

	encodedData := base64.URLEncoding.EncodeToString(data)
	setCookie(c, sessionCookie, signCookieValue(encodedData), int(sessionTTL.Seconds()))

	return nil
}

// ClearSession removes the session cookie
func ClearSession(c *gin.Context) {
	setCookie(c, sessionCookie, "", -1)
}

// NewOAuthState generates a random OAuth state and stores it in a short-lived signed cookie
func NewOAuthState(c *gin.Context) string {
	state := uuid.NewString()
	setCookie(c, stateCookie, signCookieValue(state), int(stateTTL.Seconds()))
	return state
}

// ConsumeOAuthState reports whether state matches the cookie set by NewOAuthState.
// The cookie is cleared either way.
func ConsumeOAuthState(c *gin.Context, state string) bool {
	cookie, err := c.Cookie(stateCookie)
	setCookie(c, stateCookie, "", -1)
	if err != nil || state == "" {
		return false
	}

	expected, ok := verifyCookieValue(cookie)
	if !ok {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(state))
}

func setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", false, true)
}

// signCookieValue returns "signature.data"
func signCookieValue(data string) string {
	return createSignature(data) + "." + data
}

// verifyCookieValue splits a signed cookie and returns its data when the signature holds
func verifyCookieValue(cookie string) (string, bool) {
	parts := strings.Split(cookie, ".")
	if len(parts) != 2 {
		return "", false
	}

	signature, data := parts[0], parts[1]
	if !verifySignature(data, signature) {
		return "", false
	}
	return data, true
}

// createSignature creates HMAC signature for data
func createSignature(data string) string {
	h := hmac.New(sha256.New, []byte(config.AppConfig.Session.Secret))
	h.Write([]byte(data))
	return base64.URLEncoding.EncodeToString(h.Sum(nil))
}

// verifySignature verifies HMAC signature
func verifySignature(data, signature string) bool {
	expectedSignature := createSignature(data)
	return hmac.Equal([]byte(signature), []byte(expectedSignature))
}

// GetSession retrieves session data from context
func GetSession(c *gin.Context) *SessionData {
	session, exists := c.Get("session")
	if !exists {
		return nil
	}

	if sessionData, ok := session.(*SessionData); ok {
		return sessionData
	}

	return nil
}
