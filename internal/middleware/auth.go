package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"backend/internal/permission"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionKey = "authSession"

// registry holds the static capability table, set once via InitAuth at boot.
var registry *permission.Registry

// InitAuth sets the capability registry used by the auth middleware.
func InitAuth(reg *permission.Registry) {
	registry = reg
}

func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only, DO NOT use in production
	}
	return []byte(secret)
}

// SetTokenCookies sets access_token and refresh_token as HttpOnly cookies
func SetTokenCookies(c *gin.Context, accessToken, refreshToken string) {
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	// access_token: 24h, refresh_token: 7 days
	c.SetCookie("access_token", accessToken, 3600*24, "/", "", secure, true)
	c.SetCookie("refresh_token", refreshToken, 3600*24*7, "/", "", secure, true)
}

// ClearTokenCookies removes access_token and refresh_token cookies
func ClearTokenCookies(c *gin.Context) {
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie("access_token", "", -1, "/", "", secure, true)
	c.SetCookie("refresh_token", "", -1, "/", "", secure, true)
}

// extractToken reads the access token from the cookie, falling back to the
// Authorization header.
func extractToken(c *gin.Context) (string, error) {
	tokenString, cookieErr := c.Cookie("access_token")
	if cookieErr == nil && tokenString != "" {
		return tokenString, nil
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization is missing")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.New("invalid authorization format, expected 'Bearer <token>'")
	}
	return parts[1], nil
}

// ParsePrincipal validates the access token and rebuilds the Principal from
// its claims. Exposed for the websocket upgrade path as well.
func ParsePrincipal(tokenString string, secret []byte) (permission.Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return permission.Anonymous(), errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return permission.Anonymous(), errors.New("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return permission.Anonymous(), errors.New("invalid subject claim")
	}

	roleStr, _ := claims["role"].(string)
	username, _ := claims["username"].(string)

	p := permission.Principal{
		UserID:   userID,
		Username: username,
		Role:     permission.ParseRole(roleStr),
	}
	if s, ok := claims["client_id"].(string); ok && s != "" {
		if id, err := uuid.Parse(s); err == nil {
			p.ClientID = &id
		}
	}
	if s, ok := claims["employee_id"].(string); ok && s != "" {
		if id, err := uuid.Parse(s); err == nil {
			p.EmployeeID = &id
		}
	}
	return p, nil
}

// RequireCapability validates the JWT and checks the principal's role against
// the static capability table. An authenticated session is stored in the gin
// context for handlers that need the principal or the linked client id.
func RequireCapability(caps ...permission.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := extractToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
			return
		}

		principal, err := ParsePrincipal(tokenString, GetJWTSecret())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
			return
		}

		session := permission.NewSession(registry)
		session.Login(principal)

		for _, cap := range caps {
			if !session.Can(cap) {
				c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden,
					"access denied: missing capability '"+string(cap)+"'"))
				return
			}
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// RequireAuthenticated only checks that a valid token is present; capability
// checks are left to the handler. Used by /me and the self-service routes.
func RequireAuthenticated() gin.HandlerFunc {
	return RequireCapability()
}

// SessionFromContext returns the session installed by the auth middleware.
// Routes without the middleware see an anonymous session.
func SessionFromContext(c *gin.Context) *permission.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*permission.Session); ok {
			return s
		}
	}
	return permission.NewSession(registry)
}
