package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "jwt_user_id"
	JWTRoleKey    = "jwt_role"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// TokenValidator validates access tokens
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// Authenticate requires a valid bearer token and stores its claims in the
// gin context. Failures answer 401.
func Authenticate(validator TokenValidator, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			authFailed(c, log, auth.ErrInvalidToken, "Missing authorization header.")
			return
		}
		if !strings.HasPrefix(header, BearerPrefix) {
			authFailed(c, log, auth.ErrInvalidToken, "Invalid authorization header format.")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
		if token == "" {
			authFailed(c, log, auth.ErrInvalidToken, "Missing token.")
			return
		}

		claims, err := validator.Validate(token)
		if err != nil {
			authFailed(c, log, err, tokenMessage(err))
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			authFailed(c, log, err, tokenMessage(auth.ErrInvalidClaims))
			return
		}
		role, err := claims.UserRole()
		if err != nil {
			authFailed(c, log, err, tokenMessage(auth.ErrInvalidClaims))
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, userID)
		c.Set(JWTRoleKey, role)

		ctx := c.Request.Context()
		ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), claims.Subject)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole lets the request through when the authenticated role is one of
// roles. It must run after Authenticate.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			AbortWithProblem(c, http.StatusUnauthorized, "Authentication required.")
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		AbortWithProblem(c, http.StatusForbidden, "The "+role.String()+" role cannot perform this operation.")
	}
}

// GetJWTClaims returns the claims stored by Authenticate
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetUserID returns the authenticated user id
func GetUserID(c *gin.Context) (int64, bool) {
	if v, ok := c.Get(JWTUserIDKey); ok {
		id, ok := v.(int64)
		return id, ok
	}
	return 0, false
}

// GetRole returns the authenticated role
func GetRole(c *gin.Context) (identity.Role, bool) {
	if v, ok := c.Get(JWTRoleKey); ok {
		role, ok := v.(identity.Role)
		return role, ok
	}
	return identity.RoleUser, false
}

func tokenMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token has expired."
	case errors.Is(err, auth.ErrTokenNotYetValid):
		return "Token is not yet valid."
	case errors.Is(err, auth.ErrInvalidClaims), errors.Is(err, auth.ErrMissingSubject):
		return "Token claims are invalid."
	default:
		return "Invalid token."
	}
}

func authFailed(c *gin.Context, log *zap.Logger, err error, message string) {
	log.Warn("JWT authentication failed",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", GetRequestID(c)),
	)
	c.Header("WWW-Authenticate", `Bearer realm="storefront"`)
	AbortWithProblem(c, http.StatusUnauthorized, message)
}
