package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/constants"
	apperrors "github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/errors"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/model"
	ctxutil "github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/context"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/logger"
	"github.com/gin-gonic/gin"
)

// UserResolver maps a bearer token to the user it authenticates.
type UserResolver interface {
	GetUserForToken(ctx context.Context, token string) (*model.User, error)
}

type AuthMiddleware struct {
	resolver UserResolver
}

func NewAuthMiddleware(resolver UserResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, constants.AuthScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

// RequireAuth rejects the request unless it carries a token for a live
// session. Every auth failure gets the same 401 body; the reason is only logged.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.WithFunction(c.Request.Context(), "middleware", "RequireAuth")

		token, ok := BearerToken(c.GetHeader(constants.HeaderAuthorization))
		if !ok {
			logger.WarnWithContext(ctx, "Missing or malformed Authorization header").
				Method(c.Request.Method).
				Path(c.Request.URL.Path).
				Log()
			unauthorized(c)
			return
		}

		user, err := m.resolver.GetUserForToken(ctx, token)
		if err != nil {
			if apperrors.IsAuthFailure(err) {
				logger.WarnWithContext(ctx, "Authentication rejected").
					String("reason", reason(err)).
					Path(c.Request.URL.Path).
					Err(err).
					Log()
				unauthorized(c)
				return
			}
			logger.ErrorWithContext(ctx, "Authentication unavailable").
				Path(c.Request.URL.Path).
				Err(err).
				Log()
			c.JSON(apperrors.ToHTTPStatus(err), gin.H{
				"message": apperrors.GetErrorMessage(err),
			})
			c.Abort()
			return
		}

		attach(c, user)
		c.Next()
	}
}

// OptionalAuth attaches the user when the token resolves and otherwise lets
// the request through anonymously.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c.GetHeader(constants.HeaderAuthorization))
		if !ok {
			c.Next()
			return
		}

		ctx := ctxutil.WithFunction(c.Request.Context(), "middleware", "OptionalAuth")
		user, err := m.resolver.GetUserForToken(ctx, token)
		if err != nil {
			logger.DebugWithContext(ctx, "Optional authentication skipped").
				String("reason", reason(err)).
				Log()
			c.Next()
			return
		}

		attach(c, user)
		c.Next()
	}
}

// CurrentUser returns the user attached by RequireAuth or OptionalAuth.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(constants.GinKeyUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok && user != nil
}

func CurrentUserID(c *gin.Context) (string, bool) {
	id := c.GetString(constants.GinKeyUserID)
	return id, id != ""
}

func attach(c *gin.Context, user *model.User) {
	c.Set(constants.GinKeyUser, user)
	c.Set(constants.GinKeyUserID, user.ID)
	c.Request = c.Request.WithContext(ctxutil.WithUserID(c.Request.Context(), user.ID))
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"message": constants.MsgUnauthorized,
	})
	c.Abort()
}

func reason(err error) string {
	if d := apperrors.GetDomainError(err); d != nil {
		return d.Code
	}
	return "unknown"
}
