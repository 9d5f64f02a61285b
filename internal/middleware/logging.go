package middleware

import (
	"net/http"
	"strings"

	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/constants"
	ctxutil "github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/context"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/logger"
	"github.com/gin-gonic/gin"
)

// RecoveryMiddleware recovers from panics and logs them
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.LogPanic(recovered)

		c.JSON(http.StatusInternalServerError, constants.BuildErrorResponse(constants.MsgInternalError, nil))
	})
}

// SecurityLoggingMiddleware logs credential attempts and scanner traffic.
// Request bodies are never logged.
func SecurityLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		userAgent := c.Request.UserAgent()

		if isSuspiciousUserAgent(userAgent) {
			logger.WarnWithContext(ctx, "Suspicious user agent detected").
				String("user_agent", userAgent).
				Path(c.Request.URL.Path).
				Log()
		}

		if c.Request.Method == http.MethodPost && isCredentialPath(c.Request.URL.Path) {
			logger.InfoWithContext(ctx, "Credential attempt").
				Path(c.Request.URL.Path).
				String("client_ip", ctxutil.GetClientIP(ctx)).
				Log()
		}

		c.Next()
	}
}

func isCredentialPath(path string) bool {
	return strings.HasSuffix(path, "/auth/login") || strings.HasSuffix(path, "/auth/register")
}

func isSuspiciousUserAgent(userAgent string) bool {
	suspiciousPatterns := []string{
		"sqlmap", "nikto", "nmap", "masscan", "burp", "scanner",
	}

	ua := strings.ToLower(userAgent)
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(ua, pattern) {
			return true
		}
	}
	return false
}
