package constants

// HTTP Header Names
const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderUserAgent     = "User-Agent"
	HeaderXRequestID    = "X-Request-ID"
)

// AuthScheme is the only accepted Authorization scheme.
const AuthScheme = "Bearer"

// Common HTTP Error Messages
const (
	MsgUnauthorized       = "Unauthorized"
	MsgForbidden          = "Access forbidden"
	MsgNotFound           = "Resource not found"
	MsgBadRequest         = "Invalid request"
	MsgInternalError      = "Internal server error"
	MsgServiceUnavailable = "Service temporarily unavailable"
	MsgConflict           = "Resource already exists"
	MsgTooManyRequests    = "Rate limit exceeded"
)

// HTTP Success Messages
const (
	MsgLoggedOut           = "Logged out successfully"
	MsgOnboardingCompleted = "Onboarding completed successfully"
)
