package constants

// Application Information
const (
	AppName    = "Auth Service"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Default Application Settings
const (
	DefaultPort        = "8080"
	DefaultEnvironment = EnvDevelopment
)

// Storage key prefixes
const (
	KeyPrefix        = "auth:"
	KeySessionPrefix = KeyPrefix + "session:"
)

// Collection and table names shared by every storage backend
const (
	UsersTable    = "users"
	SessionsTable = "auth_sessions"
)

// Log Levels
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
	LogLevelFatal = "fatal"
)
