package constants

// Field Length Limits
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72 // bcrypt ignores anything past 72 bytes
	MaxNameLength     = 100
	MaxEmailLength    = 255
	MaxURLLength      = 2048
)

// Account defaults applied at registration
const (
	DefaultAccountType        = "beta"
	DefaultSubscriptionStatus = "trial"
)
