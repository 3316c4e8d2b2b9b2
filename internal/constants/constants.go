package constants

// Gin context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyClaims    = "claims"
	ContextKeyTask      = "task"
	ContextKeyRequestID = "request_id"
)

const HeaderRequestID = "X-Request-ID"

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

const (
	// PasswordHashCost is the bcrypt cost factor for stored credentials.
	PasswordHashCost = 10

	UsernameMinLength = 3
	UsernameMaxLength = 30

	MinCognitiveLoad = 1
	MaxCognitiveLoad = 10

	MaxMoodScore = 10
)
