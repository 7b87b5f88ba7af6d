package errors

// Error codes for standardized error responses
const (
	// Session token errors
	ErrCodeInvalidToken           = "invalid_token"
	ErrCodeTokenExpired           = "token_expired"
	ErrCodeAuthenticationRequired = "authentication_required"

	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeUnknownKind      = "unknown_kind"

	// Session errors
	ErrCodeSessionNotFound       = "session_not_found"
	ErrCodeSessionBusy           = "session_busy"
	ErrCodeSessionCreationFailed = "session_creation_failed"

	// Grading errors
	ErrCodeNoSelection  = "no_selection"
	ErrCodeOutOfRange   = "out_of_range"
	ErrCodeKindMismatch = "kind_mismatch"
	ErrCodeNoQuestions  = "no_questions"

	// WebSocket errors
	ErrCodeInvalidPayload     = "invalid_payload"
	ErrCodeUnknownMessageType = "unknown_message_type"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeUpstreamError      = "upstream_error"

	// Stats errors
	ErrCodeStatsFetchFailed = "stats_fetch_failed"
)
