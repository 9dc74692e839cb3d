package constant

const (
	// ContextKeyRequestID holds the generated request ID in fiber locals.
	ContextKeyRequestID = "requestid"

	RequestIDHeader = "X-Owl-Request-ID"

	ParticipantIDHeader = "X-Owl-Participant"

	ShouldLogRequestBodyKey = "shouldLogRequestBody"
)
