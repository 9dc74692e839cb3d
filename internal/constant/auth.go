package constant

const (
	// AdminKeyHeader carries the shared admin key for /api/_/admin endpoints.
	AdminKeyHeader = "X-Owl-Admin-Key"

	ParticipantIDAuthorizationRealm = "Participant"

	ParticipantIDCookieKey = "owlparticipant"

	// AnonymousParticipantPrefix marks participant IDs minted for sessions
	// without a panel-provided identity.
	AnonymousParticipantPrefix = "anon-"
)
