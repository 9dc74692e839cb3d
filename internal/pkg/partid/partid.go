// Package partid extracts and injects participant session identifiers.
package partid

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/oklog/ulid/v2"

	"github.com/owl-eval/backend/internal/constant"
)

const cookieMaxAgeSec = 60 * 60 * 24 * 180

// Extract reads the participant ID from the Authorization header, falling
// back to the session cookie.
func Extract(ctx *fiber.Ctx) string {
	authorization := ctx.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authorization, constant.ParticipantIDAuthorizationRealm) {
		if id := strings.TrimSpace(strings.TrimPrefix(authorization, constant.ParticipantIDAuthorizationRealm)); id != "" {
			return id
		}
	}

	return ctx.Cookies(constant.ParticipantIDCookieKey)
}

// Inject stores the participant ID in the session cookie and echoes it in a
// response header for clients that cannot use cookies.
func Inject(ctx *fiber.Ctx, participantID string) {
	participantID = url.QueryEscape(participantID)

	ctx.Cookie(&fiber.Cookie{
		Name:     constant.ParticipantIDCookieKey,
		Value:    participantID,
		MaxAge:   cookieMaxAgeSec,
		Path:     "/",
		Expires:  time.Now().Add(time.Second * cookieMaxAgeSec),
		SameSite: "None",
		Secure:   true,
	})

	ctx.Set(constant.ParticipantIDHeader, participantID)
}

// NewAnonymous mints an identifier for a session without a panel-provided
// identity. The prefix is what the anonymity gate checks for.
func NewAnonymous() string {
	return constant.AnonymousParticipantPrefix + strings.ToLower(ulid.Make().String())
}

// IsAnonymous reports whether an identifier was minted by NewAnonymous.
func IsAnonymous(id string) bool {
	return strings.HasPrefix(id, constant.AnonymousParticipantPrefix)
}
