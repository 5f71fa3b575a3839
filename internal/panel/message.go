package panel

import (
	"errors"
	"fmt"

	"achievediary/internal/achievement"
	"achievediary/internal/api"
)

// User-facing error strings.
const (
	MsgNoIdentity   = "Could not determine the user"
	MsgNetwork      = "Could not reach the server. Check your connection and try again"
	MsgNotFound     = "Achievement not found"
	MsgServer       = "The server could not complete the request. Try again later"
	MsgBadID        = "Invalid achievement id"
	MsgLoadProgress = "Could not load your progress. Check your connection"

	msgServerStatus = "Server error %d: could not load the data"
)

// Message picks the text shown for err. Classified api errors map by kind
// (a server-supplied message wins for server errors, then the status code);
// validation errors show their own message; anything else shows its raw text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var verr *achievement.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	switch apiErr.Kind {
	case api.KindMissingInput:
		return MsgNoIdentity
	case api.KindNetwork:
		return MsgNetwork
	case api.KindNotFound:
		return MsgNotFound
	default:
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.Status != 0 {
			return fmt.Sprintf(msgServerStatus, apiErr.Status)
		}
		return MsgServer
	}
}

// SubmitMessage is the inline text for a failed create or save. It prefers
// the server's message and otherwise names the status.
func SubmitMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Kind == api.KindServer {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.Status != 0 {
			return fmt.Sprintf("Could not save the achievement (status %d)", apiErr.Status)
		}
	}
	return Message(err)
}

// Retryable reports whether re-issuing the request that failed with err can
// succeed. Missing identity and not found never can.
func Retryable(err error) bool {
	kind, ok := api.KindOf(err)
	return ok && kind.Retryable()
}
