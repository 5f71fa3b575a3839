package achievement

import "time"

// FieldUser marks a submission rejected because the session has no user.
const FieldUser Field = "user"

// MsgIdentityRequired is shown when a form is submitted without a session
// identity.
const MsgIdentityRequired = "Could not determine the user. Reopen the diary from the platform"

// Form is the state of the create and edit forms.
type Form struct {
	Fields
	Err *ValidationError
}

// NewForm returns an empty form whose date defaults to today.
func NewForm(now time.Time) Form {
	return Form{Fields: Fields{Date: Today(now)}}
}

// FormFor returns a form pre-filled from an existing record.
func FormFor(a Achievement) Form {
	return Form{Fields: a.Fields()}
}

// Submit checks the identity and then every field rule, stopping at the
// first failure. On success it clears Err and returns the normalized fields
// to send; on failure Err holds the reason and ok is false.
func (f *Form) Submit(userID int64, now time.Time) (Fields, bool) {
	if userID <= 0 {
		f.Err = &ValidationError{Field: FieldUser, Message: MsgIdentityRequired}
		return Fields{}, false
	}
	if err := Validate(f.Fields, now); err != nil {
		f.Err = err.(*ValidationError)
		return Fields{}, false
	}
	f.Err = nil
	return f.Fields.Normalize(), true
}

// Message returns the current validation message, or "".
func (f *Form) Message() string {
	if f.Err == nil {
		return ""
	}
	return f.Err.Message
}
