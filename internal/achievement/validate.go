package achievement

import (
	"strings"
	"time"
)

// Field names a form field for validation errors.
type Field string

const (
	FieldTitle       Field = "title"
	FieldCategory    Field = "category"
	FieldDate        Field = "date"
	FieldDescription Field = "description"
)

// ValidationError reports the first form rule that failed.
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation messages, in rule order.
const (
	MsgTitleRequired       = "Enter a title for the achievement"
	MsgCategoryRequired    = "Choose a category"
	MsgDateRequired        = "Choose a date"
	MsgDateInvalid         = "Date must be in YYYY-MM-DD format"
	MsgDateInFuture        = "Date cannot be in the future"
	MsgDescriptionRequired = "Enter a description of the achievement"
)

// Validate checks f against the form rules in fixed order and returns the
// first failure. now supplies "today" in its own location.
func Validate(f Fields, now time.Time) error {
	if strings.TrimSpace(f.Title) == "" {
		return &ValidationError{Field: FieldTitle, Message: MsgTitleRequired}
	}
	if f.Category == "" || !f.Category.Valid() {
		return &ValidationError{Field: FieldCategory, Message: MsgCategoryRequired}
	}
	if strings.TrimSpace(f.Date) == "" {
		return &ValidationError{Field: FieldDate, Message: MsgDateRequired}
	}
	d, err := ParseDate(strings.TrimSpace(f.Date), now.Location())
	if err != nil {
		return &ValidationError{Field: FieldDate, Message: MsgDateInvalid}
	}
	y, m, dd := now.Date()
	today := time.Date(y, m, dd, 0, 0, 0, 0, now.Location())
	if d.After(today) {
		return &ValidationError{Field: FieldDate, Message: MsgDateInFuture}
	}
	if strings.TrimSpace(f.Description) == "" {
		return &ValidationError{Field: FieldDescription, Message: MsgDescriptionRequired}
	}
	return nil
}

// Normalize trims the free-text fields the way they are sent to the server.
func (f Fields) Normalize() Fields {
	f.Title = strings.TrimSpace(f.Title)
	f.Date = strings.TrimSpace(f.Date)
	f.Description = strings.TrimSpace(f.Description)
	return f
}
