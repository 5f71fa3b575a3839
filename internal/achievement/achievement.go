package achievement

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used on the wire and in forms.
const DateLayout = "2006-01-02"

// Achievement is a single diary record owned by one user.
type Achievement struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Category    Category `json:"category"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
}

// Fields are the user-editable parts of an achievement.
type Fields struct {
	Title       string
	Category    Category
	Date        string
	Description string
}

// Fields returns the editable fields of a.
func (a Achievement) Fields() Fields {
	return Fields{
		Title:       a.Title,
		Category:    a.Category,
		Date:        a.Date,
		Description: a.Description,
	}
}

// ParseDate parses a YYYY-MM-DD date in the given location.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Today formats now as a calendar date.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// DisplayDate renders a wire date for lists. Unparseable dates are returned
// as-is.
func DisplayDate(s string) string {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return s
	}
	return t.Format("02 Jan 2006")
}
