// Package achievement holds the diary's domain model: achievement records,
// the closed category enumeration and the form validation rules shared by
// the create and edit flows.
package achievement

// Category classifies an achievement. The set is closed.
type Category string

const (
	CategoryStudy         Category = "study"
	CategorySkills        Category = "skills"
	CategoryCreativity    Category = "creativity"
	CategorySport         Category = "sport"
	CategorySocial        Category = "social"
	CategoryPersonal      Category = "personal"
	CategoryTravel        Category = "travel"
	CategoryRelationships Category = "relationships"
)

// FilterAll is the list filter sentinel meaning "no category filter".
// It is never a valid Category for a record.
const FilterAll = "all"

// Categories lists every category in display order.
var Categories = []Category{
	CategoryStudy,
	CategorySkills,
	CategoryCreativity,
	CategorySport,
	CategorySocial,
	CategoryPersonal,
	CategoryTravel,
	CategoryRelationships,
}

var categoryLabels = map[Category]string{
	CategoryStudy:         "Study / Work",
	CategorySkills:        "Skills",
	CategoryCreativity:    "Creativity",
	CategorySport:         "Sport & Health",
	CategorySocial:        "Social Activity",
	CategoryPersonal:      "Personal Wins",
	CategoryTravel:        "Travel",
	CategoryRelationships: "Relationships",
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display label, or "Unknown category" for values outside
// the enumeration.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return "Unknown category"
}

// String returns the wire value.
func (c Category) String() string {
	return string(c)
}

// ParseCategory converts a wire value into a Category.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, c.Valid()
}

// FilterOptions returns the list filter values: FilterAll followed by every
// category.
func FilterOptions() []string {
	opts := make([]string, 0, len(Categories)+1)
	opts = append(opts, FilterAll)
	for _, c := range Categories {
		opts = append(opts, string(c))
	}
	return opts
}

// FilterLabel returns the label for a filter value, including FilterAll.
func FilterLabel(filter string) string {
	if filter == FilterAll || filter == "" {
		return "All"
	}
	return Category(filter).Label()
}
