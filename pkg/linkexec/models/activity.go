package models

// Category is a normalized activity type. Values outside the canonical set are
// the lowercased, trimmed label of an unrecognized activity.
type Category string

// Canonical activity categories.
const (
	GuestBlogging        Category = "guest blogging"
	PRMarketing          Category = "pr marketing"
	Listicles            Category = "listicles"
	VideoSubmission      Category = "video submission"
	Infographic          Category = "infographic"
	Web20                Category = "web 2.0"
	DA50Plus             Category = "da 50+"
	NicheGroupDiscussion Category = "niche group discussion"
	BusinessProfiles     Category = "business profiles"
	Edu                  Category = ".edu"
	ClassifiedsMarketing Category = "classifieds marketing"
	CommunityDiscussion  Category = "community discussion"
)

// PriorityOrder is the fixed ranking used to sort the execution list.
var PriorityOrder = []Category{
	GuestBlogging,
	PRMarketing,
	Listicles,
	VideoSubmission,
	Infographic,
	Web20,
	DA50Plus,
	NicheGroupDiscussion,
	BusinessProfiles,
	Edu,
	ClassifiedsMarketing,
	CommunityDiscussion,
}

// IsCanonical reports whether c is one of the 12 fixed categories.
func (c Category) IsCanonical() bool {
	return c.Priority() >= 0
}

// Priority returns the index of c in PriorityOrder, or -1 when unlisted.
func (c Category) Priority() int {
	for i, p := range PriorityOrder {
		if p == c {
			return i
		}
	}
	return -1
}

// ActivityColumn binds a sheet column to the category its counts belong to.
type ActivityColumn struct {
	// Index is the 0-based column index.
	Index int `json:"index"`
	// Label is the trimmed source label the category was derived from.
	Label string `json:"label"`
	// Category is the normalized activity.
	Category Category `json:"category"`
}

// ColumnMap lists activity columns in ascending column order.
type ColumnMap []ActivityColumn

// Category returns the category mapped to column index, if any.
func (m ColumnMap) Category(index int) (Category, bool) {
	for _, col := range m {
		if col.Index == index {
			return col.Category, true
		}
	}
	return "", false
}
