package flavor

import "flavorcheck/internal/enums"

// Category is the semantic bucket a flavor lands in after classification.
type Category string

const (
	CategorySource        Category = "SOURCE"
	CategoryReady         Category = "READY"
	CategoryError         Category = "ERROR"
	CategoryNotApplicable Category = "NOT_APPLICABLE"
	CategoryPending       Category = "PENDING"
	CategoryOther         Category = "OTHER"
)

// Categories returns every category in report order.
func Categories() []Category {
	return []Category{
		CategorySource,
		CategoryReady,
		CategoryError,
		CategoryNotApplicable,
		CategoryPending,
		CategoryOther,
	}
}

// Display renders the category for humans.
func (c Category) Display() string {
	switch c {
	case CategorySource:
		return "Uploaded Source"
	case CategoryReady:
		return "Transcoded Flavor"
	default:
		return enums.Display(string(c))
	}
}

// InLadder reports whether flavors of this category are playable rungs.
func (c Category) InLadder() bool {
	return c == CategorySource || c == CategoryReady
}
