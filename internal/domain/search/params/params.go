package params

// Page defaults.
const (
	DefaultPage = 1
	DefaultSize = 10
)

// Params is the user-facing hotel search input.
// Empty strings and nil bounds mean "not supplied".
type Params struct {
	Key      string
	City     string
	Brand    string
	StarName string
	MinPrice *int
	MaxPrice *int
	Page     int
	Size     int
	Location string
}

// Offset returns the zero-based index of the first hit on the requested page.
func (p Params) Offset() int {
	page := p.Page
	if page < 1 {
		page = DefaultPage
	}
	return (page - 1) * p.Limit()
}

// Limit returns the requested page size.
func (p Params) Limit() int {
	if p.Size < 1 {
		return DefaultSize
	}
	return p.Size
}

// HasPriceRange reports whether both price bounds are supplied.
// A single bound is ignored rather than treated as an open range.
func (p Params) HasPriceRange() bool {
	return p.MinPrice != nil && p.MaxPrice != nil
}
