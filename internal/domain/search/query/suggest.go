package query

// Completion suggester settings.
const (
	SuggesterName  = "hotelSuggestion"
	SuggestionSize = 10
)

// Suggester is a named engine suggester.
type Suggester interface {
	Source() map[string]any
}

// CompletionSuggester completes a prefix against a completion field.
type CompletionSuggester struct {
	prefix         string
	field          string
	size           int
	skipDuplicates bool
}

// Completion returns a prefix completion over field.
func Completion(prefix, field string, size int, skipDuplicates bool) CompletionSuggester {
	return CompletionSuggester{prefix: prefix, field: field, size: size, skipDuplicates: skipDuplicates}
}

// Prefix returns the user input being completed.
func (s CompletionSuggester) Prefix() string { return s.prefix }

// Field returns the completion field.
func (s CompletionSuggester) Field() string { return s.field }

// Size returns the option cap.
func (s CompletionSuggester) Size() int { return s.size }

// SkipDuplicates reports whether duplicate completions are suppressed.
func (s CompletionSuggester) SkipDuplicates() bool { return s.skipDuplicates }

// Source renders the suggester entry.
func (s CompletionSuggester) Source() map[string]any {
	return map[string]any{
		"prefix": s.prefix,
		"completion": map[string]any{
			"field":           s.field,
			"size":            s.size,
			"skip_duplicates": s.skipDuplicates,
		},
	}
}

// HotelSuggestion returns the hotel name completion for prefix.
func HotelSuggestion(prefix string) CompletionSuggester {
	return Completion(prefix, FieldSuggestion, SuggestionSize, true)
}
