package query

// BoostMode controls how function scores combine with the query score.
type BoostMode string

const (
	// BoostMultiply multiplies the query score by the function score.
	BoostMultiply BoostMode = "multiply"
	// BoostSum adds the function score to the query score.
	BoostSum BoostMode = "sum"
	// BoostReplace discards the query score.
	BoostReplace BoostMode = "replace"
)

// PromotionWeight is the score multiplier for promoted hotels.
const PromotionWeight = 10.0

// ScoreFunction applies weight to documents matching filter.
type ScoreFunction struct {
	filter Query
	weight float64
}

// NewScoreFunction creates a weighted filter rule.
func NewScoreFunction(filter Query, weight float64) ScoreFunction {
	return ScoreFunction{filter: filter, weight: weight}
}

// Filter returns the predicate selecting boosted documents.
func (f ScoreFunction) Filter() Query { return f.filter }

// Weight returns the multiplier.
func (f ScoreFunction) Weight() float64 { return f.weight }

// Source renders the function entry.
func (f ScoreFunction) Source() map[string]any {
	return map[string]any{
		"filter": f.filter.Source(),
		"weight": f.weight,
	}
}

// FunctionScoreQuery rescales the score of an inner query with rule-based weights.
type FunctionScoreQuery struct {
	query     Query
	functions []ScoreFunction
	boostMode BoostMode
}

// FunctionScore wraps q with the given rules.
func FunctionScore(q Query, mode BoostMode, functions ...ScoreFunction) FunctionScoreQuery {
	fns := make([]ScoreFunction, len(functions))
	copy(fns, functions)
	return FunctionScoreQuery{query: q, functions: fns, boostMode: mode}
}

// Query returns the wrapped predicate.
func (q FunctionScoreQuery) Query() Query { return q.query }

// Functions returns a copy of the score rules.
func (q FunctionScoreQuery) Functions() []ScoreFunction {
	out := make([]ScoreFunction, len(q.functions))
	copy(out, q.functions)
	return out
}

// BoostMode returns the combine mode.
func (q FunctionScoreQuery) BoostMode() BoostMode { return q.boostMode }

// Source renders the function_score clause.
func (q FunctionScoreQuery) Source() map[string]any {
	fns := make([]map[string]any, len(q.functions))
	for i, f := range q.functions {
		fns[i] = f.Source()
	}
	return map[string]any{
		"function_score": map[string]any{
			"query":      q.query.Source(),
			"functions":  fns,
			"boost_mode": string(q.boostMode),
		},
	}
}

// PromotionRules returns the promotion tiers applied on top of relevance.
// Add tiers here rather than special-casing them in Rank.
func PromotionRules() []ScoreFunction {
	return []ScoreFunction{
		NewScoreFunction(TermEquals(FieldPromoted, true), PromotionWeight),
	}
}

// Rank wraps a predicate tree with the promotion rules. Multiplying keeps
// promoted hotels proportional to their own text relevance.
func Rank(q Query) FunctionScoreQuery {
	return FunctionScore(q, BoostMultiply, PromotionRules()...)
}
