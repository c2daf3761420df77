package exam

// History is a bounded, most-recent-first list of results.
type History struct {
	limit   int
	results []Result
}

// NewHistory creates a history capped at limit (HistoryLimit if <= 0),
// seeded with prior results that are already ordered most-recent-first.
func NewHistory(limit int, prior []Result) *History {
	if limit <= 0 {
		limit = HistoryLimit
	}
	h := &History{limit: limit}
	for i := len(prior) - 1; i >= 0; i-- {
		h.Add(prior[i])
	}
	return h
}

// Add prepends r and drops the oldest entries beyond the cap.
func (h *History) Add(r Result) {
	h.results = append([]Result{r}, h.results...)
	if len(h.results) > h.limit {
		h.results = h.results[:h.limit]
	}
}

// Results returns a copy of the entries, most recent first.
func (h *History) Results() []Result {
	out := make([]Result, len(h.results))
	copy(out, h.results)
	return out
}

// Len returns the number of stored results.
func (h *History) Len() int {
	return len(h.results)
}

// Limit returns the cap.
func (h *History) Limit() int {
	return h.limit
}
