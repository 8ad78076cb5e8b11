package domain

// Outcome of reconciling one normalized record against storage.
type ImportOutcome string

const (
	OutcomeInserted  ImportOutcome = "inserted"
	OutcomeUpdated   ImportOutcome = "updated"
	OutcomeUnchanged ImportOutcome = "unchanged"
	OutcomeDiscarded ImportOutcome = "discarded"
)

// Counts produced by one import run.
// Total counts inserted, updated and unchanged candidates; discarded records are
// tracked separately and never part of Total.
type ImportSummary struct {
	Inserted  int `json:"inserted"`
	Updated   int `json:"updated"`
	Total     int `json:"total"`
	Discarded int `json:"-"`
}

// Record adds one outcome to the summary.
func (s *ImportSummary) Record(o ImportOutcome) {
	switch o {
	case OutcomeInserted:
		s.Inserted++
		s.Total++
	case OutcomeUpdated:
		s.Updated++
		s.Total++
	case OutcomeUnchanged:
		s.Total++
	case OutcomeDiscarded:
		s.Discarded++
	}
}

// Unchanged is the number of candidates that matched storage exactly.
func (s ImportSummary) Unchanged() int { return s.Total - s.Inserted - s.Updated }
