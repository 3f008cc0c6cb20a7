// Package matching turns AI specialist matches into an ordered view of the
// doctor directory.
//
// Match output comes from an external model and is treated as untrusted: it
// may name doctors that do not exist or name the same doctor twice. Reconcile
// never fails on such input; bad entries are dropped.
package matching

import "github.com/wolfman30/medmatch/internal/directory"

// MatchResult is one ranked suggestion from the specialist matcher.
type MatchResult struct {
	ID          string  `json:"id"`
	MatchReason string  `json:"matchReason"`
	Confidence  float64 `json:"confidence"`
}

// ViewState says which of the three listing states a View is in.
type ViewState string

const (
	// StateAll means no AI filter is active and the full directory is shown.
	StateAll ViewState = "all"
	// StateMatched means a filter is active and at least one doctor matched.
	StateMatched ViewState = "matched"
	// StateNoMatches means a filter is active and nothing survived it.
	// Clients render a not-found state, never the full directory.
	StateNoMatches ViewState = "no_matches"
)

// Entry is one doctor card. MatchReason is empty when no filter is active.
type Entry struct {
	Doctor      directory.Doctor `json:"doctor"`
	MatchReason string           `json:"matchReason,omitempty"`
}

// View is the ordered listing derived from the directory and the last match.
type View struct {
	State   ViewState `json:"state"`
	Entries []Entry   `json:"entries"`
}

// Len returns the number of entries.
func (v View) Len() int {
	return len(v.Entries)
}

// IDs returns the doctor ids in display order.
func (v View) IDs() []string {
	ids := make([]string, len(v.Entries))
	for i, e := range v.Entries {
		ids[i] = e.Doctor.ID
	}
	return ids
}

// Filtered reports whether an AI filter produced this view.
func (v View) Filtered() bool {
	return v.State != StateAll
}

// Unfiltered is the view with no active match: every doctor in directory order.
func Unfiltered(doctors []directory.Doctor) View {
	entries := make([]Entry, len(doctors))
	for i, doc := range doctors {
		entries[i] = Entry{Doctor: doc}
	}
	return View{State: StateAll, Entries: entries}
}

// Reconcile builds the view for doctors given the last match results. When
// active is false the results are ignored and the unfiltered view is returned.
//
// When active, results are walked in their given order, which is the model's
// ranking. Ids missing from doctors are skipped, and only the first occurrence
// of a repeated id is kept. An active match that leaves nothing yields
// StateNoMatches. The output never exceeds len(doctors) entries.
func Reconcile(doctors []directory.Doctor, results []MatchResult, active bool) View {
	if !active {
		return Unfiltered(doctors)
	}

	byID := make(map[string]directory.Doctor, len(doctors))
	for _, doc := range doctors {
		if _, dup := byID[doc.ID]; !dup {
			byID[doc.ID] = doc
		}
	}

	emitted := make(map[string]struct{}, len(results))
	entries := make([]Entry, 0, min(len(results), len(byID)))
	for _, r := range results {
		doc, ok := byID[r.ID]
		if !ok {
			continue
		}
		if _, seen := emitted[r.ID]; seen {
			continue
		}
		emitted[r.ID] = struct{}{}
		entries = append(entries, Entry{Doctor: doc, MatchReason: r.MatchReason})
	}

	if len(entries) == 0 {
		return View{State: StateNoMatches, Entries: entries}
	}
	return View{State: StateMatched, Entries: entries}
}

// Dropped reports how many results Reconcile would discard as unknown or
// repeated ids. It is used for metrics only.
func Dropped(doctors []directory.Doctor, results []MatchResult) (unknown, duplicate int) {
	known := make(map[string]struct{}, len(doctors))
	for _, doc := range doctors {
		known[doc.ID] = struct{}{}
	}
	seen := make(map[string]struct{}, len(results))
	for _, r := range results {
		if _, ok := known[r.ID]; !ok {
			unknown++
			continue
		}
		if _, ok := seen[r.ID]; ok {
			duplicate++
			continue
		}
		seen[r.ID] = struct{}{}
	}
	return unknown, duplicate
}
