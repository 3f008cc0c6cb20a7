package gateway

import (
	"encoding/json"
	"strings"

	"github.com/wolfman30/medmatch/internal/matching"
)

// Reasons a raw match element is dropped before reaching the reconciler.
const (
	dropMissingID     = "missing_id"
	dropBadReason     = "bad_reason"
	dropBadConfidence = "bad_confidence"
	dropNotObject     = "not_object"
)

// decodeMatches parses the matcher's JSON array. Elements that do not carry a
// non-empty string id, a string matchReason and a numeric confidence are
// skipped and tallied in dropped. Confidence is clamped to [0, 1].
func decodeMatches(text string) (results []matching.MatchResult, dropped map[string]int, err error) {
	results = []matching.MatchResult{}
	dropped = map[string]int{}

	text = stripCodeFence(text)
	if text == "" {
		return results, dropped, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return results, dropped, err
	}

	for _, elem := range raw {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(elem, &fields); err != nil || fields == nil {
			dropped[dropNotObject]++
			continue
		}

		var id string
		if err := json.Unmarshal(fields["id"], &id); err != nil || strings.TrimSpace(id) == "" {
			dropped[dropMissingID]++
			continue
		}
		var reason string
		if isNull(fields["matchReason"]) || json.Unmarshal(fields["matchReason"], &reason) != nil {
			dropped[dropBadReason]++
			continue
		}
		var confidence float64
		if isNull(fields["confidence"]) || json.Unmarshal(fields["confidence"], &confidence) != nil {
			dropped[dropBadConfidence]++
			continue
		}

		results = append(results, matching.MatchResult{
			ID:          id,
			MatchReason: reason,
			Confidence:  clamp01(confidence),
		})
	}
	return results, dropped, nil
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

// stripCodeFence removes a ```json fence some models wrap JSON in.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// extractSources keeps chunks that carry both a title and a uri, then
// de-duplicates by uri keeping the first occurrence.
func extractSources(chunks []GroundingChunk) []ClinicalSource {
	sources := make([]ClinicalSource, 0, len(chunks))
	seen := make(map[string]struct{}, len(chunks))
	for _, c := range chunks {
		if c.Title == "" || c.URI == "" {
			continue
		}
		if _, ok := seen[c.URI]; ok {
			continue
		}
		seen[c.URI] = struct{}{}
		sources = append(sources, ClinicalSource{Title: c.Title, URI: c.URI})
	}
	return sources
}
