package commit

import "strings"

// dedupeKey identifies commits that are indistinguishable in a changelog.
type dedupeKey struct {
	displayDate string
	message     string
}

// Deduplicate returns a new slice without records whose display date and
// trimmed message match an earlier record. The first occurrence wins and
// the relative order of survivors is unchanged.
func Deduplicate(records []Record) []Record {
	seen := make(map[dedupeKey]struct{}, len(records))
	unique := make([]Record, 0, len(records))

	for _, r := range records {
		key := dedupeKey{displayDate: r.DisplayDate, message: strings.TrimSpace(r.Message)}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, r)
	}

	return unique
}
