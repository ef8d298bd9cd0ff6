// internal/core/domain/diff.go
package domain

// MembershipDiff is the result of comparing a recorded membership snapshot
// against the collection's current membership.
type MembershipDiff struct {
	Added   []string
	Removed []string
}

// DiffMembership computes the set difference between the previously
// recorded membership and the current one. Identifiers are compared
// verbatim as strings; both inputs are assumed duplicate-free. Output
// order follows input order, so the diff is deterministic for a given
// pair of listings.
func DiffMembership(previous, current []string) MembershipDiff {
	prevSet := make(map[string]struct{}, len(previous))
	for _, id := range previous {
		prevSet[id] = struct{}{}
	}
	currSet := make(map[string]struct{}, len(current))
	for _, id := range current {
		currSet[id] = struct{}{}
	}

	var diff MembershipDiff
	for _, id := range current {
		if _, ok := prevSet[id]; !ok {
			diff.Added = append(diff.Added, id)
		}
	}
	for _, id := range previous {
		if _, ok := currSet[id]; !ok {
			diff.Removed = append(diff.Removed, id)
		}
	}
	return diff
}
