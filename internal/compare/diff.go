// Package compare provides set-difference logic over report finding lists,
// used to line up two historical reports for the same job.
package compare

import (
	"strings"

	"golang.org/x/text/cases"
)

// Result partitions two finding lists by normalized key. Items keep the
// casing of their first occurrence; shared items show A's casing.
type Result struct {
	OnlyA []string `json:"only_a"`
	OnlyB []string `json:"only_b"`
	Both  []string `json:"both"`
}

var fold = cases.Fold()

// Key normalizes an item for comparison: case-folded, internal whitespace
// runs collapsed to a single space, trimmed.
func Key(s string) string {
	return fold.String(strings.Join(strings.Fields(s), " "))
}

// Diff compares two lists. Each input is de-duplicated by normalized key
// first (first occurrence wins), then partitioned against the other side's
// key set in de-duplicated order.
func Diff(a, b []string) Result {
	dedupA, keysA := dedupe(a)
	dedupB, keysB := dedupe(b)

	res := Result{
		OnlyA: []string{},
		OnlyB: []string{},
		Both:  []string{},
	}
	for _, item := range dedupA {
		if keysB[Key(item)] {
			res.Both = append(res.Both, item)
		} else {
			res.OnlyA = append(res.OnlyA, item)
		}
	}
	for _, item := range dedupB {
		if !keysA[Key(item)] {
			res.OnlyB = append(res.OnlyB, item)
		}
	}
	return res
}

func dedupe(items []string) ([]string, map[string]bool) {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		k := Key(item)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, item)
	}
	return out, seen
}
