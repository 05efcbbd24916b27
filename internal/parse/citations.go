// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"regexp"
	"sort"
	"strconv"
)

// citationPattern matches numeric bracket citations: [1], [12].
var citationPattern = regexp.MustCompile(`\[(\d+)\]`)

// Citations returns the distinct citation ordinals appearing in a body, in
// ascending order.
func Citations(body string) []int {
	matches := citationPattern.FindAllStringSubmatch(body, -1)
	seen := make(map[int]bool)
	var ordinals []int
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 || seen[n] {
			continue
		}
		seen[n] = true
		ordinals = append(ordinals, n)
	}
	sort.Ints(ordinals)
	return ordinals
}

// DanglingCitations returns the cited ordinals that have no corresponding
// research item, given how many items the bundle supplied. Useful for
// flagging generated posts that invent sources.
func DanglingCitations(body string, itemCount int) []int {
	var dangling []int
	for _, n := range Citations(body) {
		if n > itemCount {
			dangling = append(dangling, n)
		}
	}
	return dangling
}
