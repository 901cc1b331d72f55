// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import "strings"

// ReconstructAbstract converts an abstract_inverted_index back to plain
// text. The index maps each word to the token positions it occupies.
//
// The algorithm allocates one slot per position up to the maximum listed
// position, writes each word into its slots, then joins all slots with a
// single space and trims. Positions no word claims stay empty and leave an
// extra space in the joined output; that spacing is kept as-is so the
// reconstruction is byte-for-byte stable across implementations.
func ReconstructAbstract(index map[string][]int) string {
	if len(index) == 0 {
		return ""
	}

	max := -1
	for _, positions := range index {
		for _, pos := range positions {
			if pos > max {
				max = pos
			}
		}
	}
	if max < 0 {
		return ""
	}

	slots := make([]string, max+1)
	for word, positions := range index {
		for _, pos := range positions {
			if pos >= 0 {
				slots[pos] = word
			}
		}
	}

	return strings.TrimSpace(strings.Join(slots, " "))
}
