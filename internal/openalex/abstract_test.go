// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import "testing"

func TestReconstructAbstract(t *testing.T) {
	tests := []struct {
		name  string
		index map[string][]int
		want  string
	}{
		{
			name:  "nil index",
			index: nil,
			want:  "",
		},
		{
			name:  "empty index",
			index: map[string][]int{},
			want:  "",
		},
		{
			name:  "two words in order",
			index: map[string][]int{"a": {0}, "b": {1}},
			want:  "a b",
		},
		{
			name:  "words listed out of order",
			index: map[string][]int{"world": {1}, "hello": {0}},
			want:  "hello world",
		},
		{
			name:  "repeated word",
			index: map[string][]int{"the": {0, 2}, "and": {1}},
			want:  "the and the",
		},
		{
			name: "unfilled slot keeps double space",
			// position 1 is claimed by nothing
			index: map[string][]int{"y": {0}, "x": {2}},
			want:  "y  x",
		},
		{
			name:  "negative positions are skipped",
			index: map[string][]int{"a": {-1, 0}, "b": {1}},
			want:  "a b",
		},
		{
			name:  "only negative positions",
			index: map[string][]int{"a": {-1}},
			want:  "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ReconstructAbstract(tc.index); got != tc.want {
				t.Errorf("ReconstructAbstract() = %q, want %q", got, tc.want)
			}
		})
	}
}
