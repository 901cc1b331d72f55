// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import "fmt"

// InvalidInputError reports a rejected interactive input (unsupported sort
// order or page size). It never reaches the network.
type InvalidInputError struct {
	Field string
	Value any
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("unsupported %s: %v", e.Field, e.Value)
}

// RangeError reports a page-range export request that failed local
// validation: inverted or non-positive bounds, a range beyond the known
// page count, or a span beyond the per-operation cap. No request is issued.
type RangeError struct {
	Start, End int
}

func (e *RangeError) Error() string {
	return RangeErrorMessage
}
