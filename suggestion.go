// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package dadata

// A Suggestion is one ranked match returned by the service. Data holds
// the entity payload, for example a Party.
type Suggestion[T any] struct {
	Value             string `json:"value"`
	UnrestrictedValue string `json:"unrestricted_value"`
	Data              T      `json:"data"`
}

// Suggestions is the response envelope. The order of the slice is the
// relevance order chosen by the service.
type Suggestions[T any] struct {
	Suggestions []Suggestion[T] `json:"suggestions"`
}

// findByIDRequest is the lookup request body. A zero Count is omitted.
type findByIDRequest struct {
	Query string `json:"query"`
	Count int    `json:"count,omitempty"`
}
