// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package dadata

import "context"

// Finder is the interface that wraps the party lookup methods.
//
// Client implements Finder. Code that depends on Finder rather than on
// *Client can be tested with a fake.
type Finder interface {
	FindParty(ctx context.Context, innOrOGRN string, opts ...FindOption) ([]Suggestion[Party], error)
	FindPartyFirst(ctx context.Context, innOrOGRN string) (*Suggestion[Party], error)
}

var _ Finder = (*Client)(nil)
