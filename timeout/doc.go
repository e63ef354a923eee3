// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout defines policies that choose the timeout of each
// lookup attempt. A Policy may be plugged into a dadata.Client with
// dadata.WithTimeoutPolicy to vary the timeout between attempts, for
// example to lengthen it after an attempt timed out.
package timeout
