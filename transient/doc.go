// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies transport-level errors from a lookup
// attempt as transient or non-transient. The retry engine uses it to
// decide whether a failed attempt is worth repeating, and the metrics
// and logging packages use the category names as labels.
//
// Package transient depends only on the standard library packages
// "context", "errors", "io", "net" and "syscall", so it doesn't bring
// any significant dependencies when imported as a standalone package.
package transient
