// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

// Package model defines the data types shared by every stage of the
// SATD analysis pipeline: debt items, weighted relationship edges,
// merged relationships, the graph built from them, and the chains
// discovered inside it.
//
// # Thread Safety
//
// Every type in this package is treated as immutable once its
// producing stage has finished constructing it. No type here
// synchronizes internally; callers that share a value across
// goroutines must not mutate it concurrently with a read.
package model
