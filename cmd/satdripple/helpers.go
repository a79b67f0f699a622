// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package main

import (
	"github.com/satdripple/satdripple/internal/satd/model"
	"github.com/satdripple/satdripple/internal/satd/pipeline"
	"github.com/satdripple/satdripple/internal/satd/sir"
)

func indexItems(res pipeline.Result) map[string]*model.DebtItem {
	byID := make(map[string]*model.DebtItem, len(res.DebtItems))
	for _, it := range res.DebtItems {
		byID[it.ID] = it
	}
	return byID
}

func chainMembership(res pipeline.Result) map[string][]string {
	m := make(map[string][]string)
	for _, c := range res.Chains {
		for id := range c.Nodes {
			m[id] = append(m[id], c.ID)
		}
	}
	return m
}

func sirIndex(results []sir.Result) map[string]sir.Result {
	m := make(map[string]sir.Result, len(results))
	for _, r := range results {
		m[r.NodeID] = r
	}
	return m
}
