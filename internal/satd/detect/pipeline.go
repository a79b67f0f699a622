// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

// Package detect implements DetectionPipeline (spec §4.2): it runs
// CandidateScanner, submits candidates to a CommentClassifier in
// paced batches, and keeps only confirmed DebtItems at or above the
// confidence threshold.
package detect

import (
	"context"
	"sort"
	"time"

	"github.com/satdripple/satdripple/internal/satd/classify"
	"github.com/satdripple/satdripple/internal/satd/config"
	"github.com/satdripple/satdripple/internal/satd/model"
	"github.com/satdripple/satdripple/internal/satd/scan"
)

// Summary records per-stage outcomes (spec §7: "each stage records
// counts of suppressed errors in its summary").
type Summary struct {
	Scan               scan.Summary
	CandidatesSeen     int
	CandidatesAdmitted int
	ClassifierErrors   int
}

// Pipeline is DetectionPipeline.
type Pipeline struct {
	Scanner    *scan.Scanner
	Classifier classify.Classifier
	Config     config.Config
}

// New builds a Pipeline.
func New(scanner *scan.Scanner, classifier classify.Classifier, cfg config.Config) *Pipeline {
	return &Pipeline{Scanner: scanner, Classifier: classifier, Config: cfg}
}

// Run executes CandidateScanner then Stage 2 classification, and
// returns confirmed DebtItems sorted by (File, Line).
func (p *Pipeline) Run(ctx context.Context, root string) ([]*model.DebtItem, Summary, error) {
	summary := Summary{}

	candidates, scanSummary, err := p.Scanner.Scan(ctx, root)
	summary.Scan = scanSummary
	if err != nil {
		return nil, summary, err
	}
	summary.CandidatesSeen = len(candidates)
	if len(candidates) == 0 {
		return nil, summary, nil
	}

	batchSize := p.Config.BatchSize
	if batchSize <= 0 {
		batchSize = 10
	}
	pacing := time.Duration(p.Config.BatchPacingMS) * time.Millisecond

	var items []*model.DebtItem
	for start := 0; start < len(candidates); start += batchSize {
		end := start + batchSize
		if end > len(candidates) {
			end = len(candidates)
		}
		batch := candidates[start:end]

		results, batchErr := p.classifyBatch(ctx, batch)
		if batchErr != nil {
			return nil, summary, batchErr
		}

		for _, cand := range batch {
			id := model.GenerateID(cand.File, cand.Line, cand.CreatedCommit)
			res := results[id]
			if res.Err != "" {
				summary.ClassifierErrors++
			}
			if !res.IsSATD || res.Confidence < p.Config.ConfidenceThreshold {
				continue
			}
			items = append(items, &model.DebtItem{
				ID:              id,
				File:            cand.File,
				Line:            cand.Line,
				Content:         cand.Content,
				ExtendedContent: cand.ExtendedContent,
				CreatedCommit:   cand.CreatedCommit,
				CreatedDate:     cand.CreatedDate,
				DebtType:        classify.Classify(cand.Content, cand.ExtendedContent),
				Confidence:      res.Confidence,
			})
		}

		if end < len(candidates) && pacing > 0 {
			select {
			case <-time.After(pacing):
			case <-ctx.Done():
				return nil, summary, ctx.Err()
			}
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].File != items[j].File {
			return items[i].File < items[j].File
		}
		return items[i].Line < items[j].Line
	})
	summary.CandidatesAdmitted = len(items)
	return items, summary, nil
}

func (p *Pipeline) classifyBatch(ctx context.Context, batch []scan.Candidate) (map[string]classify.Result, error) {
	reqItems := make([]classify.Item, len(batch))
	for i, cand := range batch {
		reqItems[i] = classify.Item{
			ID:      model.GenerateID(cand.File, cand.Line, cand.CreatedCommit),
			Comment: cand.Content,
			Context: cand.ExtendedContent,
		}
	}
	return p.Classifier.BatchClassify(ctx, reqItems, p.Config.ConfidenceThreshold)
}
