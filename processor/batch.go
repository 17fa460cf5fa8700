/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package processor

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentLoads bounds the number of logs fetched at once.
const maxConcurrentLoads = 4

// ProcessBatch loads and extracts every source concurrently, then applies
// them one at a time in the order given. Each match commits on its own; the
// first failure stops the batch and the outcomes committed so far are
// returned with the error.
func (p *Processor) ProcessBatch(ctx context.Context, srcs []string,
	season int, mode Mode) ([]*Outcome, error) {

	matches := make([]*match, len(srcs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for i, src := range srcs {
		i, src := i, src
		g.Go(func() error {
			m, err := p.prepare(gctx, src)
			if err != nil {
				return err
			}
			matches[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	outcomes := make([]*Outcome, 0, len(matches))
	for _, m := range matches {
		out, err := p.apply(ctx, m, season, mode)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, out)
	}

	return outcomes, nil
}
