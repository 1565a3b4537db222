package engine

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunStage 并发执行一个阶段的全部查询，结果顺序与模板顺序一致
func (e *Engine) RunStage(ctx context.Context, templates []string, fundName string) []string {
	results := make([]string, len(templates))

	var g errgroup.Group
	g.SetLimit(e.opts.MaxConcurrency)
	for i, tpl := range templates {
		query := ExpandQuery(tpl, fundName)
		g.Go(func() error {
			results[i] = e.adapter.Search(ctx, query)
			return nil
		})
	}
	_ = g.Wait()

	return results
}
