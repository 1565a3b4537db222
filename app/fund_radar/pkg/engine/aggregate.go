package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/logger"
	"github.com/iWorld-y/fund_radar/app/fund_radar/pkg/metrics"
)

// Separator 汇总文本中各片段之间的分隔符
const Separator = "\n\n---\n\n"

// Banner 阶段标题行
func Banner(title string) string {
	return fmt.Sprintf("=== %s ===", strings.ToUpper(title))
}

// Aggregate 依次执行所有阶段，把结果拼接为一份原始研究资料
func (e *Engine) Aggregate(ctx context.Context, fundName string) string {
	parts := make([]string, 0, len(e.stages)*7)
	for i, st := range e.stages {
		if ctx.Err() != nil {
			logger.Log.Warnf("研究已取消，跳过剩余 %d 个阶段", len(e.stages)-i)
			break
		}

		start := time.Now()
		logger.Log.Infof("阶段 %d/%d: %s", i+1, len(e.stages), st.Title)
		results := e.RunStage(ctx, st.Queries, fundName)
		metrics.StageDuration.WithLabelValues(stageLabel(st)).Observe(time.Since(start).Seconds())

		banner := Banner(st.Title)
		if i > 0 {
			banner = "\n" + banner
		}
		parts = append(parts, banner)
		parts = append(parts, results...)
	}
	return strings.Join(parts, Separator)
}

func stageLabel(st Stage) string {
	if st.Key != "" {
		return st.Key
	}
	return st.Title
}
