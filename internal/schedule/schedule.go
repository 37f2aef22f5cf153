// 包 schedule：后台周期任务，立即执行一次后按间隔重复，ctx 取消即退出
package schedule

import (
	"context"
	"time"

	"choropleth/internal/logger"
)

// Job：单次执行；错误只记录，不中断调度
type Job func(ctx context.Context) error

// Every：返回的通道在循环退出后关闭
func Every(ctx context.Context, interval time.Duration, name string, job Job) <-chan struct{} {
	done := make(chan struct{})
	l := logger.L()
	go func() {
		defer close(done)
		t := time.NewTicker(interval)
		defer t.Stop()
		run := func() {
			start := time.Now()
			if err := job(ctx); err != nil {
				l.Error("job_error", "job", name, "err", err)
				return
			}
			l.Info("job_done", "job", name, "duration_ms", time.Since(start).Milliseconds(), "next", time.Now().Add(interval))
		}
		run()
		for {
			select {
			case <-ctx.Done():
				l.Info("job_stopped", "job", name)
				return
			case <-t.C:
				run()
			}
		}
	}()
	return done
}
