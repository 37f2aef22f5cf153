// 包 server：预览服务，只托管已写入磁盘的产物，不在请求路径上渲染
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"choropleth/internal/logger"
	"choropleth/internal/metrics"
)

// Handler：静态目录 + /metrics + /healthz，外层依次为访问日志与限流
func Handler(dir string, qps int, l *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	fs := http.FileServer(http.Dir(dir))
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("cache-control", "no-store")
		fs.ServeHTTP(w, r)
	}))
	return logger.AccessMiddleware(l)(RateLimit(qps)(mux))
}

// Run：阻塞直到 ctx 取消或监听失败；取消后最多等待 5s 排空连接
func Run(ctx context.Context, addr string, h http.Handler) error {
	l := logger.L()
	s := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() {
		l.Info("listening", "addr", addr)
		errc <- s.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
