// 包 loader：并发拉取拓扑与教育统计两个数据集
// 约束：两者都成功才返回；任一失败取消另一请求并返回首个错误
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"choropleth/internal/education"
	"choropleth/internal/logger"
	"choropleth/internal/metrics"
	"choropleth/internal/topology"

	"golang.org/x/sync/errgroup"
)

const (
	DatasetTopology  = "topology"
	DatasetEducation = "education"
)

// Cache：原始响应体缓存，实现见 internal/cache
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type Endpoints struct {
	Topology  string
	Education string
}

// Datasets：一次完整加载的结果
type Datasets struct {
	Topology *topology.Topology
	Records  []education.Record
}

type Client struct {
	http     *http.Client
	cache    Cache
	cacheTTL time.Duration
}

type Option func(*Client)

func WithCache(c Cache, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.cache = c
		cl.cacheTTL = ttl
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(cl *Client) { cl.http = h }
}

func New(timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{http: &http.Client{Timeout: timeout}}
	for _, o := range opts {
		o(c)
	}
	return c
}

// LoadAll：两个请求并发执行，全部完成后返回
func (c *Client) LoadAll(ctx context.Context, ep Endpoints) (*Datasets, error) {
	var out Datasets
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := c.FetchTopology(gctx, ep.Topology)
		if err != nil {
			return err
		}
		out.Topology = t
		return nil
	})
	g.Go(func() error {
		r, err := c.FetchEducation(gctx, ep.Education)
		if err != nil {
			return err
		}
		out.Records = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchTopology：解析成功后才写缓存；缓存体解析失败时删除该键并回源一次
func (c *Client) FetchTopology(ctx context.Context, url string) (*topology.Topology, error) {
	var t *topology.Topology
	err := c.fetchDecoded(ctx, DatasetTopology, url, func(b []byte) error {
		var err error
		t, err = topology.Parse(bytes.NewReader(b))
		return err
	})
	return t, err
}

// FetchEducation：同 FetchTopology
func (c *Client) FetchEducation(ctx context.Context, url string) ([]education.Record, error) {
	var r []education.Record
	err := c.fetchDecoded(ctx, DatasetEducation, url, func(b []byte) error {
		var err error
		r, err = education.Decode(bytes.NewReader(b))
		return err
	})
	return r, err
}

// fetchDecoded：缓存命中且可解析直接返回；否则走 HTTP，解析成功后回写缓存
// 约束：缓存读写失败只记录日志，不影响结果
func (c *Client) fetchDecoded(ctx context.Context, name, url string, decode func([]byte) error) error {
	l := logger.L()
	key := name + ":" + url
	if c.cache != nil {
		b, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			l.Debug("dataset_cache_get_error", "dataset", name, "err", err)
		}
		if ok {
			derr := decode(b)
			if derr == nil {
				metrics.FetchCacheHitsTotal.WithLabelValues(name).Inc()
				l.Debug("dataset_cache_hit", "dataset", name, "bytes", len(b))
				return nil
			}
			l.Warn("dataset_cache_corrupt", "dataset", name, "err", derr)
			if err := c.cache.Del(ctx, key); err != nil {
				l.Debug("dataset_cache_del_error", "dataset", name, "err", err)
			}
		}
	}

	b, err := c.fetch(ctx, name, url)
	if err != nil {
		return err
	}
	if err := decode(b); err != nil {
		metrics.FetchFailTotal.WithLabelValues(name).Inc()
		l.Error("dataset_decode_error", "dataset", name, "url", url, "err", err)
		return fmt.Errorf("%s %s: %w", name, url, err)
	}
	if c.cache != nil && c.cacheTTL > 0 {
		if err := c.cache.Set(ctx, key, b, c.cacheTTL); err != nil {
			l.Debug("dataset_cache_set_error", "dataset", name, "err", err)
		}
	}
	return nil
}

// fetch：单次 HTTP 拉取并记录指标
// 约束：被兄弟请求取消时只记 debug，避免一次失败产生两条错误日志
func (c *Client) fetch(ctx context.Context, name, url string) ([]byte, error) {
	l := logger.L()
	t0 := time.Now()
	metrics.FetchRequestsTotal.WithLabelValues(name).Inc()
	l.Debug("dataset_fetch_begin", "dataset", name, "url", url)
	b, err := c.get(ctx, url)
	dur := time.Since(t0).Milliseconds()
	metrics.FetchDurationMs.WithLabelValues(name).Observe(float64(dur))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			l.Debug("dataset_fetch_canceled", "dataset", name, "url", url)
			return nil, fmt.Errorf("%s %s: %w", name, url, err)
		}
		metrics.FetchFailTotal.WithLabelValues(name).Inc()
		l.Error("dataset_fetch_error", "dataset", name, "url", url, "err", err)
		return nil, fmt.Errorf("%s %s: %w", name, url, err)
	}
	l.Info("dataset_fetch_ok", "dataset", name, "bytes", len(b), "duration_ms", dur)
	return b, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
