// 包 publish：将渲染产物写到本地目录或 S3
package publish

import (
	"context"
	"errors"
	"fmt"

	"choropleth/internal/logger"
	"choropleth/internal/metrics"
	"choropleth/internal/pipeline"
)

const (
	SVGName  = "choropleth.svg"
	HTMLName = "index.html"
)

// Artifact：单个待发布文件
type Artifact struct {
	Name        string
	ContentType string
	Body        []byte
}

type Sink interface {
	Name() string
	Put(ctx context.Context, a Artifact) error
}

// batchSink：能一次性替换全部产物的 sink，见 Dir.PutAll
type batchSink interface {
	PutAll(ctx context.Context, as []Artifact) error
}

// Artifacts：渲染结果对应的全部文件
func Artifacts(o *pipeline.Output) []Artifact {
	return []Artifact{
		{Name: SVGName, ContentType: "image/svg+xml", Body: o.SVG},
		{Name: HTMLName, ContentType: "text/html; charset=utf-8", Body: o.HTML},
	}
}

// Publish：逐个 sink 写入；单个 sink 失败不影响其余 sink，错误合并返回
func Publish(ctx context.Context, o *pipeline.Output, sinks ...Sink) error {
	if o == nil {
		return errors.New("publish: nothing rendered")
	}
	var errs []error
	for _, s := range sinks {
		if err := put(ctx, s, Artifacts(o)); err != nil {
			metrics.PublishFailTotal.WithLabelValues(s.Name()).Inc()
			logger.L().Error("publish_error", "sink", s.Name(), "render_id", o.ID, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		logger.L().Debug("publish_done", "sink", s.Name(), "render_id", o.ID)
	}
	return errors.Join(errs...)
}

// put：批量 sink 整体替换；其余 sink 逐个写入，遇错即停
func put(ctx context.Context, s Sink, as []Artifact) error {
	if b, ok := s.(batchSink); ok {
		return b.PutAll(ctx, as)
	}
	for _, a := range as {
		if err := s.Put(ctx, a); err != nil {
			return fmt.Errorf("%s: %w", a.Name, err)
		}
	}
	return nil
}
