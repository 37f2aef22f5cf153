package main

import (
	"context"
	"fmt"
	"log/slog"

	"choropleth/internal/cache"
	"choropleth/internal/config"
	"choropleth/internal/loader"
	"choropleth/internal/logger"
	"choropleth/internal/pipeline"
	"choropleth/internal/publish"
	"choropleth/internal/render"
)

// app：一次命令运行所需的全部依赖
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	client *loader.Client
	state  *pipeline.State
	sinks  []publish.Sink
	closer func()
}

// loadConfig：命令行参数覆盖配置文件与环境变量
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if outDir != "" {
		cfg.Output.Dir = outDir
	}
	if topologyURL != "" {
		cfg.Sources.TopologyURL = topologyURL
	}
	if educationURL != "" {
		cfg.Sources.EducationURL = educationURL
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	l := logger.Setup(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	l.Debug("log_init_ok")

	a := &app{cfg: cfg, log: l, closer: func() {}}

	var opts []loader.Option
	if rc := cache.OpenRedis(cfg.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB); rc != nil {
		rcache := cache.NewRedis(rc, "")
		if err := rcache.Ping(ctx); err != nil {
			// 缓存不可用时直接回源
			l.Warn("redis_ping_error", "err", err)
		} else {
			l.Info("redis_ping_ok", "addr", cfg.RedisAddr())
		}
		opts = append(opts, loader.WithCache(rcache, cfg.CacheTTL()))
		a.closer = func() { _ = rcache.Close() }
	}
	a.client = loader.New(cfg.FetchTimeout(), opts...)
	a.state = pipeline.New(render.Options{})

	a.sinks = []publish.Sink{publish.Dir{Path: cfg.Output.Dir}}
	if cfg.S3.Bucket != "" {
		s3, err := publish.NewS3(ctx, publish.S3Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			Prefix:          cfg.S3.Prefix,
			PathStyle:       cfg.S3.PathStyle,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})
		if err != nil {
			a.closer()
			return nil, err
		}
		a.sinks = append(a.sinks, s3)
		l.Info("s3_sink_enabled", "bucket", cfg.S3.Bucket)
	}
	return a, nil
}

func (a *app) Close() { a.closer() }

// refresh：加载两个数据集、渲染并发布
// 约束：任一步失败时保留上一次产物
func (a *app) refresh(ctx context.Context) (*pipeline.Output, error) {
	ds, err := a.client.LoadAll(ctx, loader.Endpoints{
		Topology:  a.cfg.Sources.TopologyURL,
		Education: a.cfg.Sources.EducationURL,
	})
	if err != nil {
		return nil, fmt.Errorf("load datasets: %w", err)
	}
	out, err := a.state.Update(ds.Topology, ds.Records)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if out == nil {
		return nil, fmt.Errorf("render: education dataset is empty")
	}
	if err := publish.Publish(ctx, out, a.sinks...); err != nil {
		return out, fmt.Errorf("publish: %w", err)
	}
	a.log.Info("publish_ok", "id", out.ID, "sinks", len(a.sinks))
	return out, nil
}
