// 包 pipeline：渲染状态机，两个数据集都就绪才渲染，每次渲染前清空旧画布
package pipeline

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"choropleth/internal/education"
	"choropleth/internal/logger"
	"choropleth/internal/metrics"
	"choropleth/internal/render"
	"choropleth/internal/topology"

	"github.com/google/uuid"
)

type Stage int

const (
	Unloaded Stage = iota
	Rendered
)

func (s Stage) String() string {
	if s == Rendered {
		return "rendered"
	}
	return "unloaded"
}

// Output：一次渲染的产物
type Output struct {
	ID       string
	At       time.Time
	SVG      []byte
	HTML     []byte
	Stats    render.Stats
	Duration time.Duration
}

// State：两字段状态持有者；任一字段更新后若两者齐备即重新渲染
type State struct {
	mu      sync.Mutex
	topo    *topology.Topology
	records []education.Record
	canvas  *render.Canvas
	opts    render.Options
	stage   Stage
	current atomic.Pointer[Output] // 读路径不加锁
	now     func() time.Time
}

func New(opts render.Options) *State {
	return &State{
		canvas: render.NewCanvas(render.Width, render.Height),
		opts:   opts,
		now:    time.Now,
	}
}

// SetTopology：仍缺记录时返回 (nil, nil)
func (s *State) SetTopology(t *topology.Topology) (*Output, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topo = t
	return s.maybeRender()
}

// SetRecords：仍缺拓扑或记录为空时返回 (nil, nil)
func (s *State) SetRecords(r []education.Record) (*Output, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = r
	return s.maybeRender()
}

// Update：同时替换两个数据集，只渲染一次
func (s *State) Update(t *topology.Topology, r []education.Record) (*Output, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topo = t
	s.records = r
	return s.maybeRender()
}

func (s *State) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// Current：最近一次成功渲染的结果，未渲染时为 nil
func (s *State) Current() *Output { return s.current.Load() }

// ready：拓扑存在且记录非空才算两者齐备；空数组不触发渲染
func (s *State) ready() bool { return s.topo != nil && len(s.records) > 0 }

// maybeRender：调用方持有 s.mu
// 约束：渲染失败保留上一次结果与阶段
func (s *State) maybeRender() (*Output, error) {
	if !s.ready() {
		return nil, nil
	}
	l := logger.L()
	t0 := s.now()
	st, err := render.Draw(s.canvas, render.Input{Topology: s.topo, Records: s.records}, s.opts)
	if err != nil {
		metrics.RenderFailTotal.Inc()
		l.Error("render_error", "err", err)
		return nil, err
	}
	svg, err := s.canvas.SVG()
	if err != nil {
		metrics.RenderFailTotal.Inc()
		return nil, fmt.Errorf("encode svg: %w", err)
	}
	page, err := render.Page(svg)
	if err != nil {
		metrics.RenderFailTotal.Inc()
		return nil, fmt.Errorf("encode page: %w", err)
	}
	out := &Output{
		ID:       uuid.NewString(),
		At:       t0,
		SVG:      svg,
		HTML:     page,
		Stats:    st,
		Duration: s.now().Sub(t0),
	}
	s.current.Store(out)
	s.stage = Rendered

	metrics.RendersTotal.Inc()
	metrics.RenderDurationMs.Observe(float64(out.Duration.Milliseconds()))
	metrics.UnmatchedRegions.Set(float64(st.Unmatched))
	if st.OffCanvas > 0 {
		l.Warn("render_off_canvas", "features", st.OffCanvas, "hint", "topology may not be pre-projected")
	}
	l.Info("render_done",
		"render_id", out.ID,
		"regions", st.Regions,
		"matched", st.Matched,
		"unmatched", st.Unmatched,
		"border_arcs", st.BorderArcs,
		"duration_ms", out.Duration.Milliseconds(),
	)
	return out, nil
}
