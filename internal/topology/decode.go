package topology

import (
	"encoding/json"
	"fmt"
	"io"
)

// Parse：解析拓扑文档并解码弧段
// 约束：存在 transform 时弧段为量化差分编码，逐弧累加后再缩放平移
func Parse(r io.Reader) (*Topology, error) {
	var t Topology
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode topology: %w", err)
	}
	if t.Type != "" && t.Type != "Topology" {
		return nil, fmt.Errorf("decode topology: unexpected type %q", t.Type)
	}
	t.decodeArcs()
	return &t, nil
}

func (t *Topology) decodeArcs() {
	t.arcs = make([][]Point, len(t.RawArcs))
	for i, raw := range t.RawArcs {
		pts := make([]Point, 0, len(raw))
		var x, y float64
		for _, p := range raw {
			if len(p) < 2 {
				continue
			}
			if t.Transform == nil {
				pts = append(pts, Point{X: p[0], Y: p[1]})
				continue
			}
			x += p[0]
			y += p[1]
			pts = append(pts, t.apply(x, y))
		}
		t.arcs[i] = pts
	}
}

func (t *Topology) apply(x, y float64) Point {
	if t.Transform == nil {
		return Point{X: x, Y: y}
	}
	return Point{
		X: x*t.Transform.Scale[0] + t.Transform.Translate[0],
		Y: y*t.Transform.Scale[1] + t.Transform.Translate[1],
	}
}

// Object：按名称取顶层对象
func (t *Topology) Object(name string) (*Geometry, error) {
	g, ok := t.Objects[name]
	if !ok || g == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingObject, name)
	}
	return g, nil
}

func (t *Topology) ArcCount() int { return len(t.arcs) }

func (t *Topology) arc(i int) ([]Point, error) {
	j := i
	if i < 0 {
		j = ^i
	}
	if j >= len(t.arcs) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrArcIndex, i, len(t.arcs))
	}
	return t.arcs[j], nil
}
