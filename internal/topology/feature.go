package topology

import "fmt"

// Features：集合对象展开为每个子几何一个要素，单个几何返回单元素切片
func (t *Topology) Features(name string) ([]Feature, error) {
	o, err := t.Object(name)
	if err != nil {
		return nil, err
	}
	if o.Type != "GeometryCollection" {
		f, err := t.feature(o)
		if err != nil {
			return nil, err
		}
		return []Feature{f}, nil
	}
	out := make([]Feature, 0, len(o.Geometries))
	for _, g := range o.Geometries {
		if g == nil {
			continue
		}
		f, err := t.feature(g)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (t *Topology) feature(g *Geometry) (Feature, error) {
	s, err := t.shape(g)
	if err != nil {
		if g.HasID {
			return Feature{}, fmt.Errorf("feature %d: %w", g.ID, err)
		}
		return Feature{}, err
	}
	return Feature{ID: g.ID, HasID: g.HasID, RawID: g.RawID, Properties: g.Properties, Shape: s}, nil
}

func (t *Topology) shape(g *Geometry) (Shape, error) {
	s := Shape{Type: g.Type}
	switch g.Type {
	case "Point":
		if len(g.Coord) >= 2 {
			s.Points = []Point{t.apply(g.Coord[0], g.Coord[1])}
		}
	case "MultiPoint":
		for _, c := range g.Coords {
			if len(c) >= 2 {
				s.Points = append(s.Points, t.apply(c[0], c[1]))
			}
		}
	case "LineString":
		l, err := t.line(g.LineArcs)
		if err != nil {
			return s, err
		}
		s.Lines = [][]Point{l}
	case "MultiLineString":
		for _, arcs := range g.RingArcs {
			l, err := t.line(arcs)
			if err != nil {
				return s, err
			}
			s.Lines = append(s.Lines, l)
		}
	case "Polygon":
		p, err := t.polygon(g.RingArcs)
		if err != nil {
			return s, err
		}
		s.Polys = []Polygon{p}
	case "MultiPolygon":
		for _, rings := range g.PolyArcs {
			p, err := t.polygon(rings)
			if err != nil {
				return s, err
			}
			s.Polys = append(s.Polys, p)
		}
	case "GeometryCollection":
		for _, c := range g.Geometries {
			if c == nil {
				continue
			}
			cs, err := t.shape(c)
			if err != nil {
				return s, err
			}
			s.Parts = append(s.Parts, cs)
		}
	case "", "null":
	default:
		return s, fmt.Errorf("%w: %q", ErrGeometryType, g.Type)
	}
	return s, nil
}

// stitch：依次拼接弧段，相邻弧共享的端点只保留一个；负索引表示反向
func (t *Topology) stitch(arcs []int) ([]Point, error) {
	var pts []Point
	for _, i := range arcs {
		a, err := t.arc(i)
		if err != nil {
			return nil, err
		}
		if len(pts) > 0 {
			pts = pts[:len(pts)-1]
		}
		start := len(pts)
		pts = append(pts, a...)
		if i < 0 {
			reverse(pts[start:])
		}
	}
	return pts, nil
}

func (t *Topology) line(arcs []int) ([]Point, error) {
	pts, err := t.stitch(arcs)
	if err != nil {
		return nil, err
	}
	if len(pts) == 1 {
		pts = append(pts, pts[0])
	}
	return pts, nil
}

// ring：退化环用首点补足到 4 个点
func (t *Topology) ring(arcs []int) ([]Point, error) {
	pts, err := t.stitch(arcs)
	if err != nil {
		return nil, err
	}
	for len(pts) > 0 && len(pts) < 4 {
		pts = append(pts, pts[0])
	}
	return pts, nil
}

func (t *Topology) polygon(rings [][]int) (Polygon, error) {
	var p Polygon
	for _, r := range rings {
		pts, err := t.ring(r)
		if err != nil {
			return p, err
		}
		p.Rings = append(p.Rings, pts)
	}
	p.BBox = computeBBox(p)
	return p, nil
}

func reverse(pts []Point) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}
