package topology

// Filter：弧段两侧的几何；外边界弧两侧为同一几何
type Filter func(a, b *Geometry) bool

type arcRef struct {
	i int
	g *Geometry
}

// Mesh：收集对象内被 filter 接受的弧段，每条弧恰好输出一次
// 约束：按弧索引升序输出；方向取第一次引用时的方向；filter 为 nil 时接受全部
func (t *Topology) Mesh(name string, filter Filter) (Shape, error) {
	o, err := t.Object(name)
	if err != nil {
		return Shape{}, err
	}
	refs := make([][]arcRef, len(t.arcs))
	var walk func(g *Geometry) error
	add := func(g *Geometry, arcs []int) error {
		for _, i := range arcs {
			j := i
			if i < 0 {
				j = ^i
			}
			if j >= len(refs) {
				return ErrArcIndex
			}
			refs[j] = append(refs[j], arcRef{i: i, g: g})
		}
		return nil
	}
	walk = func(g *Geometry) error {
		if g == nil {
			return nil
		}
		switch g.Type {
		case "GeometryCollection":
			for _, c := range g.Geometries {
				if err := walk(c); err != nil {
					return err
				}
			}
		case "LineString":
			return add(g, g.LineArcs)
		case "MultiLineString", "Polygon":
			for _, r := range g.RingArcs {
				if err := add(g, r); err != nil {
					return err
				}
			}
		case "MultiPolygon":
			for _, p := range g.PolyArcs {
				for _, r := range p {
					if err := add(g, r); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}
	if err := walk(o); err != nil {
		return Shape{}, err
	}

	s := Shape{Type: "MultiLineString"}
	for _, rs := range refs {
		if len(rs) == 0 {
			continue
		}
		if filter != nil && !filter(rs[0].g, rs[len(rs)-1].g) {
			continue
		}
		l, err := t.line([]int{rs[0].i})
		if err != nil {
			return Shape{}, err
		}
		s.Lines = append(s.Lines, l)
	}
	return s, nil
}

// Interior：仅保留两侧几何不同的弧，即内部边界
func Interior(a, b *Geometry) bool { return a != b }

// DifferentState：两侧县所属州不同；缺少 id 的几何按对象身份比较
func DifferentState(a, b *Geometry) bool {
	if a == b {
		return false
	}
	if !a.HasID || !b.HasID {
		return true
	}
	return StateFIPS(a.ID) != StateFIPS(b.ID)
}
