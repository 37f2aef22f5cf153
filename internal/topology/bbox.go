package topology

import "math"

func computeBBox(p Polygon) [4]float64 {
	b := [4]float64{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for _, r := range p.Rings {
		for _, pt := range r {
			b[0] = math.Min(b[0], pt.X)
			b[1] = math.Min(b[1], pt.Y)
			b[2] = math.Max(b[2], pt.X)
			b[3] = math.Max(b[3], pt.Y)
		}
	}
	return b
}

// Bounds：要素全部多边形的包围盒；无多边形时 ok=false
func (s Shape) Bounds() (b [4]float64, ok bool) {
	b = [4]float64{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	var merge func(s Shape)
	merge = func(s Shape) {
		for _, p := range s.Polys {
			if len(p.Rings) == 0 {
				continue
			}
			ok = true
			b[0] = math.Min(b[0], p.BBox[0])
			b[1] = math.Min(b[1], p.BBox[1])
			b[2] = math.Max(b[2], p.BBox[2])
			b[3] = math.Max(b[3], p.BBox[3])
		}
		for _, c := range s.Parts {
			merge(c)
		}
	}
	merge(s)
	return b, ok
}

// OutsideViewport：包围盒与 [0,w]x[0,h] 完全不相交
func OutsideViewport(b [4]float64, w, h float64) bool {
	return b[2] < 0 || b[3] < 0 || b[0] > w || b[1] > h
}
