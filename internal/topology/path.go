package topology

import (
	"math"
	"strconv"
	"strings"
)

// Path：恒等投影下的 SVG 路径数据
// 约束：坐标保留三位小数；多边形环总是丢弃最后一个坐标（闭合点）并以 Z 结束；线不闭合；点不输出
func Path(s Shape) string {
	var b strings.Builder
	writeShape(&b, s)
	return b.String()
}

func writeShape(b *strings.Builder, s Shape) {
	for _, p := range s.Polys {
		for _, r := range p.Rings {
			n := len(r) - 1
			if n <= 0 {
				continue
			}
			writePoints(b, r[:n])
			b.WriteByte('Z')
		}
	}
	for _, l := range s.Lines {
		writePoints(b, l)
	}
	for _, c := range s.Parts {
		writeShape(b, c)
	}
}

func writePoints(b *strings.Builder, pts []Point) {
	for i, p := range pts {
		if i == 0 {
			b.WriteByte('M')
		} else {
			b.WriteByte('L')
		}
		b.WriteString(num(p.X))
		b.WriteByte(',')
		b.WriteString(num(p.Y))
	}
}

func num(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // 去掉 -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
