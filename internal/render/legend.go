package render

import (
	"strconv"

	"choropleth/internal/scale"
)

const (
	LegendX      = 610
	LegendY      = 20
	LegendWidth  = 240
	SwatchHeight = 8
	TickSize     = 6
)

// LegendBreakpoints：仅用于展示，与分级阈值相互独立
var LegendBreakpoints = []float64{3, 12, 21, 30, 39, 48, 57, 66}

// LegendScale：首末断点映射到 [0, LegendWidth]
func LegendScale() scale.Linear {
	bp := LegendBreakpoints
	return scale.NewLinear(bp[0], bp[len(bp)-1], 0, LegendWidth)
}

// DrawLegend：追加色块与底部刻度轴；轴不画基线
// 约束：色块填充取 color(lo)，8 个断点得到 7 个色块
func DrawLegend(parent *Node, color *scale.Quantize) *Node {
	x := LegendScale()
	g := parent.Append(El("g", "class", "legend", "transform", translate(LegendX, LegendY)))
	for _, p := range scale.Pairs(LegendBreakpoints) {
		g.Append(El("rect",
			"x", num(x.At(p.Lo)),
			"y", "0",
			"width", num(x.At(p.Hi)-x.At(p.Lo)),
			"height", strconv.Itoa(SwatchHeight),
			"fill", color.Color(p.Lo),
		))
	}
	axis := g.Append(El("g",
		"class", "axis",
		"transform", translate(0, SwatchHeight),
		"fill", "none",
		"font-size", "10",
		"font-family", "sans-serif",
		"text-anchor", "middle",
	))
	for _, v := range LegendBreakpoints {
		tick := axis.Append(El("g", "class", "tick", "opacity", "1", "transform", "translate("+num(x.At(v))+",0)"))
		tick.Append(El("line", "stroke", "currentColor", "y2", strconv.Itoa(TickSize)))
		tick.Append(&Node{
			Tag:   "text",
			Attrs: []Attr{{"fill", "currentColor"}, {"y", strconv.Itoa(TickSize + 3)}, {"dy", "0.71em"}},
			Text:  strconv.FormatFloat(v, 'f', -1, 64) + "%",
		})
	}
	return g
}

func translate(x, y float64) string {
	return "translate(" + num(x) + "," + num(y) + ")"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
