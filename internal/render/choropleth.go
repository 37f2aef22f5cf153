package render

import (
	"fmt"

	"choropleth/internal/education"
	"choropleth/internal/scale"
	"choropleth/internal/topology"
)

const (
	Width         = 975
	Height        = 610
	FallbackColor = "#ccc"

	CountiesObject = "counties"
	StatesObject   = "states"
)

// Input：一次渲染所需的全部输入
type Input struct {
	Topology *topology.Topology
	Records  []education.Record
}

// Options：零值即默认对象名与教育分级尺度
type Options struct {
	CountiesObject string
	StatesObject   string
	Color          *scale.Quantize
}

func (o Options) withDefaults() Options {
	if o.CountiesObject == "" {
		o.CountiesObject = CountiesObject
	}
	if o.StatesObject == "" {
		o.StatesObject = StatesObject
	}
	if o.Color == nil {
		o.Color = scale.Education()
	}
	return o
}

// Stats：单次渲染统计
type Stats struct {
	Regions    int `json:"regions"`
	Matched    int `json:"matched"`
	Unmatched  int `json:"unmatched"`
	BorderArcs int `json:"border_arcs"`
	OffCanvas  int `json:"off_canvas"`
}

// Draw：清空画布后依次绘制县域、州界网格、图例
// 约束：几何先全部提取再落笔，拓扑异常时画布为空而不是画到一半
func Draw(c *Canvas, in Input, opts Options) (Stats, error) {
	opts = opts.withDefaults()
	c.Clear()
	var st Stats
	if in.Topology == nil {
		return st, fmt.Errorf("render: topology is nil")
	}
	counties, err := in.Topology.Features(opts.CountiesObject)
	if err != nil {
		return st, fmt.Errorf("render counties: %w", err)
	}
	borders, err := stateBorders(in.Topology, opts)
	if err != nil {
		return st, fmt.Errorf("render state borders: %w", err)
	}

	idx := education.BuildIndex(in.Records)
	layer := c.Append(El("g", "class", "counties"))
	for _, f := range counties {
		fill, title, ok := classify(idx, f, opts.Color)
		if ok {
			st.Matched++
		} else {
			st.Unmatched++
		}
		if b, has := f.Shape.Bounds(); has && topology.OutsideViewport(b, float64(c.Width), float64(c.Height)) {
			st.OffCanvas++
		}
		p := layer.Append(El("path", "class", "county", "fill", fill, "d", topology.Path(f.Shape)))
		if f.HasID {
			p.Set("data-fips", fmt.Sprint(f.ID))
		}
		p.Append(&Node{Tag: "title", Text: title})
	}
	st.Regions = len(counties)
	st.BorderArcs = len(borders.Lines)

	c.Append(El("path",
		"class", "state-borders",
		"fill", "none",
		"stroke", "white",
		"stroke-linejoin", "round",
		"d", topology.Path(borders),
	))
	DrawLegend(c.Root(), opts.Color)
	return st, nil
}

// classify：县与记录按 id 关联；无记录或无档位时取缺省灰色
func classify(idx education.Index, f topology.Feature, color *scale.Quantize) (fill, title string, matched bool) {
	if !f.HasID {
		return FallbackColor, education.NoData, false
	}
	r, ok := idx.Lookup(f.ID)
	if !ok {
		return FallbackColor, education.NoData, false
	}
	fill = color.Color(r.BachelorsOrHigher)
	if fill == "" {
		fill = FallbackColor
	}
	return fill, r.Tooltip(), true
}

// stateBorders：优先使用 states 对象；缺失时按县 FIPS 的州前缀从县邻接推导
func stateBorders(t *topology.Topology, opts Options) (topology.Shape, error) {
	if _, err := t.Object(opts.StatesObject); err == nil {
		return t.Mesh(opts.StatesObject, topology.Interior)
	}
	return t.Mesh(opts.CountiesObject, topology.DifferentState)
}
