package render

import (
	"strconv"
	"strings"
	"testing"

	"choropleth/internal/education"
	"choropleth/internal/scale"
	"choropleth/internal/testfixture"
	"choropleth/internal/topology"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureInput(t *testing.T) Input {
	t.Helper()
	topo, err := topology.Parse(strings.NewReader(testfixture.Topology))
	require.NoError(t, err)
	recs, err := education.Decode(strings.NewReader(testfixture.Education))
	require.NoError(t, err)
	return Input{Topology: topo, Records: recs}
}

func byClass(class string) func(*Node) bool {
	return func(n *Node) bool {
		v, _ := n.Attr("class")
		return v == class
	}
}

func attrFloat(t *testing.T, n *Node, name string) float64 {
	t.Helper()
	v, ok := n.Attr(name)
	require.True(t, ok, "missing %s", name)
	f, err := strconv.ParseFloat(v, 64)
	require.NoError(t, err)
	return f
}

func titleOf(n *Node) string {
	for _, c := range n.Children {
		if c.Tag == "title" {
			return c.Text
		}
	}
	return ""
}

func TestDrawPaintsCountiesWithColorAndTooltip(t *testing.T) {
	c := NewCanvas(Width, Height)
	st, err := Draw(c, fixtureInput(t), Options{})
	require.NoError(t, err)
	assert.Equal(t, Stats{Regions: 3, Matched: 2, Unmatched: 1, BorderArcs: 1}, st)

	paths := c.Root().Find(byClass("county"))
	require.Len(t, paths, 3)

	fill, _ := paths[0].Attr("fill")
	assert.Equal(t, scale.Education().Color(21.9), fill)
	assert.Equal(t, "Autauga County, AL: 21.9%", titleOf(paths[0]))
	fips, _ := paths[0].Attr("data-fips")
	assert.Equal(t, "1001", fips)

	// duplicate fips 1003: last record wins
	fill, _ = paths[1].Attr("fill")
	assert.Equal(t, scale.Greens9[8], fill)
	assert.Equal(t, "Baldwin County, AL: 70%", titleOf(paths[1]))

	fill, _ = paths[2].Attr("fill")
	assert.Equal(t, FallbackColor, fill)
	assert.Equal(t, education.NoData, titleOf(paths[2]))
	d, _ := paths[2].Attr("d")
	assert.Equal(t, "M2,1L2,0L3,0L3,1Z", d)
}

func TestDrawStateBorderLayer(t *testing.T) {
	c := NewCanvas(Width, Height)
	_, err := Draw(c, fixtureInput(t), Options{})
	require.NoError(t, err)

	borders := c.Root().Find(byClass("state-borders"))
	require.Len(t, borders, 1)
	b := borders[0]
	d, _ := b.Attr("d")
	assert.Equal(t, testfixture.BorderPath, d)
	fill, _ := b.Attr("fill")
	stroke, _ := b.Attr("stroke")
	assert.Equal(t, "none", fill)
	assert.Equal(t, "white", stroke)

	// borders are painted above the county layer
	kids := c.Root().Children
	require.GreaterOrEqual(t, len(kids), 3)
	assert.Equal(t, "counties", mustAttr(kids[0], "class"))
	assert.Equal(t, "state-borders", mustAttr(kids[1], "class"))
	assert.Equal(t, "legend", mustAttr(kids[2], "class"))
}

func mustAttr(n *Node, name string) string {
	v, _ := n.Attr(name)
	return v
}

func TestDrawDerivesBordersWithoutStatesObject(t *testing.T) {
	in := fixtureInput(t)
	delete(in.Topology.Objects, StatesObject)
	c := NewCanvas(Width, Height)
	st, err := Draw(c, in, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, st.BorderArcs)
	assert.Equal(t, testfixture.BorderPath, mustAttr(c.Root().Find(byClass("state-borders"))[0], "d"))
}

func TestRedrawIsIdempotent(t *testing.T) {
	in := fixtureInput(t)
	c := NewCanvas(Width, Height)
	_, err := Draw(c, in, Options{})
	require.NoError(t, err)
	first, err := c.SVG()
	require.NoError(t, err)

	_, err = Draw(c, in, Options{})
	require.NoError(t, err)
	second, err := c.SVG()
	require.NoError(t, err)

	assert.Len(t, c.Root().Find(byClass("county")), 3)
	assert.Len(t, c.Root().Find(byClass("state-borders")), 1)
	assert.Len(t, c.Root().Find(byClass("legend")), 1)
	assert.Equal(t, string(first), string(second))
}

func TestDrawMissingCountiesObject(t *testing.T) {
	in := fixtureInput(t)
	c := NewCanvas(Width, Height)
	_, err := Draw(c, in, Options{CountiesObject: "nation"})
	require.ErrorIs(t, err, topology.ErrMissingObject)
	assert.Empty(t, c.Root().Children)

	_, err = Draw(c, Input{}, Options{})
	assert.Error(t, err)
}

func TestDrawCountsOffCanvasFeatures(t *testing.T) {
	doc := `{"type":"Topology","arcs":[[[-120,30],[-119,30],[-119,31],[-120,30]]],
	  "objects":{"counties":{"type":"GeometryCollection","geometries":[{"type":"Polygon","id":1001,"arcs":[[0]]}]}}}`
	topo, err := topology.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	st, err := Draw(NewCanvas(Width, Height), Input{Topology: topo}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, st.OffCanvas)
	assert.Equal(t, 1, st.Unmatched)
}

func TestLegendGeometry(t *testing.T) {
	root := El("svg")
	g := DrawLegend(root, scale.Education())
	assert.Equal(t, "translate(610,20)", mustAttr(g, "transform"))

	rects := g.Find(func(n *Node) bool { return n.Tag == "rect" })
	require.Len(t, rects, 7)
	x := LegendScale()

	assert.Equal(t, 0.0, attrFloat(t, rects[0], "x"))
	assert.InDelta(t, x.At(12), attrFloat(t, rects[0], "width"), 1e-9)
	last := rects[len(rects)-1]
	assert.InDelta(t, 240.0, attrFloat(t, last, "x")+attrFloat(t, last, "width"), 1e-9)

	for i, r := range rects {
		assert.Equal(t, 8.0, attrFloat(t, r, "height"))
		assert.Equal(t, scale.Education().Color(LegendBreakpoints[i]), mustAttr(r, "fill"))
	}
}

func TestLegendAxisTicks(t *testing.T) {
	g := DrawLegend(El("svg"), scale.Education())
	axis := g.Find(byClass("axis"))
	require.Len(t, axis, 1)
	assert.Equal(t, "translate(0,8)", mustAttr(axis[0], "transform"))
	assert.Empty(t, axis[0].Find(byClass("domain")), "baseline must be suppressed")

	ticks := axis[0].Find(byClass("tick"))
	require.Len(t, ticks, len(LegendBreakpoints))
	assert.Equal(t, "translate(0,0)", mustAttr(ticks[0], "transform"))
	assert.Equal(t, "translate(240,0)", mustAttr(ticks[7], "transform"))

	var labels []string
	for _, tk := range ticks {
		for _, c := range tk.Children {
			if c.Tag == "text" {
				labels = append(labels, c.Text)
			}
			if c.Tag == "line" {
				assert.Equal(t, "6", mustAttr(c, "y2"))
			}
		}
	}
	assert.Equal(t, []string{"3%", "12%", "21%", "30%", "39%", "48%", "57%", "66%"}, labels)
}

func TestSVGEncoding(t *testing.T) {
	c := NewCanvas(Width, Height)
	c.Append(El("path", "d", "M0,0")).Append(&Node{Tag: "title", Text: `Doña Ana County, NM: 30.5% <"&">`})
	b, err := c.SVG()
	require.NoError(t, err)
	s := string(b)
	assert.True(t, strings.HasPrefix(s, `<svg xmlns="http://www.w3.org/2000/svg" width="975" height="610" viewBox="0 0 975 610" style="max-width: 100%; height: auto;">`))
	assert.Contains(t, s, `<path d="M0,0"><title>Doña Ana County, NM: 30.5% &lt;&#34;&amp;&#34;&gt;</title></path>`)
	assert.True(t, strings.HasSuffix(s, "</svg>\n"))
}

func TestPageEmbedsSVG(t *testing.T) {
	c := NewCanvas(Width, Height)
	svg, err := c.SVG()
	require.NoError(t, err)
	page, err := Page(svg)
	require.NoError(t, err)
	s := string(page)
	assert.Contains(t, s, "<h1 id=\"title\">United States Educational Attainment</h1>")
	assert.Contains(t, s, "bachelor&#39;s degree")
	assert.Contains(t, s, `<svg xmlns="http://www.w3.org/2000/svg"`)
}
