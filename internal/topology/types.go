// 包 topology：TopoJSON 解码、要素提取与邻接网格
// 约束：坐标视为已投影的画布坐标，不做地理投影
package topology

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrMissingObject = errors.New("topology: object not found")
	ErrArcIndex      = errors.New("topology: arc index out of range")
	ErrGeometryType  = errors.New("topology: unsupported geometry type")
)

// Point：画布坐标
type Point struct{ X, Y float64 }

// Polygon：环集合，第一环为外环，其余为洞
type Polygon struct {
	Rings [][]Point
	BBox  [4]float64 // minX, minY, maxX, maxY
}

// Shape：要素几何，按 Type 使用对应字段
type Shape struct {
	Type   string
	Polys  []Polygon // Polygon / MultiPolygon
	Lines  [][]Point // LineString / MultiLineString
	Points []Point   // Point / MultiPoint
	Parts  []Shape   // GeometryCollection
}

// Feature：由拓扑对象解出的单个要素
type Feature struct {
	ID         int64
	HasID      bool
	RawID      string
	Properties map[string]any
	Shape      Shape
}

type Transform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

// Topology：原始拓扑文档；arcs 在 Parse 时解码为绝对坐标
type Topology struct {
	Type      string               `json:"type"`
	Transform *Transform           `json:"transform,omitempty"`
	BBox      []float64            `json:"bbox,omitempty"`
	RawArcs   [][][]float64        `json:"arcs"`
	Objects   map[string]*Geometry `json:"objects"`

	arcs [][]Point
}

// Geometry：拓扑几何对象，arcs 依类型嵌套深度不同
type Geometry struct {
	Type       string
	ID         int64
	HasID      bool
	RawID      string
	Properties map[string]any

	LineArcs   []int     // LineString
	RingArcs   [][]int   // Polygon, MultiLineString
	PolyArcs   [][][]int // MultiPolygon
	Coord      []float64
	Coords     [][]float64
	Geometries []*Geometry
}

type rawGeometry struct {
	Type        string          `json:"type"`
	ID          json.RawMessage `json:"id,omitempty"`
	Properties  map[string]any  `json:"properties,omitempty"`
	Arcs        json.RawMessage `json:"arcs,omitempty"`
	Coordinates json.RawMessage `json:"coordinates,omitempty"`
	Geometries  []*Geometry     `json:"geometries,omitempty"`
}

func (g *Geometry) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var r rawGeometry
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	g.Type = r.Type
	g.Properties = r.Properties
	g.Geometries = r.Geometries
	g.ID, g.HasID, g.RawID = parseID(r.ID)
	var dst any
	switch r.Type {
	case "LineString":
		dst = &g.LineArcs
	case "Polygon", "MultiLineString":
		dst = &g.RingArcs
	case "MultiPolygon":
		dst = &g.PolyArcs
	case "Point":
		dst = &g.Coord
	case "MultiPoint":
		dst = &g.Coords
	case "GeometryCollection", "", "null":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrGeometryType, r.Type)
	}
	src := r.Arcs
	if r.Type == "Point" || r.Type == "MultiPoint" {
		src = r.Coordinates
	}
	if len(src) == 0 {
		return nil
	}
	if err := json.Unmarshal(src, dst); err != nil {
		return fmt.Errorf("topology: %s arcs: %w", r.Type, err)
	}
	return nil
}

// parseID：数字或数字字符串（如 "01001"）解析为整数键，其余保留原文
func parseID(raw json.RawMessage) (int64, bool, string) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, false, ""
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, false, ""
		}
		s = str
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true, s
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
		return int64(f), true, s
	}
	return 0, false, s
}

// StateFIPS：县 FIPS 的前两位即州 FIPS
func StateFIPS(countyID int64) int64 { return countyID / 1000 }
