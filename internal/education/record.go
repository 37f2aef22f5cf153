// 包 education：教育统计记录的解码与按 FIPS 建索引
package education

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// NoData：未匹配区域的提示文本
const NoData = "Data not available"

// Record：单个县的本科及以上学历占比
type Record struct {
	FIPS              int64   `json:"fips"`
	AreaName          string  `json:"area_name"`
	State             string  `json:"state"`
	BachelorsOrHigher float64 `json:"bachelorsOrHigher"`
}

// Decode：解析记录数组
// 约束：顶层必须为 JSON 数组；空数组合法但后续渲染不会触发
func Decode(r io.Reader) ([]Record, error) {
	var out []Record
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode education records: %w", err)
	}
	return out, nil
}

// Index：FIPS 到记录的映射，每次渲染重建
type Index map[int64]Record

// BuildIndex：重复 FIPS 以后出现者为准
func BuildIndex(records []Record) Index {
	idx := make(Index, len(records))
	for _, r := range records {
		idx[r.FIPS] = r
	}
	return idx
}

func (idx Index) Lookup(fips int64) (Record, bool) {
	r, ok := idx[fips]
	return r, ok
}

// Tooltip：悬停文本，数值保持源精度
func (r Record) Tooltip() string {
	return r.AreaName + ", " + r.State + ": " + FormatValue(r.BachelorsOrHigher) + "%"
}

// FormatValue：最短十进制表示，20 -> "20"，12.5 -> "12.5"
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
