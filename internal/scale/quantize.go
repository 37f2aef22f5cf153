// 包 scale：数值到视觉的映射；quantize 用于分级着色，linear 用于图例
package scale

import (
	"math"
	"sort"
)

// Greens9：九级绿色顺序色带，由浅到深
var Greens9 = []string{
	"#f7fcf5", "#e5f5e0", "#c7e9c0", "#a1d99b", "#74c476",
	"#41ab5d", "#238b45", "#006d2c", "#00441b",
}

// Quantize：等宽分箱把连续定义域映射到固定输出
// 约束：分箱左闭右开，恰好等于阈值的值落入较高一档；定义域外的值钳到首末档
type Quantize struct {
	colors     []string
	thresholds []float64
}

// NewQuantize：阈值按 ((i+1)*hi-(i-(n-1))*lo)/n 计算
func NewQuantize(lo, hi float64, colors []string) *Quantize {
	n := len(colors)
	q := &Quantize{colors: append([]string(nil), colors...)}
	if n > 1 {
		q.thresholds = make([]float64, n-1)
		for i := range q.thresholds {
			q.thresholds[i] = ((float64(i)+1)*hi - (float64(i)-float64(n-1))*lo) / float64(n)
		}
	}
	return q
}

// Education：地图使用的分级尺度，定义域 [1,70]
func Education() *Quantize { return NewQuantize(1, 70, Greens9) }

// Bucket：返回 v 所在档位；NaN 无档位
func (q *Quantize) Bucket(v float64) (int, bool) {
	if math.IsNaN(v) || len(q.colors) == 0 {
		return 0, false
	}
	return sort.Search(len(q.thresholds), func(i int) bool { return q.thresholds[i] > v }), true
}

// Color：NaN 返回空串，由调用方回退到缺省色
func (q *Quantize) Color(v float64) string {
	i, ok := q.Bucket(v)
	if !ok {
		return ""
	}
	return q.colors[i]
}

// Thresholds：返回副本，长度为档数减一
func (q *Quantize) Thresholds() []float64 { return append([]float64(nil), q.thresholds...) }
