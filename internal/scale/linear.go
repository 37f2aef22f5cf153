package scale

// Linear：[d0,d1] 线性映射到 [r0,r1]，不钳位
type Linear struct {
	d0, d1, r0, r1 float64
}

func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// At：定义域退化为单点时返回值域中点
func (l Linear) At(v float64) float64 {
	if l.d1 == l.d0 {
		return (l.r0 + l.r1) / 2
	}
	t := (v - l.d0) / (l.d1 - l.d0)
	return l.r0 + t*(l.r1-l.r0)
}

// Pair：有序断点中相邻的一对
type Pair struct {
	Lo, Hi float64
}

// Pairs：n 个断点得到 n-1 对；不足两个时返回 nil
func Pairs(values []float64) []Pair {
	if len(values) < 2 {
		return nil
	}
	out := make([]Pair, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		out = append(out, Pair{Lo: values[i-1], Hi: values[i]})
	}
	return out
}
