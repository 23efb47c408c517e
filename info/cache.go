package info

// pairKey は順序を持たない特徴量ペア（lo ≤ hi）
type pairKey struct {
	lo, hi int
}

func newPairKey(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// PairCache は非順序ペアをキーとする相互情報量のキャッシュ。
// 最初に計算した順序の結果を保持するため、(a,b) と (b,a) は同じ値を返す。
type PairCache struct {
	values map[pairKey]float64
}

// NewPairCache は空のキャッシュを作成する
func NewPairCache() *PairCache {
	return &PairCache{values: make(map[pairKey]float64)}
}

// Get はペアの値を返す
func (c *PairCache) Get(a, b int) (float64, bool) {
	v, ok := c.values[newPairKey(a, b)]
	return v, ok
}

// Put はペアの値を記録する
func (c *PairCache) Put(a, b int, mi float64) {
	c.values[newPairKey(a, b)] = mi
}

// Len は記録済みのペア数を返す
func (c *PairCache) Len() int {
	return len(c.values)
}
