package info

import (
	"math"

	"github.com/YuminosukeSato/fastmrmr/dataset"
	"github.com/YuminosukeSato/fastmrmr/pkg/errors"
	"github.com/YuminosukeSato/fastmrmr/pkg/instrument"
)

// Epsilon 以下の同時確率は実質0として扱い、対数を評価しない
const Epsilon = 1e-10

// Engine は特徴量ペアの相互情報量を計算する。
// 周辺確率テーブルは構築時に一度だけ作成し、同時確率テーブルは
// 問い合わせごとに生データから作り直す。並行利用は想定しない。
type Engine struct {
	ds       *dataset.Dataset
	marginal *MarginalTable
	cache    *PairCache
	pool     *TablePool
	metrics  *instrument.Metrics
	queries  int
}

// EngineOption は Engine の挙動を変更する
type EngineOption func(*Engine)

// WithPairCache は非順序ペアをキーとして計算結果をメモ化する。
// 既定では無効で、同じペアでも毎回同時確率テーブルを再構築する。
func WithPairCache() EngineOption {
	return func(e *Engine) { e.cache = NewPairCache() }
}

// WithMetrics は同時確率テーブルの構築回数や問い合わせ回数を記録する
func WithMetrics(m *instrument.Metrics) EngineOption {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine は ds の周辺確率テーブルを構築して Engine を返す
func NewEngine(ds *dataset.Dataset, opts ...EngineOption) (*Engine, error) {
	marginal, err := NewMarginalTable(ds)
	if err != nil {
		return nil, err
	}
	e := &Engine{ds: ds, marginal: marginal, pool: NewTablePool()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Dataset は計算対象のデータセットを返す
func (e *Engine) Dataset() *dataset.Dataset {
	return e.ds
}

// Marginal は周辺確率テーブルを返す
func (e *Engine) Marginal() *MarginalTable {
	return e.marginal
}

// PoolStats は同時確率テーブル用バッファの再利用状況を返す
func (e *Engine) PoolStats() PoolStats {
	return e.pool.Stats()
}

// Queries はこれまでに受け付けた相互情報量の問い合わせ回数を返す
func (e *Engine) Queries() int {
	return e.queries
}

// MutualInformation は特徴量 a, b の相互情報量（ビット）を計算する。
//
//	MI(a,b) = Σ p(x,y) · log2( p(x,y) / (p(x)·p(y)) )
//
// p(x,y) ≤ Epsilon の項と、どちらかの周辺確率が0の項は加算しない。
// 該当する項がなければ 0 を返す。
func (e *Engine) MutualInformation(a, b int) (float64, error) {
	e.queries++
	e.metrics.MutualInformationQueried()

	if e.cache != nil {
		if mi, ok := e.cache.Get(a, b); ok {
			e.metrics.CacheHit()
			return mi, nil
		}
	}

	mi, err := e.compute(a, b)
	if err != nil {
		return 0, err
	}
	if e.cache != nil {
		e.cache.Put(a, b, mi)
	}
	return mi, nil
}

func (e *Engine) compute(a, b int) (float64, error) {
	joint, err := newJointTable(e.ds, a, b, e.pool)
	if err != nil {
		return 0, err
	}
	defer joint.Release()
	e.metrics.JointTableBuilt()

	rangeA, rangeB := joint.Dims()
	mi := 0.0
	for i := 0; i < rangeA; i++ {
		for j := 0; j < rangeB; j++ {
			p, err := joint.Probability(i, j)
			if err != nil {
				return 0, err
			}
			if p <= Epsilon {
				continue
			}
			px, err := e.marginal.Probability(a, i)
			if err != nil {
				return 0, err
			}
			py, err := e.marginal.Probability(b, j)
			if err != nil {
				return 0, err
			}
			if px > 0 && py > 0 {
				mi += p * math.Log2(p/(px*py))
			}
		}
	}

	if err := errors.CheckScalar("mutual_information", mi, e.queries); err != nil {
		return 0, err
	}
	return mi, nil
}
