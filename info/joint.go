package info

import (
	"github.com/YuminosukeSato/fastmrmr/dataset"
	"github.com/YuminosukeSato/fastmrmr/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// JointTable は2つの特徴量の同時出現回数を rangeA×rangeB の行列で保持する。
// 1回の相互情報量計算の中で作られて捨てられる短命なオブジェクト。
type JointTable struct {
	counts  *mat.Dense
	samples int
	rangeA  int
	rangeB  int

	pool   *TablePool
	buffer *tableBuffer
}

// NewJointTable は特徴量 a, b の列を同時に走査して同時出現回数を数える
func NewJointTable(ds *dataset.Dataset, a, b int) (*JointTable, error) {
	return newJointTable(ds, a, b, nil)
}

// newJointTable は pool が nil でなければ集計用バッファをプールから借りる。
// 借りたバッファは Release で返却する。
func newJointTable(ds *dataset.Dataset, a, b int, pool *TablePool) (*JointTable, error) {
	colA, err := ds.Feature(a)
	if err != nil {
		return nil, err
	}
	colB, err := ds.Feature(b)
	if err != nil {
		return nil, err
	}
	rangeA, _ := ds.ValuesRange(a)
	rangeB, _ := ds.ValuesRange(b)

	var buffer *tableBuffer
	var data []float64
	if pool != nil {
		buffer = pool.get(rangeA * rangeB)
		data = buffer.data
	}
	counts := mat.NewDense(rangeA, rangeB, data)
	raw := counts.RawMatrix()
	for i := range colA {
		va, vb := int(colA[i]), int(colB[i])
		// 互換モードの値域外の値は数えない
		if va >= rangeA || vb >= rangeB {
			continue
		}
		raw.Data[va*raw.Stride+vb]++
	}

	return &JointTable{
		counts:  counts,
		samples: ds.Samples(),
		rangeA:  rangeA,
		rangeB:  rangeB,
		pool:    pool,
		buffer:  buffer,
	}, nil
}

// Release は借りていたバッファをプールに返す。以降テーブルは使用できない。
func (t *JointTable) Release() {
	if t.pool == nil || t.buffer == nil {
		return
	}
	t.pool.put(t.buffer)
	t.buffer = nil
	t.counts = nil
}

// Dims は (rangeA, rangeB) を返す
func (t *JointTable) Dims() (int, int) {
	return t.rangeA, t.rangeB
}

// Count は (valueA, valueB) の同時出現回数を返す
func (t *JointTable) Count(valueA, valueB int) (int, error) {
	if err := t.check(valueA, valueB); err != nil {
		return 0, err
	}
	return int(t.counts.At(valueA, valueB)), nil
}

// Probability は (valueA, valueB) の同時確率（出現回数 / N）を返す
func (t *JointTable) Probability(valueA, valueB int) (float64, error) {
	if err := t.check(valueA, valueB); err != nil {
		return 0, err
	}
	if t.samples == 0 {
		return 0, nil
	}
	return t.counts.At(valueA, valueB) / float64(t.samples), nil
}

func (t *JointTable) check(valueA, valueB int) error {
	if valueA < 0 || valueA >= t.rangeA {
		return errors.NewIndexOutOfRangeError("JointTable.Probability", "value", valueA, t.rangeA)
	}
	if valueB < 0 || valueB >= t.rangeB {
		return errors.NewIndexOutOfRangeError("JointTable.Probability", "value", valueB, t.rangeB)
	}
	return nil
}
