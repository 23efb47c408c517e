// Package info は離散特徴量の確率テーブルと相互情報量を計算します。
//
// 周辺確率テーブルはデータセットごとに一度だけ構築してキャッシュし、
// 同時確率テーブルは相互情報量の問い合わせごとに生データから再構築します。
package info

import (
	"github.com/YuminosukeSato/fastmrmr/dataset"
	"github.com/YuminosukeSato/fastmrmr/pkg/errors"
)

// MarginalTable は特徴量ごとの周辺確率ベクトルを保持する
type MarginalTable struct {
	rows [][]float64
}

// NewMarginalTable は全特徴量のヒストグラムを作成し、出現回数を N で割って
// 周辺確率に変換する。構築後は読み取り専用。
func NewMarginalTable(ds *dataset.Dataset) (*MarginalTable, error) {
	if ds.Samples() == 0 {
		return nil, errors.NewValueErrorWithCause("NewMarginalTable", "dataset has no samples", errors.ErrEmptyData)
	}

	n := float64(ds.Samples())
	rows := make([][]float64, ds.Features())
	for f := range rows {
		hist, err := ds.Histogram(f)
		if err != nil {
			return nil, err
		}
		row := make([]float64, len(hist))
		for v, count := range hist {
			row[v] = float64(count) / n
		}
		rows[f] = row
	}
	return &MarginalTable{rows: rows}, nil
}

// Probability は特徴量 feature が value を取る確率を返す
func (t *MarginalTable) Probability(feature, value int) (float64, error) {
	if feature < 0 || feature >= len(t.rows) {
		return 0, errors.NewIndexOutOfRangeError("MarginalTable.Probability", "feature", feature, len(t.rows))
	}
	row := t.rows[feature]
	if value < 0 || value >= len(row) {
		return 0, errors.NewIndexOutOfRangeError("MarginalTable.Probability", "value", value, len(row))
	}
	return row[value], nil
}

// Row は特徴量 feature の確率ベクトルのコピーを返す
func (t *MarginalTable) Row(feature int) ([]float64, error) {
	if feature < 0 || feature >= len(t.rows) {
		return nil, errors.NewIndexOutOfRangeError("MarginalTable.Row", "feature", feature, len(t.rows))
	}
	out := make([]float64, len(t.rows[feature]))
	copy(out, t.rows[feature])
	return out, nil
}

// Features はテーブルが保持する特徴量数を返す
func (t *MarginalTable) Features() int {
	return len(t.rows)
}
