package dataset

import (
	"math"

	"github.com/YuminosukeSato/fastmrmr/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// FromColumns は特徴量ごとの列から Dataset を構築する。
// すべての列は同じ長さでなければならない。列の内容はコピーされる。
func FromColumns(columns [][]byte, opts ...Option) (*Dataset, error) {
	features := len(columns)
	samples := 0
	if features > 0 {
		samples = len(columns[0])
	}
	data := make([]byte, 0, samples*features)
	for j, col := range columns {
		if len(col) != samples {
			return nil, errors.Wrapf(errors.NewDimensionError("dataset.FromColumns", samples, len(col), 0), "column %d", j)
		}
		data = append(data, col...)
	}
	return newDataset(samples, features, data, buildOptions(opts)), nil
}

// FromRows はサンプルごとの行（ファイル上と同じ並び）から Dataset を構築する。
func FromRows(rows [][]byte, opts ...Option) (*Dataset, error) {
	samples := len(rows)
	features := 0
	if samples > 0 {
		features = len(rows[0])
	}
	raw := make([]byte, 0, samples*features)
	for i, row := range rows {
		if len(row) != features {
			return nil, errors.Wrapf(errors.NewDimensionError("dataset.FromRows", features, len(row), 1), "row %d", i)
		}
		raw = append(raw, row...)
	}
	return newDataset(samples, features, transpose(raw, samples, features), buildOptions(opts)), nil
}

// FromMatrix は離散化済みの行列（行 = サンプル、列 = 特徴量）から Dataset を構築する。
// 各要素は [0, 255] の整数値でなければならない。
func FromMatrix(X mat.Matrix, opts ...Option) (*Dataset, error) {
	r, c := X.Dims()
	data := make([]byte, r*c)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			v := X.At(i, j)
			if v < 0 || v > math.MaxUint8 || v != math.Trunc(v) {
				return nil, errors.NewValidationError("X", "values must be discretized integers in [0, 255]", v)
			}
			data[j*r+i] = byte(v)
		}
	}
	return newDataset(r, c, data, buildOptions(opts)), nil
}
