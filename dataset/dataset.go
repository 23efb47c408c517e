// Package dataset は離散化済みの特徴量データセットを扱います。
//
// データセットは N サンプル × F 特徴量のバイト行列で、特徴量ごとに連続した
// 列として取り出せるよう特徴量優先（index = feature×N + sample）で保持します。
// 読み込み後は不変で、下流のコンポーネントはすべて同じバッファを参照します。
package dataset

import (
	"github.com/YuminosukeSato/fastmrmr/pkg/errors"
)

// Dataset は読み込み済みの不変なサンプル行列
type Dataset struct {
	samples  int
	features int
	// data は特徴量優先の行列（index = feature×samples + sample）
	data []byte
	// ranges は特徴量ごとの値域（観測最大値 + 1）
	ranges []int
	legacy bool
}

// newDataset は特徴量優先のバッファから Dataset を構築し、値域を導出する。
// data の所有権は Dataset に移る。
func newDataset(samples, features int, data []byte, o options) *Dataset {
	ds := &Dataset{
		samples:  samples,
		features: features,
		data:     data,
		ranges:   make([]int, features),
		legacy:   o.legacyRange,
	}
	for f := 0; f < features; f++ {
		column := ds.column(f)
		if o.legacyRange {
			ds.ranges[f] = legacyValueRange(column)
			warnUncoveredValues(f, ds.ranges[f], column)
		} else {
			ds.ranges[f] = valueRange(column)
		}
	}
	return ds
}

// valueRange は観測最大値 + 1 を返す
func valueRange(column []byte) int {
	var maxValue byte
	for _, v := range column {
		if v > maxValue {
			maxValue = v
		}
	}
	return int(maxValue) + 1
}

// legacyValueRange は旧実装と同じ導出を行う。走査中の値がカウンタを超えた
// ときにカウンタを1だけ進めるため、値が昇順に現れない列では真の値域より
// 小さくなることがある。
func legacyValueRange(column []byte) int {
	counter := 0
	for _, v := range column {
		if int(v) > counter {
			counter++
		}
	}
	return counter + 1
}

func warnUncoveredValues(feature, valueRange int, column []byte) {
	maxValue, dropped := 0, 0
	for _, v := range column {
		if int(v) > maxValue {
			maxValue = int(v)
		}
		if int(v) >= valueRange {
			dropped++
		}
	}
	if dropped > 0 {
		errors.Warn(errors.NewValueRangeWarning(feature, valueRange, maxValue, dropped))
	}
}

func (ds *Dataset) column(feature int) []byte {
	start := feature * ds.samples
	end := start + ds.samples
	return ds.data[start:end:end]
}

// Samples はサンプル数 N を返す
func (ds *Dataset) Samples() int {
	return ds.samples
}

// Features は特徴量数 F を返す
func (ds *Dataset) Features() int {
	return ds.features
}

// Size はサンプル行列のバイト数を返す
func (ds *Dataset) Size() int {
	return len(ds.data)
}

// LegacyValueRange は互換モードの値域で構築されたかどうかを返す
func (ds *Dataset) LegacyValueRange() bool {
	return ds.legacy
}

// Feature は特徴量 index の全サンプルを返す。
// 戻り値は内部バッファのビューであり、呼び出し側は変更してはならない。
func (ds *Dataset) Feature(index int) ([]byte, error) {
	if err := ds.checkFeature("Dataset.Feature", index); err != nil {
		return nil, err
	}
	return ds.column(index), nil
}

// ValuesRange は特徴量 index の値域 [0, range) の上限を返す
func (ds *Dataset) ValuesRange(index int) (int, error) {
	if err := ds.checkFeature("Dataset.ValuesRange", index); err != nil {
		return 0, err
	}
	return ds.ranges[index], nil
}

// ValuesRanges は全特徴量の値域のコピーを返す
func (ds *Dataset) ValuesRanges() []int {
	out := make([]int, len(ds.ranges))
	copy(out, ds.ranges)
	return out
}

// At は sample 番目のサンプルの特徴量 feature の値を返す
func (ds *Dataset) At(sample, feature int) (byte, error) {
	if err := ds.checkFeature("Dataset.At", feature); err != nil {
		return 0, err
	}
	if sample < 0 || sample >= ds.samples {
		return 0, errors.NewIndexOutOfRangeError("Dataset.At", "sample", sample, ds.samples)
	}
	return ds.data[feature*ds.samples+sample], nil
}

// Histogram は特徴量 index の各値の出現回数を返す。
// 戻り値の長さはその特徴量の値域に等しい。値域外の値（互換モードでのみ発生）は数えない。
func (ds *Dataset) Histogram(index int) ([]int, error) {
	if err := ds.checkFeature("Dataset.Histogram", index); err != nil {
		return nil, err
	}
	counts := make([]int, ds.ranges[index])
	for _, v := range ds.column(index) {
		if int(v) < len(counts) {
			counts[v]++
		}
	}
	return counts, nil
}

func (ds *Dataset) checkFeature(op string, index int) error {
	if index < 0 || index >= ds.features {
		return errors.NewIndexOutOfRangeError(op, "feature", index, ds.features)
	}
	return nil
}
