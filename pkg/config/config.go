// Package config は選択処理の実行設定を提供します。
// コマンドライン引数やYAMLファイルの1始まりの値は、境界で一度だけ
// 0始まりに変換され、以降は不変の Config として受け渡されます。
package config

import (
	"os"

	"github.com/YuminosukeSato/fastmrmr/pkg/errors"
	"sigs.k8s.io/yaml"
)

const (
	// DefaultFile はデータセットファイルの既定パス
	DefaultFile = "../data.mrmr"
	// DefaultClassIndex は既定のクラス特徴量（0始まり）
	DefaultClassIndex = 0
	// DefaultCount は既定の選択数
	DefaultCount = 10
)

// Config は1回の選択処理の不変設定
type Config struct {
	// File はデータセットファイルのパス
	File string
	// ClassIndex はクラス特徴量の0始まりインデックス
	ClassIndex int
	// Count は選択する特徴量の数
	Count int
}

// Default は既定値の Config を返す
func Default() Config {
	return Config{
		File:       DefaultFile,
		ClassIndex: DefaultClassIndex,
		Count:      DefaultCount,
	}
}

// FromOneBased はコマンドライン形式の1始まりの値から Config を作成する。
// クラス列・選択数ともに1を引いて内部表現に変換する。
func FromOneBased(file string, classColumn, count int) Config {
	return Config{
		File:       file,
		ClassIndex: classColumn - 1,
		Count:      count - 1,
	}
}

// Validate はデータセットに依存しない範囲で設定を検証する。
// クラスインデックスの上限は特徴量数が判明してから mrmr.New で検証される。
func (c Config) Validate() error {
	if c.File == "" {
		return errors.NewConfigurationError("file", "must not be empty", c.File)
	}
	if c.ClassIndex < 0 {
		return errors.NewConfigurationError("class_index", "must be non-negative", c.ClassIndex)
	}
	if c.Count < 1 {
		return errors.NewConfigurationError("count", "must be positive", c.Count)
	}
	return nil
}

// FileConfig はYAML設定ファイルの形式。値はコマンドラインと同じく1始まり。
type FileConfig struct {
	File     string `json:"file,omitempty"`
	Class    *int   `json:"class,omitempty"`
	Features *int   `json:"features,omitempty"`
}

// LoadFile はYAML設定ファイルを読み込み、base に上書きした Config を返す。
//
// 例:
//
//	file: testdata/data.mrmr
//	class: 1
//	features: 6
func LoadFile(path string, base Config) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, errors.NewFileOpenError(path, err)
	}

	var fc FileConfig
	if err := yaml.UnmarshalStrict(raw, &fc); err != nil {
		return base, errors.NewConfigurationError("config", "malformed YAML: "+err.Error(), path)
	}
	return fc.Apply(base), nil
}

// Apply は設定ファイルで指定された項目だけを base に反映する
func (fc FileConfig) Apply(base Config) Config {
	out := base
	if fc.File != "" {
		out.File = fc.File
	}
	if fc.Class != nil {
		out.ClassIndex = *fc.Class - 1
	}
	if fc.Features != nil {
		out.Count = *fc.Features - 1
	}
	return out
}
