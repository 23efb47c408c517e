package model

import "gonum.org/v1/gonum/mat"

// Transformer はデータ変換のインターフェース
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X mat.Matrix) error

	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// FeatureSelector は列を選択する Transformer
type FeatureSelector interface {
	Transformer

	// SelectedIndices は選ばれた列を選択順で返す
	SelectedIndices() ([]int, error)

	// Support は列ごとに選ばれたかどうかを返す
	Support() ([]bool, error)
}
