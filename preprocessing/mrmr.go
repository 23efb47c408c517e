package preprocessing

import (
	"github.com/YuminosukeSato/fastmrmr/core/model"
	"github.com/YuminosukeSato/fastmrmr/dataset"
	"github.com/YuminosukeSato/fastmrmr/info"
	"github.com/YuminosukeSato/fastmrmr/mrmr"
	"github.com/YuminosukeSato/fastmrmr/pkg/errors"
	"github.com/YuminosukeSato/fastmrmr/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// MRMRSelector は mRMR で列を選ぶ scikit-learn 風の特徴量選択器
//
// Fit に渡す行列はクラス列を含み、値は [0, 255] に離散化済みでなければならない。
// Transform はクラス列を除いた選択済みの列だけを選択順に並べて返す。
type MRMRSelector struct {
	state *model.StateManager

	// ClassIndex はクラス列の0始まりインデックス
	ClassIndex int

	// NFeaturesToSelect は選択する列の数。クラス列を除いた列数で頭打ちになる
	NFeaturesToSelect int

	// UsePairCache は相互情報量をペア単位でキャッシュするかどうか
	UsePairCache bool

	// LegacyValueRange は値域を旧来のカウンタ方式で求めるかどうか
	LegacyValueRange bool

	// Selected は選ばれた列（選択順）
	Selected []int

	// Relevance は各列とクラス列の相互情報量
	Relevance []float64

	// Scores は各選択ステップの mRMR スコア
	Scores []float64

	logger log.Logger
}

var _ model.FeatureSelector = (*MRMRSelector)(nil)

// NewMRMRSelector は新しい MRMRSelector を作成する
//
// 使用例:
//
//	selector := preprocessing.NewMRMRSelector(0, 5)
//	XSelected, err := selector.FitTransform(X)
func NewMRMRSelector(classIndex, nFeaturesToSelect int) *MRMRSelector {
	return &MRMRSelector{
		state:             model.NewStateManager(),
		ClassIndex:        classIndex,
		NFeaturesToSelect: nFeaturesToSelect,
		logger:            log.GetLoggerWithName("preprocessing"),
	}
}

// Fit は X から選択する列を決める
func (s *MRMRSelector) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewValueErrorWithCause("MRMRSelector.Fit", "empty data", errors.ErrEmptyData)
	}
	s.state.Reset()

	var dsOpts []dataset.Option
	if s.LegacyValueRange {
		dsOpts = append(dsOpts, dataset.WithLegacyValueRange())
	}
	ds, err := dataset.FromMatrix(X, append(dsOpts, dataset.WithLogger(s.logger))...)
	if err != nil {
		return errors.Wrap(err, "MRMRSelector.Fit")
	}

	var engineOpts []info.EngineOption
	if s.UsePairCache {
		engineOpts = append(engineOpts, info.WithPairCache())
	}
	engine, err := info.NewEngine(ds, engineOpts...)
	if err != nil {
		return errors.Wrap(err, "MRMRSelector.Fit")
	}

	selector, err := mrmr.NewFromEngine(engine, mrmr.Config{
		ClassIndex: s.ClassIndex,
		Count:      s.NFeaturesToSelect,
	}, mrmr.WithLogger(s.logger))
	if err != nil {
		return err
	}

	s.logger.Info("Fit started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, r,
		log.FeaturesKey, c,
	)
	res, err := selector.Run(nil)
	if err != nil {
		return errors.Wrap(err, "MRMRSelector.Fit")
	}

	s.Selected = res.Selected
	s.Relevance = res.Relevance
	s.Scores = make([]float64, len(res.Steps))
	for i, step := range res.Steps {
		s.Scores[i] = step.Score
	}
	s.state.SetFitted(c, r)
	return nil
}

// Transform は選択済みの列を選択順に取り出す
func (s *MRMRSelector) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.state.RequireFitted("MRMRSelector", "Transform"); err != nil {
		return nil, err
	}
	nFeatures, _ := s.state.Dimensions()
	r, c := X.Dims()
	if c != nFeatures {
		return nil, errors.NewDimensionError("MRMRSelector.Transform", nFeatures, c, 1)
	}
	if len(s.Selected) == 0 {
		return nil, errors.NewValueError("MRMRSelector.Transform", "no feature was selected")
	}

	result := mat.NewDense(r, len(s.Selected), nil)
	for j, col := range s.Selected {
		for i := 0; i < r; i++ {
			result.Set(i, j, X.At(i, col))
		}
	}
	s.logger.Debug("Transform finished",
		log.OperationKey, log.OperationTransform,
		log.SamplesKey, r,
	)
	return result, nil
}

// FitTransform は Fit と Transform を続けて実行する
func (s *MRMRSelector) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// SelectedIndices は選ばれた列のコピーを返す
func (s *MRMRSelector) SelectedIndices() ([]int, error) {
	if err := s.state.RequireFitted("MRMRSelector", "SelectedIndices"); err != nil {
		return nil, err
	}
	out := make([]int, len(s.Selected))
	copy(out, s.Selected)
	return out, nil
}

// Support は列ごとに選ばれたかどうかを返す
func (s *MRMRSelector) Support() ([]bool, error) {
	if err := s.state.RequireFitted("MRMRSelector", "Support"); err != nil {
		return nil, err
	}
	nFeatures, _ := s.state.Dimensions()
	support := make([]bool, nFeatures)
	for _, col := range s.Selected {
		support[col] = true
	}
	return support, nil
}

// IsFitted は Fit 済みかどうかを返す
func (s *MRMRSelector) IsFitted() bool {
	return s.state.IsFitted()
}
