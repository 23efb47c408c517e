// Package mrmr は mRMR（minimum-Redundancy-Maximum-Relevance）による
// 貪欲な特徴量選択を提供します。
//
// 選択は明示的な状態機械として実装されています。
//
//	Uninitialized → FirstSelected → Iterating → Terminated
//
// 最初のステップでクラス特徴量との相互情報量（関連度）を全特徴量について計算し、
// 関連度が最大の特徴量を選びます。以降のステップでは、直前に選んだ特徴量との
// 相互情報量を各候補の冗長度に累積し、関連度 − 冗長度/選択数 が最大の特徴量を選びます。
// 同点の場合は常にインデックスの小さい特徴量が選ばれます。
package mrmr

import (
	"math"
	"time"

	"github.com/YuminosukeSato/fastmrmr/info"
	"github.com/YuminosukeSato/fastmrmr/pkg/errors"
	"github.com/YuminosukeSato/fastmrmr/pkg/instrument"
	"github.com/YuminosukeSato/fastmrmr/pkg/log"
	"github.com/google/uuid"
)

// ErrTerminated は選択完了後に Step を呼び出した場合のエラー
var ErrTerminated = errors.New("mrmr: selection already terminated")

// MutualInformation は2つの特徴量の相互情報量を返す。
// *info.Engine が標準の実装。
type MutualInformation interface {
	MutualInformation(a, b int) (float64, error)
}

// Config は選択の入力
type Config struct {
	// ClassIndex はクラス特徴量の0始まりインデックス
	ClassIndex int
	// Count は選択したい特徴量の数
	Count int
}

// Step は1回の選択結果
type Step struct {
	// Index は0始まりの選択順
	Index int
	// Feature は選ばれた特徴量
	Feature int
	// Score は選択時の mRMR スコア（最初のステップでは関連度）
	Score float64
	// Relevance はクラス特徴量との相互情報量
	Relevance float64
	// Redundancy は選択時点の平均冗長度（累積冗長度 / 選択数）
	Redundancy float64
}

// Result は選択全体の結果
type Result struct {
	// Selected は選択順の特徴量インデックス
	Selected []int
	// Steps は各ステップの詳細
	Steps []Step
	// Relevance は全特徴量の関連度（クラス特徴量自身は0）
	Relevance []float64
}

// Selector は mRMR の貪欲選択を行う状態機械
type Selector struct {
	mi         MutualInformation
	features   int
	classIndex int
	target     int

	state      State
	relevance  []float64
	redundancy []float64
	selected   []int
	isSelected []bool
	last       int
	steps      []Step

	logger  log.Logger
	metrics *instrument.Metrics
}

// Option は Selector の挙動を変更する
type Option func(*Selector)

// WithLogger はログ出力先を指定する
func WithLogger(logger log.Logger) Option {
	return func(s *Selector) { s.logger = logger }
}

// WithMetrics はステップごとの所要時間を記録する
func WithMetrics(m *instrument.Metrics) Option {
	return func(s *Selector) { s.metrics = m }
}

// New は features 個の特徴量を持つデータに対する Selector を作成する。
// クラスインデックスが [0, features) の外にある場合や、選択数が正でない場合は
// ConfigurationError を返す。
func New(mi MutualInformation, features int, cfg Config, opts ...Option) (*Selector, error) {
	if cfg.ClassIndex < 0 || cfg.ClassIndex >= features {
		return nil, errors.NewConfigurationError("class_index",
			"must be within [0, number of features)", cfg.ClassIndex)
	}
	if cfg.Count < 1 {
		return nil, errors.NewConfigurationError("count", "must be positive", cfg.Count)
	}

	s := &Selector{
		mi:         mi,
		features:   features,
		classIndex: cfg.ClassIndex,
		// クラス特徴量を除いた F−1 個が上限
		target: min(cfg.Count, features-1),
		state:  Uninitialized,
		last:   -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.GetLoggerWithName("mrmr").With(log.RunIDKey, uuid.NewString())
	}
	return s, nil
}

// NewFromEngine は engine のデータセットの特徴量数で Selector を作成する
func NewFromEngine(engine *info.Engine, cfg Config, opts ...Option) (*Selector, error) {
	return New(engine, engine.Dataset().Features(), cfg, opts...)
}

// State は現在の状態を返す
func (s *Selector) State() State {
	return s.state
}

// Target は終了までに選ばれる特徴量の数 min(Count, F−1) を返す
func (s *Selector) Target() int {
	return s.target
}

// Selected は選択済みの特徴量のコピーを返す
func (s *Selector) Selected() []int {
	out := make([]int, len(s.selected))
	copy(out, s.selected)
	return out
}

// Relevance は関連度ベクトルのコピーを返す。初期化前は nil。
func (s *Selector) Relevance() []float64 {
	if s.relevance == nil {
		return nil
	}
	out := make([]float64, len(s.relevance))
	copy(out, s.relevance)
	return out
}

// Redundancy は累積冗長度ベクトルのコピーを返す。初期化前は nil。
func (s *Selector) Redundancy() []float64 {
	if s.redundancy == nil {
		return nil
	}
	out := make([]float64, len(s.redundancy))
	copy(out, s.redundancy)
	return out
}

// Step は状態を1つ進め、選ばれた特徴量を返す。
// 目標数が0の場合は初期化だけ行って Terminated になり ErrTerminated を返す。
func (s *Selector) Step() (Step, error) {
	start := time.Now()
	var (
		step Step
		err  error
	)
	switch s.state {
	case Uninitialized:
		if err = s.Initialize(); err != nil {
			return Step{}, err
		}
		if s.target == 0 {
			s.transition(Terminated)
			return Step{}, ErrTerminated
		}
		step = s.selectFirst()
		s.transition(FirstSelected)
	case FirstSelected, Iterating:
		if step, err = s.selectNext(); err != nil {
			return Step{}, err
		}
		s.transition(Iterating)
	default:
		return Step{}, ErrTerminated
	}

	s.accept(&step)
	if len(s.selected) >= s.target {
		s.transition(Terminated)
	}
	s.metrics.FeatureSelected(time.Since(start))
	s.logger.Debug("Feature selected",
		log.StepKey, step.Index,
		log.FeatureKey, step.Feature,
		log.ScoreKey, step.Score,
		log.RelevanceKey, step.Relevance,
	)
	return step, nil
}

// Run は Terminated まで状態を進める。emit が nil でなければ、
// 特徴量が確定するたびに選択順で呼び出される。
func (s *Selector) Run(emit func(Step)) (res Result, err error) {
	defer errors.Recover(&err, "mrmr.Selector.Run")

	start := time.Now()
	s.logger.Info("Selection started",
		log.OperationKey, log.OperationSelect,
		log.FeaturesKey, s.features,
		log.ClassIndexKey, s.classIndex,
		log.TargetCountKey, s.target,
	)
	for s.state != Terminated {
		step, err := s.Step()
		if errors.Is(err, ErrTerminated) {
			break
		}
		if err != nil {
			return Result{}, err
		}
		if emit != nil {
			emit(step)
		}
	}
	s.logger.Info("Selection finished",
		log.OperationKey, log.OperationSelect,
		log.TargetCountKey, len(s.selected),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return s.Result(), nil
}

// Result はこれまでの選択結果を返す
func (s *Selector) Result() Result {
	steps := make([]Step, len(s.steps))
	copy(steps, s.steps)
	return Result{
		Selected:  s.Selected(),
		Steps:     steps,
		Relevance: s.Relevance(),
	}
}

// Initialize はクラス特徴量との関連度を全特徴量について計算し、冗長度を0にする。
// 状態は Uninitialized のままで、2回目以降の呼び出しは何もしない。
// Step は必要に応じて自動的に呼び出す。
func (s *Selector) Initialize() error {
	if s.relevance != nil {
		return nil
	}
	relevance := make([]float64, s.features)
	for f := 0; f < s.features; f++ {
		if f == s.classIndex {
			continue
		}
		rel, err := s.mi.MutualInformation(s.classIndex, f)
		if err != nil {
			return errors.Wrapf(err, "relevance of feature %d", f)
		}
		relevance[f] = rel
	}
	s.relevance = relevance
	s.redundancy = make([]float64, s.features)
	s.isSelected = make([]bool, s.features)
	return nil
}

// selectFirst は関連度が最大の特徴量を選ぶ。関連度がすべて0でも失敗せず、
// 左から走査して最初に見つかった最大値を選ぶ。
func (s *Selector) selectFirst() Step {
	best, bestScore := -1, math.Inf(-1)
	for f := 0; f < s.features; f++ {
		if f == s.classIndex {
			continue
		}
		if s.relevance[f] > bestScore {
			best, bestScore = f, s.relevance[f]
		}
	}
	return Step{Feature: best, Score: bestScore, Relevance: bestScore}
}

// selectNext は直前に選ばれた特徴量との相互情報量を冗長度に累積し、
// 関連度 − 冗長度/選択数 が最大の特徴量を選ぶ。
func (s *Selector) selectNext() (Step, error) {
	count := float64(len(s.selected))
	best := Step{Feature: -1, Score: math.Inf(-1)}
	for f := 0; f < s.features; f++ {
		if f == s.classIndex || s.isSelected[f] {
			continue
		}
		mi, err := s.mi.MutualInformation(s.last, f)
		if err != nil {
			return Step{}, errors.Wrapf(err, "redundancy of feature %d", f)
		}
		s.redundancy[f] += mi
		mean := s.redundancy[f] / count
		score := s.relevance[f] - mean
		if score > best.Score {
			best = Step{Feature: f, Score: score, Relevance: s.relevance[f], Redundancy: mean}
		}
	}
	return best, nil
}

// accept は step に選択順を書き込み、選択済みとして記録する
func (s *Selector) accept(step *Step) {
	step.Index = len(s.selected)
	s.selected = append(s.selected, step.Feature)
	s.isSelected[step.Feature] = true
	s.last = step.Feature
	s.steps = append(s.steps, *step)
}

func (s *Selector) transition(next State) {
	if s.state != next {
		s.logger.Debug("Selector state changed", log.StateKey, next.String())
	}
	s.state = next
}
