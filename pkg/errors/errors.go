// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// データセットの読み込み・確率テーブル参照・選択設定の各段階で発生する失敗を、
// スタックトレース付きの構造化エラーとして表現します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("fastmrmr-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
// これにより、ValueRangeWarningなどのカスタム警告の処理方法を制御できます。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nilを渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが利用可能な場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// ValueRangeWarning は互換モードの値域計算が実際の最大値より小さい値域を
// 導出した場合に発生する警告です。値域外のサンプルは頻度計算から除外されます。
type ValueRangeWarning struct {
	Feature  int
	Range    int
	Observed int // 実際に観測された最大値
	Dropped  int // 値域外のため除外されるサンプル数
}

func (w *ValueRangeWarning) Error() string {
	return fmt.Sprintf("feature %d: derived value range %d does not cover observed maximum %d; %d samples are excluded from frequency tables",
		w.Feature, w.Range, w.Observed, w.Dropped)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *ValueRangeWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Int("feature", w.Feature).
		Int("range", w.Range).
		Int("observed_max", w.Observed).
		Int("dropped", w.Dropped).
		Str("type", "ValueRangeWarning")
}

// NewValueRangeWarning は新しいValueRangeWarningを作成します。
func NewValueRangeWarning(feature, valueRange, observed, dropped int) *ValueRangeWarning {
	return &ValueRangeWarning{Feature: feature, Range: valueRange, Observed: observed, Dropped: dropped}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// FileOpenError はデータセットファイルが存在しない、または読み込めない場合のエラーです。
type FileOpenError struct {
	Path string
	Err  error
}

func (e *FileOpenError) Error() string {
	return fmt.Sprintf("fastmrmr: cannot open dataset %q: %v", e.Path, e.Err)
}

func (e *FileOpenError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *FileOpenError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		AnErr("cause", e.Err).
		Str("type", "FileOpenError")
}

// NewFileOpenError は新しいFileOpenErrorを作成し、スタックトレースを付与します。
func NewFileOpenError(path string, err error) error {
	return errors.WithStack(&FileOpenError{Path: path, Err: err})
}

// TruncatedFileError はヘッダーまたは本体が宣言されたサイズより短い場合のエラーです。
type TruncatedFileError struct {
	Section  string // "header" または "body"
	Expected int64  // 期待されるバイト数
	Got      int64  // 実際に読み込めたバイト数
}

func (e *TruncatedFileError) Error() string {
	return fmt.Sprintf("fastmrmr: truncated dataset %s: expected %d bytes, got %d", e.Section, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *TruncatedFileError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("section", e.Section).
		Int64("expected", e.Expected).
		Int64("got", e.Got).
		Str("type", "TruncatedFileError")
}

// NewTruncatedFileError は新しいTruncatedFileErrorを作成し、スタックトレースを付与します。
func NewTruncatedFileError(section string, expected, got int64) error {
	return errors.WithStack(&TruncatedFileError{Section: section, Expected: expected, Got: got})
}

// IndexOutOfRangeError は特徴量インデックスや値が計算済みの範囲外の場合のエラーです。
type IndexOutOfRangeError struct {
	Op    string
	What  string // "feature", "value" など
	Index int
	Bound int // 有効範囲は [0, Bound)
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("fastmrmr: %s: %s index %d out of range [0, %d)", e.Op, e.What, e.Index, e.Bound)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *IndexOutOfRangeError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("what", e.What).
		Int("index", e.Index).
		Int("bound", e.Bound).
		Str("type", "IndexOutOfRangeError")
}

// NewIndexOutOfRangeError は新しいIndexOutOfRangeErrorを作成し、スタックトレースを付与します。
func NewIndexOutOfRangeError(op, what string, index, bound int) error {
	return errors.WithStack(&IndexOutOfRangeError{Op: op, What: what, Index: index, Bound: bound})
}

// ConfigurationError は選択処理の設定が不正な場合のエラーです。
// 例えば、クラスインデックスが特徴量数以上の場合や、選択数が正でない場合など。
type ConfigurationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("fastmrmr: invalid configuration '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ConfigurationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ConfigurationError")
}

// NewConfigurationError は新しいConfigurationErrorを作成し、スタックトレースを付与します。
func NewConfigurationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ConfigurationError{ParamName: param, Reason: reason, Value: value})
}

// NotFittedError はモデルが未学習の状態で `Transform` などを呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("fastmrmr: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("fastmrmr: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

// ValidationError は入力データの検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("fastmrmr: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
type ValueError struct {
	Op      string
	Message string
	Err     error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("fastmrmr: %s: %s", e.Op, e.Message)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// NewValueErrorWithCause は原因となるエラーを保持したValueErrorを作成します。
func NewValueErrorWithCause(op, message string, cause error) error {
	return errors.WithStack(&ValueError{Op: op, Message: message, Err: cause})
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	数値計算のエラー型
//
// ===========================================================================

// NumericalInstabilityError は数値計算が不安定になった場合のエラーです。
// 相互情報量の計算結果がNaNやInfになった場合などに検出されます。
type NumericalInstabilityError struct {
	Operation string    // 発生した操作（例: "mutual_information"）
	Values    []float64 // 問題のある値
	Iteration int       // 発生したイテレーション番号
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("fastmrmr: numerical instability detected in %s at iteration %d. Values: [%s]",
		e.Operation, e.Iteration, valStr)
}

// NewNumericalInstabilityError は新しいNumericalInstabilityErrorを作成します。
func NewNumericalInstabilityError(operation string, values []float64, iteration int) error {
	return errors.WithStack(&NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Iteration: iteration,
	})
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")
)
