package errors

import (
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileOpenError(t *testing.T) {
	err := NewFileOpenError("data.mrmr", fs.ErrNotExist)

	want := `fastmrmr: cannot open dataset "data.mrmr": file does not exist`
	assert.Equal(t, want, err.Error())

	// 元のエラーまで辿れるか確認
	assert.True(t, Is(err, fs.ErrNotExist))

	var openErr *FileOpenError
	require.True(t, As(err, &openErr))
	assert.Equal(t, "data.mrmr", openErr.Path)

	// スタックトレースの存在確認
	formatted := fmt.Sprintf("%+v", err)
	assert.Contains(t, formatted, "errors_test.go")
}

func TestNewTruncatedFileError(t *testing.T) {
	err := NewTruncatedFileError("body", 12, 7)

	assert.Equal(t, "fastmrmr: truncated dataset body: expected 12 bytes, got 7", err.Error())

	var truncErr *TruncatedFileError
	require.True(t, As(err, &truncErr))
	assert.Equal(t, int64(12), truncErr.Expected)
	assert.Equal(t, int64(7), truncErr.Got)
}

func TestNewIndexOutOfRangeError(t *testing.T) {
	err := NewIndexOutOfRangeError("MarginalTable.Probability", "value", 4, 3)

	assert.Equal(t, "fastmrmr: MarginalTable.Probability: value index 4 out of range [0, 3)", err.Error())

	var idxErr *IndexOutOfRangeError
	assert.True(t, As(err, &idxErr))
}

func TestNewConfigurationError(t *testing.T) {
	tests := []struct {
		name    string
		param   string
		reason  string
		value   interface{}
		wantMsg string
	}{
		{
			name:    "class index",
			param:   "class_index",
			reason:  "must be less than the number of features (5)",
			value:   7,
			wantMsg: "fastmrmr: invalid configuration 'class_index': must be less than the number of features (5) (got: 7)",
		},
		{
			name:    "count",
			param:   "count",
			reason:  "must be positive",
			value:   0,
			wantMsg: "fastmrmr: invalid configuration 'count': must be positive (got: 0)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfigurationError(tt.param, tt.reason, tt.value)
			assert.Equal(t, tt.wantMsg, err.Error())

			var cfgErr *ConfigurationError
			assert.True(t, As(err, &cfgErr))
		})
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("MRMRSelector", "Transform")

	want := "fastmrmr: MRMRSelector: this model is not fitted yet. Call Fit() before using Transform()"
	assert.Equal(t, want, err.Error())
}

func TestValueErrorUnwrapsCause(t *testing.T) {
	err := NewValueErrorWithCause("NewMarginalTable", "dataset has no samples", ErrEmptyData)

	assert.Equal(t, "fastmrmr: NewMarginalTable: dataset has no samples", err.Error())
	assert.True(t, Is(err, ErrEmptyData))
}

func TestValueRangeWarning(t *testing.T) {
	w := NewValueRangeWarning(2, 2, 3, 1)
	assert.Contains(t, w.Error(), "feature 2")
	assert.Contains(t, w.Error(), "observed maximum 3")
}

func TestWarnRoutesToHandler(t *testing.T) {
	var got []error
	prev := warningHandler
	SetWarningHandler(func(w error) { got = append(got, w) })
	t.Cleanup(func() { SetWarningHandler(prev) })

	Warn(NewValueRangeWarning(0, 1, 2, 3))

	require.Len(t, got, 1)
	var w *ValueRangeWarning
	assert.True(t, As(got[0], &w))
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: expected %d, got %d", "Load", 10, 5)

	assert.True(t, Is(wrapped, ErrEmptyData))
	assert.True(t, strings.Contains(wrapped.Error(), "in Load: expected 10, got 5"))
}

func TestCheckScalar(t *testing.T) {
	assert.NoError(t, CheckScalar("mutual_information", 0.5, 0))

	err := CheckScalar("mutual_information", nanValue(), 3)
	var numErr *NumericalInstabilityError
	require.True(t, As(err, &numErr))
	assert.Equal(t, 3, numErr.Iteration)
}

func nanValue() float64 {
	zero := 0.0
	return zero / zero
}
