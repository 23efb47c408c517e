package log

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerInterface(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	testLogger.Debug("debug message", "key1", "value1", "number", 42)
	testLogger.Info("info message", "operation", "test")
	testLogger.Warn("warning message", "warning_code", "TEST_WARNING")
	testLogger.Error("error message", fmt.Errorf("test error"), ErrorCodeKey, ErrorFileOpen)

	require.NotEmpty(t, buffer.String())
	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		assert.True(t, testLogger.ContainsMessage(msg), "missing %q", msg)
	}

	assert.True(t, testLogger.ContainsField("key1", "value1"))
	assert.True(t, testLogger.ContainsField("number", 42.0))
	assert.True(t, testLogger.ContainsField(ErrAttrKey, "test error"))
}

func TestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	contextLogger := testLogger.With(
		ComponentKey, "mrmr",
		RunIDKey, "run-001",
	)
	contextLogger.Info("contextual message", OperationKey, OperationSelect)

	assert.True(t, testLogger.ContainsField(ComponentKey, "mrmr"))
	assert.True(t, testLogger.ContainsField(RunIDKey, "run-001"))
	assert.True(t, testLogger.ContainsField(OperationKey, OperationSelect))
}

func TestLoggerEnabled(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)
	ctx := context.Background()

	assert.True(t, testLogger.Enabled(ctx, LevelInfo))
	assert.True(t, testLogger.Enabled(ctx, LevelError))
	assert.False(t, testLogger.Enabled(ctx, LevelDebug))

	testLogger.Debug("this should not appear")
	testLogger.Info("this should appear")

	assert.False(t, testLogger.ContainsMessage("this should not appear"))
	assert.True(t, testLogger.ContainsMessage("this should appear"))
}

func TestSelectionAttributeKeys(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)

	testLogger.Info("feature selected",
		OperationKey, OperationSelect,
		StepKey, 2,
		FeatureKey, 7,
		ScoreKey, 0.25,
		SamplesKey, 1000,
		FeaturesKey, 10,
	)

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	expected := map[string]interface{}{
		OperationKey: OperationSelect,
		StepKey:      2.0,
		FeatureKey:   7.0,
		ScoreKey:     0.25,
		SamplesKey:   1000.0,
		FeaturesKey:  10.0,
	}
	for key, want := range expected {
		assert.Equal(t, want, entries[0][key], "field %s", key)
	}
}

func TestTestLoggerProvider(t *testing.T) {
	provider, buffer := NewTestLoggerProvider(LevelDebug)

	provider.GetLogger().Info("provider test message")
	provider.GetLoggerWithName("dataset").Info("named logger message")

	out := buffer.String()
	assert.Contains(t, out, "provider test message")
	assert.Contains(t, out, "named logger message")
	assert.True(t, provider.Logger().ContainsField(ComponentKey, "dataset"))

	provider.SetLevel(LevelError)
	provider.GetLogger().Info("suppressed")
	assert.NotContains(t, buffer.String(), "suppressed")
}

func TestPackageProviderSwap(t *testing.T) {
	provider, buffer := NewTestLoggerProvider(LevelInfo)
	SetProvider(provider)
	t.Cleanup(func() { SetProvider(NewProvider(nopWriter{}, LevelWarn)) })

	GetLoggerWithName("info").Info("through package helpers")
	assert.Contains(t, buffer.String(), "through package helpers")
}

func TestConcurrentLogging(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)

	const goroutines, perGoroutine = 4, 5
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				testLogger.Info(fmt.Sprintf("goroutine %d message %d", id, j), "goroutine_id", id)
			}
		}(i)
	}
	wg.Wait()

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	assert.Len(t, entries, goroutines*perGoroutine)
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func BenchmarkLogging(b *testing.B) {
	testLogger, _ := NewTestLogger(LevelInfo)
	contextLogger := testLogger.With(ComponentKey, "benchmark")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		contextLogger.Info("benchmark message",
			StepKey, i,
			OperationKey, OperationSelect,
		)
	}
}
