package info

import (
	"math"
	"math/rand"
	"testing"

	"github.com/YuminosukeSato/fastmrmr/dataset"
	"github.com/YuminosukeSato/fastmrmr/pkg/errors"
	"github.com/YuminosukeSato/fastmrmr/pkg/instrument"
	"github.com/YuminosukeSato/fastmrmr/pkg/log"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

const tolerance = 1e-9

func newDataset(t *testing.T, columns [][]byte, opts ...dataset.Option) *dataset.Dataset {
	t.Helper()
	logger, _ := log.NewTestLogger(log.LevelError)
	ds, err := dataset.FromColumns(columns, append(opts, dataset.WithLogger(logger))...)
	require.NoError(t, err)
	return ds
}

// randomColumns は固定シードで再現可能な離散データを生成する
func randomColumns(seed int64, samples, features, maxValue int) [][]byte {
	rng := rand.New(rand.NewSource(seed))
	columns := make([][]byte, features)
	for f := range columns {
		columns[f] = make([]byte, samples)
		for i := range columns[f] {
			columns[f][i] = byte(rng.Intn(maxValue + 1))
		}
	}
	return columns
}

func TestMarginalRowsSumToOne(t *testing.T) {
	ds := newDataset(t, randomColumns(1, 200, 6, 4))
	table, err := NewMarginalTable(ds)
	require.NoError(t, err)
	require.Equal(t, 6, table.Features())

	for f := 0; f < ds.Features(); f++ {
		row, err := table.Row(f)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, floats.Sum(row), tolerance, "feature %d", f)
	}
}

func TestMarginalProbability(t *testing.T) {
	ds := newDataset(t, [][]byte{{0, 1, 1, 1}})
	table, err := NewMarginalTable(ds)
	require.NoError(t, err)

	p0, err := table.Probability(0, 0)
	require.NoError(t, err)
	p1, err := table.Probability(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.25, p0)
	assert.Equal(t, 0.75, p1)

	var idxErr *errors.IndexOutOfRangeError
	_, err = table.Probability(1, 0)
	assert.True(t, errors.As(err, &idxErr))
	_, err = table.Probability(0, 2)
	assert.True(t, errors.As(err, &idxErr))
	_, err = table.Row(3)
	assert.True(t, errors.As(err, &idxErr))
}

func TestMarginalTableRejectsEmptyDataset(t *testing.T) {
	ds := newDataset(t, [][]byte{{}, {}})
	_, err := NewMarginalTable(ds)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestJointTable(t *testing.T) {
	ds := newDataset(t, [][]byte{
		{0, 1, 1, 2},
		{1, 0, 0, 1},
	})
	joint, err := NewJointTable(ds, 0, 1)
	require.NoError(t, err)

	ra, rb := joint.Dims()
	assert.Equal(t, 3, ra)
	assert.Equal(t, 2, rb)

	c, err := joint.Count(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, c)

	total := 0.0
	for i := 0; i < ra; i++ {
		for j := 0; j < rb; j++ {
			p, err := joint.Probability(i, j)
			require.NoError(t, err)
			total += p
		}
	}
	assert.InDelta(t, 1.0, total, tolerance)

	var idxErr *errors.IndexOutOfRangeError
	_, err = joint.Probability(3, 0)
	assert.True(t, errors.As(err, &idxErr))
	_, err = joint.Probability(0, 2)
	assert.True(t, errors.As(err, &idxErr))

	_, err = NewJointTable(ds, 0, 5)
	assert.True(t, errors.As(err, &idxErr))
}

func TestMutualInformationKnownValues(t *testing.T) {
	ds := newDataset(t, [][]byte{
		{0, 1, 0, 1}, // class
		{0, 1, 0, 1}, // identical to the class
		{3, 3, 3, 3}, // constant
		{0, 0, 1, 1}, // independent of the class
	})
	engine, err := NewEngine(ds)
	require.NoError(t, err)

	identical, err := engine.MutualInformation(0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, identical, tolerance)

	constant, err := engine.MutualInformation(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, constant)

	independent, err := engine.MutualInformation(0, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, independent, tolerance)

	self, err := engine.MutualInformation(3, 3)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, self, tolerance)

	assert.Equal(t, 4, engine.Queries())
}

func TestMutualInformationSymmetric(t *testing.T) {
	ds := newDataset(t, randomColumns(42, 300, 5, 3))
	engine, err := NewEngine(ds)
	require.NoError(t, err)

	for a := 0; a < ds.Features(); a++ {
		for b := a + 1; b < ds.Features(); b++ {
			ab, err := engine.MutualInformation(a, b)
			require.NoError(t, err)
			ba, err := engine.MutualInformation(b, a)
			require.NoError(t, err)
			assert.InDelta(t, ab, ba, tolerance, "pair (%d,%d)", a, b)
			assert.GreaterOrEqual(t, ab, -tolerance)
		}
	}
}

func TestMutualInformationBoundedByEntropy(t *testing.T) {
	ds := newDataset(t, randomColumns(7, 100, 3, 5))
	engine, err := NewEngine(ds)
	require.NoError(t, err)

	for f := 0; f < ds.Features(); f++ {
		row, err := engine.Marginal().Row(f)
		require.NoError(t, err)
		entropy := 0.0
		for _, p := range row {
			if p > 0 {
				entropy -= p * math.Log2(p)
			}
		}
		self, err := engine.MutualInformation(f, f)
		require.NoError(t, err)
		assert.InDelta(t, entropy, self, 1e-9)
	}
}

func TestMutualInformationOutOfRange(t *testing.T) {
	ds := newDataset(t, [][]byte{{0, 1}})
	engine, err := NewEngine(ds)
	require.NoError(t, err)

	_, err = engine.MutualInformation(0, 1)
	var idxErr *errors.IndexOutOfRangeError
	assert.True(t, errors.As(err, &idxErr))
}

func TestMutualInformationLegacyRange(t *testing.T) {
	// 特徴量0の値域は互換モードで2になり、値7のサンプルは除外される
	ds := newDataset(t, [][]byte{
		{7, 0, 1, 0},
		{1, 0, 1, 0},
	}, dataset.WithLegacyValueRange())
	engine, err := NewEngine(ds)
	require.NoError(t, err)

	mi, err := engine.MutualInformation(0, 1)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(mi))
}

func TestPairCache(t *testing.T) {
	ds := newDataset(t, randomColumns(3, 120, 4, 2))
	m := instrument.New()

	plain, err := NewEngine(ds)
	require.NoError(t, err)
	cached, err := NewEngine(ds, WithPairCache(), WithMetrics(m))
	require.NoError(t, err)

	for a := 0; a < 4; a++ {
		for b := 0; b < 4; b++ {
			want, err := plain.MutualInformation(a, b)
			require.NoError(t, err)
			got, err := cached.MutualInformation(a, b)
			require.NoError(t, err)
			assert.InDelta(t, want, got, tolerance)
		}
	}

	// 16 問い合わせのうち非順序ペアは 10 通り
	assert.Equal(t, 16, cached.Queries())
	assert.Equal(t, 10, cached.cache.Len())

	registry := m.Registry()
	require.NotNil(t, registry)
	count, err := testutil.GatherAndCount(registry, "fastmrmr_joint_tables_built_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPooledTablesMatchFreshTables(t *testing.T) {
	ds := newDataset(t, randomColumns(8, 150, 3, 6))
	engine, err := NewEngine(ds)
	require.NoError(t, err)

	// 同じペアを繰り返し計算しても前回の集計が残らない
	first, err := engine.MutualInformation(0, 1)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := engine.MutualInformation(0, 1)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, int64(6), engine.PoolStats().Recycled)

	pool := NewTablePool()
	pooled, err := newJointTable(ds, 1, 2, pool)
	require.NoError(t, err)
	fresh, err := NewJointTable(ds, 1, 2)
	require.NoError(t, err)

	ra, rb := fresh.Dims()
	for i := 0; i < ra; i++ {
		for j := 0; j < rb; j++ {
			want, _ := fresh.Count(i, j)
			got, _ := pooled.Count(i, j)
			assert.Equal(t, want, got)
		}
	}
	pooled.Release()
	pooled.Release()
	assert.Equal(t, int64(1), pool.Stats().Recycled)

	buf := pool.get(ra * rb)
	for _, v := range buf.data {
		require.Zero(t, v)
	}
	fresh.Release()
}

func TestPairCacheKeyIsUnordered(t *testing.T) {
	c := NewPairCache()
	c.Put(4, 1, 0.5)

	v, ok := c.Get(1, 4)
	assert.True(t, ok)
	assert.Equal(t, 0.5, v)
	_, ok = c.Get(1, 3)
	assert.False(t, ok)
}

func BenchmarkMutualInformation(b *testing.B) {
	logger, _ := log.NewTestLogger(log.LevelError)
	ds, err := dataset.FromColumns(randomColumns(11, 10000, 2, 15), dataset.WithLogger(logger))
	if err != nil {
		b.Fatal(err)
	}
	engine, err := NewEngine(ds)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.MutualInformation(0, 1); err != nil {
			b.Fatal(err)
		}
	}
}
