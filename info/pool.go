package info

import (
	"sync"
	"sync/atomic"
)

// TablePool は同時確率テーブルの集計用バッファを再利用する。
// Get が返すバッファは常にゼロ初期化されているため、
// 再利用しても問い合わせごとに新しいテーブルを作るのと同じ結果になる。
type TablePool struct {
	pool     sync.Pool
	created  int64
	recycled int64
}

// PoolStats はバッファの生成数と返却数
type PoolStats struct {
	Created  int64
	Recycled int64
}

// NewTablePool は空のプールを作成する
func NewTablePool() *TablePool {
	p := &TablePool{}
	p.pool.New = func() interface{} {
		atomic.AddInt64(&p.created, 1)
		return &tableBuffer{}
	}
	return p
}

type tableBuffer struct {
	data []float64
}

// get は長さ n のゼロ初期化済みバッファを返す
func (p *TablePool) get(n int) *tableBuffer {
	buf := p.pool.Get().(*tableBuffer)
	if cap(buf.data) < n {
		buf.data = make([]float64, n)
	}
	buf.data = buf.data[:n]
	return buf
}

// put はバッファをゼロクリアしてプールに戻す
func (p *TablePool) put(buf *tableBuffer) {
	clear(buf.data)
	atomic.AddInt64(&p.recycled, 1)
	p.pool.Put(buf)
}

// Stats は現在の統計を返す
func (p *TablePool) Stats() PoolStats {
	return PoolStats{
		Created:  atomic.LoadInt64(&p.created),
		Recycled: atomic.LoadInt64(&p.recycled),
	}
}
