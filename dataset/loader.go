package dataset

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os"
	"time"

	"github.com/YuminosukeSato/fastmrmr/pkg/errors"
	"github.com/YuminosukeSato/fastmrmr/pkg/instrument"
	"github.com/YuminosukeSato/fastmrmr/pkg/log"
)

// HeaderSize はファイル先頭のヘッダー長（uint32 の N と F）
const HeaderSize = 8

// byteOrder はヘッダーの整数のバイト順。ファイルはプラットフォームの
// ネイティブバイト順で書かれる。
var byteOrder = binary.NativeEndian

type options struct {
	legacyRange bool
	logger      log.Logger
	metrics     *instrument.Metrics
}

// Option は読み込み・構築の挙動を変更する
type Option func(*options)

// WithLegacyValueRange は走査順に依存するカウンタ方式で値域を導出する。
// 値域外となるサンプルがある特徴量には ValueRangeWarning が発行される。
func WithLegacyValueRange() Option {
	return func(o *options) { o.legacyRange = true }
}

// WithLogger は読み込み時のログ出力先を指定する
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics は読み込んだデータサイズを記録するメトリクスを指定する
func WithMetrics(m *instrument.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.GetLoggerWithName("dataset")
	}
	return o
}

// Load はパス path のデータセットファイルを読み込む。
//
// ファイルを開けない場合は FileOpenError、ヘッダーまたは本体が宣言より
// 短い場合は TruncatedFileError を返す。
func Load(path string, opts ...Option) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewFileOpenError(path, err)
	}
	defer f.Close()

	o := buildOptions(opts)
	start := time.Now()
	ds, err := read(bufio.NewReader(f), o)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	o.logger.Info("Dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.PathKey, path,
		log.SamplesKey, ds.Samples(),
		log.FeaturesKey, ds.Features(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return ds, nil
}

// Read は r からデータセットを読み込む。r は先頭のヘッダーから始まっていなければならない。
func Read(r io.Reader, opts ...Option) (*Dataset, error) {
	return read(r, buildOptions(opts))
}

func read(r io.Reader, o options) (*Dataset, error) {
	var header [HeaderSize]byte
	if n, err := io.ReadFull(r, header[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errors.NewTruncatedFileError("header", HeaderSize, int64(n))
		}
		return nil, errors.Wrap(err, "read dataset header")
	}
	samples := byteOrder.Uint32(header[0:4])
	features := byteOrder.Uint32(header[4:8])

	total := uint64(samples) * uint64(features)
	if total > uint64(math.MaxInt) {
		return nil, errors.NewValueError("dataset.Read", "declared dimensions exceed addressable memory")
	}

	// 宣言サイズで先に確保せず、実際に届いたバイト分だけバッファする
	var body bytes.Buffer
	copied, err := io.CopyN(&body, r, int64(total))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.NewTruncatedFileError("body", int64(total), copied)
		}
		return nil, errors.Wrap(err, "read dataset body")
	}

	n, fs := int(samples), int(features)
	data := transpose(body.Bytes(), n, fs)
	o.logger.Debug("Dataset body read",
		log.SamplesKey, n,
		log.FeaturesKey, fs,
		log.DataSizeKey, len(data),
	)
	o.metrics.DatasetLoaded(len(data))
	return newDataset(n, fs, data, o), nil
}

// transpose はサンプル優先の raw を特徴量優先に並べ替える
func transpose(raw []byte, samples, features int) []byte {
	data := make([]byte, len(raw))
	for i := 0; i < samples; i++ {
		row := raw[i*features : (i+1)*features]
		for j, v := range row {
			data[j*samples+i] = v
		}
	}
	return data
}
