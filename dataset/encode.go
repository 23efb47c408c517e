package dataset

import (
	"bufio"
	"io"
	"os"

	"github.com/YuminosukeSato/fastmrmr/pkg/errors"
)

// Encode は ds をデータセットファイル形式で w に書き出す。
// 本体はサンプル優先（サンプルごとに全特徴量）で並ぶ。
func Encode(w io.Writer, ds *Dataset) error {
	if uint64(ds.samples) > 0xFFFFFFFF || uint64(ds.features) > 0xFFFFFFFF {
		return errors.NewValueError("dataset.Encode", "dimensions do not fit the 32-bit header")
	}
	var header [HeaderSize]byte
	byteOrder.PutUint32(header[0:4], uint32(ds.samples))
	byteOrder.PutUint32(header[4:8], uint32(ds.features))
	if _, err := w.Write(header[:]); err != nil {
		return errors.Wrap(err, "write dataset header")
	}

	row := make([]byte, ds.features)
	for i := 0; i < ds.samples; i++ {
		for j := range row {
			row[j] = ds.data[j*ds.samples+i]
		}
		if _, err := w.Write(row); err != nil {
			return errors.Wrapf(err, "write sample %d", i)
		}
	}
	return nil
}

// WriteFile は ds を path に書き出す
func WriteFile(path string, ds *Dataset) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewFileOpenError(path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := Encode(bw, ds); err != nil {
		return err
	}
	return bw.Flush()
}
