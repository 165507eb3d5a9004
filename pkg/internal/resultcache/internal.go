package resultcache

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"

	"github.com/PandasDrive/M2T/pkg/internal/types"
	"github.com/PandasDrive/M2T/pkg/internal/utils"
)

// Spill files hold one byte naming the compression algorithm followed by the
// compressed payload. Filenames hash the cache key, which keeps arbitrary key
// material out of the filesystem.

func (c *ResultCache) spillPath(key string) string {
	return filepath.Join(c.spillDir, utils.GenerateSha256Hash(key)+".bin")
}

func (c *ResultCache) writeSpill(key string, e entry) error {
	buf := make([]byte, 0, len(e.payload)+1)
	buf = append(buf, byte(e.algorithm))
	buf = append(buf, e.payload...)
	return os.WriteFile(c.spillPath(key), buf, 0o644)
}

func (c *ResultCache) readSpill(key string) (entry, error) {
	raw, err := os.ReadFile(c.spillPath(key))
	if err != nil {
		return entry{}, err
	}
	if len(raw) < 1 {
		return entry{}, fmt.Errorf("spill file for key %s is empty", key)
	}
	return entry{algorithm: types.CompressionAlgorithm(raw[0]), payload: raw[1:]}, nil
}

func (c *ResultCache) removeSpill(key string) {
	if c.spillDir == "" {
		return
	}
	_ = os.Remove(c.spillPath(key))
}

func compressData(data []byte, algorithm types.CompressionAlgorithm) ([]byte, error) {
	var b bytes.Buffer
	var w io.WriteCloser

	switch algorithm {
	case COMPRESS_NONE:
		return data, nil
	case COMPRESS_DEFLATE:
		w = gzip.NewWriter(&b)
	case COMPRESS_SNAPPY:
		w = snappy.NewBufferedWriter(&b)
	case COMPRESS_ZSTD:
		var err error
		w, err = zstd.NewWriter(&b)
		if err != nil {
			return nil, err
		}
	case COMPRESS_BROTLI:
		w = brotli.NewWriterLevel(&b, brotli.BestCompression)
	case COMPRESS_LZ4:
		w = lz4.NewWriter(&b)
	default:
		return nil, fmt.Errorf("algorithm %d: %w", algorithm, types.ErrUnknownCompression)
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func decompressData(data []byte, algorithm types.CompressionAlgorithm) ([]byte, error) {
	var r io.Reader

	switch algorithm {
	case COMPRESS_NONE:
		return data, nil
	case COMPRESS_DEFLATE:
		var err error
		r, err = gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
	case COMPRESS_SNAPPY:
		r = snappy.NewReader(bytes.NewReader(data))
	case COMPRESS_ZSTD:
		zr, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	case COMPRESS_BROTLI:
		r = brotli.NewReader(bytes.NewReader(data))
	case COMPRESS_LZ4:
		r = lz4.NewReader(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("algorithm %d: %w", algorithm, types.ErrUnknownCompression)
	}

	var b bytes.Buffer
	if _, err := io.Copy(&b, r); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
