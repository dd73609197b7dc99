// Package stdf decodes Standard Test Data Format (STDF) V4 files into
// typed records and flattens them into analysis-ready rows.
//
// The package provides top-level entry points for decoding complete byte
// sources:
//   - Decode decodes an in-memory byte slice
//   - DecodeReader drains an io.Reader and decodes the result
//   - DecodeFile reads and decodes a file by path
//
// All three transparently unwrap gzip, zstd and lz4 containers unless
// sniffing is disabled, and return a *File exposing the record store, the
// flat row projection, and the warnings gathered along the way.
package stdf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/arloliu/stdf/compress"
	"github.com/arloliu/stdf/errs"
	"github.com/arloliu/stdf/internal/hash"
	"github.com/arloliu/stdf/internal/options"
	"github.com/arloliu/stdf/record"
	"github.com/arloliu/stdf/store"
	"github.com/arloliu/stdf/table"
)

// DecodeOption configures the decode entry points.
type DecodeOption = options.Option[*decodeConfig]

type decodeConfig struct {
	sniff        bool
	strict       bool
	decompressor compress.Decompressor
}

func newDecodeConfig(opts ...DecodeOption) (*decodeConfig, error) {
	cfg := &decodeConfig{sniff: true}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithoutSniffing disables container-format detection. The byte source is
// decoded as a bare STDF stream even when it starts with a compression
// magic.
func WithoutSniffing() DecodeOption {
	return options.NoError(func(cfg *decodeConfig) {
		cfg.sniff = false
	})
}

// WithStrictRecords makes record types outside the schema table fatal.
// By default such records are retained as Unknown values and reported as
// warnings.
func WithStrictRecords() DecodeOption {
	return options.NoError(func(cfg *decodeConfig) {
		cfg.strict = true
	})
}

// WithDecompressor forces a specific decompressor instead of sniffing the
// container format from the leading magic bytes.
func WithDecompressor(dec compress.Decompressor) DecodeOption {
	return options.New(func(cfg *decodeConfig) error {
		if dec == nil {
			return errors.New("decompressor cannot be nil")
		}
		cfg.sniff = false
		cfg.decompressor = dec

		return nil
	})
}

// File is the result of one successful decode: every record of the byte
// source in file order, plus lazily-built derived views.
//
// A File is immutable after Decode returns and safe for concurrent reads.
type File struct {
	st          *store.Store
	warnings    []errs.Warning
	unknown     int
	fingerprint uint64

	tableOnce sync.Once
	rows      []table.Row
	gaps      []errs.Warning
}

// Decode decodes a complete STDF byte source.
//
// Parameters:
//   - data: The raw bytes, optionally wrapped in a gzip, zstd or lz4
//     container
//   - opts: Optional decode configuration
//
// Returns:
//   - *File: The decoded file; never nil on success
//   - error: errs.ErrEmptyInput for empty data, errs.ErrTruncated when a
//     record header or its declared payload overruns the source. Decoding
//     is all-or-nothing: a failure returns no partial File.
func Decode(data []byte, opts ...DecodeOption) (*File, error) {
	cfg, err := newDecodeConfig(opts...)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, errs.ErrEmptyInput
	}

	if cfg.decompressor != nil {
		if data, err = cfg.decompressor.Decompress(data); err != nil {
			return nil, err
		}
	} else if cfg.sniff {
		if dec, ok := compress.Detect(data); ok {
			if data, err = dec.Decompress(data); err != nil {
				return nil, err
			}
		}
	}
	if len(data) == 0 {
		return nil, errs.ErrEmptyInput
	}

	st := store.New()
	decoder := record.NewDecoder(data)
	for {
		rec, err := decoder.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return nil, err
		}
		if unk, ok := rec.(*record.Unknown); ok && cfg.strict {
			return nil, fmt.Errorf("%w: (%d,%d)", errs.ErrUnknownRecord, unk.Type, unk.Subtype)
		}
		st.Add(rec)
	}
	st.Finish()

	return &File{
		st:          st,
		warnings:    decoder.Warnings(),
		unknown:     decoder.UnknownCount(),
		fingerprint: hash.Fingerprint(data),
	}, nil
}

// DecodeReader drains r and decodes the result.
func DecodeReader(r io.Reader, opts ...DecodeOption) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read byte source: %w", err)
	}

	return Decode(data, opts...)
}

// DecodeFile reads and decodes the file at path.
func DecodeFile(path string, opts ...DecodeOption) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return Decode(data, opts...)
}

// Store returns the underlying record store.
func (f *File) Store() *store.Store {
	return f.st
}

// Records returns all decoded records in file order, Unknown records
// included.
func (f *File) Records() []record.Record {
	return f.st.Records()
}

// Table returns the flat row projection, one row per test-execution
// event. The projection is built on first call and cached; repeated calls
// return the same slice.
func (f *File) Table() []table.Row {
	f.tableOnce.Do(func() {
		f.rows, f.gaps = table.Build(f.st)
	})

	return f.rows
}

// Warnings returns the non-fatal anomalies of the decode, in order.
// Identity-resolution gaps are discovered by the table projection, which
// is built on demand if it has not been already.
func (f *File) Warnings() []errs.Warning {
	f.Table()

	out := make([]errs.Warning, 0, len(f.warnings)+len(f.gaps))
	out = append(out, f.warnings...)
	out = append(out, f.gaps...)

	return out
}

// UnknownCount returns the number of records retained as Unknown.
func (f *File) UnknownCount() int {
	return f.unknown
}

// Fingerprint returns the xxHash64 of the decoded (decompressed) bytes,
// usable as a cheap file-identity key.
func (f *File) Fingerprint() uint64 {
	return f.fingerprint
}

// Summary returns the record count per kind.
func (f *File) Summary() map[record.Kind]int {
	return f.st.Summary()
}
