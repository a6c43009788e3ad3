package ingest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/rs/zerolog"

	"github.com/citylens/srscan/internal/logger"
	"github.com/citylens/srscan/pkg/models"
)

// Source is a stream of service-request records. The concrete CSV reader is
// the only implementation today; the store depends on this interface so a
// binary or chunked reader can be swapped in without touching query code.
type Source interface {
	// Open prepares the data source and consumes any header.
	Open(path string) error

	// ReadAll appends every well-formed record to out and returns how many
	// were appended.
	ReadAll(out *[]models.ServiceRequest) int

	// ReadChunk is the streaming variant: fn is called once per well-formed
	// record and nothing is retained. Returns the number of rows seen.
	ReadChunk(fn func(models.ServiceRequest)) int

	// Close releases the underlying file and any decompressor.
	Close() error

	// SkippedRows returns how many malformed rows were dropped.
	SkippedRows() int

	// TotalRows returns how many non-blank data rows were seen.
	TotalRows() int
}

// readBufSize is the buffered-reader size. A large buffer amortizes read
// syscalls on a multi-gigabyte file.
const readBufSize = 4 << 20

// maxLineSize bounds a single row. Resolution descriptions run long but
// nowhere near this.
const maxLineSize = 4 << 20

// CSVSource reads the 311 export from disk. Files compressed with gzip,
// zstd, or lz4 are decompressed transparently based on their extension, so
// the archive can stay compressed on disk.
type CSVSource struct {
	file    *os.File
	closers []io.Closer
	scanner *bufio.Scanner

	skipped int
	total   int

	log zerolog.Logger
}

// NewCSVSource returns an unopened CSV source.
func NewCSVSource() *CSVSource {
	return &CSVSource{log: logger.Get("ingest")}
}

// Open opens the file, wires up a decompressor if the extension calls for
// one, and consumes the header line.
func (s *CSVSource) Open(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	s.file = f
	s.closers = nil
	s.skipped = 0
	s.total = 0

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return fmt.Errorf("gzip reader for %s: %w", path, err)
		}
		s.closers = append(s.closers, zr)
		r = zr
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return fmt.Errorf("zstd reader for %s: %w", path, err)
		}
		s.closers = append(s.closers, zr.IOReadCloser())
		r = zr
	case ".lz4":
		r = lz4.NewReader(f)
	}

	s.scanner = bufio.NewScanner(bufio.NewReaderSize(r, readBufSize))
	s.scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	// Discard the header row.
	s.scanner.Scan()
	return nil
}

// ReadAll appends every well-formed record to out. Blank lines are skipped
// outright; rows with too few columns are counted in SkippedRows and never
// abort the load.
func (s *CSVSource) ReadAll(out *[]models.ServiceRequest) int {
	if s.scanner == nil {
		return 0
	}
	loaded := 0
	fields := make([]string, 0, models.ColumnCount)
	for s.scanner.Scan() {
		line := s.scanner.Text()
		if line == "" {
			continue
		}
		s.total++

		fields = SplitLine(line, fields)
		var rec models.ServiceRequest
		if !rec.FromFields(fields) {
			s.skipped++
			continue
		}
		*out = append(*out, rec)
		loaded++
	}
	if err := s.scanner.Err(); err != nil {
		s.log.Error().Err(err).Msg("Read aborted mid-file")
	}
	return loaded
}

// ReadChunk feeds each well-formed record to fn without accumulating them.
// Same decode and skip semantics as ReadAll.
func (s *CSVSource) ReadChunk(fn func(models.ServiceRequest)) int {
	if s.scanner == nil {
		return 0
	}
	fields := make([]string, 0, models.ColumnCount)
	for s.scanner.Scan() {
		line := s.scanner.Text()
		if line == "" {
			continue
		}
		s.total++

		fields = SplitLine(line, fields)
		var rec models.ServiceRequest
		if !rec.FromFields(fields) {
			s.skipped++
			continue
		}
		fn(rec)
	}
	if err := s.scanner.Err(); err != nil {
		s.log.Error().Err(err).Msg("Read aborted mid-file")
	}
	return s.total
}

// Close closes the decompressor (if any) and the file.
func (s *CSVSource) Close() error {
	s.scanner = nil
	var firstErr error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.closers = nil
	if s.file != nil {
		if err := s.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.file = nil
	}
	return firstErr
}

// SkippedRows returns the malformed-row tally from the last read.
func (s *CSVSource) SkippedRows() int { return s.skipped }

// TotalRows returns the number of non-blank data rows seen.
func (s *CSVSource) TotalRows() int { return s.total }
