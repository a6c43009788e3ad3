// Package store owns the loaded record set and answers filter queries over
// it. Every query is a full sequential scan; this is the serial baseline the
// later phases measure against, so no index structures live here.
package store

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/citylens/srscan/internal/ingest"
	"github.com/citylens/srscan/internal/logger"
	"github.com/citylens/srscan/pkg/models"
)

// DefaultExpectedRows pre-sizes the backing slice for the full 2010-2019
// export (~11M rows) so the load does not reallocate mid-file. A tuning
// knob, not a correctness requirement.
const DefaultExpectedRows = 12_000_000

// Store is the densely packed, insertion-ordered record collection. It is
// written exactly once per Load and read by any number of sequential
// queries; there is no concurrent access by construction.
type Store struct {
	records []models.ServiceRequest
	skipped int

	expectedRows int
	log          zerolog.Logger
}

// New returns an empty store that will pre-size itself for expectedRows
// records on the first load. A value <= 0 uses DefaultExpectedRows. The
// backing array is not allocated until Load so an unused store stays cheap.
func New(expectedRows int) *Store {
	if expectedRows <= 0 {
		expectedRows = DefaultExpectedRows
	}
	return &Store{
		expectedRows: expectedRows,
		log:          logger.Get("store"),
	}
}

// Load replaces the store's contents with the records read from path via
// src. Any pointers handed out by earlier queries are invalid afterwards.
//
// A file that cannot be opened degrades to a zero-record load: the error is
// logged and zero is returned, matching the rest of the pipeline's
// keep-going error posture.
func (s *Store) Load(src ingest.Source, path string) int {
	started := time.Now()

	s.Clear()
	if cap(s.records) < s.expectedRows {
		s.records = make([]models.ServiceRequest, 0, s.expectedRows)
	}
	if err := src.Open(path); err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("Load failed, store is empty")
		return 0
	}
	defer src.Close()

	n := src.ReadAll(&s.records)
	s.skipped = src.SkippedRows()

	s.log.Info().
		Str("path", path).
		Int("records", n).
		Int("skipped", s.skipped).
		Dur("elapsed", time.Since(started)).
		Msg("Load complete")
	return n
}

// Clear drops all records. Capacity is retained for the next load.
func (s *Store) Clear() {
	s.records = s.records[:0]
	s.skipped = 0
}

// Len returns the number of stored records.
func (s *Store) Len() int { return len(s.records) }

// SkippedRows returns the malformed-row count from the last load.
func (s *Store) SkippedRows() int { return s.skipped }

// Records exposes the stored records for read-only iteration (statistics,
// reporting). Callers must not mutate or retain it across a Load.
func (s *Store) Records() []models.ServiceRequest { return s.records }
