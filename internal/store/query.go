package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/citylens/srscan/pkg/models"
)

// Result is the outcome of one scan query. Matches holds pointers into the
// store's record slice — nothing is copied, so a multi-million-row result
// costs one pointer per match. The pointers stay valid until the next
// Load or Clear on the store that produced them.
type Result struct {
	// QueryID tags the query's log lines so timings can be correlated
	// across a session.
	QueryID string

	Matches []*models.ServiceRequest
	Elapsed time.Duration
}

// Count returns the number of matching records.
func (r *Result) Count() int { return len(r.Matches) }

// finish stamps the result and emits the per-query timing line.
func (s *Store) finish(name string, matches []*models.ServiceRequest, started time.Time) *Result {
	res := &Result{
		QueryID: uuid.NewString(),
		Matches: matches,
		Elapsed: time.Since(started),
	}
	s.log.Info().
		Str("query_id", res.QueryID).
		Str("query", name).
		Int("matches", res.Count()).
		Int64("elapsed_us", res.Elapsed.Microseconds()).
		Msg("Query complete")
	return res
}

// FilterByDateRange returns the records whose created date is valid and
// falls within [start, end], both ends inclusive.
func (s *Store) FilterByDateRange(start, end models.DateTime) *Result {
	t0 := time.Now()
	var matches []*models.ServiceRequest
	for i := range s.records {
		if s.records[i].CreatedDate.Between(start, end) {
			matches = append(matches, &s.records[i])
		}
	}
	return s.finish("date_range", matches, t0)
}

// FilterByBorough returns the records for one borough, compared
// case-insensitively ("brooklyn" matches "BROOKLYN").
func (s *Store) FilterByBorough(borough string) *Result {
	t0 := time.Now()
	var matches []*models.ServiceRequest
	for i := range s.records {
		if equalFold(s.records[i].Borough, borough) {
			matches = append(matches, &s.records[i])
		}
	}
	return s.finish("borough", matches, t0)
}

// FilterByAgency returns the records handled by one agency code,
// case-insensitively.
func (s *Store) FilterByAgency(agency string) *Result {
	t0 := time.Now()
	var matches []*models.ServiceRequest
	for i := range s.records {
		if equalFold(s.records[i].Agency, agency) {
			matches = append(matches, &s.records[i])
		}
	}
	return s.finish("agency", matches, t0)
}

// FilterByComplaintType returns the records whose complaint type contains
// keyword, case-insensitively. An empty keyword matches every record.
func (s *Store) FilterByComplaintType(keyword string) *Result {
	t0 := time.Now()
	var matches []*models.ServiceRequest
	for i := range s.records {
		if containsFold(s.records[i].ComplaintType, keyword) {
			matches = append(matches, &s.records[i])
		}
	}
	return s.finish("complaint_type", matches, t0)
}

// FilterByStatus returns the records in one status, case-insensitively.
func (s *Store) FilterByStatus(status string) *Result {
	t0 := time.Now()
	var matches []*models.ServiceRequest
	for i := range s.records {
		if equalFold(s.records[i].Status, status) {
			matches = append(matches, &s.records[i])
		}
	}
	return s.finish("status", matches, t0)
}

// FilterByZip returns the records with the given incident zip code.
func (s *Store) FilterByZip(zip uint32) *Result {
	t0 := time.Now()
	var matches []*models.ServiceRequest
	for i := range s.records {
		if s.records[i].IncidentZip == zip {
			matches = append(matches, &s.records[i])
		}
	}
	return s.finish("zip", matches, t0)
}

// FilterByLatLonBox returns the records inside the inclusive bounding box.
func (s *Store) FilterByLatLonBox(minLat, maxLat, minLon, maxLon float64) *Result {
	t0 := time.Now()
	var matches []*models.ServiceRequest
	for i := range s.records {
		r := &s.records[i]
		if r.Latitude >= minLat && r.Latitude <= maxLat &&
			r.Longitude >= minLon && r.Longitude <= maxLon {
			matches = append(matches, r)
		}
	}
	return s.finish("lat_lon_box", matches, t0)
}

// FilterByCouncilDistrict returns the records for one council district.
func (s *Store) FilterByCouncilDistrict(district int16) *Result {
	t0 := time.Now()
	var matches []*models.ServiceRequest
	for i := range s.records {
		if s.records[i].CouncilDistrict == district {
			matches = append(matches, &s.records[i])
		}
	}
	return s.finish("council_district", matches, t0)
}

// lowerASCII folds one byte to lower case. The dataset is ASCII, so a byte
// fold is both correct and allocation-free on the scan path.
func lowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// equalFold is an ASCII-only case-insensitive string equality.
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

// containsFold reports whether haystack contains needle under an ASCII
// case-insensitive comparison. The empty needle matches everything.
func containsFold(haystack, needle string) bool {
	if len(needle) == 0 {
		return true
	}
	if len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		j := 0
		for j < len(needle) && lowerASCII(haystack[i+j]) == lowerASCII(needle[j]) {
			j++
		}
		if j == len(needle) {
			return true
		}
	}
	return false
}
