// Package stats aggregates the loaded dataset into the summary the CLI
// prints after a load: per-borough, per-status, and per-complaint-type
// counts, the covered date range, and the top complaint types.
package stats

import (
	"sort"

	"github.com/citylens/srscan/pkg/models"
)

// ComplaintCount is one entry of the ranked complaint-type list.
type ComplaintCount struct {
	Type  string
	Count int
}

// Summary holds the aggregate tallies over one loaded dataset.
type Summary struct {
	TotalRecords int

	// MinDate and MaxDate are "YYYY-MM-DD" calendar dates over records
	// with a valid created date. Both empty when no record qualifies.
	MinDate string
	MaxDate string

	Boroughs   map[string]int
	Statuses   map[string]int
	Complaints map[string]int

	// TopComplaints is ranked by descending count. Ties break by
	// reverse-lexicographic type name so the ranking is deterministic.
	TopComplaints []ComplaintCount
}

// Summarize tallies the records in one pass and ranks the topN complaint
// types. Keys are the exact field strings as stored.
func Summarize(records []models.ServiceRequest, topN int) *Summary {
	s := &Summary{
		TotalRecords: len(records),
		Boroughs:     make(map[string]int),
		Statuses:     make(map[string]int),
		Complaints:   make(map[string]int),
	}

	for i := range records {
		r := &records[i]
		s.Boroughs[r.Borough]++
		s.Statuses[r.Status]++
		s.Complaints[r.ComplaintType]++

		if r.CreatedDate.Valid {
			d := r.CreatedDate.Date()
			if s.MinDate == "" || d < s.MinDate {
				s.MinDate = d
			}
			if d > s.MaxDate {
				s.MaxDate = d
			}
		}
	}

	s.TopComplaints = topComplaints(s.Complaints, topN)
	return s
}

// topComplaints ranks complaint types by (count desc, type desc).
func topComplaints(counts map[string]int, n int) []ComplaintCount {
	ranked := make([]ComplaintCount, 0, len(counts))
	for typ, count := range counts {
		ranked = append(ranked, ComplaintCount{Type: typ, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Type > ranked[j].Type
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// SortedKeys returns the keys of one tally map in lexicographic order, for
// stable report output.
func SortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
