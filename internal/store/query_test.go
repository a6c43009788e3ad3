package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citylens/srscan/pkg/models"
)

// seed returns a store pre-populated with a small fixed dataset.
func seed() *Store {
	s := New(16)
	s.records = append(s.records,
		models.ServiceRequest{
			UniqueKey:       1,
			CreatedDate:     models.ParseDateTime("06/15/2015 10:00:00 AM"),
			Agency:          "NYPD",
			ComplaintType:   "Noise - Residential",
			Status:          "Closed",
			Borough:         "BROOKLYN",
			IncidentZip:     10001,
			CouncilDistrict: 33,
			Latitude:        40.71,
			Longitude:       -74.00,
		},
		models.ServiceRequest{
			UniqueKey:       2,
			CreatedDate:     models.ParseDateTime("01/02/2018 09:30:00 PM"),
			Agency:          "DOT",
			ComplaintType:   "Illegal Parking",
			Status:          "Open",
			Borough:         "Queens",
			IncidentZip:     10002,
			CouncilDistrict: 19,
			Latitude:        40.76,
			Longitude:       -73.92,
		},
		models.ServiceRequest{
			UniqueKey:       3,
			// No created date in the source row.
			Agency:          "DOHMH",
			ComplaintType:   "Rodent",
			Status:          "Closed",
			Borough:         "BROOKLYN",
			IncidentZip:     11211,
			CouncilDistrict: -1,
			Latitude:        40.72,
			Longitude:       -73.95,
		},
	)
	return s
}

func keys(res *Result) []uint64 {
	out := make([]uint64, 0, len(res.Matches))
	for _, r := range res.Matches {
		out = append(out, r.UniqueKey)
	}
	return out
}

func TestFilterByDateRange(t *testing.T) {
	s := seed()

	res := s.FilterByDateRange(
		models.ParseDateTime("01/01/2015 12:00:00 AM"),
		models.ParseDateTime("12/31/2015 11:59:59 PM"))
	assert.Equal(t, []uint64{1}, keys(res))

	// The record with no created date is excluded even from a range that
	// covers everything.
	res = s.FilterByDateRange(
		models.ParseDateTime("01/01/2000 12:00:00 AM"),
		models.ParseDateTime("12/31/2029 11:59:59 PM"))
	assert.Equal(t, []uint64{1, 2}, keys(res))
}

func TestFilterByBorough(t *testing.T) {
	s := seed()

	res := s.FilterByBorough("brooklyn")
	assert.Equal(t, []uint64{1, 3}, keys(res), "match is case-insensitive")

	res = s.FilterByBorough("QUEENS")
	assert.Equal(t, []uint64{2}, keys(res))

	res = s.FilterByBorough("STATEN ISLAND")
	assert.Empty(t, res.Matches)
	assert.Equal(t, 0, res.Count())
}

func TestFilterByAgency(t *testing.T) {
	s := seed()
	assert.Equal(t, []uint64{1}, keys(s.FilterByAgency("nypd")))
	assert.Equal(t, []uint64{3}, keys(s.FilterByAgency("DOHMH")))
}

func TestFilterByComplaintType(t *testing.T) {
	s := seed()

	res := s.FilterByComplaintType("noise")
	assert.Equal(t, []uint64{1}, keys(res), "substring match, case-insensitive")

	res = s.FilterByComplaintType("PARKING")
	assert.Equal(t, []uint64{2}, keys(res))

	res = s.FilterByComplaintType("")
	assert.Equal(t, []uint64{1, 2, 3}, keys(res), "empty keyword matches everything")

	res = s.FilterByComplaintType("hydrant")
	assert.Empty(t, res.Matches)
}

func TestFilterByStatus(t *testing.T) {
	s := seed()
	assert.Equal(t, []uint64{2}, keys(s.FilterByStatus("open")))
	assert.Equal(t, []uint64{1, 3}, keys(s.FilterByStatus("CLOSED")))
}

func TestFilterByZip(t *testing.T) {
	s := seed()
	assert.Equal(t, []uint64{1}, keys(s.FilterByZip(10001)))
	assert.Equal(t, []uint64{2}, keys(s.FilterByZip(10002)))
	assert.Empty(t, s.FilterByZip(99999).Matches)
}

func TestFilterByLatLonBox(t *testing.T) {
	s := seed()

	res := s.FilterByLatLonBox(40.70, 40.73, -74.02, -73.94)
	assert.Equal(t, []uint64{1, 3}, keys(res))

	// Bounds are inclusive.
	res = s.FilterByLatLonBox(40.71, 40.71, -74.00, -74.00)
	assert.Equal(t, []uint64{1}, keys(res))
}

func TestFilterByCouncilDistrict(t *testing.T) {
	s := seed()
	assert.Equal(t, []uint64{1}, keys(s.FilterByCouncilDistrict(33)))
	assert.Equal(t, []uint64{3}, keys(s.FilterByCouncilDistrict(-1)),
		"the absent sentinel is queryable like any other value")
}

func TestQueriesAreDeterministic(t *testing.T) {
	s := seed()

	first := s.FilterByBorough("BROOKLYN")
	second := s.FilterByBorough("BROOKLYN")

	require.Equal(t, first.Count(), second.Count())
	for i := range first.Matches {
		assert.Same(t, first.Matches[i], second.Matches[i],
			"repeat queries return the same pointers in the same file order")
	}
	assert.NotEqual(t, first.QueryID, second.QueryID)
}

func TestResultsBorrowFromStore(t *testing.T) {
	s := seed()

	res := s.FilterByZip(10001)
	require.Len(t, res.Matches, 1)
	assert.Same(t, &s.records[0], res.Matches[0],
		"matches point into the store, no record is copied")
}

func TestQueryOnEmptyStore(t *testing.T) {
	s := New(4)

	res := s.FilterByBorough("BROOKLYN")
	assert.Equal(t, 0, res.Count())
	assert.Empty(t, res.Matches)
}

func TestCaseFoldHelpers(t *testing.T) {
	assert.True(t, equalFold("BROOKLYN", "brooklyn"))
	assert.True(t, equalFold("", ""))
	assert.False(t, equalFold("BROOKLYN", "BROOKLY"))
	assert.False(t, equalFold("BRONX", "BRONI"))

	assert.True(t, containsFold("Noise - Residential", "noise"))
	assert.True(t, containsFold("Noise - Residential", "RESIDENTIAL"))
	assert.True(t, containsFold("anything", ""))
	assert.False(t, containsFold("", "x"))
	assert.False(t, containsFold("Illegal Parking", "noise"))
}
