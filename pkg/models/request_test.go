package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullRow returns a complete 44-column row with every field populated.
func fullRow() []string {
	f := make([]string, ColumnCount)
	f[ColUniqueKey] = "30567893"
	f[ColCreatedDate] = "07/04/2015 02:30:00 PM"
	f[ColClosedDate] = "07/06/2015 09:00:00 AM"
	f[ColAgency] = "NYPD"
	f[ColAgencyName] = "New York City Police Department"
	f[ColComplaintType] = "Noise - Residential"
	f[ColDescriptor] = "Loud Music/Party"
	f[ColAdditionalDetails] = ""
	f[ColLocationType] = "Residential Building/House"
	f[ColIncidentZip] = "11211"
	f[ColIncidentAddress] = "100 BEDFORD AVENUE"
	f[ColStreetName] = "BEDFORD AVENUE"
	f[ColCrossStreet1] = "NORTH 10 STREET"
	f[ColCrossStreet2] = "NORTH 11 STREET"
	f[ColIntersectionStreet1] = ""
	f[ColIntersectionStreet2] = ""
	f[ColAddressType] = "ADDRESS"
	f[ColCity] = "BROOKLYN"
	f[ColLandmark] = ""
	f[ColFacilityType] = "Precinct"
	f[ColStatus] = "Closed"
	f[ColDueDate] = "07/04/2015 10:30:00 PM"
	f[ColResolutionDescription] = "The Police Department responded to the complaint."
	f[ColResolutionUpdatedDate] = "07/06/2015 09:00:00 AM"
	f[ColCommunityBoard] = "01 BROOKLYN"
	f[ColCouncilDistrict] = "33"
	f[ColPolicePrecinct] = "94"
	f[ColBBL] = "3023230001"
	f[ColBorough] = "BROOKLYN"
	f[ColXCoordinate] = "996215"
	f[ColYCoordinate] = "202387"
	f[ColChannelType] = "PHONE"
	f[ColParkFacilityName] = "Unspecified"
	f[ColParkBorough] = "BROOKLYN"
	f[ColVehicleType] = ""
	f[ColTaxiCompanyBorough] = ""
	f[ColTaxiPickupLocation] = ""
	f[ColBridgeHighwayName] = ""
	f[ColBridgeHighwayDirection] = ""
	f[ColRoadRamp] = ""
	f[ColBridgeHighwaySegment] = ""
	f[ColLatitude] = "40.718234"
	f[ColLongitude] = "-73.957145"
	f[ColLocation] = "POINT (-73.957145 40.718234)"
	return f
}

func TestServiceRequest_FromFields(t *testing.T) {
	var r ServiceRequest
	require.True(t, r.FromFields(fullRow()))

	assert.Equal(t, uint64(30567893), r.UniqueKey)
	assert.Equal(t, "2015-07-04 14:30:00", r.CreatedDate.String())
	assert.Equal(t, "2015-07-06 09:00:00", r.ClosedDate.String())
	assert.Equal(t, "NYPD", r.Agency)
	assert.Equal(t, "Noise - Residential", r.ComplaintType)
	assert.Equal(t, uint32(11211), r.IncidentZip)
	assert.Equal(t, "Closed", r.Status)
	assert.Equal(t, int16(33), r.CouncilDistrict)
	assert.Equal(t, uint64(3023230001), r.BBL)
	assert.Equal(t, "BROOKLYN", r.Borough)
	assert.Equal(t, int32(996215), r.XCoordinate)
	assert.Equal(t, int32(202387), r.YCoordinate)
	assert.Equal(t, "PHONE", r.ChannelType)
	assert.InDelta(t, 40.718234, r.Latitude, 1e-9)
	assert.InDelta(t, -73.957145, r.Longitude, 1e-9)
}

func TestServiceRequest_RejectsShortRows(t *testing.T) {
	row := fullRow()

	var r ServiceRequest
	assert.True(t, r.FromFields(row[:MinFields]), "43 fields is enough, Location is optional")
	assert.False(t, r.FromFields(row[:42]))
	assert.False(t, r.FromFields(row[:1]))
	assert.False(t, r.FromFields(nil))
}

func TestServiceRequest_NumericDefaults(t *testing.T) {
	row := fullRow()
	row[ColIncidentZip] = ""
	row[ColCouncilDistrict] = ""
	row[ColBBL] = ""
	row[ColXCoordinate] = ""
	row[ColYCoordinate] = ""
	row[ColLatitude] = ""
	row[ColLongitude] = ""
	row[ColClosedDate] = ""

	var r ServiceRequest
	require.True(t, r.FromFields(row))
	assert.Equal(t, uint32(0), r.IncidentZip)
	assert.Equal(t, int16(-1), r.CouncilDistrict)
	assert.Equal(t, uint64(0), r.BBL)
	assert.Equal(t, int32(0), r.XCoordinate)
	assert.Equal(t, int32(0), r.YCoordinate)
	assert.Equal(t, 0.0, r.Latitude)
	assert.Equal(t, 0.0, r.Longitude)
	assert.False(t, r.ClosedDate.Valid)
}

func TestServiceRequest_NumericLeadingDigits(t *testing.T) {
	row := fullRow()
	row[ColIncidentZip] = "10001-1234" // zip+4 appears in the raw export
	row[ColCouncilDistrict] = "07A"
	row[ColBBL] = "N/A"

	var r ServiceRequest
	require.True(t, r.FromFields(row))
	assert.Equal(t, uint32(10001), r.IncidentZip, "leading digits convert, the rest is ignored")
	assert.Equal(t, int16(7), r.CouncilDistrict)
	assert.Equal(t, uint64(0), r.BBL, "no leading digits falls back to the default")
}

func TestServiceRequest_NegativeCouncilDistrict(t *testing.T) {
	row := fullRow()
	row[ColCouncilDistrict] = "-2"

	var r ServiceRequest
	require.True(t, r.FromFields(row))
	assert.Equal(t, int16(-2), r.CouncilDistrict)
}

func TestServiceRequest_BadFloatDefaultsToZero(t *testing.T) {
	row := fullRow()
	row[ColLatitude] = "not-a-number"

	var r ServiceRequest
	require.True(t, r.FromFields(row))
	assert.Equal(t, 0.0, r.Latitude)
}
