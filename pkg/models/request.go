package models

import "strconv"

// Column positions in the NYC 311 2010-2019 export. The header carries
// exactly 44 columns in this order; the final Location column is a WKT
// point that duplicates Latitude/Longitude and is never stored.
const (
	ColUniqueKey = iota
	ColCreatedDate
	ColClosedDate
	ColAgency
	ColAgencyName
	ColComplaintType
	ColDescriptor
	ColAdditionalDetails
	ColLocationType
	ColIncidentZip
	ColIncidentAddress
	ColStreetName
	ColCrossStreet1
	ColCrossStreet2
	ColIntersectionStreet1
	ColIntersectionStreet2
	ColAddressType
	ColCity
	ColLandmark
	ColFacilityType
	ColStatus
	ColDueDate
	ColResolutionDescription
	ColResolutionUpdatedDate
	ColCommunityBoard
	ColCouncilDistrict
	ColPolicePrecinct
	ColBBL
	ColBorough
	ColXCoordinate
	ColYCoordinate
	ColChannelType
	ColParkFacilityName
	ColParkBorough
	ColVehicleType
	ColTaxiCompanyBorough
	ColTaxiPickupLocation
	ColBridgeHighwayName
	ColBridgeHighwayDirection
	ColRoadRamp
	ColBridgeHighwaySegment
	ColLatitude
	ColLongitude
	ColLocation

	// ColumnCount is the full column count of a well-formed row.
	ColumnCount = ColLocation + 1

	// MinFields is the acceptance threshold for a row: everything through
	// Longitude must be present, the trailing Location column is optional.
	MinFields = ColLocation
)

// ServiceRequest models one row of the 311 dataset. Integer columns use
// fixed-width types with in-band absent sentinels (0, or -1 for the council
// district) so a loaded record carries no pointers besides its strings.
type ServiceRequest struct {
	UniqueKey uint64

	CreatedDate           DateTime
	ClosedDate            DateTime
	DueDate               DateTime
	ResolutionUpdatedDate DateTime

	Agency            string // short code, e.g. "NYPD"
	AgencyName        string
	ComplaintType     string
	Descriptor        string
	AdditionalDetails string

	LocationType        string
	IncidentZip         uint32 // 0 when absent
	IncidentAddress     string
	StreetName          string
	CrossStreet1        string
	CrossStreet2        string
	IntersectionStreet1 string
	IntersectionStreet2 string
	AddressType         string
	City                string
	Landmark            string
	FacilityType        string

	Status                string
	ResolutionDescription string

	CommunityBoard  string
	CouncilDistrict int16 // -1 when absent
	PolicePrecinct  string
	BBL             uint64 // 0 when absent
	Borough         string

	XCoordinate int32 // State Plane feet, 0 when absent
	YCoordinate int32
	Latitude    float64 // 0.0 when absent
	Longitude   float64

	ChannelType string

	ParkFacilityName       string
	ParkBorough            string
	VehicleType            string
	TaxiCompanyBorough     string
	TaxiPickupLocation     string
	BridgeHighwayName      string
	BridgeHighwayDirection string
	RoadRamp               string
	BridgeHighwaySegment   string
}

// FromFields populates the record from a decoded CSV row. It returns false
// when the row has too few columns to be trusted; a rejected record is never
// partially stored. Individual bad values inside an accepted row degrade to
// their absent sentinels rather than failing the row.
func (r *ServiceRequest) FromFields(fields []string) bool {
	if len(fields) < MinFields {
		return false
	}

	r.UniqueKey = leadingUint64(fields[ColUniqueKey], 0)
	r.CreatedDate = ParseDateTime(fields[ColCreatedDate])
	r.ClosedDate = ParseDateTime(fields[ColClosedDate])
	r.Agency = fields[ColAgency]
	r.AgencyName = fields[ColAgencyName]
	r.ComplaintType = fields[ColComplaintType]
	r.Descriptor = fields[ColDescriptor]
	r.AdditionalDetails = fields[ColAdditionalDetails]
	r.LocationType = fields[ColLocationType]
	r.IncidentZip = uint32(leadingUint64(fields[ColIncidentZip], 0))
	r.IncidentAddress = fields[ColIncidentAddress]
	r.StreetName = fields[ColStreetName]
	r.CrossStreet1 = fields[ColCrossStreet1]
	r.CrossStreet2 = fields[ColCrossStreet2]
	r.IntersectionStreet1 = fields[ColIntersectionStreet1]
	r.IntersectionStreet2 = fields[ColIntersectionStreet2]
	r.AddressType = fields[ColAddressType]
	r.City = fields[ColCity]
	r.Landmark = fields[ColLandmark]
	r.FacilityType = fields[ColFacilityType]
	r.Status = fields[ColStatus]
	r.DueDate = ParseDateTime(fields[ColDueDate])
	r.ResolutionDescription = fields[ColResolutionDescription]
	r.ResolutionUpdatedDate = ParseDateTime(fields[ColResolutionUpdatedDate])
	r.CommunityBoard = fields[ColCommunityBoard]
	r.CouncilDistrict = int16(leadingInt64(fields[ColCouncilDistrict], -1))
	r.PolicePrecinct = fields[ColPolicePrecinct]
	r.BBL = leadingUint64(fields[ColBBL], 0)
	r.Borough = fields[ColBorough]
	r.XCoordinate = int32(leadingInt64(fields[ColXCoordinate], 0))
	r.YCoordinate = int32(leadingInt64(fields[ColYCoordinate], 0))
	r.ChannelType = fields[ColChannelType]
	r.ParkFacilityName = fields[ColParkFacilityName]
	r.ParkBorough = fields[ColParkBorough]
	r.VehicleType = fields[ColVehicleType]
	r.TaxiCompanyBorough = fields[ColTaxiCompanyBorough]
	r.TaxiPickupLocation = fields[ColTaxiPickupLocation]
	r.BridgeHighwayName = fields[ColBridgeHighwayName]
	r.BridgeHighwayDirection = fields[ColBridgeHighwayDirection]
	r.RoadRamp = fields[ColRoadRamp]
	r.BridgeHighwaySegment = fields[ColBridgeHighwaySegment]
	r.Latitude = parseFloat(fields[ColLatitude])
	r.Longitude = parseFloat(fields[ColLongitude])
	// fields[ColLocation], when present, is a redundant WKT point.

	return true
}

// leadingUint64 converts the leading base-10 digits of s. A string with no
// leading digits yields def. Values wider than the caller's target type
// truncate on the narrowing cast, which is the defined behavior for these
// fixed-width columns.
func leadingUint64(s string, def uint64) uint64 {
	var v uint64
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		v = v*10 + uint64(s[i]-'0')
		i++
	}
	if i == 0 {
		return def
	}
	return v
}

// leadingInt64 is leadingUint64 with an optional leading sign.
func leadingInt64(s string, def int64) int64 {
	neg := false
	rest := s
	if len(rest) > 0 && (rest[0] == '-' || rest[0] == '+') {
		neg = rest[0] == '-'
		rest = rest[1:]
	}
	if len(rest) == 0 || rest[0] < '0' || rest[0] > '9' {
		return def
	}
	v := int64(leadingUint64(rest, 0))
	if neg {
		return -v
	}
	return v
}

// parseFloat converts a latitude/longitude column; empty or non-numeric
// text yields 0.0 (the absent sentinel).
func parseFloat(s string) float64 {
	if s == "" {
		return 0.0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return v
}
