package query

import "strings"

// SortOrder is the direction of a sort criterion.
type SortOrder string

const (
	// SortAsc sorts ascending.
	SortAsc SortOrder = "asc"
	// SortDesc sorts descending.
	SortDesc SortOrder = "desc"
)

// DistanceUnitKm reports geo distances in kilometers.
const DistanceUnitKm = "km"

// Sort is a single sort criterion.
type Sort interface {
	Source() map[string]any
}

// GeoDistanceSort orders hits by distance from a reference point.
type GeoDistanceSort struct {
	field  string
	origin string
	order  SortOrder
	unit   string
}

// GeoDistance sorts by distance of field from origin ("lat, lon" or geohash).
func GeoDistance(field, origin string, order SortOrder, unit string) GeoDistanceSort {
	return GeoDistanceSort{field: field, origin: origin, order: order, unit: unit}
}

// Field returns the geo-point field.
func (s GeoDistanceSort) Field() string { return s.field }

// Origin returns the reference location.
func (s GeoDistanceSort) Origin() string { return s.origin }

// Order returns the sort direction.
func (s GeoDistanceSort) Order() SortOrder { return s.order }

// Unit returns the distance unit.
func (s GeoDistanceSort) Unit() string { return s.unit }

// Source renders the _geo_distance criterion.
func (s GeoDistanceSort) Source() map[string]any {
	return map[string]any{
		"_geo_distance": map[string]any{
			s.field: s.origin,
			"order": string(s.order),
			"unit":  s.unit,
		},
	}
}

// GeoSort returns the nearest-first criterion for location, or nil when no
// location is supplied and ordering stays by relevance.
func GeoSort(location string) []Sort {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil
	}
	return []Sort{GeoDistance(FieldLocation, location, SortAsc, DistanceUnitKm)}
}
