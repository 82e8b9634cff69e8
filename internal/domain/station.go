package domain

import "time"

// Station is a named point on the network. Immutable once a line stop
// references it.
type Station struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Line owns an ordered sequence of stations via LineStation.
type Line struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	StationCount int       `db:"station_count" json:"stationCount,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// LineStation places a station on a line. StationOrder is unique per line and
// strictly increasing along the line's physical path.
type LineStation struct {
	ID           int64 `db:"id" json:"id"`
	LineID       int64 `db:"line_id" json:"lineId"`
	StationID    int64 `db:"station_id" json:"stationId"`
	StationOrder int   `db:"station_order" json:"stationOrder"`
}

// StationOnLine is a station together with its position on one line.
type StationOnLine struct {
	Station
	LineID       int64 `db:"line_id" json:"lineId"`
	StationOrder int   `db:"station_order" json:"stationOrder"`
}
