package domain

import "time"

// Train is identified by its unique number. It reaches lines only through its
// scheduled stops, so a single train may serve several lines.
type Train struct {
	ID        int64     `db:"id" json:"id"`
	Number    string    `db:"number" json:"number"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// TrainStop is one scheduled call of a train at a line station. The referenced
// LineStation always belongs to LineID. IsDeparture marks a valid boarding
// point at that station, IsArrival a valid alighting point.
type TrainStop struct {
	ID            int64      `db:"id" json:"id"`
	TrainID       int64      `db:"train_id" json:"trainId"`
	LineID        int64      `db:"line_id" json:"lineId"`
	LineStationID int64      `db:"line_station_id" json:"lineStationId"`
	ArrivalTime   *TimeOfDay `db:"arrival_time" json:"arrivalTime"`
	DepartureTime *TimeOfDay `db:"departure_time" json:"departureTime"`
	IsArrival     bool       `db:"is_arrival" json:"isArrival"`
	IsDeparture   bool       `db:"is_departure" json:"isDeparture"`
}

// TrainRun is one day of operation for a train, owned by the user who
// registered it. Escorts attach through EscortAssignment.
type TrainRun struct {
	ID          int64     `db:"id" json:"id"`
	Day         string    `db:"day" json:"day"`
	TrainID     int64     `db:"train_id" json:"trainId"`
	OwnerUserID int64     `db:"owner_user_id" json:"ownerUserId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// EscortAssignment joins a police person to a run together with the escort's
// own boarding and alighting stations.
type EscortAssignment struct {
	TrainRunID     int64 `db:"train_run_id" json:"trainRunId"`
	PolicePersonID int64 `db:"police_person_id" json:"policePersonId"`
	FromStationID  int64 `db:"from_station_id" json:"fromStationId"`
	ToStationID    int64 `db:"to_station_id" json:"toStationId"`
}

// JourneyStop is the flattened view of a train stop used by the itinerary
// matcher: the stop joined with its line, station and position on the line.
type JourneyStop struct {
	TrainID       int64      `db:"train_id" json:"trainId"`
	TrainNumber   string     `db:"train_number" json:"trainNumber"`
	LineID        int64      `db:"line_id" json:"lineId"`
	LineName      string     `db:"line_name" json:"lineName"`
	StationID     int64      `db:"station_id" json:"stationId"`
	StationName   string     `db:"station_name" json:"stationName"`
	StationOrder  int        `db:"station_order" json:"stationOrder"`
	ArrivalTime   *TimeOfDay `db:"arrival_time" json:"arrivalTime"`
	DepartureTime *TimeOfDay `db:"departure_time" json:"departureTime"`
	IsArrival     bool       `db:"is_arrival" json:"isArrival"`
	IsDeparture   bool       `db:"is_departure" json:"isDeparture"`
}
