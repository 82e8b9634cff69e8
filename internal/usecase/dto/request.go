package dto

// LoginRequest authenticates by username and password.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

// CreateUserRequest registers a user with a role.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	RoleID   int64  `json:"roleId" validate:"required"`
}

// UpdateUserRequest patches a user; zero-valued fields stay untouched.
type UpdateUserRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=64"`
	Password string `json:"password" validate:"omitempty,min=6,max=128"`
	RoleID   int64  `json:"roleId" validate:"omitempty"`
}

// CreateStationRequest resolves a station by name and places it on a line.
type CreateStationRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=128"`
	LineID       int64  `json:"lineId" validate:"required"`
	StationOrder int    `json:"stationOrder" validate:"required,min=1"`
}

// UpdateStationRequest renames a station.
type UpdateStationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=128"`
}

// UpdateStationOrderRequest moves a station within one line.
type UpdateStationOrderRequest struct {
	LineID       int64 `json:"lineId" validate:"required"`
	StationOrder int   `json:"stationOrder" validate:"required,min=1"`
}

// DetachStationRequest removes a station's placement on one line.
type DetachStationRequest struct {
	LineID int64 `json:"lineId" validate:"required"`
}

// CreateLineRequest adds a line.
type CreateLineRequest struct {
	Name string `json:"name" validate:"required,min=1,max=128"`
}

// UpdateLineRequest renames a line.
type UpdateLineRequest struct {
	Name string `json:"name" validate:"required,min=1,max=128"`
}

// CreateTrainRequest adds a train by number.
type CreateTrainRequest struct {
	Number string `json:"number" validate:"required,min=1,max=32"`
}

// UpdateTrainRequest changes a train's number.
type UpdateTrainRequest struct {
	Number string `json:"number" validate:"required,min=1,max=32"`
}

// UpsertStopRequest creates or updates one scheduled stop of a train.
// Times are wall-clock "HH:MM:SS" strings; either may be absent.
type UpsertStopRequest struct {
	LineID        int64   `json:"lineId" validate:"required"`
	LineStationID int64   `json:"lineStationId" validate:"required"`
	ArrivalTime   *string `json:"arrivalTime" validate:"omitempty"`
	DepartureTime *string `json:"departureTime" validate:"omitempty"`
	IsArrival     bool    `json:"isArrival"`
	IsDeparture   bool    `json:"isDeparture"`
}

// TrainListQuery narrows the train listing. FromStation and ToStation, when
// both set, restrict to trains serving that journey.
type TrainListQuery struct {
	FromStation   string `query:"fromStation"`
	ToStation     string `query:"toStation"`
	Direction     string `query:"direction" validate:"omitempty,oneof=forward backward"`
	AllowTransfer bool   `query:"allowTransfer"`
	LineID        int64  `query:"lineId"`
}

// RunListQuery narrows the run listing.
type RunListQuery struct {
	TrainID int64  `query:"trainId"`
	Day     string `query:"day" validate:"omitempty,datetime=2006-01-02"`
}

// EscortInput identifies one escort by the full tuple plus that escort's own
// boarding and alighting stations.
type EscortInput struct {
	Name             string `json:"name" validate:"required,min=1,max=128"`
	PhoneNumber      string `json:"phoneNumber" validate:"required,min=3,max=32"`
	Rank             string `json:"rank" validate:"required,min=1,max=64"`
	PoliceDepartment string `json:"policeDepartment" validate:"required,min=1,max=128"`
	FromStationID    int64  `json:"fromStationId" validate:"required"`
	ToStationID      int64  `json:"toStationId" validate:"required"`
}

// RegisterRunRequest registers one day of operation for a train together with
// its escorts.
type RegisterRunRequest struct {
	Day     string        `json:"day" validate:"required,datetime=2006-01-02"`
	TrainID int64         `json:"trainId" validate:"required"`
	Escorts []EscortInput `json:"escorts" validate:"omitempty,max=50,dive"`
}
