package domain

import "time"

// Rank is a reference entity resolved by name during run registration.
type Rank struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// PoliceDepartment is a reference entity resolved by name during run
// registration.
type PoliceDepartment struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// PolicePerson is an escort. Identity for find-or-create purposes is the full
// tuple (name, phone, rank, department).
type PolicePerson struct {
	ID                 int64     `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	PhoneNumber        string    `db:"phone_number" json:"phoneNumber"`
	RankID             int64     `db:"rank_id" json:"rankId"`
	PoliceDepartmentID int64     `db:"police_department_id" json:"policeDepartmentId"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}
