// Package itinerary finds trains connecting two stations over the ordered
// stop sequences of the network's lines.
package itinerary

import (
	"sort"

	"github.com/train-schedule-microservice/internal/domain"
)

// Direction selects which way along a line's station order the journey runs.
type Direction int

const (
	// DirectionForward requires the origin's station order to be strictly
	// smaller than the destination's.
	DirectionForward Direction = iota
	// DirectionBackward flips the order inequality; boarding and alighting
	// flags keep their meaning.
	DirectionBackward
)

// Options tune a match.
type Options struct {
	Direction Direction
	// AllowNamedTransfer also matches stop pairs on two different lines
	// when the lines share a name (continuation of a split line). Pairs on
	// distinct, unrelated lines are never mixed.
	AllowNamedTransfer bool
}

// Candidate is one qualifying stop pair for a train. A train visiting the
// pair several times in a day produces several candidates; the caller decides
// which to keep.
type Candidate struct {
	TrainID         int64              `json:"trainId"`
	TrainNumber     string             `json:"trainNumber"`
	LineID          int64              `json:"lineId"`
	LineName        string             `json:"lineName"`
	Origin          domain.JourneyStop `json:"origin"`
	Destination     domain.JourneyStop `json:"destination"`
	CrossesMidnight bool               `json:"crossesMidnight"`
}

// DepartsAt is the effective boarding instant: the origin's departure time,
// falling back to its arrival time.
func (c Candidate) DepartsAt() *domain.TimeOfDay {
	if c.Origin.DepartureTime != nil {
		return c.Origin.DepartureTime
	}
	return c.Origin.ArrivalTime
}

// ArrivesAt is the effective alighting instant: the destination's arrival
// time, falling back to its departure time.
func (c Candidate) ArrivesAt() *domain.TimeOfDay {
	if c.Destination.ArrivalTime != nil {
		return c.Destination.ArrivalTime
	}
	return c.Destination.DepartureTime
}

// Match pairs stops at the origin station with stops at the destination
// station, per train. A pair qualifies when both stops belong to the same
// line traversal (same line id, or same line name under AllowNamedTransfer),
// the station order satisfies the direction's inequality strictly, the origin
// is flagged as a boarding point and the destination as an alighting point.
//
// A destination whose effective instant falls before the origin's is a
// service running past midnight, flagged rather than rejected.
//
// Results come back ordered by effective origin instant ascending, ties and
// timeless candidates by train id ascending. An unknown or equal station pair
// yields an empty result, never an error.
func Match(stops []domain.JourneyStop, originID, destinationID int64, opts Options) []Candidate {
	if originID == destinationID {
		return nil
	}

	byTrain := groupByTrain(stops)

	var candidates []Candidate
	for _, trainStops := range byTrain {
		for _, origin := range trainStops {
			if origin.StationID != originID || !origin.IsDeparture {
				continue
			}
			for _, dest := range trainStops {
				if dest.StationID != destinationID || !dest.IsArrival {
					continue
				}
				if !sameTraversal(origin, dest, opts) {
					continue
				}
				if !orderedAlong(origin, dest, opts.Direction) {
					continue
				}
				candidates = append(candidates, newCandidate(origin, dest))
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		left, right := candidates[i].DepartsAt(), candidates[j].DepartsAt()
		switch {
		case left == nil && right == nil:
			return candidates[i].TrainID < candidates[j].TrainID
		case left == nil:
			return false
		case right == nil:
			return true
		case *left != *right:
			return *left < *right
		}
		return candidates[i].TrainID < candidates[j].TrainID
	})

	return candidates
}

func groupByTrain(stops []domain.JourneyStop) [][]domain.JourneyStop {
	index := make(map[int64]int)
	var grouped [][]domain.JourneyStop
	for _, s := range stops {
		i, ok := index[s.TrainID]
		if !ok {
			i = len(grouped)
			index[s.TrainID] = i
			grouped = append(grouped, nil)
		}
		grouped[i] = append(grouped[i], s)
	}
	return grouped
}

func sameTraversal(origin, dest domain.JourneyStop, opts Options) bool {
	if origin.LineID == dest.LineID {
		return true
	}
	return opts.AllowNamedTransfer && origin.LineName == dest.LineName
}

// orderedAlong requires strict inequality: equal station orders never match,
// whichever direction is asked for.
func orderedAlong(origin, dest domain.JourneyStop, d Direction) bool {
	if d == DirectionBackward {
		return origin.StationOrder > dest.StationOrder
	}
	return origin.StationOrder < dest.StationOrder
}

func newCandidate(origin, dest domain.JourneyStop) Candidate {
	c := Candidate{
		TrainID:     origin.TrainID,
		TrainNumber: origin.TrainNumber,
		LineID:      origin.LineID,
		LineName:    origin.LineName,
		Origin:      origin,
		Destination: dest,
	}
	if departs, arrives := c.DepartsAt(), c.ArrivesAt(); departs != nil && arrives != nil {
		c.CrossesMidnight = *arrives < *departs
	}
	return c
}

// TrainIDs returns the distinct train ids of the candidates, in result order.
func TrainIDs(candidates []Candidate) []int64 {
	seen := make(map[int64]bool, len(candidates))
	ids := make([]int64, 0, len(candidates))
	for _, c := range candidates {
		if seen[c.TrainID] {
			continue
		}
		seen[c.TrainID] = true
		ids = append(ids, c.TrainID)
	}
	return ids
}
