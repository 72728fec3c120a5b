// Package calendar holds the per-room-type availability calendar: one
// boolean map per physical room over a fixed forward horizon, indexed by
// day offset so range checks stay O(days).
package calendar

import (
	"errors"
	"time"
)

const ISODate = "2006-01-02"

var (
	ErrInvalidRange = errors.New("check-out must be after check-in")
	ErrOutOfHorizon = errors.New("date outside the calendar horizon")
	ErrNoCapacity   = errors.New("no room available for the requested range")
	ErrBadRoomIndex = errors.New("room index outside the calendar")
)

// Calendar tracks, for each physical room of a room type, which dates are
// free. Dates outside the pre-populated horizon are an error, never
// implicitly free.
type Calendar struct {
	start time.Time
	free  [][]bool
}

// New returns a calendar with every (room, date) pair marked free for
// horizonDays starting at start (normalized to a UTC date).
func New(totalRooms, horizonDays int, start time.Time) (*Calendar, error) {
	if totalRooms <= 0 {
		return nil, errors.New("total rooms must be positive")
	}
	if horizonDays <= 0 {
		return nil, errors.New("horizon must be positive")
	}

	free := make([][]bool, totalRooms)
	for i := range free {
		free[i] = make([]bool, horizonDays)
		for d := range free[i] {
			free[i][d] = true
		}
	}

	return &Calendar{start: midnightUTC(start), free: free}, nil
}

func (c *Calendar) TotalRooms() int {
	return len(c.free)
}

func (c *Calendar) Start() time.Time {
	return c.start
}

func (c *Calendar) HorizonDays() int {
	if len(c.free) == 0 {
		return 0
	}
	return len(c.free[0])
}

// CountAvailable returns how many rooms are free for every date in
// [start, end), end exclusive.
func (c *Calendar) CountAvailable(start, end time.Time) (int, error) {
	from, to, err := c.offsets(start, end)
	if err != nil {
		return 0, err
	}

	count := 0
	for idx := range c.free {
		if c.freeBetween(idx, from, to) {
			count++
		}
	}
	return count, nil
}

// IsRoomFree reports whether one room is free for the whole range.
func (c *Calendar) IsRoomFree(roomIndex int, start, end time.Time) (bool, error) {
	if roomIndex < 0 || roomIndex >= len(c.free) {
		return false, ErrBadRoomIndex
	}
	from, to, err := c.offsets(start, end)
	if err != nil {
		return false, err
	}
	return c.freeBetween(roomIndex, from, to), nil
}

// Reserve assigns the lowest room index that is free across the whole
// range and marks it busy. All-or-nothing: on ErrNoCapacity the calendar
// is untouched.
func (c *Calendar) Reserve(start, end time.Time) (int, error) {
	from, to, err := c.offsets(start, end)
	if err != nil {
		return 0, err
	}

	for idx := range c.free {
		if !c.freeBetween(idx, from, to) {
			continue
		}
		for d := from; d < to; d++ {
			c.free[idx][d] = false
		}
		return idx, nil
	}
	return 0, ErrNoCapacity
}

// Release marks the range free on one room. Releasing an already-free
// date is a no-op so retried cancellations stay safe.
func (c *Calendar) Release(roomIndex int, start, end time.Time) error {
	if roomIndex < 0 || roomIndex >= len(c.free) {
		return ErrBadRoomIndex
	}
	from, to, err := c.offsets(start, end)
	if err != nil {
		return err
	}

	for d := from; d < to; d++ {
		c.free[roomIndex][d] = true
	}
	return nil
}

func (c *Calendar) freeBetween(roomIndex, from, to int) bool {
	for d := from; d < to; d++ {
		if !c.free[roomIndex][d] {
			return false
		}
	}
	return true
}

func (c *Calendar) offsets(start, end time.Time) (int, int, error) {
	start = midnightUTC(start)
	end = midnightUTC(end)
	if !end.After(start) {
		return 0, 0, ErrInvalidRange
	}

	from := daysBetween(c.start, start)
	to := daysBetween(c.start, end)
	if from < 0 || to > c.HorizonDays() {
		return 0, 0, ErrOutOfHorizon
	}
	return from, to, nil
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
