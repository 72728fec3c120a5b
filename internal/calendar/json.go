package calendar

import (
	"encoding/json"
	"fmt"
	"time"
)

// The persisted shape is a sequence of per-room maps from ISO date to a
// "free" flag, one map per physical room.

func (c *Calendar) MarshalJSON() ([]byte, error) {
	rooms := make([]map[string]bool, len(c.free))
	for idx, days := range c.free {
		m := make(map[string]bool, len(days))
		for d, isFree := range days {
			m[c.start.AddDate(0, 0, d).Format(ISODate)] = isFree
		}
		rooms[idx] = m
	}
	return json.Marshal(rooms)
}

func (c *Calendar) UnmarshalJSON(data []byte) error {
	var rooms []map[string]bool
	if err := json.Unmarshal(data, &rooms); err != nil {
		return fmt.Errorf("decode calendar: %w", err)
	}
	if len(rooms) == 0 {
		return fmt.Errorf("decode calendar: no rooms")
	}

	var start, end time.Time
	for date := range rooms[0] {
		day, err := time.ParseInLocation(ISODate, date, time.UTC)
		if err != nil {
			return fmt.Errorf("decode calendar: bad date %q: %w", date, err)
		}
		if start.IsZero() || day.Before(start) {
			start = day
		}
		if day.After(end) {
			end = day
		}
	}
	days := daysBetween(start, end) + 1

	free := make([][]bool, len(rooms))
	for idx, m := range rooms {
		if len(m) != days {
			return fmt.Errorf("decode calendar: room %d has %d entries, want %d", idx, len(m), days)
		}
		free[idx] = make([]bool, days)
		for date, isFree := range m {
			day, err := time.ParseInLocation(ISODate, date, time.UTC)
			if err != nil {
				return fmt.Errorf("decode calendar: bad date %q: %w", date, err)
			}
			offset := daysBetween(start, day)
			if offset < 0 || offset >= days {
				return fmt.Errorf("decode calendar: room %d date %s outside horizon", idx, date)
			}
			free[idx][offset] = isFree
		}
	}

	c.start = start
	c.free = free
	return nil
}
