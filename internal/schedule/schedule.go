// Package schedule owns the operating-hours and holiday part of the store
// configuration: weekly schedule blocks, the regular-holiday rule and the
// temporary-holiday range. Every operation is a pure transition from one
// Config value to the next; callers decide how snapshots are published.
package schedule

import (
	"errors"
	"fmt"
	"time"
)

// ErrDayAssigned is returned when a weekday is toggled onto a block while
// another block already holds it. Blocks are mutually exclusive per weekday;
// the toggle is rejected rather than resolved.
var ErrDayAssigned = errors.New("day already assigned to another schedule block")

// ErrBlockNotFound is returned when an operation targets a block id that is
// no longer present.
var ErrBlockNotFound = errors.New("schedule block not found")

// DaySet is a set of weekdays stored as a bitmask (bit n = time.Weekday n).
type DaySet uint8

// Days builds a DaySet from the given weekdays.
func Days(days ...time.Weekday) DaySet {
	var s DaySet
	for _, d := range days {
		s = s.Add(d)
	}
	return s
}

func (s DaySet) Has(d time.Weekday) bool      { return s&(1<<uint(d)) != 0 }
func (s DaySet) Add(d time.Weekday) DaySet    { return s | 1<<uint(d) }
func (s DaySet) Remove(d time.Weekday) DaySet { return s &^ (1 << uint(d)) }
func (s DaySet) IsEmpty() bool                { return s == 0 }

// Subtract removes every day of other from s.
func (s DaySet) Subtract(other DaySet) DaySet { return s &^ other }

// Intersects reports whether the two sets share any day.
func (s DaySet) Intersects(other DaySet) bool { return s&other != 0 }

// List returns the contained weekdays in Sunday-first order.
func (s DaySet) List() []time.Weekday {
	var days []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// Clock is a wall-clock time of day, 24h.
type Clock struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (c Clock) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// Block is one operating-hours entry: a set of weekdays sharing a single
// open/close window. Across a Config a weekday belongs to at most one block.
type Block struct {
	ID    int64  `json:"id"`
	Days  DaySet `json:"days"`
	Start Clock  `json:"start"`
	End   Clock  `json:"end"`
}

// HolidayMode selects how regular holidays recur.
type HolidayMode string

const (
	HolidayNone    HolidayMode = "none"
	HolidayWeekly  HolidayMode = "weekly"
	HolidayMonthly HolidayMode = "monthly"
)

// WeekOrdinal is a week-of-month selector for monthly holidays, 1 through 5.
// WeekEvery matches every occurrence of the weekday in a month.
type WeekOrdinal int

const WeekEvery WeekOrdinal = 0

// WeekSet is an ordered set of week-of-month ordinals.
type WeekSet map[WeekOrdinal]struct{}

// Weeks builds a WeekSet from the given ordinals.
func Weeks(weeks ...WeekOrdinal) WeekSet {
	s := make(WeekSet, len(weeks))
	for _, w := range weeks {
		s[w] = struct{}{}
	}
	return s
}

func (s WeekSet) Has(w WeekOrdinal) bool {
	_, ok := s[w]
	return ok
}

func (s WeekSet) IsEmpty() bool { return len(s) == 0 }

func (s WeekSet) clone() WeekSet {
	if s == nil {
		return nil
	}
	out := make(WeekSet, len(s))
	for w := range s {
		out[w] = struct{}{}
	}
	return out
}

// RegularHoliday is the recurring closure rule. Switching modes keeps the
// previously entered day and week sets so the owner can flip between modes
// without re-entering them; only the active mode's sets are committed.
type RegularHoliday struct {
	Mode        HolidayMode `json:"mode"`
	WeeklyDays  DaySet      `json:"weekly_days"`
	MonthlyWeek WeekSet     `json:"monthly_weeks"`
	MonthlyDays DaySet      `json:"monthly_days"`
}

// TemporaryHoliday is a one-off inclusive closure range.
type TemporaryHoliday struct {
	Enabled bool      `json:"enabled"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// Config is the full schedule/holiday state. It is a value: mutating
// operations return a new Config and leave the receiver untouched.
type Config struct {
	Regular   RegularHoliday   `json:"regular_holiday"`
	Temporary TemporaryHoliday `json:"temporary_holiday"`
	Blocks    []Block          `json:"blocks"`

	nextBlockID int64
}

// DefaultWindow is the time window a freshly added block starts with.
var DefaultWindow = struct{ Start, End Clock }{Clock{9, 0}, Clock{21, 0}}

// FromSnapshot rebuilds a Config from backend data. The internal block id
// counter resumes past the highest id present so locally added blocks do not
// collide with hydrated ones.
func FromSnapshot(regular RegularHoliday, temporary TemporaryHoliday, blocks []Block) Config {
	c := Config{
		Regular:   regular,
		Temporary: temporary,
		Blocks:    make([]Block, len(blocks)),
	}
	copy(c.Blocks, blocks)
	c.Regular.MonthlyWeek = regular.MonthlyWeek.clone()
	for _, b := range c.Blocks {
		if b.ID > c.nextBlockID {
			c.nextBlockID = b.ID
		}
	}
	return c
}

func (c Config) clone() Config {
	out := c
	out.Blocks = make([]Block, len(c.Blocks))
	copy(out.Blocks, c.Blocks)
	out.Regular.MonthlyWeek = c.Regular.MonthlyWeek.clone()
	return out
}

// SetRegularHolidayMode selects the holiday recurrence. Selecting the mode
// that is already active clears it back to none.
func (c Config) SetRegularHolidayMode(mode HolidayMode) Config {
	out := c.clone()
	if c.Regular.Mode == mode {
		out.Regular.Mode = HolidayNone
	} else {
		out.Regular.Mode = mode
	}
	return out
}

// SetWeeklyHolidayDays replaces the weekly holiday day set and strips every
// newly designated day from all schedule blocks in the same transition.
// Holiday designation wins over an existing schedule assignment.
func (c Config) SetWeeklyHolidayDays(days DaySet) Config {
	out := c.clone()
	out.Regular.WeeklyDays = days
	for i := range out.Blocks {
		out.Blocks[i].Days = out.Blocks[i].Days.Subtract(days)
	}
	return out
}

// SetMonthlyHolidayWeeks replaces the week-of-month set for monthly holidays.
func (c Config) SetMonthlyHolidayWeeks(weeks WeekSet) Config {
	out := c.clone()
	out.Regular.MonthlyWeek = weeks.clone()
	return out
}

// SetMonthlyHolidayDays replaces the weekday set for monthly holidays.
// Monthly holidays are date occurrences, not weekday reservations, so no
// days are removed from schedule blocks here.
func (c Config) SetMonthlyHolidayDays(days DaySet) Config {
	out := c.clone()
	out.Regular.MonthlyDays = days
	return out
}

// ToggleTemporaryHoliday flips the temporary closure on or off. The entered
// range survives a toggle-off so re-enabling restores it.
func (c Config) ToggleTemporaryHoliday() Config {
	out := c.clone()
	out.Temporary.Enabled = !c.Temporary.Enabled
	return out
}

// SetTemporaryHolidayRange sets the inclusive closure range.
func (c Config) SetTemporaryHolidayRange(start, end time.Time) Config {
	out := c.clone()
	out.Temporary.Start = start
	out.Temporary.End = end
	return out
}

// AddBlock appends a new schedule block with a fresh id and the default time
// window. No weekday is pre-assigned.
func (c Config) AddBlock() Config {
	out := c.clone()
	out.nextBlockID++
	out.Blocks = append(out.Blocks, Block{
		ID:    out.nextBlockID,
		Start: DefaultWindow.Start,
		End:   DefaultWindow.End,
	})
	return out
}

// SetScheduleDay toggles day on the identified block. Toggling on is rejected
// with ErrDayAssigned when any other block already holds the day; the state
// is returned unchanged in that case.
func (c Config) SetScheduleDay(blockID int64, day time.Weekday) (Config, error) {
	idx := c.blockIndex(blockID)
	if idx < 0 {
		return c, ErrBlockNotFound
	}

	if !c.Blocks[idx].Days.Has(day) {
		for i, b := range c.Blocks {
			if i != idx && b.Days.Has(day) {
				return c, ErrDayAssigned
			}
		}
	}

	out := c.clone()
	if out.Blocks[idx].Days.Has(day) {
		out.Blocks[idx].Days = out.Blocks[idx].Days.Remove(day)
	} else {
		out.Blocks[idx].Days = out.Blocks[idx].Days.Add(day)
	}
	return out, nil
}

// SetScheduleTime replaces the identified block's open/close window.
func (c Config) SetScheduleTime(blockID int64, start, end Clock) (Config, error) {
	idx := c.blockIndex(blockID)
	if idx < 0 {
		return c, ErrBlockNotFound
	}
	out := c.clone()
	out.Blocks[idx].Start = start
	out.Blocks[idx].End = end
	return out, nil
}

// RemoveBlock deletes the identified block. A stale id is a no-op.
func (c Config) RemoveBlock(blockID int64) Config {
	idx := c.blockIndex(blockID)
	if idx < 0 {
		return c
	}
	out := c.clone()
	out.Blocks = append(out.Blocks[:idx], out.Blocks[idx+1:]...)
	return out
}

func (c Config) blockIndex(blockID int64) int {
	for i, b := range c.Blocks {
		if b.ID == blockID {
			return i
		}
	}
	return -1
}

// IsSaveEligible reports whether the schedule part of the configuration is
// complete enough to commit: at least one block with every block carrying at
// least one day, a non-empty day set for weekly holidays, non-empty week and
// day sets for monthly holidays, and both dates when the temporary holiday
// is enabled.
func (c Config) IsSaveEligible() bool {
	if len(c.Blocks) == 0 {
		return false
	}
	for _, b := range c.Blocks {
		if b.Days.IsEmpty() {
			return false
		}
	}

	switch c.Regular.Mode {
	case HolidayWeekly:
		if c.Regular.WeeklyDays.IsEmpty() {
			return false
		}
	case HolidayMonthly:
		if c.Regular.MonthlyWeek.IsEmpty() || c.Regular.MonthlyDays.IsEmpty() {
			return false
		}
	}

	if c.Temporary.Enabled && (c.Temporary.Start.IsZero() || c.Temporary.End.IsZero()) {
		return false
	}
	return true
}
