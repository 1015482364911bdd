package session

import (
	"fmt"
	"time"

	"tably/internal/backend"
	"tably/internal/gallery"
	"tably/internal/identity"
	"tably/internal/menu"
	"tably/internal/schedule"
)

const wireDate = "2006-01-02"

func scheduleFromWire(info backend.OperationInfo) schedule.Config {
	regular := schedule.RegularHoliday{
		Mode: schedule.HolidayMode(info.RegularHolidays.Mode),
	}
	if regular.Mode == "" {
		regular.Mode = schedule.HolidayNone
	}
	days := daySetFromWire(info.RegularHolidays.Days)
	switch regular.Mode {
	case schedule.HolidayWeekly:
		regular.WeeklyDays = days
	case schedule.HolidayMonthly:
		regular.MonthlyDays = days
	}
	if len(info.RegularHolidays.Weeks) > 0 {
		ordinals := make([]schedule.WeekOrdinal, len(info.RegularHolidays.Weeks))
		for i, w := range info.RegularHolidays.Weeks {
			ordinals[i] = schedule.WeekOrdinal(w)
		}
		regular.MonthlyWeek = schedule.Weeks(ordinals...)
	}

	temporary := schedule.TemporaryHoliday{Enabled: info.TemporaryHolidays.Enabled}
	if t, err := time.Parse(wireDate, info.TemporaryHolidays.StartDate); err == nil {
		temporary.Start = t
	}
	if t, err := time.Parse(wireDate, info.TemporaryHolidays.EndDate); err == nil {
		temporary.End = t
	}

	blocks := make([]schedule.Block, 0, len(info.OpeningHours))
	for _, oh := range info.OpeningHours {
		blocks = append(blocks, schedule.Block{
			ID:    oh.ID,
			Days:  daySetFromWire(oh.Days),
			Start: clockFromWire(oh.StartTime),
			End:   clockFromWire(oh.EndTime),
		})
	}
	return schedule.FromSnapshot(regular, temporary, blocks)
}

func scheduleToWire(c schedule.Config) backend.OperationInfo {
	info := backend.OperationInfo{
		RegularHolidays: backend.RegularHolidays{Mode: string(c.Regular.Mode)},
	}
	switch c.Regular.Mode {
	case schedule.HolidayWeekly:
		info.RegularHolidays.Days = daySetToWire(c.Regular.WeeklyDays)
	case schedule.HolidayMonthly:
		info.RegularHolidays.Days = daySetToWire(c.Regular.MonthlyDays)
		for w := schedule.WeekEvery; w <= 5; w++ {
			if c.Regular.MonthlyWeek.Has(w) {
				info.RegularHolidays.Weeks = append(info.RegularHolidays.Weeks, int(w))
			}
		}
	}

	info.TemporaryHolidays.Enabled = c.Temporary.Enabled
	if c.Temporary.Enabled {
		info.TemporaryHolidays.StartDate = c.Temporary.Start.Format(wireDate)
		info.TemporaryHolidays.EndDate = c.Temporary.End.Format(wireDate)
	}

	for _, b := range c.Blocks {
		info.OpeningHours = append(info.OpeningHours, backend.OpeningHours{
			ID:        b.ID,
			Days:      daySetToWire(b.Days),
			StartTime: b.Start.String(),
			EndTime:   b.End.String(),
		})
	}
	return info
}

func daySetFromWire(days []int) schedule.DaySet {
	var s schedule.DaySet
	for _, d := range days {
		if d >= 0 && d <= 6 {
			s = s.Add(time.Weekday(d))
		}
	}
	return s
}

func daySetToWire(s schedule.DaySet) []int {
	var days []int
	for _, d := range s.List() {
		days = append(days, int(d))
	}
	return days
}

func clockFromWire(hhmm string) schedule.Clock {
	var c schedule.Clock
	_, _ = fmt.Sscanf(hhmm, "%d:%d", &c.Hour, &c.Minute)
	return c
}

func catalogFromWire(categories []backend.MenuCategory) menu.Catalog {
	out := make([]menu.Category, 0, len(categories))
	for _, cat := range categories {
		items := make([]menu.Item, 0, len(cat.Items))
		for _, it := range cat.Items {
			item := menu.Item{
				ID:    identity.Confirmed(it.ID),
				Name:  it.Name,
				Price: it.Price,
			}
			if it.ImageURL != "" {
				item.Image = &menu.ImageRef{URI: it.ImageURL}
			}
			items = append(items, item)
		}
		out = append(out, menu.Category{
			ID:    identity.Confirmed(cat.ID),
			Name:  cat.Name,
			Items: items,
		})
	}
	return menu.FromSnapshot(out)
}

func imagesFromWire(images []backend.StoreImage) gallery.Collection {
	out := make([]gallery.Image, 0, len(images))
	for _, img := range images {
		out = append(out, gallery.Image{
			ID:     identity.Confirmed(img.ID),
			Source: img.URL,
			IsMain: img.IsMain,
		})
	}
	return gallery.FromSnapshot(out)
}

func imagesToWire(c gallery.Collection) []backend.StoreImageUpdate {
	out := make([]backend.StoreImageUpdate, 0, len(c.Images))
	for _, img := range c.Images {
		update := backend.StoreImageUpdate{IsMain: img.IsMain}
		if serverID, ok := img.ID.Server(); ok {
			id := serverID
			update.ID = &id
		} else {
			update.Source = img.Source
		}
		out = append(out, update)
	}
	return out
}
