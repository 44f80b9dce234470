package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-acaishop/models"
)

const (
	slotLeadTime = 30 * time.Minute
	slotStep     = 15 * time.Minute
)

// GenerateSlots enumerates the valid "HH:MM" pickup/delivery slots for
// today: from max(opening start, now + 30min) rounded up to the next
// 15-minute boundary, in 15-minute steps up to closing time inclusive.
// Closed days produce no slots. The slice is recomputed fresh on every
// call.
func GenerateSlots(hours models.DayOpeningHours, now time.Time) []string {
	if !hours.IsOpen {
		return nil
	}
	startH, startM, ok := parseClock(hours.Start)
	if !ok {
		return nil
	}
	endH, endM, ok := parseClock(hours.End)
	if !ok {
		return nil
	}

	start := time.Date(now.Year(), now.Month(), now.Day(), startH, startM, 0, 0, now.Location())
	end := time.Date(now.Year(), now.Month(), now.Day(), endH, endM, 0, 0, now.Location())

	candidate := now.Add(slotLeadTime)
	if candidate.Before(start) {
		candidate = start
	}
	// align up to the next quarter hour, keeping the candidate's own
	// date: a lead time that crosses midnight lands past today's
	// closing time and yields no slots
	minutes := candidate.Hour()*60 + candidate.Minute()
	if candidate.Second() > 0 || candidate.Nanosecond() > 0 {
		minutes++
	}
	if rem := minutes % 15; rem != 0 {
		minutes += 15 - rem
	}
	slot := time.Date(candidate.Year(), candidate.Month(), candidate.Day(), 0, minutes, 0, 0, candidate.Location())

	var slots []string
	for !slot.After(end) {
		slots = append(slots, fmt.Sprintf("%02d:%02d", slot.Hour(), slot.Minute()))
		slot = slot.Add(slotStep)
	}
	return slots
}

// ShopOpen reports whether the shop is currently taking orders and the
// opening window for today. A temporary closure overrides the weekly
// schedule.
func ShopOpen(settings models.ShopSettings, now time.Time) (bool, models.DayOpeningHours) {
	if settings.IsTemporarilyClosed {
		return false, models.DayOpeningHours{}
	}
	hours := settings.OpeningHours.HoursFor(int(now.Weekday()))
	if !hours.IsOpen {
		return false, hours
	}
	startH, startM, okStart := parseClock(hours.Start)
	endH, endM, okEnd := parseClock(hours.End)
	if !okStart || !okEnd {
		return false, hours
	}
	minutes := now.Hour()*60 + now.Minute()
	return minutes >= startH*60+startM && minutes < endH*60+endM, hours
}

func parseClock(s string) (h, m int, ok bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}
