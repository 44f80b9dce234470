package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-acaishop/models"
)

func slotClock(hour, minute int) time.Time {
	return time.Date(2026, 8, 29, hour, minute, 0, 0, time.Local)
}

func TestGenerateSlotsClosedDay(t *testing.T) {
	hours := models.DayOpeningHours{IsOpen: false, Start: "10:00", End: "22:00"}
	assert.Empty(t, GenerateSlots(hours, slotClock(12, 0)))
}

func TestGenerateSlotsBeforeOpening(t *testing.T) {
	hours := models.DayOpeningHours{IsOpen: true, Start: "10:00", End: "11:00"}
	slots := GenerateSlots(hours, slotClock(8, 0))
	assert.Equal(t, []string{"10:00", "10:15", "10:30", "10:45", "11:00"}, slots)
}

func TestGenerateSlotsLeadTimeAndAlignment(t *testing.T) {
	hours := models.DayOpeningHours{IsOpen: true, Start: "10:00", End: "12:00"}

	// 10:10 + 30min lead = 10:40, rounded up to 10:45
	slots := GenerateSlots(hours, slotClock(10, 10))
	assert.Equal(t, []string{"10:45", "11:00", "11:15", "11:30", "11:45", "12:00"}, slots)

	// already on a boundary: 10:15 + 30min = 10:45, no rounding
	slots = GenerateSlots(hours, slotClock(10, 15))
	assert.Equal(t, "10:45", slots[0])
}

func TestGenerateSlotsClosingInclusive(t *testing.T) {
	hours := models.DayOpeningHours{IsOpen: true, Start: "10:00", End: "12:00"}
	// 11:20 + 30min = 11:50, rounded up to the 12:00 closing slot itself
	slots := GenerateSlots(hours, slotClock(11, 20))
	assert.Equal(t, []string{"12:00"}, slots)
}

func TestGenerateSlotsPastClosing(t *testing.T) {
	hours := models.DayOpeningHours{IsOpen: true, Start: "10:00", End: "12:00"}
	assert.Empty(t, GenerateSlots(hours, slotClock(11, 45)))
}

func TestGenerateSlotsLeadTimeCrossesMidnight(t *testing.T) {
	hours := models.DayOpeningHours{IsOpen: true, Start: "10:00", End: "23:59"}

	// 23:45 + 30min lands on the next day, which has no slots today
	assert.Empty(t, GenerateSlots(hours, slotClock(23, 45)))
	// 23:20 + 30min = 23:50 aligns up to midnight, also past closing
	assert.Empty(t, GenerateSlots(hours, slotClock(23, 20)))
}

func TestGenerateSlotsAlignsUnalignedOpening(t *testing.T) {
	hours := models.DayOpeningHours{IsOpen: true, Start: "10:05", End: "10:50"}
	slots := GenerateSlots(hours, slotClock(8, 0))
	assert.Equal(t, []string{"10:15", "10:30", "10:45"}, slots)
}

func TestShopOpen(t *testing.T) {
	settings := models.ShopSettings{
		OpeningHours: models.OpeningHours{
			Saturday: models.DayOpeningHours{IsOpen: true, Start: "10:00", End: "22:00"},
		},
	}

	// 2026-08-29 is a Saturday
	open, hours := ShopOpen(settings, slotClock(12, 0))
	assert.True(t, open)
	assert.Equal(t, "10:00", hours.Start)

	open, _ = ShopOpen(settings, slotClock(9, 59))
	assert.False(t, open)

	// closing minute is exclusive for walk-in ordering
	open, _ = ShopOpen(settings, slotClock(22, 0))
	assert.False(t, open)

	settings.IsTemporarilyClosed = true
	open, _ = ShopOpen(settings, slotClock(12, 0))
	assert.False(t, open)
}
