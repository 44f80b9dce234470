package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DayOpeningHours holds one weekday's opening window ("HH:MM" strings)
type DayOpeningHours struct {
	IsOpen bool   `bson:"is_open" json:"is_open"`
	Start  string `bson:"start" json:"start"`
	End    string `bson:"end" json:"end"`
}

// OpeningHours holds the shop's weekly schedule
type OpeningHours struct {
	Monday    DayOpeningHours `bson:"monday" json:"monday"`
	Tuesday   DayOpeningHours `bson:"tuesday" json:"tuesday"`
	Wednesday DayOpeningHours `bson:"wednesday" json:"wednesday"`
	Thursday  DayOpeningHours `bson:"thursday" json:"thursday"`
	Friday    DayOpeningHours `bson:"friday" json:"friday"`
	Saturday  DayOpeningHours `bson:"saturday" json:"saturday"`
	Sunday    DayOpeningHours `bson:"sunday" json:"sunday"`
}

// NeighborhoodFee maps a neighborhood name to its delivery fee
type NeighborhoodFee struct {
	Name string  `bson:"name" json:"name"`
	Fee  float64 `bson:"fee" json:"fee"`
}

// DeliverySettings configures how delivery fees are computed
type DeliverySettings struct {
	Type          string            `bson:"type" json:"type"` // "fixed" or "neighborhood"
	FixedFee      float64           `bson:"fixed_fee" json:"fixed_fee"`
	Neighborhoods []NeighborhoodFee `bson:"neighborhoods" json:"neighborhoods"`
}

// LoyaltyProgram configures point earning and reward redemption
type LoyaltyProgram struct {
	Enabled         bool    `bson:"enabled" json:"enabled"`
	PointsPerReal   float64 `bson:"points_per_real" json:"points_per_real"`
	PointsForReward int     `bson:"points_for_reward" json:"points_for_reward"`
	RewardType      string  `bson:"reward_type" json:"reward_type"` // "fixed" or "free_shipping"
	RewardValue     float64 `bson:"reward_value" json:"reward_value"`
}

// ShopSettings is the single shop configuration document
type ShopSettings struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name                    string             `bson:"name" json:"name"`
	Address                 string             `bson:"address" json:"address"`
	Whatsapp                string             `bson:"whatsapp" json:"whatsapp"`
	NotificationEmail       string             `bson:"notification_email" json:"notification_email"`
	WelcomeMessage          string             `bson:"welcome_message" json:"welcome_message"`
	WaitTime                string             `bson:"wait_time" json:"wait_time"`
	OpeningHours            OpeningHours       `bson:"opening_hours" json:"opening_hours"`
	Delivery                DeliverySettings   `bson:"delivery" json:"delivery"`
	PixKey                  string             `bson:"pix_key" json:"pix_key"`
	LoyaltyProgram          LoyaltyProgram     `bson:"loyalty_program" json:"loyalty_program"`
	IsTemporarilyClosed     bool               `bson:"is_temporarily_closed" json:"is_temporarily_closed"`
	TemporaryClosureMessage string             `bson:"temporary_closure_message" json:"temporary_closure_message"`
	WheelPrizes             []WheelPrize       `bson:"wheel_prizes,omitempty" json:"wheel_prizes,omitempty"`
}

// WheelPrize is one segment of the wheel-of-fortune promotion
type WheelPrize struct {
	Label         string  `bson:"label" json:"label"`
	DiscountType  string  `bson:"discount_type" json:"discount_type"` // "fixed", "percentage" or "free_shipping"
	DiscountValue float64 `bson:"discount_value" json:"discount_value"`
}

// HoursFor returns the opening window for the given weekday (time.Weekday order)
func (oh OpeningHours) HoursFor(weekday int) DayOpeningHours {
	switch weekday {
	case 0:
		return oh.Sunday
	case 1:
		return oh.Monday
	case 2:
		return oh.Tuesday
	case 3:
		return oh.Wednesday
	case 4:
		return oh.Thursday
	case 5:
		return oh.Friday
	default:
		return oh.Saturday
	}
}
