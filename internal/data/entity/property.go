package entity

import (
	"github.com/google/uuid"
)

// Property is the root entity; bookings, cleaning tasks, AI edits and pricing samples hang off it.
type Property struct {
	Base
	OwnerID         uuid.UUID `db:"owner_id" json:"owner_id"`
	NameEn          string    `db:"name_en" json:"name_en"`
	NameAr          string    `db:"name_ar" json:"name_ar"`
	Address         string    `db:"address" json:"address"`
	City            string    `db:"city" json:"city"`
	AirbnbListingID *string   `db:"airbnb_listing_id" json:"airbnb_listing_id,omitempty"`
	LockDeviceID    *string   `db:"tuya_device_id" json:"tuya_device_id,omitempty"`
	CalendarURL     *string   `db:"calendar_url" json:"calendar_url,omitempty"`
	CurrentRank     int       `db:"current_rank" json:"current_rank"`
	TargetRank      int       `db:"target_rank" json:"target_rank"`
}

func (p *Property) HasLockDevice() bool {
	return p != nil && p.LockDeviceID != nil && *p.LockDeviceID != ""
}
