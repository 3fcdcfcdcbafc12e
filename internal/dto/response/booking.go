package response

import (
	"time"

	"azhaboost/internal/data/entity"
)

type BookingCard struct {
	ID               string               `json:"id"`
	BookingReference string               `json:"booking_reference"`
	GuestName        string               `json:"guest_name"`
	PropertyID       string               `json:"property_id"`
	PropertyName     string               `json:"property_name"`
	CheckInDate      string               `json:"check_in_date"`
	CheckOutDate     string               `json:"check_out_date"`
	Status           entity.BookingStatus `json:"status"`
	StatusLabel      string               `json:"status_label"`
}

type PINResponse struct {
	PIN       string    `json:"pin"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CalendarSyncResult struct {
	Properties       int `json:"properties"`
	Synced           int `json:"synced"`
	FailedProperties int `json:"failed_properties"`
}
