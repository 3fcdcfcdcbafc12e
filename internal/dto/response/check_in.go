package response

import "time"

type CheckInStepInfo struct {
	Step   int    `json:"step"`
	Key    string `json:"key"`
	Title  string `json:"title"`
	Active bool   `json:"active"`
	Done   bool   `json:"done"`
}

type CheckInBooking struct {
	BookingReference string `json:"booking_reference"`
	GuestName        string `json:"guest_name"`
	PropertyName     string `json:"property_name"`
	CheckInDate      string `json:"check_in_date"`
	CheckOutDate     string `json:"check_out_date"`
	Deposit          string `json:"deposit"`
}

type CheckInResponse struct {
	Step             int               `json:"step"`
	Steps            []CheckInStepInfo `json:"steps"`
	Booking          *CheckInBooking   `json:"booking,omitempty"`
	ContractAccepted bool              `json:"contract_accepted"`
	DepositPaid      bool              `json:"deposit_paid"`
	PIN              string            `json:"pin,omitempty"`
	PINExpiresAt     *time.Time        `json:"pin_expires_at,omitempty"`
	Completed        bool              `json:"completed"`
	CanGoBack        bool              `json:"can_go_back"`
	CanGoNext        bool              `json:"can_go_next"`
}
