package request

type TriggerCleaningRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
	Trigger   string `json:"trigger" validate:"required,max=64"`
}

type GeneratePINRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
}
