package request

type StartCheckInRequest struct {
	BookingReference string `json:"booking_reference" validate:"required,max=128"`
}

type ContractRequest struct {
	Accepted bool `json:"accepted"`
}
