package request

type ListAIEditsRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=pending approved rejected applied"`
}

type ListCleaningTasksRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=pending assigned in_progress completed verified"`
}
