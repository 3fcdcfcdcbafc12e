package request

// Page sizes for the operator lists (AI edits, cleaning tasks).
const (
	DefaultPerPage = 10
	MaxPerPage     = 50
)

// PaginatedRequest is decoded from ?page=&per_page= query parameters.
type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=50"`
}

func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

// Limit clamps PerPage into [1, MaxPerPage], defaulting when unset.
func (p PaginatedRequest) Limit() int {
	switch {
	case p.PerPage < 1:
		return DefaultPerPage
	case p.PerPage > MaxPerPage:
		return MaxPerPage
	default:
		return p.PerPage
	}
}
