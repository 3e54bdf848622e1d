package cagnotte

// CreateCagnotteRequest represents campaign creation payload
type CreateCagnotteRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=150"`
	Description string  `json:"description" validate:"required,min=10,max=5000"`
	GoalAmount  float64 `json:"goal_amount" validate:"required,gt=0"`
}

// UpdateCagnotteRequest represents campaign update payload (owner, draft/pending only)
type UpdateCagnotteRequest struct {
	Title       string  `json:"title" validate:"omitempty,min=3,max=150"`
	Description string  `json:"description" validate:"omitempty,min=10,max=5000"`
	GoalAmount  float64 `json:"goal_amount" validate:"omitempty,gt=0"`
}

// ListFilter filters campaign listings
type ListFilter struct {
	Status    Status
	CreatorID string
	Page      int
	Limit     int
}
