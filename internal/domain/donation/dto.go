package donation

// CreateDonationRequest represents donation recording payload
type CreateDonationRequest struct {
	DonorName string  `json:"donor_name" validate:"max=100"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Message   string  `json:"message" validate:"max=500"`
}
