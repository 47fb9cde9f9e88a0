package dto

// CitationSearchRequest is the public lookup payload.
type CitationSearchRequest struct {
	CitationID string `json:"citation_id"`
	LastName   string `json:"last_name"`
}

// CitationResponse renders one citation. Amount is formatted to two
// decimals here, at the presentation boundary.
type CitationResponse struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Date           string `json:"date"`
	Amount         string `json:"amount"`
	Status         string `json:"status"`
	Violation      string `json:"violation"`
	Location       string `json:"location"`
	PetDescription string `json:"pet_description"`
	PropertyID     string `json:"property_id"`
}

// CitationDetailResponse adds the derived overdue figure for the
// public search result.
type CitationDetailResponse struct {
	CitationResponse
	DaysOverdue int `json:"days_overdue"`
}

// CreateCitationRequest is the admin issuing payload.
type CreateCitationRequest struct {
	CitationID     string  `json:"citation_id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Date           string  `json:"date"`
	Amount         float64 `json:"amount"`
	Status         string  `json:"status"`
	Violation      string  `json:"violation"`
	Location       string  `json:"location"`
	PetDescription string  `json:"pet_description"`
	PropertyID     string  `json:"property_id"`
}
