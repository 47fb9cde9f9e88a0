package handlers

import (
	"fmt"
	"time"

	"github.com/poopticket/citation-service/internal/api/dto"
	"github.com/poopticket/citation-service/internal/domain"
	"github.com/poopticket/citation-service/internal/service"
)

// money formats currency for display. Rounding lives here, at the
// presentation boundary; services hand over unrounded sums.
func money(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

func citationResponse(citation *domain.Citation) dto.CitationResponse {
	return dto.CitationResponse{
		ID:             citation.ID,
		FirstName:      citation.FirstName,
		LastName:       citation.LastName,
		Date:           citation.Date.Format(time.RFC3339),
		Amount:         money(citation.Amount),
		Status:         string(citation.Status),
		Violation:      citation.Violation,
		Location:       citation.Location,
		PetDescription: citation.PetDescription,
		PropertyID:     citation.PropertyID,
	}
}

func citationDetailResponse(result *service.SearchResult) dto.CitationDetailResponse {
	return dto.CitationDetailResponse{
		CitationResponse: citationResponse(&result.Citation),
		DaysOverdue:      result.DaysOverdue,
	}
}

func userResponse(user *domain.User) dto.UserResponse {
	assigned := user.AssignedProperties
	if assigned == nil {
		assigned = []string{}
	}
	return dto.UserResponse{
		ID:                 user.ID,
		Email:              user.Email,
		Role:               string(user.Role),
		FirstName:          user.FirstName,
		LastName:           user.LastName,
		AssignedProperties: assigned,
		RevenueGenerated:   money(user.RevenueGenerated),
	}
}

func propertySummaryResponse(summary service.PropertySummary) dto.PropertySummaryResponse {
	return dto.PropertySummaryResponse{
		ID:               summary.Property.ID,
		Name:             summary.Property.Name,
		Revenue:          money(summary.Revenue),
		RevenueOneMonth:  money(summary.RevenueOneMonth),
		RevenueThreeMths: money(summary.RevenueThree),
		RevenueSixMonths: money(summary.RevenueSix),
		RevenueOneYear:   money(summary.RevenueYear),
	}
}
