package service

import (
	"time"

	"github.com/poopticket/citation-service/internal/domain"
)

// overdueGraceDays is the grace period before an unpaid citation starts
// accruing overdue days.
const overdueGraceDays = 30

// Standard revenue windows, in months, computed for every property
// summary alongside the all-time total.
var revenueWindows = [4]int{1, 3, 6, 12}

// RevenueService computes derived figures over citation sets. All sums
// are returned unrounded; display rounding happens at the presentation
// layer so repeated aggregation never compounds rounding error.
type RevenueService struct{}

// NewRevenueService builds the aggregation engine.
func NewRevenueService() *RevenueService {
	return &RevenueService{}
}

// PropertySummary carries the five revenue figures for one property.
type PropertySummary struct {
	Property        domain.Property
	Revenue         float64
	RevenueOneMonth float64
	RevenueThree    float64
	RevenueSix      float64
	RevenueYear     float64
}

// DaysOverdue returns how many whole days past the grace period a
// citation is. Paid citations are resolved and Warning citations carry
// no fine, so both always yield zero regardless of date.
func (s *RevenueService) DaysOverdue(citation domain.Citation, now time.Time) int {
	switch citation.Status {
	case domain.CitationStatusPaid, domain.CitationStatusWarning:
		return 0
	case domain.CitationStatusUnpaid, domain.CitationStatusOverdue:
	default:
		return 0
	}
	elapsed := int(now.Sub(citation.Date) / (24 * time.Hour))
	if elapsed <= overdueGraceDays {
		return 0
	}
	return elapsed - overdueGraceDays
}

// RevenueForProperty sums paid citation amounts for one property.
// windowMonths restricts the sum to citations dated strictly after
// now minus that many months; zero or negative means all time.
func (s *RevenueService) RevenueForProperty(propertyID string, citations []domain.Citation, now time.Time, windowMonths int) float64 {
	var cutoff time.Time
	if windowMonths > 0 {
		cutoff = now.AddDate(0, -windowMonths, 0)
	}

	var total float64
	for _, citation := range citations {
		if citation.PropertyID != propertyID || citation.Status != domain.CitationStatusPaid {
			continue
		}
		if windowMonths > 0 && !citation.Date.After(cutoff) {
			continue
		}
		total += citation.Amount
	}
	return total
}

// TotalRevenue sums every paid citation with no property or time filter.
func (s *RevenueService) TotalRevenue(citations []domain.Citation) float64 {
	var total float64
	for _, citation := range citations {
		if citation.Status == domain.CitationStatusPaid {
			total += citation.Amount
		}
	}
	return total
}

// SummarizeProperty computes the all-time total and each standard
// window for one property. Each figure is an independent filter and sum
// pass over the citation set.
func (s *RevenueService) SummarizeProperty(property domain.Property, citations []domain.Citation, now time.Time) PropertySummary {
	summary := PropertySummary{
		Property: property,
		Revenue:  s.RevenueForProperty(property.ID, citations, now, 0),
	}
	for _, months := range revenueWindows {
		value := s.RevenueForProperty(property.ID, citations, now, months)
		switch months {
		case 1:
			summary.RevenueOneMonth = value
		case 3:
			summary.RevenueThree = value
		case 6:
			summary.RevenueSix = value
		case 12:
			summary.RevenueYear = value
		}
	}
	return summary
}

// RevenueGeneratedFor derives a user's revenue figure: for managers,
// the all-time paid total across their assigned properties; other roles
// generate none.
func (s *RevenueService) RevenueGeneratedFor(user domain.User, citations []domain.Citation, now time.Time) float64 {
	switch user.Role {
	case domain.RoleManager:
		var total float64
		for _, propertyID := range user.AssignedProperties {
			total += s.RevenueForProperty(propertyID, citations, now, 0)
		}
		return total
	case domain.RoleSuperAdmin, domain.RoleRegularUser:
		return 0
	default:
		return 0
	}
}
