package dto

// CreatePropertyRequest registers a new managed property.
type CreatePropertyRequest struct {
	Name string `json:"name"`
}

// PropertySummaryResponse renders one property with its revenue
// figures, each formatted to two decimals at the boundary.
type PropertySummaryResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Revenue          string `json:"revenue"`
	RevenueOneMonth  string `json:"revenue_1m"`
	RevenueThreeMths string `json:"revenue_3m"`
	RevenueSixMonths string `json:"revenue_6m"`
	RevenueOneYear   string `json:"revenue_1y"`
}

// OverviewResponse carries the dashboard headline figures.
type OverviewResponse struct {
	TotalRevenue  string `json:"total_revenue"`
	CitationCount int    `json:"citation_count"`
	PropertyCount int    `json:"property_count"`
}
