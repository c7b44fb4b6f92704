package models

// PageInfo describes a page of results, mirrored in every list response.
type PageInfo struct {
	Results int   `json:"results"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Pages   int   `json:"pages"`
}

// NewPageInfo computes pagination metadata for a page of n results.
func NewPageInfo(n int, total int64, page, limit int) PageInfo {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return PageInfo{Results: n, Total: total, Page: page, Pages: pages}
}

// DashboardStats aggregates counts surfaced on the admin dashboard.
type DashboardStats struct {
	TotalUsers     int64            `json:"totalUsers"`
	UsersByStatus  map[string]int64 `json:"usersByStatus"`
	TotalBookings  int64            `json:"totalBookings"`
	BookingRevenue float64          `json:"bookingRevenue"`
	TotalTests     int64            `json:"totalTests"`
	TestsByType    map[string]int64 `json:"testsByType"`
}
