package models

type SearchResponse struct {
	TotalCost          int           `json:"total_cost"`
	TotalCostFormatted string        `json:"total_cost_formatted,omitempty"`
	Segments           []FareSegment `json:"segments"`
	RoutePattern       string        `json:"route_pattern"`
	CheaperThanDirect  bool          `json:"cheaper_than_direct"`
	DirectCost         *int          `json:"direct_cost,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
