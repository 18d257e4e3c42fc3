package models

type SellerStats struct {
	TotalOrders    int64 `json:"totalOrders"`
	TotalRevenue   Money `json:"totalRevenue"`
	ItemsSold      int64 `json:"itemsSold"`
	ActiveProducts int64 `json:"activeProducts"`
}

type AdminStats struct {
	TotalRevenue  Money `json:"totalRevenue"`
	TotalOrders   int64 `json:"totalOrders"`
	TotalUsers    int64 `json:"totalUsers"`
	TotalProducts int64 `json:"totalProducts"`
	ActiveSellers int64 `json:"activeSellers"`
}
