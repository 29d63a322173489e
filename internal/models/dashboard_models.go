package models

// DashboardSummary aggregates marketplace-wide counts for the admin panel.
// Every field comes from an independent read; the service issues them
// concurrently and joins the results.
type DashboardSummary struct {
	UsersByRole           map[string]int `json:"users_by_role"`
	ConsultationsByStatus map[string]int `json:"consultations_by_status"`
	TotalOrders           int            `json:"total_orders"`
	TotalReviews          int            `json:"total_reviews"`
	TotalProducts         int            `json:"total_products"`
	TotalBlogPosts        int            `json:"total_blog_posts"`
}
