package types

// CampaignKind selects which campaign listing is requested.
type CampaignKind string

const (
	BrandCampaigns    CampaignKind = "brand"
	RetailerCampaigns CampaignKind = "retailer"
)

type Campaign struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Brand     string   `json:"brand"`
	Retailer  string   `json:"retailer,omitempty"`
	Status    string   `json:"status"`
	Platforms []string `json:"platforms"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Budget    float64  `json:"budget"`
	Posts     int64    `json:"posts"`
}

// --------------------------------------------
// Platform metrics payload
// --------------------------------------------
type PlatformMetrics struct {
	Overview   MetricsOverview `json:"overview"`
	TopPosts   []TopPost       `json:"topPosts"`
	Engagement []DailyMetric   `json:"engagement"`
}

type MetricsOverview struct {
	Platform       string  `json:"platform"`
	TotalPosts     int64   `json:"totalPosts"`
	TotalReach     int64   `json:"totalReach"`
	Impressions    int64   `json:"impressions"`
	Engagement     int64   `json:"engagement"`
	EngagementRate float64 `json:"engagementRate"`
	Followers      int64   `json:"followers"`
}

type TopPost struct {
	ID          string  `json:"id"`
	Retailer    string  `json:"retailer"`
	ContentType string  `json:"contentType"`
	Caption     string  `json:"caption"`
	Engagement  int64   `json:"engagement"`
	Reach       int64   `json:"reach"`
	Rate        float64 `json:"engagementRate"`
	PostedAt    string  `json:"postedAt"`
}

type DailyMetric struct {
	Date        string `json:"date"`
	Likes       int64  `json:"likes"`
	Comments    int64  `json:"comments"`
	Shares      int64  `json:"shares"`
	Impressions int64  `json:"impressions"`
}

// --------------------------------------------
// Wire envelope, shared by upstream and served endpoints
// --------------------------------------------
type Envelope[T any] struct {
	Success   bool       `json:"success"`
	Data      T          `json:"data,omitempty"`
	Campaigns []Campaign `json:"campaigns,omitempty"`
	Error     string     `json:"error,omitempty"`
}
