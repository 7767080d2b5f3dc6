package types

// RetailerRecord is one retailer's campaign performance snapshot.
type RetailerRecord struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Region           string  `json:"region"`
	Posts            int64   `json:"posts"`
	Engagement       int64   `json:"engagement"`
	Reach            int64   `json:"reach"`
	EngagementRate   float64 `json:"engagementRate"`
	Followers        int64   `json:"followers"`
	PostingFrequency float64 `json:"postingFrequency"`
	Growth           float64 `json:"growth"`
	TopPlatform      string  `json:"topPlatform"`
}

type ScoredRetailer struct {
	RetailerRecord
	Score int  `json:"score"` // 0-100
	Tier  Tier `json:"tier"`
}

type RegionalAggregate struct {
	Region         string  `json:"region"`
	Retailers      int     `json:"retailers"`
	Posts          int64   `json:"posts"`
	Engagement     int64   `json:"engagement"`
	Reach          int64   `json:"reach"`
	EngagementRate float64 `json:"engagementRate"`
	Growth         float64 `json:"growth"`
	TopRetailer    string  `json:"topRetailer"`
	Performance    int     `json:"performance"`
	Tier           Tier    `json:"tier"`
}

type PlatformPerformance struct {
	Platform       string  `json:"platform"`
	Posts          int64   `json:"posts"`
	Engagement     int64   `json:"engagement"`
	Reach          int64   `json:"reach"`
	Impressions    int64   `json:"impressions"`
	EngagementRate float64 `json:"engagementRate"`
	Growth         float64 `json:"growth"`
	TopContentType string  `json:"topContentType"`
}

// PlatformComparison holds a platform's ratios against the whole platform set.
type PlatformComparison struct {
	Platform               string  `json:"platform"`
	EngagementShare        float64 `json:"engagementShare"`
	ReachShare             float64 `json:"reachShare"`
	RelativeEngagementRate float64 `json:"relativeEngagementRate"`
	ImpressionRate         float64 `json:"impressionRate"`
}

// Tier is the categorical performance label shown next to a retailer or region.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierAverage   Tier = "average"
	TierPoor      Tier = "poor"
)
