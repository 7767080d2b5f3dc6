package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"campaign-insights-go/internal/types"
)

// SQLSource runs read-only queries against the retailers, platforms,
// campaigns, top_posts and daily_metrics tables.
type SQLSource struct {
	db     *sql.DB
	driver string
}

// OpenSQL opens and pings a database. driver is "postgres" or "sqlite".
func OpenSQL(ctx context.Context, driver, dsn string) (*SQLSource, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: open: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: ping: %w", driver, err)
	}
	return NewSQLSource(db, driver), nil
}

func NewSQLSource(db *sql.DB, driver string) *SQLSource {
	return &SQLSource{db: db, driver: driver}
}

func (s *SQLSource) Close() error {
	return s.db.Close()
}

// bind rewrites ? placeholders for drivers that number them.
func (s *SQLSource) bind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLSource) FetchRetailers(ctx context.Context) ([]types.RetailerRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, region, posts, engagement, reach, engagement_rate,
		       followers, posting_frequency, growth, top_platform
		FROM retailers
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("sql: fetch retailers: %w", err)
	}
	defer rows.Close()

	var out []types.RetailerRecord
	for rows.Next() {
		var r types.RetailerRecord
		if err := rows.Scan(
			&r.ID, &r.Name, &r.Region, &r.Posts, &r.Engagement, &r.Reach, &r.EngagementRate,
			&r.Followers, &r.PostingFrequency, &r.Growth, &r.TopPlatform,
		); err != nil {
			return nil, fmt.Errorf("sql: scan retailer: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLSource) FetchPlatforms(ctx context.Context) ([]types.PlatformPerformance, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT platform, posts, engagement, reach, impressions, engagement_rate, growth, top_content_type
		FROM platforms
		ORDER BY platform
	`)
	if err != nil {
		return nil, fmt.Errorf("sql: fetch platforms: %w", err)
	}
	defer rows.Close()

	var out []types.PlatformPerformance
	for rows.Next() {
		var p types.PlatformPerformance
		if err := rows.Scan(
			&p.Platform, &p.Posts, &p.Engagement, &p.Reach, &p.Impressions,
			&p.EngagementRate, &p.Growth, &p.TopContentType,
		); err != nil {
			return nil, fmt.Errorf("sql: scan platform: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLSource) FetchCampaigns(ctx context.Context, kind types.CampaignKind) ([]types.Campaign, error) {
	rows, err := s.db.QueryContext(ctx, s.bind(`
		SELECT id, name, brand, COALESCE(retailer, ''), status, platforms, start_date, end_date, budget, posts
		FROM campaigns
		WHERE kind = ?
		ORDER BY start_date, id
	`), string(kind))
	if err != nil {
		return nil, fmt.Errorf("sql: fetch %s campaigns: %w", kind, err)
	}
	defer rows.Close()

	var out []types.Campaign
	for rows.Next() {
		var c types.Campaign
		var platforms string
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Brand, &c.Retailer, &c.Status, &platforms,
			&c.StartDate, &c.EndDate, &c.Budget, &c.Posts,
		); err != nil {
			return nil, fmt.Errorf("sql: scan campaign: %w", err)
		}
		c.Platforms = splitList(platforms)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLSource) FetchPlatformMetrics(ctx context.Context, platform string) (types.PlatformMetrics, error) {
	var m types.PlatformMetrics
	err := s.db.QueryRowContext(ctx, s.bind(`
		SELECT platform, posts, reach, impressions, engagement, engagement_rate
		FROM platforms
		WHERE LOWER(platform) = LOWER(?)
	`), platform).Scan(
		&m.Overview.Platform, &m.Overview.TotalPosts, &m.Overview.TotalReach,
		&m.Overview.Impressions, &m.Overview.Engagement, &m.Overview.EngagementRate,
	)
	if err == sql.ErrNoRows {
		return m, fmt.Errorf("platform %q: %w", platform, ErrNotFound)
	}
	if err != nil {
		return m, fmt.Errorf("sql: fetch platform %q: %w", platform, err)
	}

	if m.TopPosts, err = s.topPosts(ctx, m.Overview.Platform); err != nil {
		return m, err
	}
	if m.Engagement, err = s.dailyMetrics(ctx, m.Overview.Platform); err != nil {
		return m, err
	}
	return m, nil
}

func (s *SQLSource) topPosts(ctx context.Context, platform string) ([]types.TopPost, error) {
	rows, err := s.db.QueryContext(ctx, s.bind(`
		SELECT id, retailer, content_type, caption, engagement, reach, engagement_rate, posted_at
		FROM top_posts
		WHERE platform = ?
		ORDER BY engagement DESC, id
		LIMIT 5
	`), platform)
	if err != nil {
		return nil, fmt.Errorf("sql: fetch top posts: %w", err)
	}
	defer rows.Close()

	out := []types.TopPost{}
	for rows.Next() {
		var p types.TopPost
		if err := rows.Scan(&p.ID, &p.Retailer, &p.ContentType, &p.Caption, &p.Engagement, &p.Reach, &p.Rate, &p.PostedAt); err != nil {
			return nil, fmt.Errorf("sql: scan top post: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLSource) dailyMetrics(ctx context.Context, platform string) ([]types.DailyMetric, error) {
	rows, err := s.db.QueryContext(ctx, s.bind(`
		SELECT day, likes, comments, shares, impressions
		FROM daily_metrics
		WHERE platform = ?
		ORDER BY day
	`), platform)
	if err != nil {
		return nil, fmt.Errorf("sql: fetch daily metrics: %w", err)
	}
	defer rows.Close()

	out := []types.DailyMetric{}
	for rows.Next() {
		var d types.DailyMetric
		if err := rows.Scan(&d.Date, &d.Likes, &d.Comments, &d.Shares, &d.Impressions); err != nil {
			return nil, fmt.Errorf("sql: scan daily metric: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
