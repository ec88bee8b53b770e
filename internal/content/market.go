package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// TrendingSkill is one row of market demand data.
type TrendingSkill struct {
	Name      string   `json:"name"`
	Demand    string   `json:"demand"`
	AvgSalary string   `json:"avgSalary"`
	Companies []string `json:"companies"`
}

// JobListing is a job-board entry surfaced alongside trending skills.
type JobListing struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	ApplyURL string `json:"applyUrl"`
}

// MarketData is the aggregate market view returned to clients.
type MarketData struct {
	Trending []TrendingSkill `json:"trending"`
	Jobs     []JobListing    `json:"jobs"`
}

// DeepBundle packages market intelligence for embedding into a plan's
// resource map. Clients read job links off the first element.
type DeepBundle struct {
	TrendingSkills []TrendingSkill `json:"trendingSkills"`
	JobLinks       []JobListing    `json:"jobLinks"`
}

// MarketClient fetches market data from a configured HTML source, falling
// back to a static snapshot when the source is unavailable or unparseable.
type MarketClient struct {
	httpClient *http.Client
	sourceURL  string
}

// NewMarketClient creates a market-data client. sourceURL may be empty, in
// which case Fetch always returns the static snapshot.
func NewMarketClient(sourceURL string) *MarketClient {
	return &MarketClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		sourceURL:  sourceURL,
	}
}

// Fetch returns the current market view. It never fails: any fetch or parse
// problem degrades to the static snapshot.
func (c *MarketClient) Fetch(ctx context.Context) MarketData {
	if c.sourceURL == "" {
		return staticMarketData()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.sourceURL, nil)
	if err != nil {
		return staticMarketData()
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return staticMarketData()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return staticMarketData()
	}

	trending, err := parseTrendingSkills(resp.Body)
	if err != nil || len(trending) == 0 {
		return staticMarketData()
	}

	data := staticMarketData()
	data.Trending = trending
	return data
}

// parseTrendingSkills extracts trending-skill rows from an HTML document.
// Expected markup: a table with class "trending" whose body rows carry
// skill, demand, salary, and a comma-separated company list.
func parseTrendingSkills(r io.Reader) ([]TrendingSkill, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse market page: %w", err)
	}

	var skills []TrendingSkill
	doc.Find("table.trending tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}
		name := strings.TrimSpace(cells.Eq(0).Text())
		if name == "" {
			return
		}
		var companies []string
		for _, c := range strings.Split(cells.Eq(3).Text(), ",") {
			if c = strings.TrimSpace(c); c != "" {
				companies = append(companies, c)
			}
		}
		skills = append(skills, TrendingSkill{
			Name:      name,
			Demand:    strings.TrimSpace(cells.Eq(1).Text()),
			AvgSalary: strings.TrimSpace(cells.Eq(2).Text()),
			Companies: companies,
		})
	})
	return skills, nil
}

func staticMarketData() MarketData {
	return MarketData{
		Trending: []TrendingSkill{
			{Name: "React", Demand: "High", AvgSalary: "$110k-$160k", Companies: []string{"Meta", "Netflix", "Uber"}},
			{Name: "Node.js", Demand: "High", AvgSalary: "$105k-$155k", Companies: []string{"Amazon", "Microsoft", "Stripe"}},
			{Name: "Data Science", Demand: "Medium", AvgSalary: "$120k-$180k", Companies: []string{"Google", "Apple", "Airbnb"}},
		},
		Jobs: []JobListing{
			{ID: "lnk-1", Title: "Frontend Engineer (React)", Company: "ExampleCorp", Location: "Remote", ApplyURL: "https://www.linkedin.com/jobs/search/?keywords=react"},
			{ID: "lnk-2", Title: "Backend Engineer (Node.js)", Company: "ExampleCorp", Location: "Remote", ApplyURL: "https://www.linkedin.com/jobs/search/?keywords=node.js"},
		},
	}
}
