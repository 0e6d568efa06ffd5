package weibo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lukeashford/trendscan/internal/trends"
)

const DefaultBaseURL = "https://apis.tianapi.com/weibohot/index"

var (
	digitsRe   = regexp.MustCompile(`\d+`)
	categoryRe = regexp.MustCompile(`^\p{Han}+`)
)

type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Client fetches the Weibo hot list. On any upstream failure it falls
// back to the embedded offline sample set, so FetchTrending only returns
// an error when even the sample data is unusable.
type Client struct {
	cfg Config
}

func NewClient(cfg Config) (*Client, error) {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, errors.New("TIANAPI_KEY not configured")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{cfg: cfg}, nil
}

type hotListResponse struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	Result struct {
		List []hotEntry `json:"list"`
	} `json:"result"`
}

type hotEntry struct {
	Hotword    string `json:"hotword"`
	Hotwordnum string `json:"hotwordnum"`
	Hottag     string `json:"hottag"`
}

func (c *Client) FetchTrending(ctx context.Context, limit int) ([]trends.Topic, error) {
	topics, err := c.fetchLive(ctx, limit)
	if err != nil {
		log.Printf("weibo hot list fetch failed, using offline sample: %v", err)
		return sampleTopics(limit)
	}
	return topics, nil
}

func (c *Client) fetchLive(ctx context.Context, limit int) ([]trends.Topic, error) {
	u := c.cfg.BaseURL + "?" + url.Values{"key": {c.cfg.APIKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	b, err := io.ReadAll(io.LimitReader(res.Body, 2<<20))
	if err != nil {
		return nil, err
	}
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("status code: %d", res.StatusCode)
	}

	var parsed hotListResponse
	if err := json.Unmarshal(b, &parsed); err != nil {
		return nil, err
	}
	if parsed.Code != 200 {
		return nil, fmt.Errorf("api error code=%d msg=%q", parsed.Code, parsed.Msg)
	}
	return parseEntries(parsed.Result.List, limit), nil
}

func parseEntries(entries []hotEntry, limit int) []trends.Topic {
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]trends.Topic, 0, len(entries))
	for i, e := range entries {
		out = append(out, trends.Topic{
			Rank:      i + 1,
			Keyword:   e.Hotword,
			HeatValue: extractHeatValue(e.Hotwordnum),
			Tag:       e.Hottag,
			Category:  extractCategory(e.Hotwordnum),
		})
	}
	return out
}

// extractHeatValue pulls the first run of digits out of the hotwordnum
// field, which mixes an optional category prefix with the heat number
// ("综艺 4821773").
func extractHeatValue(hotwordnum string) int {
	m := digitsRe.FindString(hotwordnum)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

func extractCategory(hotwordnum string) string {
	return categoryRe.FindString(strings.TrimSpace(hotwordnum))
}
