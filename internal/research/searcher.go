package research

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lukeashford/trendscan/internal/trends"
)

type Engine string

const (
	EngineSerpAPI Engine = "serpapi"
	EngineGoogle  Engine = "google"
)

const (
	SerpAPIBaseURL = "https://serpapi.com/search"
	GoogleBaseURL  = "https://www.googleapis.com/customsearch/v1"

	// Placeholder text for degraded bundles. A bundle field holding one
	// of these is valid content, not an error state.
	placeholderLimited       = "⚠️ 搜索结果受限"
	placeholderGenericMarket = "基于通用市场分析"
)

type Config struct {
	APIKey string
	Engine Engine
	// GoogleSearchEngineID is the Custom Search cx parameter, required
	// only for EngineGoogle.
	GoogleSearchEngineID string
	BaseURL              string
	HTTPClient           *http.Client
}

// Searcher assembles a ResearchBundle per keyword from two web searches:
// a context/background query and a user/market query. Search failures
// degrade to placeholder text; ResearchTopic never fails.
type Searcher struct {
	cfg Config
}

func NewSearcher(cfg Config) (*Searcher, error) {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, errors.New("SEARCH_API_KEY not configured")
	}
	switch cfg.Engine {
	case "":
		cfg.Engine = EngineSerpAPI
	case EngineSerpAPI, EngineGoogle:
	default:
		return nil, fmt.Errorf("unsupported search engine: %s", cfg.Engine)
	}
	if cfg.BaseURL == "" {
		if cfg.Engine == EngineGoogle {
			cfg.BaseURL = GoogleBaseURL
		} else {
			cfg.BaseURL = SerpAPIBaseURL
		}
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Searcher{cfg: cfg}, nil
}

type searchResult struct {
	Title   string
	Snippet string
	Link    string
}

func (s *Searcher) ResearchTopic(ctx context.Context, keyword string) trends.ResearchBundle {
	bundle := trends.ResearchBundle{}

	contextResults, err := s.search(ctx, keyword+" 微博 新闻背景 讨论", 5)
	if err != nil || len(contextResults) == 0 {
		if err != nil {
			log.Printf("research context search failed keyword=%q: %v", keyword, err)
		}
		bundle.SocialMedia = placeholderLimited
		bundle.NewsBackground = placeholderLimited
	} else {
		bundle.SocialMedia, bundle.NewsBackground = splitResults(contextResults, 2)
	}

	marketResults, err := s.search(ctx, keyword+" 用户需求 产品 市场", 5)
	if err != nil || len(marketResults) == 0 {
		if err != nil {
			log.Printf("research market search failed keyword=%q: %v", keyword, err)
		}
		bundle.UserInsights = placeholderLimited
		bundle.MarketPotential = placeholderGenericMarket
	} else {
		bundle.UserInsights, bundle.MarketPotential = splitResults(marketResults, 3)
	}

	return bundle
}

// splitResults formats results as "title: snippet" lines and splits them
// at the given index into two newline-joined blocks.
func splitResults(results []searchResult, at int) (string, string) {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, r.Title+": "+r.Snippet)
	}
	if at > len(lines) {
		at = len(lines)
	}
	return strings.Join(lines[:at], "\n"), strings.Join(lines[at:], "\n")
}

func (s *Searcher) search(ctx context.Context, query string, numResults int) ([]searchResult, error) {
	if s.cfg.Engine == EngineGoogle {
		return s.searchGoogle(ctx, query, numResults)
	}
	return s.searchSerpAPI(ctx, query, numResults)
}

func (s *Searcher) searchSerpAPI(ctx context.Context, query string, numResults int) ([]searchResult, error) {
	params := url.Values{
		"q":       {query},
		"api_key": {s.cfg.APIKey},
		"num":     {strconv.Itoa(numResults)},
		"hl":      {"zh-cn"},
		"gl":      {"cn"},
	}
	body, err := s.get(ctx, params)
	if err != nil {
		return nil, err
	}
	var parsed struct {
		OrganicResults []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
			Link    string `json:"link"`
		} `json:"organic_results"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}
	out := make([]searchResult, 0, numResults)
	for _, item := range parsed.OrganicResults {
		if len(out) == numResults {
			break
		}
		out = append(out, searchResult{Title: item.Title, Snippet: item.Snippet, Link: item.Link})
	}
	return out, nil
}

func (s *Searcher) searchGoogle(ctx context.Context, query string, numResults int) ([]searchResult, error) {
	if numResults > 10 {
		numResults = 10 // Custom Search caps at 10 per request
	}
	params := url.Values{
		"key": {s.cfg.APIKey},
		"cx":  {s.cfg.GoogleSearchEngineID},
		"q":   {query},
		"num": {strconv.Itoa(numResults)},
		"lr":  {"lang_zh-CN"},
	}
	body, err := s.get(ctx, params)
	if err != nil {
		return nil, err
	}
	var parsed struct {
		Items []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
			Link    string `json:"link"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}
	out := make([]searchResult, 0, numResults)
	for _, item := range parsed.Items {
		if len(out) == numResults {
			break
		}
		out = append(out, searchResult{Title: item.Title, Snippet: item.Snippet, Link: item.Link})
	}
	return out, nil
}

func (s *Searcher) get(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	res, err := s.cfg.HTTPClient.Do(req)
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
	return b, nil
}
