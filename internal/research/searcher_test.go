package research

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serpAPIBody(count int) string {
	var sb strings.Builder
	sb.WriteString(`{"organic_results": [`)
	for i := 0; i < count; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"title": "结果%d", "snippet": "摘要%d", "link": "https://example.com/%d"}`, i+1, i+1, i+1)
	}
	sb.WriteString(`]}`)
	return sb.String()
}

func newTestSearcher(t *testing.T, cfg Config, handler http.HandlerFunc) *Searcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg.BaseURL = srv.URL
	cfg.HTTPClient = srv.Client()
	if cfg.APIKey == "" {
		cfg.APIKey = "test-key"
	}
	s, err := NewSearcher(cfg)
	if err != nil {
		t.Fatalf("NewSearcher: %v", err)
	}
	return s
}

func TestResearchTopicSplitsResults(t *testing.T) {
	var queries []string
	s := newTestSearcher(t, Config{}, func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("q"))
		w.Write([]byte(serpAPIBody(5)))
	})

	bundle := s.ResearchTopic(context.Background(), "宠物经济")

	if len(queries) != 2 {
		t.Fatalf("queries = %v", queries)
	}
	if queries[0] != "宠物经济 微博 新闻背景 讨论" || queries[1] != "宠物经济 用户需求 产品 市场" {
		t.Errorf("unexpected queries: %v", queries)
	}

	// Context query splits at 2, market query at 3.
	if got := strings.Count(bundle.SocialMedia, "\n") + 1; got != 2 {
		t.Errorf("social media lines = %d: %q", got, bundle.SocialMedia)
	}
	if got := strings.Count(bundle.NewsBackground, "\n") + 1; got != 3 {
		t.Errorf("news background lines = %d: %q", got, bundle.NewsBackground)
	}
	if got := strings.Count(bundle.UserInsights, "\n") + 1; got != 3 {
		t.Errorf("user insights lines = %d: %q", got, bundle.UserInsights)
	}
	if got := strings.Count(bundle.MarketPotential, "\n") + 1; got != 2 {
		t.Errorf("market potential lines = %d: %q", got, bundle.MarketPotential)
	}
	if !strings.HasPrefix(bundle.SocialMedia, "结果1: 摘要1") {
		t.Errorf("social media = %q", bundle.SocialMedia)
	}
}

func TestResearchTopicSerpAPIParams(t *testing.T) {
	s := newTestSearcher(t, Config{}, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("api_key") != "test-key" || q.Get("hl") != "zh-cn" || q.Get("gl") != "cn" || q.Get("num") != "5" {
			t.Errorf("unexpected params: %v", q)
		}
		w.Write([]byte(serpAPIBody(5)))
	})
	s.ResearchTopic(context.Background(), "测试")
}

func TestResearchTopicDegradesToPlaceholders(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"empty results", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"organic_results": []}`))
		}},
		{"malformed body", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("oops"))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSearcher(t, Config{}, tc.handler)
			bundle := s.ResearchTopic(context.Background(), "测试")
			if bundle.SocialMedia != placeholderLimited || bundle.NewsBackground != placeholderLimited {
				t.Errorf("context placeholders missing: %+v", bundle)
			}
			if bundle.UserInsights != placeholderLimited {
				t.Errorf("user insights = %q", bundle.UserInsights)
			}
			if bundle.MarketPotential != placeholderGenericMarket {
				t.Errorf("market potential = %q", bundle.MarketPotential)
			}
		})
	}
}

func TestResearchTopicGoogleEngine(t *testing.T) {
	s := newTestSearcher(t, Config{Engine: EngineGoogle, GoogleSearchEngineID: "cx-123"}, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("key") != "test-key" || q.Get("cx") != "cx-123" || q.Get("lr") != "lang_zh-CN" {
			t.Errorf("unexpected params: %v", q)
		}
		w.Write([]byte(`{"items": [
  {"title": "条目1", "snippet": "说明1", "link": "https://example.com/1"},
  {"title": "条目2", "snippet": "说明2", "link": "https://example.com/2"},
  {"title": "条目3", "snippet": "说明3", "link": "https://example.com/3"},
  {"title": "条目4", "snippet": "说明4", "link": "https://example.com/4"}
]}`))
	})

	bundle := s.ResearchTopic(context.Background(), "测试")
	if !strings.HasPrefix(bundle.SocialMedia, "条目1: 说明1") {
		t.Errorf("social media = %q", bundle.SocialMedia)
	}
	if bundle.MarketPotential != "条目4: 说明4" {
		t.Errorf("market potential = %q", bundle.MarketPotential)
	}
}

func TestNewSearcherValidation(t *testing.T) {
	if _, err := NewSearcher(Config{APIKey: ""}); err == nil {
		t.Error("expected error for missing API key")
	}
	if _, err := NewSearcher(Config{APIKey: "k", Engine: "bing"}); err == nil {
		t.Error("expected error for unsupported engine")
	}
	if _, err := NewSearcher(Config{APIKey: "k"}); err != nil {
		t.Errorf("default engine should be accepted: %v", err)
	}
}

func TestSplitResultsShortInput(t *testing.T) {
	first, second := splitResults([]searchResult{{Title: "a", Snippet: "b"}}, 3)
	if first != "a: b" || second != "" {
		t.Errorf("splitResults = %q / %q", first, second)
	}
}
