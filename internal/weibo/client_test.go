package weibo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const liveBody = `{
  "code": 200,
  "msg": "success",
  "result": {
    "list": [
      {"hotword": "新综艺官宣阵容", "hotwordnum": "综艺 4821773", "hottag": "综艺"},
      {"hotword": "城市马拉松开跑", "hotwordnum": "1536020", "hottag": "新"},
      {"hotword": "博物馆夜场预约", "hotwordnum": "文化 987654", "hottag": ""}
    ]
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL, HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestFetchTrendingParsesLiveList(t *testing.T) {
	var gotKey string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		w.Write([]byte(liveBody))
	})

	topics, err := c.FetchTrending(context.Background(), 10)
	if err != nil {
		t.Fatalf("FetchTrending: %v", err)
	}
	if gotKey != "test-key" {
		t.Errorf("key param = %q", gotKey)
	}
	if len(topics) != 3 {
		t.Fatalf("topics = %d", len(topics))
	}

	first := topics[0]
	if first.Rank != 1 || first.Keyword != "新综艺官宣阵容" {
		t.Errorf("first topic = %+v", first)
	}
	if first.HeatValue != 4821773 {
		t.Errorf("heat value = %d, want 4821773", first.HeatValue)
	}
	if first.Category != "综艺" || first.Tag != "综艺" {
		t.Errorf("category/tag = %q/%q", first.Category, first.Tag)
	}

	// Entry without a category prefix keeps the bare number.
	second := topics[1]
	if second.Rank != 2 || second.HeatValue != 1536020 || second.Category != "" {
		t.Errorf("second topic = %+v", second)
	}
}

func TestFetchTrendingHonorsLimit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(liveBody))
	})
	topics, err := c.FetchTrending(context.Background(), 2)
	if err != nil {
		t.Fatalf("FetchTrending: %v", err)
	}
	if len(topics) != 2 || topics[1].Rank != 2 {
		t.Errorf("limit not applied: %+v", topics)
	}
}

func TestFetchTrendingFallsBackToSample(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"http error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}},
		{"api error code", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"code": 250, "msg": "key error"}`))
		}},
		{"malformed body", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("not json"))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, tc.handler)
			topics, err := c.FetchTrending(context.Background(), 5)
			if err != nil {
				t.Fatalf("FetchTrending: %v", err)
			}
			if len(topics) != 5 {
				t.Fatalf("sample topics = %d, want 5", len(topics))
			}
			for i, topic := range topics {
				if topic.Rank != i+1 {
					t.Errorf("sample rank[%d] = %d", i, topic.Rank)
				}
				if topic.Keyword == "" || topic.HeatValue == 0 {
					t.Errorf("sample topic[%d] incomplete: %+v", i, topic)
				}
			}
		})
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Config{APIKey: "  "}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestExtractHeatValue(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"综艺 4821773", 4821773},
		{"1536020", 1536020},
		{"", 0},
		{"热度上升", 0},
	}
	for _, tc := range cases {
		if got := extractHeatValue(tc.in); got != tc.want {
			t.Errorf("extractHeatValue(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestExtractCategory(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"综艺 4821773", "综艺"},
		{" 文化 987654", "文化"},
		{"1536020", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := extractCategory(tc.in); got != tc.want {
			t.Errorf("extractCategory(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
