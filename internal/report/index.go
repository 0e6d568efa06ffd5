package report

import (
	"encoding/json"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lukeashford/trendscan/internal/trends"
)

type indexEntry struct {
	Date     string
	HTMLFile string
	JSONFile string
	SizeKB   float64
	Metadata trends.Metadata
	HasMeta  bool
}

// RegenerateIndex scans outputDir for past report files and rewrites
// index.html listing them newest-first, pulling summary metadata from
// each run's JSON file when present.
func RegenerateIndex(outputDir string) (string, error) {
	entries, err := collectEntries(outputDir)
	if err != nil {
		return "", err
	}
	page := buildIndexHTML(entries)
	path := filepath.Join(outputDir, "index.html")
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func collectEntries(outputDir string) ([]indexEntry, error) {
	matches, err := filepath.Glob(filepath.Join(outputDir, htmlFilePrefix+"*.html"))
	if err != nil {
		return nil, err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(matches)))

	entries := make([]indexEntry, 0, len(matches))
	for _, htmlPath := range matches {
		name := filepath.Base(htmlPath)
		date := strings.TrimSuffix(strings.TrimPrefix(name, htmlFilePrefix), ".html")

		entry := indexEntry{Date: date, HTMLFile: name}
		if info, err := os.Stat(htmlPath); err == nil {
			entry.SizeKB = float64(info.Size()) / 1024
		}

		jsonPath := filepath.Join(outputDir, jsonFilename(date))
		if b, err := os.ReadFile(jsonPath); err == nil {
			entry.JSONFile = jsonFilename(date)
			var doc trends.ResultsDocument
			if json.Unmarshal(b, &doc) == nil {
				entry.Metadata = doc.Metadata
				entry.HasMeta = true
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func buildIndexHTML(entries []indexEntry) string {
	var b strings.Builder
	b.WriteString("<!doctype html><html lang='zh-CN'><head><meta charset='utf-8'>")
	b.WriteString("<meta name='viewport' content='width=device-width, initial-scale=1.0'>")
	b.WriteString("<title>微博热搜分析报告</title>")
	b.WriteString("<style>" + indexCSS + "</style></head><body><div class='wrap'>")
	b.WriteString("<h1>📊 微博热搜创意产品分析</h1>")

	if len(entries) == 0 {
		b.WriteString("<p class='empty'>暂无报告。</p>")
	} else {
		b.WriteString("<ul class='reports'>")
		for _, e := range entries {
			b.WriteString("<li class='report-card'>")
			fmt.Fprintf(&b, "<a class='title' href='%s'>%s</a>", html.EscapeString(e.HTMLFile), html.EscapeString(e.Date))
			if e.HasMeta {
				fmt.Fprintf(&b, "<div class='meta'>分析 %d 个话题 · 平均分 %.1f · 🏆 %d · ⭐ %d · 📋 %d</div>",
					e.Metadata.TotalAnalyzed, e.Metadata.AverageScore,
					e.Metadata.ExcellentCount, e.Metadata.GoodCount, e.Metadata.OtherCount)
			}
			fmt.Fprintf(&b, "<div class='files'>%.1f KB", e.SizeKB)
			if e.JSONFile != "" {
				fmt.Fprintf(&b, " · <a href='%s'>JSON</a>", html.EscapeString(e.JSONFile))
			}
			b.WriteString("</div></li>")
		}
		b.WriteString("</ul>")
	}

	b.WriteString("</div></body></html>")
	return b.String()
}

const indexCSS = `body{font-family:-apple-system,"PingFang SC","Hiragino Sans GB","Microsoft YaHei",sans-serif;margin:0;background:#f5f5f4;color:#1c1917;}` +
	`.wrap{max-width:760px;margin:0 auto;padding:2rem 1.5rem;}` +
	`h1{font-size:1.5rem;}` +
	`.reports{list-style:none;padding:0;}` +
	`.report-card{background:#fff;border-radius:8px;box-shadow:0 1px 3px rgba(0,0,0,0.08);padding:1rem 1.2rem;margin-bottom:0.8rem;}` +
	`.title{font-size:1.05rem;font-weight:600;color:#1d4ed8;text-decoration:none;}` +
	`.meta{color:#57534e;font-size:0.85rem;margin-top:0.3rem;}` +
	`.files{color:#78716c;font-size:0.8rem;margin-top:0.3rem;}` +
	`.empty{color:#78716c;}`
