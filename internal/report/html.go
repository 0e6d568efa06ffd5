package report

import (
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/lukeashford/trendscan/internal/trends"
)

const pageCSS = `body{font-family:-apple-system,"PingFang SC","Hiragino Sans GB","Microsoft YaHei",sans-serif;margin:0;background:#f5f5f4;color:#1c1917;}` +
	`.wrap{max-width:980px;margin:0 auto;padding:1.5rem;}` +
	`.report{background:#fff;border-radius:10px;box-shadow:0 1px 4px rgba(0,0,0,0.08);padding:2rem;}` +
	`.report-header{border-bottom:2px solid #e7e5e4;padding-bottom:1rem;margin-bottom:1.5rem;}` +
	`.report-meta{color:#57534e;font-size:0.9rem;}` +
	`.report-badge{display:inline-block;background:#fef3c7;color:#78350f;border:1px solid #fcd34d;border-radius:999px;padding:0.2rem 0.7rem;margin-right:0.4rem;font-size:0.85rem;}` +
	`.report-html h1{font-size:1.6rem;} .report-html h2{font-size:1.25rem;border-bottom:1px solid #e7e5e4;padding-bottom:0.3rem;margin-top:2rem;}` +
	`.report-html h3{font-size:1.05rem;margin-top:1.4rem;}` +
	`.report-html table{width:100%;border-collapse:collapse;font-size:0.85rem;margin:0.6rem 0;}` +
	`.report-html th,.report-html td{border:1px solid #d6d3d1;padding:0.35rem 0.5rem;text-align:left;}` +
	`.report-html thead th{background:#f1f5f9;}` +
	`.report-html blockquote{border-left:3px solid #fcd34d;margin:0.6rem 0;padding:0.2rem 0.8rem;color:#78350f;background:#fffbeb;}`

// RenderHTML converts the markdown report into a self-contained HTML
// page with inline styling and a metadata header.
func RenderHTML(doc trends.ResultsDocument) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var content strings.Builder
	if err := md.Convert([]byte(BuildMarkdown(doc)), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}

	var badges strings.Builder
	fmt.Fprintf(&badges, "<span class='report-badge'>🏆 %d</span>", doc.Metadata.ExcellentCount)
	fmt.Fprintf(&badges, "<span class='report-badge'>⭐ %d</span>", doc.Metadata.GoodCount)
	fmt.Fprintf(&badges, "<span class='report-badge'>📋 %d</span>", doc.Metadata.OtherCount)
	fmt.Fprintf(&badges, "<span class='report-badge'>平均 %.1f</span>", doc.Metadata.AverageScore)

	meta := "<div><strong>生成时间:</strong> " + html.EscapeString(doc.Metadata.GeneratedAt) + "</div>" +
		fmt.Sprintf("<div><strong>分析话题数:</strong> %d</div>", doc.Metadata.TotalAnalyzed)

	return "<!doctype html><html lang='zh-CN'><head><meta charset='utf-8'>" +
		"<meta name='viewport' content='width=device-width, initial-scale=1.0'>" +
		"<title>微博热搜创意产品分析</title>" +
		"<style>" + pageCSS + "</style></head><body>" +
		"<div class='wrap'><section class='report'><div class='report-header'>" +
		"<div class='report-meta'>" + meta + "</div>" +
		"<div>" + badges.String() + "</div>" +
		"</div><div class='report-html'>" + content.String() + "</div></section></div>" +
		"</body></html>", nil
}
