package report

import (
	"fmt"
	"strings"

	"github.com/lukeashford/trendscan/internal/trends"
)

// BuildMarkdown renders one run's results as a standalone markdown
// report. The HTML and PDF outputs are both derived from this.
func BuildMarkdown(doc trends.ResultsDocument) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# 微博热搜创意产品分析\n\n")
	fmt.Fprintf(&b, "- 生成时间: %s\n", doc.Metadata.GeneratedAt)
	fmt.Fprintf(&b, "- 分析话题数: %d\n", doc.Metadata.TotalAnalyzed)
	fmt.Fprintf(&b, "- 平均分: %.1f/100\n\n", doc.Metadata.AverageScore)

	fmt.Fprintf(&b, "| 分层 | 数量 |\n|---|---|\n")
	fmt.Fprintf(&b, "| 🏆 优秀 (≥%d) | %d |\n", trends.ExcellentThreshold, doc.Metadata.ExcellentCount)
	fmt.Fprintf(&b, "| ⭐ 良好 (%d-%d) | %d |\n", trends.GoodThreshold, trends.ExcellentThreshold-1, doc.Metadata.GoodCount)
	fmt.Fprintf(&b, "| 📋 其他 (<%d) | %d |\n\n", trends.GoodThreshold, doc.Metadata.OtherCount)

	writeTierSection(&b, fmt.Sprintf("🏆 优秀创意 (≥%d分)", trends.ExcellentThreshold), doc.Products.Excellent)
	writeTierSection(&b, fmt.Sprintf("⭐ 良好创意 (%d-%d分)", trends.GoodThreshold, trends.ExcellentThreshold-1), doc.Products.Good)
	writeTierSection(&b, fmt.Sprintf("📋 其他创意 (<%d分)", trends.GoodThreshold), doc.Products.Other)

	return b.String()
}

func writeTierSection(b *strings.Builder, title string, concepts []trends.Concept) {
	fmt.Fprintf(b, "## %s\n\n", title)
	if len(concepts) == 0 {
		fmt.Fprintf(b, "本层暂无产品概念。\n\n")
		return
	}
	for _, c := range concepts {
		writeConcept(b, c)
	}
}

func writeConcept(b *strings.Builder, c trends.Concept) {
	fmt.Fprintf(b, "### %s — %d/100\n\n", sanitize(c.ProductName), c.TotalScore)
	fmt.Fprintf(b, "- 热搜话题: %s（第%d名", sanitize(c.Keyword), c.Rank)
	if c.HeatValue > 0 {
		fmt.Fprintf(b, "，热度 %d", c.HeatValue)
	}
	fmt.Fprintf(b, "）\n")
	if c.Category != "" {
		fmt.Fprintf(b, "- 话题分类: %s\n", sanitize(c.Category))
	}
	fmt.Fprintf(b, "- 市场赛道: %s\n", sanitize(c.MarketCategory))
	fmt.Fprintf(b, "- 目标人群: %s\n\n", sanitize(c.TargetAudience))
	fmt.Fprintf(b, "%s\n\n", strings.TrimSpace(c.Description))
	fmt.Fprintf(b, "**生产特点**: %s\n\n", sanitize(c.ManufacturingDetails))

	fmt.Fprintf(b, "| 维度 | 得分 | 满分 |\n|---|---|---|\n")
	fmt.Fprintf(b, "| 可发展度 | %d | 40 |\n", c.ScoreBreakdown.DevelopmentPotential)
	fmt.Fprintf(b, "| 有趣度 | %d | 20 |\n", c.ScoreBreakdown.InterestLevel)
	fmt.Fprintf(b, "| 生活有用度 | %d | 20 |\n", c.ScoreBreakdown.LifeUtility)
	fmt.Fprintf(b, "| 生产容易度 | %d | 20 |\n\n", c.ScoreBreakdown.ProductionEase)

	if !trends.ConsistentScores(c.ScoreBreakdown, c.TotalScore) {
		fmt.Fprintf(b, "> 注：各维度之和与总分不一致（模型原始输出，未作修正）。\n\n")
	}
	if strings.TrimSpace(c.ScoreJustification) != "" {
		fmt.Fprintf(b, "**评分理由**: %s\n\n", sanitize(c.ScoreJustification))
	}
}

func sanitize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}
