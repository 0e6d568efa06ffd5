package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
)

// Fallback concept constants. The fallback must be deterministic so a run
// degrades predictably when generation fails.
const (
	FallbackProductSuffix   = "主题商品"
	FallbackScore           = 50
	fallbackMarketCategory  = "文创产品"
	fallbackTargetAudience  = "18-35岁年轻人群"
	fallbackManufacturing   = "小批量生产，待进一步分析"
	fallbackJustification   = "⚠️ AI分析失败，使用默认评分"
)

// Generator turns one topic plus its research bundle into a scored,
// tier-annotated concept. It never fails outward: any transport, parse,
// or validation problem yields the deterministic fallback concept.
type Generator struct {
	llm TextGenerator
}

func NewGenerator(llm TextGenerator) *Generator { return &Generator{llm: llm} }

func (g *Generator) Generate(ctx context.Context, topic Topic, research ResearchBundle) Concept {
	raw, err := g.llm.GenerateText(ctx, BuildPrompt(topic, research))
	if err != nil {
		log.Printf("trends generation failed keyword=%q: %v", topic.Keyword, err)
		return FallbackConcept(topic, research)
	}
	blob, err := ExtractJSONObject(raw)
	if err != nil {
		log.Printf("trends response had no JSON object keyword=%q", topic.Keyword)
		return FallbackConcept(topic, research)
	}
	var draft ConceptDraft
	if err := json.Unmarshal([]byte(blob), &draft); err != nil {
		log.Printf("trends response parse failed keyword=%q: %v", topic.Keyword, err)
		return FallbackConcept(topic, research)
	}
	if err := ValidateConcept(draft); err != nil {
		log.Printf("trends concept invalid keyword=%q: %v", topic.Keyword, err)
		return FallbackConcept(topic, research)
	}
	c := conceptFromDraft(draft, topic, research)
	c.applyTier(TierForScore(c.TotalScore))
	return c
}

func conceptFromDraft(d ConceptDraft, topic Topic, research ResearchBundle) Concept {
	return Concept{
		ProductName:          d.ProductName,
		MarketCategory:       d.MarketCategory,
		TargetAudience:       d.TargetAudience,
		Description:          d.Description,
		ManufacturingDetails: d.ManufacturingDetails,
		ScoreBreakdown: ScoreBreakdown{
			DevelopmentPotential: *d.ScoreBreakdown.DevelopmentPotential,
			InterestLevel:        *d.ScoreBreakdown.InterestLevel,
			LifeUtility:          *d.ScoreBreakdown.LifeUtility,
			ProductionEase:       *d.ScoreBreakdown.ProductionEase,
		},
		TotalScore:         *d.TotalScore,
		ScoreJustification: d.ScoreJustification,
		Keyword:            topic.Keyword,
		Rank:               topic.Rank,
		HeatValue:          topic.HeatValue,
		Tag:                topic.Tag,
		Category:           topic.Category,
		ResearchSummary:    research,
	}
}

// FallbackConcept is the deterministic substitute used whenever
// generation, parsing, or validation fails. It guarantees every topic
// yields exactly one concept.
func FallbackConcept(topic Topic, research ResearchBundle) Concept {
	c := Concept{
		ProductName:          topic.Keyword + FallbackProductSuffix,
		MarketCategory:       fallbackMarketCategory,
		TargetAudience:       fallbackTargetAudience,
		Description:          fmt.Sprintf("基于热搜话题'%s'的创意产品", topic.Keyword),
		ManufacturingDetails: fallbackManufacturing,
		ScoreBreakdown: ScoreBreakdown{
			DevelopmentPotential: 20,
			InterestLevel:        10,
			LifeUtility:          10,
			ProductionEase:       10,
		},
		TotalScore:         FallbackScore,
		ScoreJustification: fallbackJustification,
		Keyword:            topic.Keyword,
		Rank:               topic.Rank,
		HeatValue:          topic.HeatValue,
		Tag:                topic.Tag,
		Category:           topic.Category,
		ResearchSummary:    research,
	}
	c.applyTier(TierForScore(c.TotalScore))
	return c
}

// BuildPrompt assembles the generation request: topic facts, the four
// research fields, the required JSON schema, and the scoring rubric.
func BuildPrompt(topic Topic, research ResearchBundle) string {
	return fmt.Sprintf(`你是一位专业的产品设计师和市场分析师。请根据以下微博热搜话题，生成创意产品概念。

**热搜话题**：%s
**排名**：第%d名
**热度值**：%s

**背景研究**：
社交媒体讨论：
%s

新闻背景：
%s

用户洞察：
%s

市场潜力：
%s

---

请基于以上信息，设计1个创意小商品，并按照以下格式返回JSON（仅返回JSON，不要其他文字）：

{
  "product_name": "产品名称（简短、有吸引力）",
  "market_category": "市场赛道（如：文创、家居、科技配件、时尚饰品等）",
  "target_audience": "目标人群（具体描述年龄、兴趣、收入水平等）",
  "description": "详细产品描述（如何与热搜话题结合，解决什么问题，有什么特色）",
  "manufacturing_details": "生产特点（生产方式、材料、起订量、成本结构等）",
  "score_breakdown": {
    "development_potential": <0-40分>,
    "interest_level": <0-20分>,
    "life_utility": <0-20分>,
    "production_ease": <0-20分>
  },
  "total_score": <总分0-100>,
  "score_justification": "评分理由（简要说明各维度评分依据）"
}

**评分标准**：
1. 可发展度 (40分)：市场规模15分 + 技术可行性10分 + 趋势持久性10分 + 竞争格局5分
2. 有趣度 (20分)：创意独特性10分 + 情感吸引力5分 + 传播潜力5分
3. 生活有用度 (20分)：日常整合度10分 + 解决问题能力5分 + 受众规模5分
4. 生产容易度 (20分)：制造复杂度10分 + 材料可得性5分 + 小批量成本5分
`,
		topic.Keyword,
		topic.Rank,
		groupDigits(topic.HeatValue),
		research.SocialMedia,
		research.NewsBackground,
		research.UserInsights,
		research.MarketPotential,
	)
}

// groupDigits renders a heat value with thousands separators
// (4821773 → "4,821,773").
func groupDigits(n int) string {
	if n < 0 {
		return "-" + groupDigits(-n)
	}
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var sb strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		sb.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}
