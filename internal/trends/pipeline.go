package trends

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrNoTopics is the terminal condition: the topic source yielded
// nothing even after its offline fallback.
var ErrNoTopics = errors.New("no trending topics available")

// TopicSource fetches up to limit ranked topics. Implementations fall
// back to offline sample data on upstream failure rather than
// propagating it; an error here is terminal.
type TopicSource interface {
	FetchTrending(ctx context.Context, limit int) ([]Topic, error)
}

// Researcher gathers web context for one keyword. It degrades to
// placeholder text instead of failing.
type Researcher interface {
	ResearchTopic(ctx context.Context, keyword string) ResearchBundle
}

type ProgressFn func(stage, message string)

const displayTimeLayout = "2006年01月02日 15:04:05"

// Pipeline drives one analysis run: fetch topics, research and generate
// a concept per topic strictly in rank order, then aggregate. Per-topic
// work is sequential; the only suspension points are the external calls.
type Pipeline struct {
	topics   TopicSource
	research Researcher
	gen      *Generator
	tracer   trace.Tracer
	now      func() time.Time
}

func NewPipeline(topics TopicSource, research Researcher, gen *Generator) *Pipeline {
	return &Pipeline{
		topics:   topics,
		research: research,
		gen:      gen,
		tracer:   otel.Tracer("trendscan/trends"),
		now:      time.Now,
	}
}

func (p *Pipeline) Run(ctx context.Context, limit int) (ResultsDocument, error) {
	return p.runWithProgress(ctx, limit, nil)
}

func (p *Pipeline) RunWithProgress(ctx context.Context, limit int, progress ProgressFn) (ResultsDocument, error) {
	return p.runWithProgress(ctx, limit, progress)
}

func (p *Pipeline) runWithProgress(ctx context.Context, limit int, progress ProgressFn) (ResultsDocument, error) {
	ctx, span := p.tracer.Start(ctx, "trends.Run", trace.WithAttributes(attribute.Int("topic_limit", limit)))
	defer span.End()

	emit(progress, "fetch", "Fetching trending topics...")
	topics, err := p.topics.FetchTrending(ctx, limit)
	if err != nil {
		return ResultsDocument{}, fmt.Errorf("fetch trending topics: %w", err)
	}
	if len(topics) == 0 {
		return ResultsDocument{}, ErrNoTopics
	}
	span.SetAttributes(attribute.Int("topics_fetched", len(topics)))

	concepts := make([]Concept, 0, len(topics))
	for i, topic := range topics {
		emit(progress, "analyze", fmt.Sprintf("[%d/%d] Analyzing: %s", i+1, len(topics), topic.Keyword))
		topicCtx, topicSpan := p.tracer.Start(ctx, "trends.AnalyzeTopic",
			trace.WithAttributes(attribute.String("keyword", topic.Keyword), attribute.Int("rank", topic.Rank)))
		research := p.research.ResearchTopic(topicCtx, topic.Keyword)
		concept := p.gen.Generate(topicCtx, topic, research)
		topicSpan.SetAttributes(
			attribute.Int("total_score", concept.TotalScore),
			attribute.String("tier", string(concept.TierClass)))
		topicSpan.End()
		log.Printf("trends concept ready keyword=%q product=%q score=%d tier=%s",
			topic.Keyword, concept.ProductName, concept.TotalScore, concept.TierClass)
		concepts = append(concepts, concept)
	}

	emit(progress, "aggregate", "Organizing results...")
	return p.aggregate(concepts), nil
}

// aggregate sorts by total score descending (stable, so equal scores
// keep fetch order), partitions into tier buckets preserving that order,
// and computes the summary statistics.
func (p *Pipeline) aggregate(concepts []Concept) ResultsDocument {
	sorted := make([]Concept, len(concepts))
	copy(sorted, concepts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].TotalScore > sorted[j].TotalScore })

	buckets := TierBuckets{Excellent: []Concept{}, Good: []Concept{}, Other: []Concept{}}
	for _, c := range sorted {
		switch {
		case c.TotalScore >= ExcellentThreshold:
			buckets.Excellent = append(buckets.Excellent, c)
		case c.TotalScore >= GoodThreshold:
			buckets.Good = append(buckets.Good, c)
		default:
			buckets.Other = append(buckets.Other, c)
		}
	}

	return ResultsDocument{
		Metadata: Metadata{
			GeneratedAt:    p.now().Format(displayTimeLayout),
			TotalAnalyzed:  len(sorted),
			AverageScore:   averageScore(sorted),
			ExcellentCount: len(buckets.Excellent),
			GoodCount:      len(buckets.Good),
			OtherCount:     len(buckets.Other),
		},
		Products:    buckets,
		AllProducts: sorted,
	}
}

func averageScore(concepts []Concept) float64 {
	if len(concepts) == 0 {
		return 0
	}
	scores := make([]float64, len(concepts))
	for i, c := range concepts {
		scores[i] = float64(c.TotalScore)
	}
	mean, err := stats.Mean(scores)
	if err != nil {
		return 0
	}
	rounded, err := stats.Round(mean, 1)
	if err != nil {
		return mean
	}
	return rounded
}

func emit(progress ProgressFn, stage, message string) {
	if progress != nil {
		progress(stage, message)
	}
}
