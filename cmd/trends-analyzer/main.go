package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lukeashford/trendscan/internal/report"
	"github.com/lukeashford/trendscan/internal/research"
	"github.com/lukeashford/trendscan/internal/telemetry"
	"github.com/lukeashford/trendscan/internal/trends"
	"github.com/lukeashford/trendscan/internal/weibo"
)

func main() {
	reportsDir := flag.String("reports-dir", "reports", "directory for generated reports")
	limitFlag := flag.Int("limit", 0, "number of topics to analyze (overrides ANALYSIS_LIMIT)")
	pdfFlag := flag.Bool("pdf", false, "also export a PDF report via headless Chromium")
	flag.Parse()

	// .env is optional; real deployments use plain environment variables.
	_ = godotenv.Load()

	tianKey := requiredEnv("TIANAPI_KEY")
	searchKey := requiredEnv("SEARCH_API_KEY")
	caller, err := trends.NewAnthropicCallerFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	limit := *limitFlag
	if limit <= 0 {
		limit = envInt("ANALYSIS_LIMIT", 10)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	shutdown, err := telemetry.Setup(ctx, "trends-analyzer")
	if err != nil {
		log.Fatalf("telemetry setup: %v", err)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := shutdown(flushCtx); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	weiboClient, err := weibo.NewClient(weibo.Config{APIKey: tianKey})
	if err != nil {
		log.Fatal(err)
	}
	searcher, err := research.NewSearcher(research.Config{
		APIKey:               searchKey,
		Engine:               research.Engine(envDefault("SEARCH_ENGINE", string(research.EngineSerpAPI))),
		GoogleSearchEngineID: os.Getenv("GOOGLE_SEARCH_ENGINE_ID"),
	})
	if err != nil {
		log.Fatal(err)
	}

	pipeline := trends.NewPipeline(weiboClient, searcher, trends.NewGenerator(caller))

	log.Printf("starting trends analysis limit=%d", limit)
	doc, err := pipeline.RunWithProgress(ctx, limit, func(stage, message string) {
		log.Printf("%s: %s", stage, message)
	})
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	jsonPath, err := report.WriteJSON(doc, *reportsDir)
	if err != nil {
		log.Fatalf("write JSON results: %v", err)
	}
	log.Printf("JSON data saved: %s", jsonPath)

	htmlPath, err := report.WriteHTML(doc, *reportsDir)
	if err != nil {
		log.Fatalf("write HTML report: %v", err)
	}
	log.Printf("HTML report saved: %s", htmlPath)

	if indexPath, err := report.RegenerateIndex(*reportsDir); err != nil {
		log.Printf("index regeneration failed: %v", err)
	} else {
		log.Printf("index updated: %s", indexPath)
	}

	if *pdfFlag {
		pdf, err := report.NewChromiumPDFRenderer().Render(ctx, doc)
		if err != nil {
			log.Printf("PDF export failed: %v", err)
		} else {
			pdfPath := strings.TrimSuffix(htmlPath, filepath.Ext(htmlPath)) + ".pdf"
			if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
				log.Printf("write PDF: %v", err)
			} else {
				log.Printf("PDF report saved: %s", pdfPath)
			}
		}
	}

	log.Printf("analysis complete topics=%d avg=%.1f excellent=%d good=%d other=%d",
		doc.Metadata.TotalAnalyzed, doc.Metadata.AverageScore,
		doc.Metadata.ExcellentCount, doc.Metadata.GoodCount, doc.Metadata.OtherCount)
}

func requiredEnv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		log.Fatalf("missing required env var %s", key)
	}
	return v
}

func envDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Fatalf("invalid %s: %q", key, v)
	}
	return n
}
