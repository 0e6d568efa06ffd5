package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lukeashford/trendscan/internal/report"
	"github.com/lukeashford/trendscan/internal/trends"
)

// Rebuilds the markdown/HTML/PDF report from a previously saved JSON
// results file, so report styling changes don't require a re-run.
func main() {
	inputPath := flag.String("input", "", "path to a saved weibo-trends-data-*.json file")
	outputPath := flag.String("output", "", "path to write rebuilt markdown (defaults to stdout)")
	htmlPath := flag.String("html", "", "optional path to write the rebuilt HTML page")
	pdfPath := flag.String("pdf", "", "optional path to write a PDF export")
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("missing required -input")
	}

	in, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}
	var doc trends.ResultsDocument
	if err := json.Unmarshal(in, &doc); err != nil {
		log.Fatalf("decode input JSON: %v", err)
	}

	if err := writeMarkdown(*outputPath, report.BuildMarkdown(doc)); err != nil {
		log.Fatalf("write markdown: %v", err)
	}

	if *htmlPath != "" {
		page, err := report.RenderHTML(doc)
		if err != nil {
			log.Fatalf("render HTML: %v", err)
		}
		if err := os.WriteFile(*htmlPath, []byte(page), 0o644); err != nil {
			log.Fatalf("write HTML: %v", err)
		}
	}

	if *pdfPath != "" {
		pdf, err := report.NewChromiumPDFRenderer().Render(context.Background(), doc)
		if err != nil {
			log.Fatalf("render PDF: %v", err)
		}
		if err := os.WriteFile(*pdfPath, pdf, 0o644); err != nil {
			log.Fatalf("write PDF: %v", err)
		}
	}
}

func writeMarkdown(outputPath, markdown string) error {
	if outputPath == "" {
		_, err := fmt.Print(markdown)
		return err
	}
	return os.WriteFile(outputPath, []byte(markdown), 0o644)
}
