package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lukeashford/trendscan/internal/trends"
)

const (
	fileTimeLayout = "2006-01-02"
	htmlFilePrefix = "weibo-trends-analysis-"
	jsonFilePrefix = "weibo-trends-data-"
)

func htmlFilename(date string) string { return htmlFilePrefix + date + ".html" }
func jsonFilename(date string) string { return jsonFilePrefix + date + ".json" }

// WriteJSON persists the results document under outputDir using the
// date-stamped filename the index generator expects.
func WriteJSON(doc trends.ResultsDocument, outputDir string) (string, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return writeFile(outputDir, jsonFilename(time.Now().Format(fileTimeLayout)), b)
}

// WriteHTML renders and persists the HTML report.
func WriteHTML(doc trends.ResultsDocument, outputDir string) (string, error) {
	page, err := RenderHTML(doc)
	if err != nil {
		return "", err
	}
	return writeFile(outputDir, htmlFilename(time.Now().Format(fileTimeLayout)), []byte(page))
}

func writeFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
