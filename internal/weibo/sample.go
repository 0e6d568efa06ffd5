package weibo

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/lukeashford/trendscan/internal/trends"
)

// Offline snapshot of a real hot list response, used when the API is
// unreachable so a run can still complete end to end.
//
//go:embed sample_hotlist.json
var sampleHotlist []byte

func sampleTopics(limit int) ([]trends.Topic, error) {
	var parsed hotListResponse
	if err := json.Unmarshal(sampleHotlist, &parsed); err != nil {
		return nil, fmt.Errorf("offline sample data: %w", err)
	}
	return parseEntries(parsed.Result.List, limit), nil
}
