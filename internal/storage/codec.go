package storage

import (
	"encoding/json"
	"fmt"

	"github.com/Bukisoo/d3-force-tree-app/internal/model"
)

// EncodeForest serializes the forest as the persisted JSON array.
func EncodeForest(f model.Forest) (string, error) {
	if f == nil {
		f = model.Forest{}
	}
	data, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("failed to marshal forest: %w", err)
	}
	return string(data), nil
}

// DecodeForest parses a persisted JSON array. Missing children arrays come
// back empty rather than nil.
func DecodeForest(s string) (model.Forest, error) {
	var f model.Forest
	if err := json.Unmarshal([]byte(s), &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal forest: %w", err)
	}
	normalize(f)
	return f, nil
}

func normalize(nodes []model.Node) {
	for i := range nodes {
		if nodes[i].Children == nil {
			nodes[i].Children = []model.Node{}
		}
		normalize(nodes[i].Children)
	}
}
