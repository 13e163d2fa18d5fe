package storage

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Bukisoo/d3-force-tree-app/internal/model"
)

// FormatFromPath guesses the file format from the extension.
func FormatFromPath(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xml":
		return "xml"
	default:
		return "json"
	}
}

// FileExport writes the forest to a file in the specified format (JSON or XML).
func FileExport(f model.Forest, filename string, format string) error {
	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(f, "", "  ")
	case "xml":
		data, err = xml.MarshalIndent(model.Document{Nodes: f}, "", "  ")
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal forest: %w", err)
	}

	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// FileImport reads a forest from a file in the specified format (JSON or XML).
func FileImport(filename string, format string) (model.Forest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var f model.Forest
	switch format {
	case "json":
		err = json.Unmarshal(data, &f)
	case "xml":
		var doc model.Document
		err = xml.Unmarshal(data, &doc)
		f = doc.Nodes
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal data: %w", err)
	}
	normalize(f)
	return f, nil
}
