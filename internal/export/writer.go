package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteDocument serializes the document as indented JSON and writes it to
// path, creating the directory if needed. If the directory cannot be created
// the write falls back to fallbackPath instead. Returns the path actually
// written.
func WriteDocument(doc *Document, path, fallbackPath string, w io.Writer) (string, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if _, err := os.Stat(dir); err != nil {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				fmt.Fprintf(w, "Could not create directory %s: %v\n", dir, err)
				fmt.Fprintf(w, "Falling back to %s\n", fallbackPath)
				path = fallbackPath
			} else {
				fmt.Fprintf(w, "Created directory: %s\n", dir)
			}
		}
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
