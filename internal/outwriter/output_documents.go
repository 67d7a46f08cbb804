package outwriter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/schema"
)

// Permissions for written documents and their directory.
const (
	documentFileMode = 0o644
	documentDirMode  = 0o755
)

// WriteDocuments writes compiled documents. With an output directory every
// compiled model goes to <dir>/<model_name>.xml; otherwise the description
// must expand to exactly one model, written to the output file or stdout.
// Failed results are skipped; reporting them is the caller's job.
func WriteDocuments(results []schema.ModelResult, cfg *contract.Config) error {
	if cfg.OutputDir != "" {
		return writeDocumentDir(results, cfg)
	}
	if len(results) != 1 {
		return fmt.Errorf("description expands to %d models; use --output-dir to write them", len(results))
	}
	r := results[0]
	if r.Failed() {
		return nil
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		_, err := w.Write(r.Document)
		return err
	}, "Wrote PMML")
}

// DocumentPath returns where a model is written inside dir.
func DocumentPath(dir, modelName string) (string, error) {
	if modelName == "" || modelName == "." || modelName == ".." || strings.ContainsAny(modelName, `/\`) {
		return "", fmt.Errorf("model name %q cannot be used as a file name", modelName)
	}
	return filepath.Join(dir, modelName+".xml"), nil
}

// writeDocumentDir writes one file per compiled model, creating dir when needed.
// Every name is checked before the first file is written.
func writeDocumentDir(results []schema.ModelResult, cfg *contract.Config) error {
	paths := make([]string, len(results))
	for i, r := range results {
		if r.Failed() {
			continue
		}
		path, err := DocumentPath(cfg.OutputDir, r.Name)
		if err != nil {
			return err
		}
		paths[i] = path
	}

	if err := os.MkdirAll(cfg.OutputDir, documentDirMode); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	written := 0
	for i, r := range results {
		if r.Failed() {
			continue
		}
		if err := os.WriteFile(paths[i], r.Document, documentFileMode); err != nil {
			return fmt.Errorf("failed to write %s: %w", paths[i], err)
		}
		written++
	}

	contract.LogInfo(cfg.UseEmojis, "💾", fmt.Sprintf("Wrote %d %s to %s", written, plural(written, "document", "documents"), cfg.OutputDir))
	return nil
}
