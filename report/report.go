package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vcnkl/xbuild/models"
)

// Meta carries run-level context recorded in the report header.
type Meta struct {
	Generated time.Time
	Revision  string
	Version   string
}

// WriteFile renders rep as a plain-text report and writes it atomically, so
// a crash mid-write never leaves a truncated report behind.
func WriteFile(path string, rep *models.Report, meta Meta) error {
	var b strings.Builder
	Render(&b, rep, meta)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write report file %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename report file: %w", err)
	}

	return nil
}

// Render writes the human-readable report: a header with run metadata,
// one detail block per target in run order, and a summary line.
func Render(w io.Writer, rep *models.Report, meta Meta) {
	fmt.Fprintln(w, "=== xbuild release report ===")
	if !meta.Generated.IsZero() {
		fmt.Fprintf(w, "Generated: %s\n", meta.Generated.Format("2006-01-02 15:04:05"))
	}
	if meta.Revision != "" {
		if meta.Version != "" {
			fmt.Fprintf(w, "Revision:  %s (%s)\n", meta.Revision, meta.Version)
		} else {
			fmt.Fprintf(w, "Revision:  %s\n", meta.Revision)
		}
	}
	fmt.Fprintf(w, "Targets:   %d total, %d succeeded, %d failed\n",
		len(rep.Results), rep.Succeeded(), len(rep.Failed()))
	fmt.Fprintf(w, "Duration:  %s\n", rep.Duration.Round(time.Millisecond))

	for _, res := range rep.Results {
		fmt.Fprintf(w, "\n--- %s ---\n", res.Triple)
		if res.Success {
			fmt.Fprintln(w, "Status:   ok")
		} else {
			fmt.Fprintf(w, "Status:   FAILED (exit %d)\n", res.ExitCode)
		}
		fmt.Fprintf(w, "Duration: %s\n", res.Duration.Round(time.Millisecond))
		if !res.Success {
			if res.Err != nil {
				fmt.Fprintf(w, "Error:    %v\n", res.Err)
			}
			if res.Output != "" {
				fmt.Fprintln(w, "Output:")
				fmt.Fprintln(w, strings.TrimRight(res.Output, "\n"))
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if rep.OK() {
		fmt.Fprintf(w, "Build complete! %d/%d targets succeeded\n",
			rep.Succeeded(), len(rep.Results))
	} else {
		fmt.Fprintf(w, "Build failed: %d/%d targets succeeded\n",
			rep.Succeeded(), len(rep.Results))
		for _, res := range rep.Failed() {
			fmt.Fprintf(w, "  failed: %s\n", res.Triple)
		}
	}
}
