package output

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
)

// DiffResult summarizes the comparison of two manifests.
type DiffResult struct {
	// HasChanges indicates whether the manifests differ.
	HasChanges bool

	// Report is the rendered YAML-aware diff, empty when equal.
	Report string
}

// Summary returns a one-line description of the result.
func (r *DiffResult) Summary() string {
	if !r.HasChanges {
		return "No changes"
	}
	return "Manifests differ"
}

// DiffManifestFiles compares two manifest files on disk and returns a
// YAML-aware diff report.
func DiffManifestFiles(oldPath, newPath string, useColor bool) (*DiffResult, error) {
	oldData, err := os.ReadFile(oldPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", oldPath, err)
	}
	newData, err := os.ReadFile(newPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", newPath, err)
	}
	return DiffManifests(oldData, newData, oldPath, newPath, useColor)
}

// DiffManifests compares two serialized manifests using dyff.
func DiffManifests(oldData, newData []byte, oldName, newName string, useColor bool) (*DiffResult, error) {
	oldInput, err := parseYAMLInput(oldName, oldData)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", oldName, err)
	}
	newInput, err := parseYAMLInput(newName, newData)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", newName, err)
	}

	report, err := dyff.CompareInputFiles(oldInput, newInput)
	if err != nil {
		return nil, fmt.Errorf("comparing manifests: %w", err)
	}

	if len(report.Diffs) == 0 {
		return &DiffResult{}, nil
	}

	rendered, err := renderDyffReport(report, useColor)
	if err != nil {
		return nil, err
	}
	return &DiffResult{HasChanges: true, Report: rendered}, nil
}

// parseYAMLInput parses YAML bytes into a dyff input file.
func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{Location: name, Documents: nil}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}
	return ytbx.InputFile{Location: name, Documents: docs}, nil
}

// renderDyffReport renders a dyff report to a string.
func renderDyffReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer
	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}
	if err := reportWriter.WriteReport(&buf); err != nil {
		return "", fmt.Errorf("rendering diff report: %w", err)
	}
	return buf.String(), nil
}

// IndentDiff indents a diff string for display under a heading.
func IndentDiff(diff string, indent string) string {
	if diff == "" {
		return ""
	}

	var sb strings.Builder
	for _, line := range strings.Split(diff, "\n") {
		if line != "" {
			sb.WriteString(indent)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
