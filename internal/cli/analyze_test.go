package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	pkgio "github.com/matzehuels/sightline/pkg/io"
	"github.com/matzehuels/sightline/pkg/pipeline"
	"github.com/matzehuels/sightline/pkg/seating"
	"github.com/matzehuels/sightline/pkg/sightline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"table"}},
		{"json", []string{"json"}},
		{"JSON, svg", []string{"json", "svg"}},
		{"table,,svg,", []string{"table", "svg"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitFormats(t *testing.T) {
	table, artifacts := splitFormats([]string{"table", "json", "svg"})
	if !table {
		t.Error("table should be selected")
	}
	if !reflect.DeepEqual(artifacts, []string{"json", "svg"}) {
		t.Errorf("artifacts = %v, want [json svg]", artifacts)
	}

	table, artifacts = splitFormats([]string{"svg"})
	if table || len(artifacts) != 1 {
		t.Errorf("splitFormats([svg]) = %v, %v", table, artifacts)
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		input    string
		output   string
		multiple bool
		want     string
	}{
		{"from input", "json", "room.json", "", false, "room.analysis.json"},
		{"input in dir", "svg", filepath.Join("plans", "room.toml"), "", true, filepath.Join("plans", "room.analysis.svg")},
		{"single output as given", "svg", "room.json", "section.svg", false, "section.svg"},
		{"output base", "json", "room.json", "report", true, "report.analysis.json"},
		{"output extension stripped", "svg", "room.json", "report.json", true, "report.analysis.svg"},
		{"unknown extension kept", "json", "room.json", "report.v2", true, "report.v2.analysis.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := artifactPath(tt.format, tt.input, tt.output, tt.multiple); got != tt.want {
				t.Errorf("artifactPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "room.json")
	artifacts := map[string][]byte{
		"json": []byte(`{"rows":[]}`),
		"svg":  []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`),
	}

	paths, err := writeArtifacts(artifacts, []string{"json", "svg"}, input, "")
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}
	want := []string{
		filepath.Join(dir, "room.analysis.json"),
		filepath.Join(dir, "room.analysis.svg"),
	}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	data, err := os.ReadFile(paths[1])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "<svg") {
		t.Errorf("svg file = %q", data)
	}
}

func TestSummaryLine(t *testing.T) {
	report, err := sightline.Evaluate(seating.Add(seating.Default()), sightline.DefaultScreen())
	if err != nil {
		t.Fatal(err)
	}

	got := summaryLine(report, false)
	if !strings.Contains(got, "2 rows") {
		t.Errorf("summaryLine() = %q, want row count", got)
	}
	if strings.Contains(summaryLine(report, false), iconCached) {
		t.Error("a fresh analysis should not show the cached icon")
	}
	if !strings.Contains(summaryLine(report, true), iconCached) {
		t.Error("a cached analysis should show the cached icon")
	}
}

func TestReportTable(t *testing.T) {
	report, err := sightline.Evaluate(seating.Add(seating.Default()), sightline.DefaultScreen())
	if err != nil {
		t.Fatal(err)
	}

	out := reportTable(report, 0)
	for _, h := range reportHeaders {
		if !strings.Contains(out, h) {
			t.Errorf("table missing header %q", h)
		}
	}
	// The front row has nothing to clear.
	if !strings.Contains(out, "—") {
		t.Error("table should mark the front row clearance as not applicable")
	}
}

func TestRunAnalyzeFailOn(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	input := filepath.Join(t.TempDir(), "room.json")
	if err := pkgio.ExportRows(seating.Add(seating.Default()), input); err != nil {
		t.Fatal(err)
	}
	c := New(io.Discard, LogInfo)

	tests := []struct {
		name    string
		failOn  string
		wantErr bool
	}{
		{"no threshold", "", false},
		{"fail never reached", "fail", false},
		{"optimal always reached", "optimal", true},
		{"unknown status", "terrible", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := analyzeFlags{formats: "json", noCache: true, failOn: tt.failOn}
			err := c.runAnalyze(context.Background(), input, pipeline.Options{}, flags)
			if (err != nil) != tt.wantErr {
				t.Errorf("runAnalyze() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunAnalyzeInvalidFormat(t *testing.T) {
	c := New(io.Discard, LogInfo)
	err := c.runAnalyze(context.Background(), "room.json", pipeline.Options{}, analyzeFlags{formats: "pdf"})
	if err == nil {
		t.Fatal("runAnalyze() should reject an unknown format")
	}
}
