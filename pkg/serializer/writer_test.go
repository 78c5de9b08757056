package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestWriter_SerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatJSON, &buf)

	data := []testEntry{
		{Name: "Cheri Berry", Quantity: 5},
		{Name: "Oran Berry", Quantity: 2},
	}

	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result []testEntry
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	if len(result) != 2 {
		t.Errorf("Expected 2 items, got %d", len(result))
	}

	if result[0].Name != "Cheri Berry" || result[0].Quantity != 5 {
		t.Errorf("Unexpected data: %+v", result[0])
	}
}

func TestWriter_SerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatYAML, &buf)

	data := []testEntry{
		{Name: "Cheri Berry", Quantity: 5},
		{Name: "Oran Berry", Quantity: 2},
	}

	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result []testEntry
	if err := yaml.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal YAML: %v", err)
	}

	if len(result) != 2 {
		t.Errorf("Expected 2 items, got %d", len(result))
	}

	if result[1].Name != "Oran Berry" || result[1].Quantity != 2 {
		t.Errorf("Unexpected data: %+v", result[1])
	}
}

func TestWriter_SerializeTable(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	data := []testEntry{
		{Name: "Cheri Berry", Quantity: 5},
		{Name: "Oran Berry", Quantity: 2},
	}

	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "FIELD") || !strings.Contains(output, "VALUE") {
		t.Error("Expected table header not found")
	}

	if !strings.Contains(output, "[0].Name") || !strings.Contains(output, "[1].Quantity") {
		t.Error("Expected flattened keys not found")
	}

	if !strings.Contains(output, "Cheri Berry") {
		t.Error("Expected value 'Cheri Berry' not found")
	}
}

func TestWriter_SerializeTable_EmptyData(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	if err := writer.Serialize(context.Background(), []testEntry{}); err != nil {
		t.Fatalf("Serialize empty slice failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "<empty>") {
		t.Errorf("Expected '<empty>' in output for empty data, got: %s", output)
	}
}

func TestWriter_SerializeTable_NestedStructs(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	type inner struct {
		Stars    int
		Calories int
	}

	type outer struct {
		Name   string
		Recipe inner
	}

	data := outer{
		Name: "glazed",
		Recipe: inner{
			Stars:    4,
			Calories: 1800,
		},
	}

	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "Recipe.Stars") {
		t.Error("Expected flattened key 'Recipe.Stars' not found")
	}

	if !strings.Contains(output, "Recipe.Calories") {
		t.Error("Expected flattened key 'Recipe.Calories' not found")
	}

	if !strings.Contains(output, "1800") {
		t.Error("Expected value '1800' not found")
	}
}

func TestWriter_SerializeTable_Maps(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	data := map[string]any{
		"cheri berry": 5,
		"oran berry":  2,
		"pecha berry": 0,
	}

	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "cheri berry") || !strings.Contains(output, "pecha berry") {
		t.Error("Expected all keys in output")
	}
}

func TestWriter_SerializeTable_NilValues(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	type dataWithNil struct {
		Name  string
		Count *int
	}

	data := dataWithNil{Name: "cheri berry"}

	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Name") {
		t.Error("Expected 'Name' field in output")
	}
}

func TestWriter_SerializeTable_Scalar(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	if err := writer.Serialize(context.Background(), 42); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, defaultValueKey) || !strings.Contains(output, "42") {
		t.Errorf("Expected scalar under %q key, got: %s", defaultValueKey, output)
	}
}

func TestNewWriter_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(Format("invalid"), &buf)

	if writer == nil {
		t.Fatal("Expected non-nil writer")
	}

	// Should fall back to JSON.
	data := testEntry{Name: "Cheri Berry", Quantity: 5}
	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result testEntry
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal as JSON: %v", err)
	}

	if result.Name != "Cheri Berry" || result.Quantity != 5 {
		t.Errorf("Unexpected data: %+v", result)
	}
}

func TestNewWriter_NilOutput(t *testing.T) {
	writer := NewWriter(FormatJSON, nil)
	if writer == nil {
		t.Fatal("Expected non-nil writer with nil output")
	}
	if writer.output != os.Stdout {
		t.Error("Expected nil output to default to stdout")
	}
}

func TestWriter_Close(t *testing.T) {
	writer := NewStdoutWriter(FormatJSON)

	if err := writer.Close(); err != nil {
		t.Errorf("Close on stdout writer should not error: %v", err)
	}

	if err := writer.Close(); err != nil {
		t.Errorf("Multiple Close calls should not error: %v", err)
	}
}

func TestNewFileWriterOrStdout_EmptyPath(t *testing.T) {
	tests := []string{"", "  ", "\t", "\n"}

	for _, path := range tests {
		writer := NewFileWriterOrStdout(FormatJSON, path)
		if writer == nil {
			t.Fatalf("Expected non-nil writer for empty path %q", path)
		}
		if err := writer.Close(); err != nil {
			t.Errorf("Close failed for empty path writer: %v", err)
		}
	}
}

func TestNewFileWriterOrStdout_Success(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "entries.json")

	writer := NewFileWriterOrStdout(FormatJSON, tmpFile)
	if writer == nil {
		t.Fatal("Expected non-nil writer")
	}

	data := testEntry{Name: "Cheri Berry", Quantity: 5}
	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	content, err := os.ReadFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}

	var result testEntry
	if err := json.Unmarshal(content, &result); err != nil {
		t.Fatalf("Failed to unmarshal file content: %v", err)
	}

	if result.Name != "Cheri Berry" || result.Quantity != 5 {
		t.Errorf("Unexpected data in file: %+v", result)
	}
}

func TestNewFileWriterOrStdout_InvalidPath(t *testing.T) {
	writer := NewFileWriterOrStdout(FormatJSON, "/nonexistent/path/entries.json")

	// Should fall back to stdout.
	if writer == nil {
		t.Fatal("Expected non-nil writer (should fallback to stdout)")
	}

	if err := writer.Close(); err != nil {
		t.Errorf("Close should not error on fallback writer: %v", err)
	}
}

func TestFormat_IsUnknown(t *testing.T) {
	tests := []struct {
		format Format
		want   bool
	}{
		{FormatJSON, false},
		{FormatYAML, false},
		{FormatTable, false},
		{Format("invalid"), true},
		{Format("xml"), true},
		{Format(""), true},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if got := tt.format.IsUnknown(); got != tt.want {
				t.Errorf("Format(%q).IsUnknown() = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}

func TestSupportedFormats(t *testing.T) {
	formats := SupportedFormats()
	if len(formats) != 3 {
		t.Fatalf("Expected 3 supported formats, got %d", len(formats))
	}
	for _, f := range formats {
		if Format(f).IsUnknown() {
			t.Errorf("SupportedFormats returned unknown format %q", f)
		}
	}
}
