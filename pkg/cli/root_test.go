package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/zadonuts/donutdex/pkg/matcher"
)

func TestConstants(t *testing.T) {
	if name != "donutdex" {
		t.Errorf("name = %v, want donutdex", name)
	}
	if versionDefault != "dev" {
		t.Errorf("versionDefault = %v, want dev", versionDefault)
	}
	if version == "" {
		t.Error("version should not be empty")
	}
}

func TestRootCmd_CommandStructure(t *testing.T) {
	cmd := rootCmd()

	if cmd.Name != "donutdex" {
		t.Errorf("Name = %v, want donutdex", cmd.Name)
	}

	if cmd.Version == "" {
		t.Error("Version should not be empty")
	}

	if cmd.Description == "" {
		t.Error("Description should not be empty")
	}

	if !cmd.EnableShellCompletion {
		t.Error("shell completion should be enabled")
	}

	for _, flagName := range []string{"db", "log-level"} {
		found := false
		for _, flag := range cmd.Flags {
			if hasName(flag, flagName) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("global flag %q not found", flagName)
		}
	}

	for _, name := range []string{"search", "cook", "inventory", "db"} {
		if findCommand(cmd, name) == nil {
			t.Errorf("command %q not found", name)
		}
	}
}

// TestRootCmd_EndToEnd drives the binary's entry point against a throwaway
// sqlite database: the first search on an empty inventory matches nothing,
// stocking a berry makes its recipe cookable, and cooking consumes it.
func TestRootCmd_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "donutdex.db")

	run := func(args ...string) error {
		return rootCmd().Run(context.Background(), append([]string{"donutdex", "--db", dbPath}, args...))
	}

	emptyPath := filepath.Join(dir, "empty.json")
	if err := run("search", "--format", "json", "--output", emptyPath); err != nil {
		t.Fatalf("search on empty inventory failed: %v", err)
	}
	var empty matcher.MatchResult
	mustDecode(t, emptyPath, &empty)
	if empty.Matched != 0 {
		t.Errorf("Matched = %d on empty inventory, want 0", empty.Matched)
	}

	if err := run("inventory", "set", "Pecha Berry", "3"); err != nil {
		t.Fatalf("inventory set failed: %v", err)
	}

	stockedPath := filepath.Join(dir, "stocked.json")
	if err := run("search", "--format", "json", "--output", stockedPath); err != nil {
		t.Fatalf("search after stocking failed: %v", err)
	}
	var stocked matcher.MatchResult
	mustDecode(t, stockedPath, &stocked)
	if stocked.Matched == 0 {
		t.Fatal("expected at least one craftable recipe after stocking pecha berries")
	}
	foundPecha := false
	for _, r := range stocked.Recipes {
		if r.ID == 1 {
			foundPecha = true
		}
	}
	if !foundPecha {
		t.Error("recipe 1 should be craftable with pecha berries in stock")
	}

	receiptPath := filepath.Join(dir, "receipt.json")
	if err := run("cook", "--format", "json", "--output", receiptPath, "1"); err != nil {
		t.Fatalf("cook failed: %v", err)
	}
	var receipt matcher.CookResult
	mustDecode(t, receiptPath, &receipt)
	if receipt.Recipe == nil || receipt.Recipe.ID != 1 {
		t.Fatalf("receipt recipe = %+v, want id 1", receipt.Recipe)
	}
	if got := receipt.Remaining["pecha berry"]; got != 2 {
		t.Errorf("remaining pecha = %d, want 2", got)
	}

	if err := run("cook", "9999"); err == nil {
		t.Error("expected error cooking an unknown recipe id")
	}
}

func mustDecode(t *testing.T, path string, v any) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("failed to decode %s: %v", path, err)
	}
}
