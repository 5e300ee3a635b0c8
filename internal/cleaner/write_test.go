package cleaner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/JonMunkholm/policy-cleaner/internal/core"
)

func TestWrite(t *testing.T) {
	set := parseSet(t,
		`Ann,Lee,30.0,ann@example.com,555-123-4567,"1 Main St, Apt 2",$1500.50,10,active,Bo,03/15/1985,`,
		"Ben,Ray,,,,,,,,,,",
	)
	runSteps(t, set, CoerceTypes)

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := Write(path, set); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := policyHeader + "\n" +
		`Ann,Lee,30,ann@example.com,555-123-4567,"1 Main St, Apt 2",1500.5,10,active,Bo,1985-03-15,` + "\n" +
		"Ben,Ray,30,,,,1500.5,10,,,,\n"
	if string(got) != want {
		t.Errorf("Write() wrote\n%s\nwant\n%s", got, want)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o644 {
		t.Errorf("mode = %v, want 0644", perm)
	}
}

func TestWrite_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := os.WriteFile(path, []byte("stale\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	set := parseSet(t, "Ann,Lee,30,,,,100,10,,,,")
	if err := Write(path, set); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	reloaded, _, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() written file: %v", err)
	}
	if reloaded.Len() != 1 || reloaded.Records[0].Value("policy_holder_name") != "Ann" {
		t.Errorf("reloaded %d records", reloaded.Len())
	}
}

func TestWrite_FailureLeavesNoFiles(t *testing.T) {
	dir := t.TempDir()

	// A non-empty directory in the way makes the final rename fail.
	target := filepath.Join(dir, "out.csv")
	if err := os.MkdirAll(filepath.Join(target, "keep"), 0o755); err != nil {
		t.Fatal(err)
	}

	set := parseSet(t, "Ann,Lee,30")
	err := Write(target, set)

	var dse *core.DataSourceError
	if !errors.As(err, &dse) {
		t.Fatalf("Write() error = %v, want *DataSourceError", err)
	}
	if dse.Op != "write" {
		t.Errorf("Op = %q, want write", dse.Op)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("directory holds %v, want only out.csv", names)
	}
}

func TestWrite_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "out.csv")
	err := Write(path, parseSet(t, "Ann,Lee,30"))
	if !core.IsDataSourceError(err) {
		t.Fatalf("Write() error = %v, want *DataSourceError", err)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("no output should exist")
	}
}
