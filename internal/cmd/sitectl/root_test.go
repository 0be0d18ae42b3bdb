package sitectl

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the CLI against a temp database and returns stdout.
func run(t *testing.T, dbPath string, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	cmd := Root()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--db-path", dbPath}, args...))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("sitectl %s: %v", strings.Join(args, " "), err)
	}

	// Package-level flag values persist between executions.
	postTitle, postSlug, postContent, postFile = "", "", "", ""
	return out.String()
}

func TestPostLifecycle(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "site.db")

	out := run(t, dbPath, "post", "create", "--title", "My First Post", "--content", "Hello.")
	if !strings.Contains(out, "created post 1 (my-first-post)") {
		t.Fatalf("create output = %q", out)
	}

	out = run(t, dbPath, "post", "list")
	if !strings.Contains(out, "My First Post") || !strings.Contains(out, "my-first-post") {
		t.Fatalf("list output = %q", out)
	}

	out = run(t, dbPath, "post", "show", "my-first-post")
	if !strings.Contains(out, "title:   My First Post") || !strings.Contains(out, "Hello.") {
		t.Fatalf("show output = %q", out)
	}

	out = run(t, dbPath, "post", "update", "1", "--content", "Edited.")
	if !strings.Contains(out, "updated post 1 (my-first-post)") {
		t.Fatalf("update output = %q", out)
	}
	out = run(t, dbPath, "post", "show", "1")
	if !strings.Contains(out, "Edited.") {
		t.Fatalf("show after update output = %q", out)
	}

	out = run(t, dbPath, "post", "delete", "my-first-post")
	if !strings.Contains(out, "deleted post 1") {
		t.Fatalf("delete output = %q", out)
	}
	out = run(t, dbPath, "post", "list")
	if !strings.Contains(out, "No posts found.") {
		t.Fatalf("list after delete output = %q", out)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "site.db")

	out := run(t, dbPath, "seed")
	if !strings.Contains(out, "seeded 3 post(s)") {
		t.Fatalf("seed output = %q", out)
	}
	out = run(t, dbPath, "seed")
	if !strings.Contains(out, "seeded 0 post(s)") {
		t.Fatalf("second seed output = %q", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out := run(t, filepath.Join(t.TempDir(), "site.db"), "version")
	if !strings.Contains(out, "sitectl dev") {
		t.Fatalf("version output = %q", out)
	}
}

func TestCreateRequiresTitle(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "site.db")

	var out bytes.Buffer
	cmd := Root()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--db-path", dbPath, "post", "create", "--content", "body"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for missing title")
	}
	postTitle, postSlug, postContent, postFile = "", "", "", ""
}
