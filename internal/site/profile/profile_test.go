package profile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write profile file: %v", err)
	}
	return path
}

func TestLoadParsesProfile(t *testing.T) {
	t.Parallel()

	path := writeProfile(t, `
name: Louis Branch
tagline: Builder of small systems
bio: I write Go.
links:
  - label: GitHub
    url: https://github.com/louisbranch
projects:
  - name: fracturing.space
    description: Tabletop engine
    url: https://fracturing.space
    tags: [go, grpc]
`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if p.Name != "Louis Branch" {
		t.Fatalf("name = %q, want %q", p.Name, "Louis Branch")
	}
	if len(p.Links) != 1 || p.Links[0].URL != "https://github.com/louisbranch" {
		t.Fatalf("links = %+v", p.Links)
	}
	if len(p.Projects) != 1 || p.Projects[0].Tags[1] != "grpc" {
		t.Fatalf("projects = %+v", p.Projects)
	}
}

func TestLoadRejectsInvalidProfiles(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"missing name":    "tagline: no name here",
		"incomplete link": "name: x\nlinks:\n  - label: GitHub",
		"unnamed project": "name: x\nprojects:\n  - description: mystery",
	}
	for name, content := range cases {
		path := writeProfile(t, content)
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	t.Parallel()

	p, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	if p.Name == "" {
		t.Fatal("default profile needs a name")
	}

	p, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if p.Name == "" {
		t.Fatal("missing file should fall back to default")
	}
}
