package proj

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"lumen/report"
)

func TestInitAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	created, err := InitManifest(dir, "demo")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if created.Name != "demo" || created.LumenVersion != LumenVersion {
		t.Fatalf("created manifest = %+v", created)
	}

	loaded, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Name != "demo" {
		t.Errorf("name = %q, want %q", loaded.Name, "demo")
	}
	if loaded.LogLevel != "verbose" {
		t.Errorf("log level = %q, want verbose", loaded.LogLevel)
	}
	if !loaded.Opt.Peephole {
		t.Error("default manifest should enable the peephole pass")
	}
	if loaded.ReporterLogLevel() != report.LogLevelVerbose {
		t.Errorf("reporter log level = %d, want verbose", loaded.ReporterLogLevel())
	}
}

func TestInitRejectsExisting(t *testing.T) {
	dir := t.TempDir()

	if _, err := InitManifest(dir, "demo"); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := InitManifest(dir, "demo"); err == nil {
		t.Fatal("expected an error for an existing manifest")
	}
}

func TestInitRejectsBadName(t *testing.T) {
	if _, err := InitManifest(t.TempDir(), "9lives"); err == nil {
		t.Fatal("expected an error for a name starting with a digit")
	}
	if _, err := InitManifest(t.TempDir(), "no-dashes"); err == nil {
		t.Fatal("expected an error for a name with punctuation")
	}
}

func TestLoadMissingManifest(t *testing.T) {
	if _, err := LoadManifest(t.TempDir()); err == nil {
		t.Fatal("expected an error for a missing manifest")
	}
}

func TestLoadRejectsMissingName(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "lumen-version = \""+LumenVersion+"\"\n")

	if _, err := LoadManifest(dir); err == nil {
		t.Fatal("expected an error for a manifest without a name")
	}
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "name = \"demo\"\nlumen-version = \""+LumenVersion+"\"\nlog-level = \"chatty\"\n")

	if _, err := LoadManifest(dir); err == nil {
		t.Fatal("expected an error for an unknown log level")
	}
}

func writeManifest(t *testing.T, dir, contents string) {
	t.Helper()

	if err := ioutil.WriteFile(filepath.Join(dir, ManifestFileName), []byte(contents), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
}
