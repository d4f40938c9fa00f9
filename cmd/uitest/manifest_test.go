package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"uitest/internal/check"
)

func TestFindUitestTomlWalksParents(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "tests", "ui")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	manifestPath := filepath.Join(root, "uitest.toml")
	if err := os.WriteFile(manifestPath, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	got, ok, err := findUitestToml(nested)
	if err != nil || !ok {
		t.Fatalf("findUitestToml() = (%q, %v, %v), want a hit", got, ok, err)
	}
	if got != manifestPath {
		t.Errorf("found %q, want %q", got, manifestPath)
	}
}

func TestFindUitestTomlMissing(t *testing.T) {
	_, ok, err := findUitestToml(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("findUitestToml() reported a hit in an empty tree")
	}
}

func TestLoadManifest(t *testing.T) {
	root := t.TempDir()
	content := `
[program]
binary = "surgec"
args = ["--error-format=json"]
out_dir_flag = "--out-dir"
out_dir = "target/uitest"

[output]
conflicts = "error"
bless_command = "make bless"

[platform]
target = "x86_64-unknown-linux-gnu"
host = "x86_64-unknown-linux-gnu"
`
	if err := os.WriteFile(filepath.Join(root, "uitest.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	man, ok, err := loadManifest(root)
	if err != nil || !ok {
		t.Fatalf("loadManifest() = (%v, %v), want a manifest", ok, err)
	}
	if man.Root != root {
		t.Errorf("Root = %q, want %q", man.Root, root)
	}
	if man.Config.Program.Binary != "surgec" {
		t.Errorf("Binary = %q", man.Config.Program.Binary)
	}
	if !reflect.DeepEqual(man.Config.Program.Args, []string{"--error-format=json"}) {
		t.Errorf("Args = %v", man.Config.Program.Args)
	}
	if man.Config.Output.BlessCommand != "make bless" {
		t.Errorf("BlessCommand = %q", man.Config.Output.BlessCommand)
	}
	if man.Config.Platform.Target != "x86_64-unknown-linux-gnu" {
		t.Errorf("Target = %q", man.Config.Platform.Target)
	}
}

func TestParseMode(t *testing.T) {
	mode, err := parseMode("fail", 2)
	if err != nil {
		t.Fatal(err)
	}
	if mode.Kind != check.ModeFail || mode.ExitCode != 2 {
		t.Errorf("parseMode(fail, 2) = %+v", mode)
	}
	if mode, err = parseMode("yolo", 1); err != nil || mode.Kind != check.ModeYolo {
		t.Errorf("parseMode(yolo) = (%+v, %v)", mode, err)
	}
	if _, err := parseMode("explode", 1); err == nil {
		t.Error("parseMode() accepted an unknown mode")
	}
}
