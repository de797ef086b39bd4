package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	}

	cases := map[string]string{
		"":                "",
		"/srv/models":     "/srv/models",
		"~":               home,
		"~/models":        filepath.Join(home, "models"),
		"~/exports/churn": filepath.Join(home, "exports/churn"),
	}
	for in, want := range cases {
		got, err := ExpandHome(in)
		if err != nil {
			t.Fatalf("ExpandHome(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ExpandHome(%q)=%q want %q", in, got, want)
		}
	}
}

func TestReadOptional(t *testing.T) {
	dir := t.TempDir()
	if _, ok, err := ReadOptional(filepath.Join(dir, "missing.json")); ok || err != nil {
		t.Fatalf("missing file: ok=%v err=%v", ok, err)
	}
	if _, _, err := ReadOptional(dir); err == nil {
		t.Fatalf("expected error for directory")
	}
	p := filepath.Join(dir, "a.json")
	if err := os.WriteFile(p, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, ok, err := ReadOptional(p)
	if err != nil || !ok || string(b) != "{}" {
		t.Fatalf("got %q ok=%v err=%v", b, ok, err)
	}
	if !PathExists(p) || PathExists(filepath.Join(dir, "nope")) {
		t.Fatalf("PathExists mismatch")
	}
}

func TestAbsDir(t *testing.T) {
	got, err := AbsDir("relative/models")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !filepath.IsAbs(got) || filepath.Base(got) != "models" {
		t.Fatalf("unexpected abs dir %q", got)
	}
}
