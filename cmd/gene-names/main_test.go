package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDeriveNames(t *testing.T) {
	got := deriveNames([]string{
		"adka.json.gz",
		"admp.csv.gz",
		"adka.csv",
		"ahi1",
		".hidden",
	})
	want := []string{"adka", "admp", "ahi1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestRun_WritesFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"ackr3b.csv.gz", "adka.csv.gz"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	out := filepath.Join(t.TempDir(), "genes.txt")
	if err := run([]string{"-dir", dir, "-o", out}, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "ackr3b\nadka\n" {
		t.Fatalf("output %q", b)
	}
}

func TestRun_Stdout(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "adka.csv.gz"), []byte("x"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	var buf bytes.Buffer
	if err := run([]string{"-dir", dir}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	if buf.String() != "adka\n" {
		t.Fatalf("stdout %q", buf.String())
	}
}

func TestRun_MissingDir(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"-dir", filepath.Join(t.TempDir(), "absent")}, &buf); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
