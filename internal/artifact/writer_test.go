package artifact

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"testing"

	"genepack/internal/blob"
	"genepack/pkg/domain"
)

func sampleDataset() *domain.GeneDataset {
	ds := domain.NewGeneDataset()
	ds.Append(43, 10, 20)
	ds.Append(43, 10.5, 21)
	ds.EnsureLayer(44)
	ds.EnsureLayer(45)
	return ds
}

func TestWriter_WriteAndRead(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemory()
	w := NewWriter(store)

	info, err := w.Write(ctx, "adka", sampleDataset())
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if info.Key != "adka.json.gz" {
		t.Fatalf("key %q", info.Key)
	}
	if info.ContentType != ContentType {
		t.Fatalf("content type %q", info.ContentType)
	}
	if info.Size <= 0 {
		t.Fatalf("size %d", info.Size)
	}

	back, err := Read(ctx, store, "adka")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := len(back.Layers); got != 3 {
		t.Fatalf("expected 3 layer keys, got %d", got)
	}
	coords := back.Layers["43"]
	want := []float64{10, 20, 10.5, 21}
	if len(coords) != len(want) {
		t.Fatalf("coords %v", coords)
	}
	for i, v := range want {
		if float64(coords[i]) != v {
			t.Fatalf("coord %d: got %v want %v", i, coords[i], v)
		}
	}
	if len(back.Layers["44"]) != 0 || len(back.Layers["45"]) != 0 {
		t.Fatalf("empty layers not preserved: %+v", back.Layers)
	}
}

func TestWriter_PayloadShape(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemory()
	if _, err := NewWriter(store).Write(ctx, "adka", sampleDataset()); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, rc, err := store.Get(ctx, "adka.json.gz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = rc.Close() }()
	gz, err := gzip.NewReader(rc)
	if err != nil {
		t.Fatalf("gzip: %v", err)
	}
	raw, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("readall: %v", err)
	}
	want := `{"layers":{"43":[10,20,10.5,21],"44":[],"45":[]}}`
	if string(raw) != want {
		t.Fatalf("payload\n got: %s\nwant: %s", raw, want)
	}
}

func TestWriter_Deterministic(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemory()
	w := NewWriter(store)
	read := func() []byte {
		t.Helper()
		_, rc, err := store.Get(ctx, "adka.json.gz")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		defer func() { _ = rc.Close() }()
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("readall: %v", err)
		}
		return b
	}
	if _, err := w.Write(ctx, "adka", sampleDataset()); err != nil {
		t.Fatalf("write: %v", err)
	}
	first := read()
	if _, err := w.Write(ctx, "adka", sampleDataset()); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	second := read()
	if !bytes.Equal(first, second) {
		t.Fatalf("artifact bytes differ across identical runs")
	}
}

func TestRead_NumericEquality(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemory()
	ds := domain.NewGeneDataset()
	ds.Append(50, 123456, 0.125)
	if _, err := NewWriter(store).Write(ctx, "ahi1", ds); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := Read(ctx, store, "ahi1")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	b, _ := json.Marshal(back.Layers["50"])
	if string(b) != "[123456,0.125]" {
		t.Fatalf("unexpected coords %s", b)
	}
}
