// Package artifact serializes per-gene datasets into the compressed JSON
// objects served to visualization clients.
package artifact

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"

	"genepack/internal/blob"
	"genepack/pkg/domain"
)

// ContentType is the MIME type recorded for every artifact.
const ContentType = "application/gzip"

// Key returns the storage key for a gene's artifact.
func Key(gene string) string { return gene + ".json.gz" }

// Writer persists gene datasets to a blob store.
type Writer struct {
	store blob.Store
}

// NewWriter returns a writer backed by the given store.
func NewWriter(store blob.Store) *Writer { return &Writer{store: store} }

// Write serializes the dataset as {"layers":{...}}, gzips it, and stores it
// under the gene's key, replacing any artifact from a previous run. The
// gzip stream carries no mod time, so unchanged input yields byte-identical
// artifacts across runs.
func (w *Writer) Write(ctx context.Context, gene string, ds *domain.GeneDataset) (blob.Info, error) {
	payload, err := json.Marshal(ds)
	if err != nil {
		return blob.Info{}, fmt.Errorf("encode %s: %w", gene, err)
	}
	var buf bytes.Buffer
	gz, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return blob.Info{}, err
	}
	if _, err := gz.Write(payload); err != nil {
		return blob.Info{}, fmt.Errorf("compress %s: %w", gene, err)
	}
	if err := gz.Close(); err != nil {
		return blob.Info{}, fmt.Errorf("compress %s: %w", gene, err)
	}
	info, err := w.store.Put(ctx, Key(gene), &buf, blob.PutOptions{
		ContentType: ContentType,
		Metadata:    map[string]string{"gene": gene},
	})
	if err != nil {
		return blob.Info{}, fmt.Errorf("store %s: %w", Key(gene), err)
	}
	return info, nil
}

// Read fetches and decodes a stored artifact. Used by verification tooling
// and tests.
func Read(ctx context.Context, store blob.Store, gene string) (*domain.GeneDataset, error) {
	_, rc, err := store.Get(ctx, Key(gene))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	gz, err := gzip.NewReader(rc)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", Key(gene), err)
	}
	defer func() { _ = gz.Close() }()
	var ds domain.GeneDataset
	if err := json.NewDecoder(gz).Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode %s: %w", Key(gene), err)
	}
	return &ds, nil
}
