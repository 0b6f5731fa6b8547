package domain

import "strconv"

// LayerRecord is one detected molecule from a layer source table. Transient;
// it only exists while a single layer is being aggregated.
type LayerRecord struct {
	Gene string
	X    float64
	Y    float64
}

// LayerRange is a half-open span [From, To) of layer indices, processed in
// ascending order.
type LayerRange struct {
	From int
	To   int
}

// Len returns the number of layers in the range.
func (r LayerRange) Len() int {
	if r.To <= r.From {
		return 0
	}
	return r.To - r.From
}

// LayerKey converts a layer index to its artifact map key.
func LayerKey(layer int) string { return strconv.Itoa(layer) }

// GeneDataset accumulates one gene's coordinates across every processed
// layer. Layers maps the decimal layer index to the flattened interleaving
// [x0, y0, x1, y1, ...] of that layer's records; the slice length is always
// even. A processed layer is always present as a key, even when empty, so
// consumers can distinguish "no data" from "layer never processed".
type GeneDataset struct {
	Layers map[string][]Coord `json:"layers"`
}

// NewGeneDataset returns an empty dataset.
func NewGeneDataset() *GeneDataset {
	return &GeneDataset{Layers: make(map[string][]Coord)}
}

// EnsureLayer records an explicit empty coordinate sequence for the layer if
// none has been appended. Empty slices marshal as [] rather than null.
func (d *GeneDataset) EnsureLayer(layer int) {
	key := LayerKey(layer)
	if _, ok := d.Layers[key]; !ok {
		d.Layers[key] = make([]Coord, 0)
	}
}

// Append flattens a normalized (x, y) pair onto the layer's sequence,
// preserving source row order.
func (d *GeneDataset) Append(layer int, x, y float64) {
	key := LayerKey(layer)
	d.Layers[key] = append(d.Layers[key], Normalize(x), Normalize(y))
}

// Empty reports whether every layer sequence is empty. Empty datasets are
// retained in memory but excluded from persistence.
func (d *GeneDataset) Empty() bool {
	for _, coords := range d.Layers {
		if len(coords) > 0 {
			return false
		}
	}
	return true
}
