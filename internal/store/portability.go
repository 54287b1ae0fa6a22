package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// Snapshot is every stored document keyed by name, values kept verbatim.
type Snapshot map[string]json.RawMessage

func Export(ctx context.Context, b Backend) (Snapshot, error) {
	keys, err := b.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	out := make(Snapshot, len(keys))
	for _, key := range keys {
		raw, ok, err := b.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", key, err)
		}
		if !ok {
			continue
		}
		out[key] = json.RawMessage(raw)
	}
	return out, nil
}

func WriteSnapshot(w io.Writer, snap Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

func ReadSnapshot(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// Import writes every document in snap. Unknown keys and invalid JSON values
// are rejected before anything is written. With replace set, existing
// documents absent from snap are removed first.
func Import(ctx context.Context, b Backend, snap Snapshot, replace bool) error {
	known := make(map[string]bool, len(Keys))
	for _, k := range Keys {
		known[k] = true
	}
	for key, raw := range snap {
		if !known[key] {
			return fmt.Errorf("unknown document %q in snapshot", key)
		}
		if !json.Valid(raw) {
			return fmt.Errorf("document %q is not valid JSON", key)
		}
	}
	if replace {
		if err := Reset(ctx, b); err != nil {
			return err
		}
	}
	for _, key := range Keys {
		raw, ok := snap[key]
		if !ok {
			continue
		}
		if err := b.Put(ctx, key, raw); err != nil {
			return fmt.Errorf("import %s: %w", key, err)
		}
	}
	return nil
}
