package prefs

import (
	"context"
	"strings"

	"github.com/roach88/launchcore/internal/store"
)

// RenameLabels returns every stored rename label keyed by package.
func (p *Prefs) RenameLabels(ctx context.Context) (map[string]string, error) {
	keys, err := p.kv.Keys(ctx, renamePrefix)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		label, err := p.getString(ctx, k, "")
		if err != nil {
			return nil, err
		}
		if label != "" {
			out[strings.TrimPrefix(k, renamePrefix)] = label
		}
	}
	return out, nil
}

// RenameLabel returns the rename label of pkg, if any.
func (p *Prefs) RenameLabel(ctx context.Context, pkg string) (string, bool, error) {
	label, err := p.getString(ctx, RenameKey(pkg), "")
	return label, label != "", err
}

// SetRenameLabel stores a rename label. A blank label removes the override.
func (p *Prefs) SetRenameLabel(ctx context.Context, pkg, label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return p.kv.Apply(ctx, store.NewBatch().Delete(RenameKey(pkg)))
	}
	return p.put(ctx, RenameKey(pkg), store.String(label))
}

// Categories returns every package's category set.
func (p *Prefs) Categories(ctx context.Context) (map[string][]string, error) {
	keys, err := p.kv.Keys(ctx, categoryPrefix)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(keys))
	for _, k := range keys {
		set, err := p.getSet(ctx, k)
		if err != nil {
			return nil, err
		}
		if len(set) > 0 {
			out[strings.TrimPrefix(k, categoryPrefix)] = set
		}
	}
	return out, nil
}

// AppCategories returns the category set of pkg.
func (p *Prefs) AppCategories(ctx context.Context, pkg string) ([]string, error) {
	return p.getSet(ctx, CategoryKey(pkg))
}

// SetAppCategories replaces the category set of pkg. An empty set removes
// the key.
func (p *Prefs) SetAppCategories(ctx context.Context, pkg string, labels []string) error {
	if len(labels) == 0 {
		return p.kv.Apply(ctx, store.NewBatch().Delete(CategoryKey(pkg)))
	}
	return p.put(ctx, CategoryKey(pkg), store.Set(labels...))
}
