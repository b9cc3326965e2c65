package augtree

import (
	"github.com/npillmayer/augtree/alloc"
	"github.com/npillmayer/augtree/tree"
)

// Option configures a tree at construction time.
type Option func(*tree.Config)

// WithDiscipline selects the balancing discipline. The default is AVL.
func WithDiscipline(d Discipline) Option {
	return func(cfg *tree.Config) {
		cfg.Discipline = d
	}
}

// WithStorage selects the node storage kind. The default is Linked. Array
// storage cannot be combined with Discard allocation.
func WithStorage(s Storage) Option {
	return func(cfg *tree.Config) {
		cfg.Storage = s
	}
}

// WithIndexWidth selects the range of ranks and positions. The default is
// Index32.
func WithIndexWidth(w IndexWidth) Option {
	return func(cfg *tree.Config) {
		cfg.IndexWidth = w
	}
}

func newTree[K, V any](aug tree.Augmentation, valueless bool, capacity int, mode AllocationMode,
	cmp func(a, b K) int, opts []Option) (*tree.Tree[K, V], error) {
	//
	cfg := tree.Config{
		Augmentation: aug,
		Allocation:   mode,
		Storage:      alloc.Linked,
		Capacity:     capacity,
		Valueless:    valueless,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	t, err := tree.New[K, V](cfg, cmp)
	if err != nil {
		return nil, err
	}
	T().Debugf("augtree: new %s tree, capacity %d", cfg, t.Capacity())
	return t, nil
}

type cloner[T any] interface {
	Clone() T
}

// Clone returns a deep copy of src. It is equivalent to src.Clone().
func Clone[T cloner[T]](src T) T {
	return src.Clone()
}
