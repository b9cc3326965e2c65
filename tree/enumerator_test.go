package tree

import (
	"slices"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

var modes = []EnumMode{Default, Fast, Robust}

func collect[K, V any](t *testing.T, e *Enumerator[K, V]) []Entry[K, V] {
	t.Helper()
	var entries []Entry[K, V]
	for entry, err := range e.All() {
		require.NoError(t, err)
		entries = append(entries, entry)
	}
	return entries
}

func enumKeys[K, V any](entries []Entry[K, V]) []K {
	keys := make([]K, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}

func TestEnumerateForwardAndReverse(t *testing.T) {
	for _, d := range disciplines {
		tree := newIntTree(t, Config{Discipline: d, Augmentation: Rank})
		for _, k := range []int{50, 20, 80, 10, 30, 70, 90, 60} {
			require.NoError(t, tree.Insert(k, ""))
		}
		want := []int{10, 20, 30, 50, 60, 70, 80, 90}
		for _, m := range modes {
			fwd := collect(t, tree.Enumerate(WithMode(m)))
			require.Equal(t, want, enumKeys(fwd), "%s %s forward", d, m)
			for i, e := range fwd {
				require.Equal(t, int64(i), e.Rank)
			}
			rev := collect(t, tree.Enumerate(WithMode(m), Reverse()))
			slices.Reverse(rev)
			require.Equal(t, enumKeys(fwd), enumKeys(rev), "%s %s reverse", d, m)
			for i, e := range rev {
				require.Equal(t, int64(i), e.Rank)
			}
		}
	}
}

func TestEnumeratorStates(t *testing.T) {
	tree := newIntTree(t, Config{})
	require.NoError(t, tree.Insert(1, "one"))
	e := tree.Enumerate()
	require.Equal(t, Entry[int, string]{}, e.Current())
	ok, err := e.MoveNext()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "one", e.Current().Value)
	for range 3 {
		ok, err = e.MoveNext()
		require.NoError(t, err)
		require.False(t, ok)
		require.Equal(t, Entry[int, string]{}, e.Current())
	}
	e.Reset()
	ok, _ = e.MoveNext()
	require.True(t, ok)
	require.Equal(t, 1, e.Current().Key)
}

func TestEnumerateFromKey(t *testing.T) {
	for _, d := range disciplines {
		tree := newIntTree(t, Config{Discipline: d})
		for _, k := range []int{10, 20, 30, 40} {
			require.NoError(t, tree.Insert(k, ""))
		}
		for _, m := range modes {
			require.Equal(t, []int{20, 30, 40}, enumKeys(collect(t, tree.EnumerateFrom(20, WithMode(m)))))
			require.Equal(t, []int{30, 40}, enumKeys(collect(t, tree.EnumerateFrom(25, WithMode(m)))))
			require.Empty(t, collect(t, tree.EnumerateFrom(41, WithMode(m))))
			require.Equal(t, []int{20, 10}, enumKeys(collect(t, tree.EnumerateFrom(20, WithMode(m), Reverse()))))
			require.Equal(t, []int{20, 10}, enumKeys(collect(t, tree.EnumerateFrom(29, WithMode(m), Reverse()))))
			require.Empty(t, collect(t, tree.EnumerateFrom(5, WithMode(m), Reverse())))
		}
	}
}

func TestEnumerateFromPosition(t *testing.T) {
	for _, d := range disciplines {
		tree := newRangeTree(t, Config{Discipline: d, Augmentation: Range2})
		for i := range 6 { // X starts 0,2,4,..; Y starts 0,3,6,..
			require.NoError(t, tree.InsertRange(X, tree.Extent(X), [2]int64{2, 3}, string(rune('a'+i))))
		}
		values := func(entries []Entry[struct{}, string]) string {
			var s string
			for _, e := range entries {
				s += e.Value
			}
			return s
		}
		for _, m := range modes {
			require.Equal(t, "cdef", values(collect(t, tree.Enumerate(WithMode(m), StartAtPosition(X, 4)))))
			require.Equal(t, "def", values(collect(t, tree.Enumerate(WithMode(m), StartAtPosition(X, 5)))))
			require.Equal(t, "cdef", values(collect(t, tree.Enumerate(WithMode(m), StartAtPosition(Y, 6)))))
			require.Equal(t, "cba", values(collect(t, tree.Enumerate(WithMode(m), StartAtPosition(Y, 7), Reverse()))))
			entries := collect(t, tree.Enumerate(WithMode(m), StartAtPosition(Y, 9)))
			require.Equal(t, [2]int64{6, 9}, entries[0].Start)
		}
	}
}

func TestEnumerateBoundOnWrongKind(t *testing.T) {
	ranges := newRangeTree(t, Config{Augmentation: Range})
	_, err := ranges.EnumerateFrom(struct{}{}).MoveNext()
	require.True(t, errors.Is(err, ErrUnsupported))
	keyed := newIntTree(t, Config{})
	_, err = keyed.Enumerate(StartAtPosition(X, 0)).MoveNext()
	require.True(t, errors.Is(err, ErrUnsupported))
}

func TestFastEnumeratorFailsOnMutation(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	for _, d := range disciplines {
		tree := newIntTree(t, Config{Discipline: d})
		for i := range 10 {
			require.NoError(t, tree.Insert(i, ""))
		}
		e := tree.Enumerate(WithMode(Fast))
		ok, err := e.MoveNext()
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, tree.Insert(100, ""))
		_, err = e.MoveNext()
		require.True(t, errors.Is(err, ErrModified), "%s: got %v", d, err)
		_, err = e.MoveNext()
		require.True(t, errors.Is(err, ErrModified), "failure must be sticky")
		e.Reset()
		require.Len(t, collect(t, e), 11)
	}
}

func TestFastEnumeratorFailsOnSplayQuery(t *testing.T) {
	tree := newIntTree(t, Config{Discipline: Splay})
	for i := range 10 {
		require.NoError(t, tree.Insert(i, ""))
	}
	fast := tree.Enumerate(WithMode(Fast))
	robust := tree.Enumerate(WithMode(Robust))
	_, err := fast.MoveNext()
	require.NoError(t, err)
	_, err = robust.MoveNext()
	require.NoError(t, err)
	require.True(t, tree.Contains(5)) // lookup only, no insert or remove
	_, err = fast.MoveNext()
	require.True(t, errors.Is(err, ErrModified))
	rest := collect(t, robust)
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, enumKeys(rest))
}

func TestFastEnumeratorFailsOnRangeEdit(t *testing.T) {
	tree := newRangeTree(t, Config{Augmentation: Range})
	for range 4 {
		require.NoError(t, tree.InsertRange(X, tree.Extent(X), [2]int64{1}, ""))
	}
	e := tree.Enumerate(WithMode(Fast))
	_, err := e.MoveNext()
	require.NoError(t, err)
	require.NoError(t, tree.SetLengths(X, 2, [2]int64{5}))
	_, err = e.MoveNext()
	require.True(t, errors.Is(err, ErrModified))
}

func TestRobustEnumeratorSurvivesMutation(t *testing.T) {
	for _, d := range disciplines {
		tree := newIntTree(t, Config{Discipline: d, Augmentation: Rank})
		for i := range 20 {
			require.NoError(t, tree.Insert(2*i, ""))
		}
		e := tree.Enumerate(WithMode(Robust))
		var seen []int
		for {
			ok, err := e.MoveNext()
			require.NoError(t, err)
			if !ok {
				break
			}
			k := e.Current().Key
			seen = append(seen, k)
			rank, err := tree.RankOf(k)
			require.NoError(t, err)
			require.Equal(t, rank.Rank, e.Current().Rank, "%s: rank of %d", d, k)
			switch k {
			case 4:
				require.NoError(t, tree.Remove(4)) // remove current
			case 10:
				require.NoError(t, tree.Remove(12)) // remove next
				require.NoError(t, tree.Insert(11, ""))
			case 20:
				require.NoError(t, tree.Insert(1, "")) // behind the cursor
				require.NoError(t, tree.Insert(21, "")) // ahead of the cursor
			}
		}
		require.Equal(t, []int{0, 2, 4, 6, 8, 10, 11, 14, 16, 18, 20, 21, 22, 24, 26, 28, 30, 32, 34, 36, 38}, seen, "%s", d)
	}
}

func TestRobustReverseAfterRemove(t *testing.T) {
	for _, d := range disciplines {
		tree := newIntTree(t, Config{Discipline: d})
		for i := range 8 {
			require.NoError(t, tree.Insert(i, ""))
		}
		e := tree.Enumerate(WithMode(Robust), Reverse())
		var seen []int
		for entry, err := range e.All() {
			require.NoError(t, err)
			seen = append(seen, entry.Key)
			if entry.Key == 5 {
				require.NoError(t, tree.Remove(5))
				require.NoError(t, tree.Remove(4))
			}
		}
		require.Equal(t, []int{7, 6, 5, 3, 2, 1, 0}, seen)
	}
}

func TestRobustRangeResyncByPosition(t *testing.T) {
	tree := newRangeTree(t, Config{Discipline: AVL, Augmentation: Range})
	for i := range 5 {
		require.NoError(t, tree.InsertRange(X, tree.Extent(X), [2]int64{int64(i + 1)}, string(rune('a'+i))))
	}
	// starts: a=0 b=1 c=3 d=6 e=10
	e := tree.Enumerate(WithMode(Robust))
	var seen string
	for entry, err := range e.All() {
		require.NoError(t, err)
		seen += entry.Value
		if entry.Value == "b" {
			require.NoError(t, tree.DeleteRange(X, 1))
		}
	}
	require.Equal(t, "abcde", seen)
}

func TestRobustRangeResumesAfterRemovalsInFront(t *testing.T) {
	for _, d := range disciplines {
		for _, aug := range []Augmentation{Range, Range2} {
			tree := newRangeTree(t, Config{Discipline: d, Augmentation: aug})
			for _, v := range []string{"a", "b", "c", "d"} {
				require.NoError(t, tree.InsertRange(X, tree.Extent(X), [2]int64{5, 1}, v))
			}
			e := tree.Enumerate(WithMode(Robust))
			var seen string
			for entry, err := range e.All() {
				require.NoError(t, err)
				seen += entry.Value
				if entry.Value == "b" {
					require.NoError(t, tree.DeleteRange(X, 0)) // a
					require.NoError(t, tree.DeleteRange(X, 0)) // b, the current entry
				}
			}
			require.Equal(t, "abcd", seen, "%s %s", d, aug)
			require.NoError(t, tree.Check())
		}
	}
}

func TestRobustRangeReverseResumesAfterRemovals(t *testing.T) {
	for _, d := range disciplines {
		tree := newRangeTree(t, Config{Discipline: d, Augmentation: Range})
		for _, v := range []string{"a", "b", "c", "d", "e"} {
			require.NoError(t, tree.InsertRange(X, tree.Extent(X), [2]int64{2}, v))
		}
		e := tree.Enumerate(WithMode(Robust), Reverse())
		var seen string
		for entry, err := range e.All() {
			require.NoError(t, err)
			seen += entry.Value
			if entry.Value == "d" {
				require.NoError(t, tree.DeleteRange(X, 0)) // a, not yet visited
				require.NoError(t, tree.DeleteRange(X, 4)) // d, the current entry
			}
		}
		require.Equal(t, "edcb", seen, "%s", d)
	}
}

func TestRobustResyncSplaysTree(t *testing.T) {
	tree := newIntTree(t, Config{Discipline: Splay})
	for i := range 10 {
		require.NoError(t, tree.Insert(i, ""))
	}
	robust := tree.Enumerate(WithMode(Robust))
	for range 4 {
		_, err := robust.MoveNext()
		require.NoError(t, err)
	}
	require.Equal(t, 3, robust.Current().Key)
	require.NoError(t, tree.Remove(3))
	fast := tree.Enumerate(WithMode(Fast))
	ok, err := robust.MoveNext() // searches for the entry after 3
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 4, robust.Current().Key)
	_, err = fast.MoveNext()
	require.True(t, errors.Is(err, ErrModified))
	rest := collect(t, robust)
	require.Equal(t, []int{5, 6, 7, 8, 9}, enumKeys(rest))
	require.NoError(t, tree.Check())
}

func TestEnumerateEmptyTree(t *testing.T) {
	keyed := newIntTree(t, Config{})
	ranges := newRangeTree(t, Config{Augmentation: Range2})
	for _, m := range modes {
		for _, reverse := range []bool{false, true} {
			opts := []EnumOption{WithMode(m)}
			if reverse {
				opts = append(opts, Reverse())
			}
			for _, e := range []interface {
				MoveNext() (bool, error)
				Err() error
			}{keyed.Enumerate(opts...), ranges.Enumerate(opts...)} {
				for range 3 {
					ok, err := e.MoveNext()
					require.NoError(t, err, "%s reverse=%v", m, reverse)
					require.False(t, ok)
				}
				require.NoError(t, e.Err())
			}
			k := keyed.Enumerate(opts...)
			_, _ = k.MoveNext()
			require.Equal(t, Entry[int, string]{}, k.Current())
			r := ranges.Enumerate(opts...)
			_, _ = r.MoveNext()
			require.Equal(t, Entry[struct{}, string]{}, r.Current())
			require.Empty(t, collect(t, ranges.Enumerate(append(opts, StartAtPosition(Y, 0))...)))
		}
	}
}

func TestEntrySetValue(t *testing.T) {
	for _, d := range disciplines {
		tree := newIntTree(t, Config{Discipline: d})
		for i := range 5 {
			require.NoError(t, tree.Insert(i, ""))
		}
		// Default and Fast: current entry only, unchanged tree
		for _, m := range []EnumMode{Default, Fast} {
			e := tree.Enumerate(WithMode(m))
			_, _ = e.MoveNext()
			first := e.Current()
			require.NoError(t, first.SetValue("zero"))
			require.Equal(t, "zero", e.Current().Value)
			_, _ = e.MoveNext()
			require.True(t, errors.Is(first.SetValue("x"), ErrStaleEntry), "%s %s", d, m)
			second := e.Current()
			require.NoError(t, tree.Insert(10, ""))
			require.True(t, errors.Is(second.SetValue("x"), ErrStaleEntry))
			require.NoError(t, tree.Remove(10))
		}
		v, _ := tree.Find(0)
		require.Equal(t, "zero", v)
		// Robust: settable while present
		e := tree.Enumerate(WithMode(Robust))
		_, _ = e.MoveNext()
		first := e.Current()
		_, _ = e.MoveNext()
		require.NoError(t, tree.Insert(10, ""))
		require.NoError(t, first.SetValue("robust"))
		v, _ = tree.Find(0)
		require.Equal(t, "robust", v)
		require.NoError(t, tree.Remove(0))
		require.True(t, errors.Is(first.SetValue("gone"), ErrStaleEntry))
		// snapshots are not settable
		snapshot := tree.Entries()[0]
		require.True(t, errors.Is(snapshot.SetValue("x"), ErrStaleEntry))
	}
}

func TestEntrySetValueOnValuelessTree(t *testing.T) {
	tree := newIntTree(t, Config{Augmentation: Rank, Valueless: true})
	require.NoError(t, tree.Insert(1, ""))
	e := tree.Enumerate(WithMode(Robust))
	_, _ = e.MoveNext()
	entry := e.Current()
	require.True(t, errors.Is(entry.SetValue("x"), ErrValueless))
}

func TestEnumerationCountMatchesTree(t *testing.T) {
	for _, d := range disciplines {
		tree := newIntTree(t, Config{Discipline: d, Augmentation: MultiRank})
		for i := range 64 {
			require.NoError(t, tree.InsertCount(i*3%64, "", int64(i%4+1)))
		}
		for _, m := range modes {
			for _, rev := range []bool{false, true} {
				opts := []EnumOption{WithMode(m)}
				if rev {
					opts = append(opts, Reverse())
				}
				entries := collect(t, tree.Enumerate(opts...))
				require.Len(t, entries, tree.Count())
				var sum int64
				for _, e := range entries {
					sum += e.Count
				}
				require.Equal(t, tree.RankCount(), sum)
			}
		}
	}
}
