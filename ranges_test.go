package augtree

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestRangeMapScenario(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	for _, d := range []Discipline{AVL, RedBlack, Splay} {
		m, err := NewRangeMap[string](0, RetainFreelist, WithDiscipline(d))
		if err != nil {
			t.Fatal(err)
		}
		if m.Extent() != 0 {
			t.Errorf("%s: empty extent is %d", d, m.Extent())
		}
		if err := m.Insert(0, 5, "v"); err != nil {
			t.Fatal(err)
		}
		if m.Count() != 1 || m.Extent() != 5 {
			t.Errorf("%s: count=%d extent=%d, expected 1/5", d, m.Count(), m.Extent())
		}
		if start, ok := m.NearestLessOrEqual(3); !ok || start != 0 {
			t.Errorf("%s: NearestLessOrEqual(3) = %d/%v, expected 0", d, start, ok)
		}
		if err := m.Delete(0); err != nil {
			t.Fatal(err)
		}
		if m.Count() != 0 || m.Extent() != 0 {
			t.Errorf("%s: count=%d extent=%d after delete", d, m.Count(), m.Extent())
		}
	}
}

func TestRangeMapEditing(t *testing.T) {
	m, err := NewRangeMap[string](0, Discard)
	if err != nil {
		t.Fatal(err)
	}
	_ = m.Insert(0, 3, "a")
	_ = m.Insert(3, 4, "c")
	_ = m.Insert(3, 2, "b") // a=[0,3) b=[3,5) c=[5,9)
	if v, _ := m.Value(5); v != "c" {
		t.Errorf("value at 5 is %q, expected c", v)
	}
	if err := m.SetLength(3, 6); err != nil {
		t.Fatal(err)
	}
	if start, length, _ := m.Locate(10); start != 9 || length != 4 {
		t.Errorf("Locate(10) = %d+%d, expected 9+4", start, length)
	}
	if err := m.SetValue(9, "C"); err != nil {
		t.Fatal(err)
	}
	var values string
	for e, err := range m.EnumerateFrom(3).All() {
		if err != nil {
			t.Fatal(err)
		}
		values += e.Value
	}
	if values != "bC" {
		t.Errorf("enumerated %q from 3, expected bC", values)
	}
	if err := m.Insert(4, 1, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("insert inside a range must fail, got %v", err)
	}
	if err := m.Insert(0, 0, "x"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero length must fail, got %v", err)
	}
	if err := m.Check(); err != nil {
		t.Error(err)
	}
}

func TestRangeListClone(t *testing.T) {
	l, err := NewRangeList(4, PreallocatedFixed, WithStorage(Array))
	if err != nil {
		t.Fatal(err)
	}
	for i := range 4 {
		if err := l.Insert(l.Extent(), int64(i+1)); err != nil {
			t.Fatal(err)
		}
	}
	c := l.Clone()
	if err := c.Delete(0); err != nil {
		t.Fatal(err)
	}
	if l.Extent() != 10 || c.Extent() != 9 {
		t.Errorf("extents %d/%d, expected 10/9", l.Extent(), c.Extent())
	}
	if err := c.Insert(0, 7); err != nil {
		t.Fatal(err)
	}
	if err := l.Insert(0, 7); !errors.Is(err, ErrCapacityExhausted) {
		t.Errorf("expected source to be full, got %v", err)
	}
	if l.Extent() != 10 {
		t.Errorf("failed insert changed the extent to %d", l.Extent())
	}
}

func TestRange2Map(t *testing.T) {
	m, err := NewRange2Map[rune](0, RetainFreelist, WithDiscipline(RedBlack))
	if err != nil {
		t.Fatal(err)
	}
	// lines of a text: X counts bytes, Y counts runes
	_ = m.Insert(X, 0, 6, 4, 'a')
	_ = m.Insert(X, 6, 3, 3, 'b')
	_ = m.Insert(Y, 4, 5, 2, 'n') // in front of b
	if m.Extent(X) != 14 || m.Extent(Y) != 9 {
		t.Errorf("extents %d/%d, expected 14/9", m.Extent(X), m.Extent(Y))
	}
	if v, _ := m.Value(X, 11); v != 'b' {
		t.Errorf("value at X=11 is %c, expected b", v)
	}
	if v, _ := m.Value(Y, 4); v != 'n' {
		t.Errorf("value at Y=4 is %c, expected n", v)
	}
	e, err := m.Locate(Y, 7)
	if err != nil {
		t.Fatal(err)
	}
	if e.Value != 'b' || e.Start != [2]int64{11, 6} {
		t.Errorf("Locate(Y,7) = %c at %v", e.Value, e.Start)
	}
	if err := m.SetLength(Y, 4, 10); err != nil {
		t.Fatal(err)
	}
	if x, y, _ := m.Lengths(X, 6); x != 5 || y != 10 {
		t.Errorf("lengths of n are %d/%d, expected 5/10", x, y)
	}
	if start, ok := m.NearestGreater(Y, 4); !ok || start != 14 {
		t.Errorf("NearestGreater(Y,4) = %d/%v, expected 14", start, ok)
	}
	if err := m.Delete(Y, 4); err != nil {
		t.Fatal(err)
	}
	if m.Extent(X) != 9 || m.Extent(Y) != 7 {
		t.Errorf("extents %d/%d after delete, expected 9/7", m.Extent(X), m.Extent(Y))
	}
	if err := m.Check(); err != nil {
		t.Error(err)
	}
}

func TestRange2ListEnumerateFrom(t *testing.T) {
	l, err := NewRange2List(0, RetainFreelist, WithDiscipline(Splay))
	if err != nil {
		t.Fatal(err)
	}
	for i := range 5 {
		if err := l.Insert(Y, l.Extent(Y), 1, int64(i+1)); err != nil {
			t.Fatal(err)
		}
	}
	// Y starts: 0 1 3 6 10
	var xs []int64
	for e, err := range l.EnumerateFrom(Y, 5, Reverse()).All() {
		if err != nil {
			t.Fatal(err)
		}
		xs = append(xs, e.Start[X])
	}
	if len(xs) != 3 || xs[0] != 2 || xs[2] != 0 {
		t.Errorf("reverse enumeration from Y=5 gave X starts %v, expected [2 1 0]", xs)
	}
}
