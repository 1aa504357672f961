package part_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mimeforge/mimetree/message/header"
	"github.com/mimeforge/mimetree/part"
)

// countingExpander hands out n leaf children, one per ReadNextChild call,
// and records how many calls it actually received, so tests can check that
// LazyChildren never pulls more of the tree than a given traversal needs.
type countingExpander struct {
	n     int
	calls int
}

func (e *countingExpander) ResolveContent() error { return nil }

func (e *countingExpander) ReadNextChild(lc *part.LazyChildren) (bool, error) {
	if e.calls >= e.n {
		return false, nil
	}
	e.calls++

	h := &header.Header{}
	h.Set("X-Index", fmt.Sprintf("%d", e.calls))
	child := part.NewMimePart(h, part.NewOverrideStreamContainer([]byte("body")))
	lc.AddParsedChild(child)
	return true, nil
}

func newLazyOwner(n int) (*part.MimePart, *countingExpander) {
	owner := part.NewMimePart(&header.Header{}, part.NewOverrideStreamContainer(nil))
	owner.SetMultipart(true)
	exp := &countingExpander{n: n}
	owner.SetChildren(part.NewLazyChildren(owner, exp))
	return owner, exp
}

func TestLazyChildrenPullsOnlyAsFarAsAsked(t *testing.T) {
	t.Parallel()

	owner, exp := newLazyOwner(3)

	assert.Equal(t, 0, owner.Children().Len())
	assert.False(t, owner.Children().AllPartsParsed())

	child, ok, err := owner.Children().DirectChildAt(0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, exp.calls)

	idx, err := child.Headers().Get("X-Index")
	require.NoError(t, err)
	assert.Equal(t, "1", idx)

	assert.False(t, owner.Children().AllPartsParsed())
}

func TestLazyChildrenDirectChildAtSkipsAhead(t *testing.T) {
	t.Parallel()

	owner, exp := newLazyOwner(3)

	child, ok, err := owner.Children().DirectChildAt(2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, exp.calls)

	idx, _ := child.Headers().Get("X-Index")
	assert.Equal(t, "3", idx)

	// the container knows it has exactly 3 children now, but has not yet
	// been told there isn't a 4th.
	assert.False(t, owner.Children().AllPartsParsed())
}

func TestLazyChildrenDrainExhausts(t *testing.T) {
	t.Parallel()

	owner, exp := newLazyOwner(2)

	require.NoError(t, owner.Children().Drain())
	assert.True(t, owner.Children().AllPartsParsed())
	assert.Equal(t, 2, exp.calls)

	_, ok, err := owner.Children().DirectChildAt(2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLazyChildrenGetAllPartsIncludesOwner(t *testing.T) {
	t.Parallel()

	owner, _ := newLazyOwner(2)

	all, err := owner.Children().GetAllParts(nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Same(t, owner, all[0])
}

func TestLazyChildrenGetPartByFilter(t *testing.T) {
	t.Parallel()

	owner, _ := newLazyOwner(3)

	f := func(p part.Part) bool {
		idx, err := p.Headers().Get("X-Index")
		return err == nil && idx == "2"
	}

	found, err := owner.Children().GetPart(0, f)
	require.NoError(t, err)
	require.NotNil(t, found)

	idx, _ := found.Headers().Get("X-Index")
	assert.Equal(t, "2", idx)
}
