package part

// ChildrenContainer is the capability set shared by EagerChildren and
// LazyChildren: an ordered sequence of a part's direct children, with
// lookup and filtered depth-first traversal that includes the owning part
// itself at position 0. Every Part.Children() call returns one of these,
// never nil — a leaf part simply owns an empty container.
type ChildrenContainer interface {
	// Owner returns the part this container belongs to.
	Owner() Part

	// Len returns the number of direct children known to the container
	// right now. For a LazyChildren this does not force further parsing.
	Len() int

	// DirectChildAt returns the i-th direct child (0-indexed), pulling
	// further children from the parser as needed if this is a
	// LazyChildren and i is not yet known. ok is false if i is beyond the
	// last child once the container is exhausted.
	DirectChildAt(i int) (p Part, ok bool, err error)

	// AddChild inserts p as a direct child at position, or appends it if
	// position is negative, and sets p's parent to Owner(). On a
	// LazyChildren this drains the container first.
	AddChild(p Part, position int) error

	// RemovePart removes the first occurrence of target found via
	// depth-first search of this container's subtree (the owner is never
	// a candidate; only descendants are searched) and reports whether
	// anything was removed. On a LazyChildren this drains first.
	RemovePart(target Part) (bool, error)

	// RemoveAllParts clears every direct child. On a LazyChildren this
	// drains first, so that the count it clears is accurate.
	RemoveAllParts() error

	// GetPart returns the index-th part (0-indexed) in depth-first
	// pre-order over the owner and its descendants that matches f,
	// pulling more of the tree from the parser as needed. It returns
	// nil, nil if the filter/index combination is never satisfied, even
	// once input is exhausted.
	GetPart(index int, f Filter) (Part, error)

	// GetAllParts returns every part in depth-first pre-order matching f,
	// fully draining any lazy containers first.
	GetAllParts(f Filter) ([]Part, error)

	// GetChild returns the index-th direct child matching f, pulling
	// further children as needed but never recursing into grandchildren.
	GetChild(index int, f Filter) (Part, error)

	// GetChildParts returns every direct child matching f, fully draining
	// first.
	GetChildParts(f Filter) ([]Part, error)

	// GetIterator returns a depth-first pre-order Iterator over the owner
	// and its descendants matching f, fully draining first.
	GetIterator(f Filter) (*Iterator, error)

	// Drain forces every remaining lazy child to be parsed. It is a
	// no-op on an EagerChildren.
	Drain() error

	// AllPartsParsed reports whether every direct child of the owner has
	// been constructed; always true for an EagerChildren.
	AllPartsParsed() bool
}

// Iterator is a simple index-based cursor over a pre-materialized sequence
// of parts, returned by GetIterator.
type Iterator struct {
	parts []Part
	i     int
}

// Next returns the next part in the sequence, or ok=false once exhausted.
func (it *Iterator) Next() (Part, bool) {
	if it == nil || it.i >= len(it.parts) {
		return nil, false
	}
	p := it.parts[it.i]
	it.i++
	return p, true
}

// Len returns the total number of parts the iterator will yield.
func (it *Iterator) Len() int {
	if it == nil {
		return 0
	}
	return len(it.parts)
}

// walkForIndex performs the shared counting pre-order walk described for
// GetPart: it visits p, then each of p's direct children (pulling more via
// DirectChildAt as needed), recursing into each child's own container so
// that a lazily-expanding grandchild is handled correctly without the
// caller needing to know where the laziness lives.
func walkForIndex(p Part, counter *int, target int, f Filter) (Part, error) {
	if matches(f, p) {
		if *counter == target {
			return p, nil
		}
		*counter++
	}

	cc := p.Children()
	for i := 0; ; i++ {
		ch, ok, err := cc.DirectChildAt(i)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		found, err := walkForIndex(ch, counter, target, f)
		if err != nil {
			return nil, err
		}
		if found != nil {
			return found, nil
		}
	}
}

// walkAll performs a full pre-order traversal of p and its descendants,
// appending matches to out. It assumes every container involved has
// already been drained (or needs no draining); callers that must support
// laziness call Drain/GetAllParts on the relevant container instead of
// this helper directly.
func walkAll(p Part, f Filter, out *[]Part) {
	if matches(f, p) {
		*out = append(*out, p)
	}
	cc := p.Children()
	for i := 0; ; i++ {
		ch, ok, _ := cc.DirectChildAt(i)
		if !ok {
			return
		}
		walkAll(ch, f, out)
	}
}
