package part

import "fmt"

// Expander binds a LazyChildren to whatever is driving the underlying
// parse (package parser's Proxy, in practice). It is the seam described by
// the "lazy container inheriting from eager container" design note: rather
// than subclassing, LazyChildren composes an EagerChildren for storage and
// asks its Expander to pull one more child whenever traversal needs one
// that is not yet known.
type Expander interface {
	// ResolveContent ensures the owning part's header has been read and
	// its content start offset located. Idempotent; safe to call
	// repeatedly.
	ResolveContent() error

	// ReadNextChild attempts to parse one further child of lc's owner. If
	// it succeeds, it appends the new child to lc (via AddParsedChild)
	// and returns true. If the owner's terminating boundary (or EOF) is
	// reached first, it returns false, nil.
	ReadNextChild(lc *LazyChildren) (bool, error)
}

// LazyChildren is the children container bound to a part that is still
// being pulled out of the parser. Every traversal operation is written so
// that it behaves identically whether the tree beneath it is fully parsed,
// partially parsed, or untouched.
type LazyChildren struct {
	eager          *EagerChildren
	expander       Expander
	allPartsParsed bool
	sticky         error // a fatal error from a previous parse attempt; returned again rather than retried
}

// NewLazyChildren returns a LazyChildren for owner, bound to expander.
func NewLazyChildren(owner Part, expander Expander) *LazyChildren {
	return &LazyChildren{eager: NewEagerChildren(owner), expander: expander}
}

func (lc *LazyChildren) Owner() Part { return lc.eager.Owner() }
func (lc *LazyChildren) Len() int    { return lc.eager.Len() }

func (lc *LazyChildren) AllPartsParsed() bool { return lc.allPartsParsed }

// AddParsedChild appends p as a newly parsed child. Called only by the
// bound Expander from within ReadNextChild.
func (lc *LazyChildren) AddParsedChild(p Part) {
	p.setParent(lc.Owner())
	lc.eager.children = append(lc.eager.children, p)
}

// parseNextPart is the private core step documented on the spec for
// ParsedPartChildrenContainer: it resolves the owner's own content,
// ensures the previous sibling's subtree is fully settled so the parser's
// read cursor sits at a sibling boundary, then asks the Expander for one
// more child.
func (lc *LazyChildren) parseNextPart() (Part, error) {
	if lc.allPartsParsed {
		return nil, nil
	}
	if lc.sticky != nil {
		return nil, lc.sticky
	}

	if err := lc.expander.ResolveContent(); err != nil {
		lc.sticky = err
		return nil, err
	}

	if n := len(lc.eager.children); n > 0 {
		last := lc.eager.children[n-1]
		if err := last.resolveContent(); err != nil {
			lc.sticky = err
			return nil, err
		}
		if err := last.drainChildren(); err != nil {
			lc.sticky = err
			return nil, err
		}
	}

	before := len(lc.eager.children)
	ok, err := lc.expander.ReadNextChild(lc)
	if err != nil {
		lc.sticky = err
		return nil, err
	}
	if !ok {
		lc.allPartsParsed = true
		return nil, nil
	}
	if len(lc.eager.children) > before {
		return lc.eager.children[len(lc.eager.children)-1], nil
	}
	return nil, nil
}

func (lc *LazyChildren) DirectChildAt(i int) (Part, bool, error) {
	for i >= lc.eager.Len() && !lc.allPartsParsed {
		if _, err := lc.parseNextPart(); err != nil {
			return nil, false, err
		}
	}
	return lc.eager.DirectChildAt(i)
}

func (lc *LazyChildren) Drain() error {
	for !lc.allPartsParsed {
		if _, err := lc.parseNextPart(); err != nil {
			return err
		}
	}
	return nil
}

func (lc *LazyChildren) drainOrInvalid() error {
	if err := lc.Drain(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMutation, err)
	}
	return nil
}

func (lc *LazyChildren) AddChild(p Part, position int) error {
	if err := lc.drainOrInvalid(); err != nil {
		return err
	}
	return lc.eager.AddChild(p, position)
}

func (lc *LazyChildren) RemovePart(target Part) (bool, error) {
	if err := lc.drainOrInvalid(); err != nil {
		return false, err
	}
	return lc.eager.RemovePart(target)
}

func (lc *LazyChildren) RemoveAllParts() error {
	if err := lc.drainOrInvalid(); err != nil {
		return err
	}
	return lc.eager.RemoveAllParts()
}

func (lc *LazyChildren) GetChild(index int, f Filter) (Part, error) {
	count := -1
	for i := 0; ; i++ {
		ch, ok, err := lc.DirectChildAt(i)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		if matches(f, ch) {
			count++
			if count == index {
				return ch, nil
			}
		}
	}
}

func (lc *LazyChildren) GetChildParts(f Filter) ([]Part, error) {
	if err := lc.Drain(); err != nil {
		return nil, err
	}
	return lc.eager.GetChildParts(f)
}

// GetPart normalizes "not found" to nil, nil uniformly, resolving the
// documented inconsistency in the source material this behavior was
// ported from (which returned false in one branch and null in another).
func (lc *LazyChildren) GetPart(index int, f Filter) (Part, error) {
	counter := 0
	return walkForIndex(lc.Owner(), &counter, index, f)
}

func (lc *LazyChildren) GetAllParts(f Filter) ([]Part, error) {
	if err := lc.Drain(); err != nil {
		return nil, err
	}
	return lc.eager.GetAllParts(f)
}

func (lc *LazyChildren) GetIterator(f Filter) (*Iterator, error) {
	if err := lc.Drain(); err != nil {
		return nil, err
	}
	return lc.eager.GetIterator(f)
}
