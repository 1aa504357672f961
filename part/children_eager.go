package part

// EagerChildren is the base, fully-materialized children container: every
// direct child is already known, so traversal never needs to consult a
// parser. LazyChildren composes one of these for storage and delegates to
// it once fully drained, per the "lazy container composes the eager one"
// design note.
type EagerChildren struct {
	owner    Part
	children []Part
}

// NewEagerChildren returns an empty container owned by owner.
func NewEagerChildren(owner Part) *EagerChildren {
	return &EagerChildren{owner: owner}
}

func (c *EagerChildren) Owner() Part { return c.owner }
func (c *EagerChildren) Len() int    { return len(c.children) }

func (c *EagerChildren) DirectChildAt(i int) (Part, bool, error) {
	if i < 0 || i >= len(c.children) {
		return nil, false, nil
	}
	return c.children[i], true, nil
}

func (c *EagerChildren) AddChild(p Part, position int) error {
	p.setParent(c.owner)
	if position < 0 || position >= len(c.children) {
		c.children = append(c.children, p)
		return nil
	}
	c.children = append(c.children, nil)
	copy(c.children[position+1:], c.children[position:])
	c.children[position] = p
	return nil
}

func (c *EagerChildren) RemovePart(target Part) (bool, error) {
	for i, ch := range c.children {
		if ch == target {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return true, nil
		}
		removed, err := ch.Children().RemovePart(target)
		if err != nil {
			return false, err
		}
		if removed {
			return true, nil
		}
	}
	return false, nil
}

func (c *EagerChildren) RemoveAllParts() error {
	c.children = nil
	return nil
}

func (c *EagerChildren) GetChild(index int, f Filter) (Part, error) {
	count := -1
	for _, ch := range c.children {
		if matches(f, ch) {
			count++
			if count == index {
				return ch, nil
			}
		}
	}
	return nil, nil
}

func (c *EagerChildren) GetChildParts(f Filter) ([]Part, error) {
	out := make([]Part, 0, len(c.children))
	for _, ch := range c.children {
		if matches(f, ch) {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (c *EagerChildren) GetPart(index int, f Filter) (Part, error) {
	counter := 0
	return walkForIndex(c.owner, &counter, index, f)
}

func (c *EagerChildren) GetAllParts(f Filter) ([]Part, error) {
	out := make([]Part, 0, len(c.children)+1)
	walkAll(c.owner, f, &out)
	return out, nil
}

func (c *EagerChildren) GetIterator(f Filter) (*Iterator, error) {
	parts, err := c.GetAllParts(f)
	if err != nil {
		return nil, err
	}
	return &Iterator{parts: parts}, nil
}

func (c *EagerChildren) Drain() error          { return nil }
func (c *EagerChildren) AllPartsParsed() bool  { return true }
