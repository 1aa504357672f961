// Package walker provides an iterative, stack-based alternative to
// package walk's recursive AndProcess, numbering each part by its depth and
// position among its siblings as it goes.
package walker

import "github.com/mimeforge/mimetree/part"

// PartWalker is a function called for each part of a tree during a Walk.
type PartWalker func(depth, i int, p part.Part) error

// Walk performs a depth-first traversal of all the parts of a tree starting
// with p itself, calling w for each part visited. If w returns an error,
// processing stops immediately and the error is returned.
func (w PartWalker) Walk(p part.Part) error {
	type frame struct {
		depth int
		i     int
		part  part.Part
	}

	openStack := make([]frame, 0, 10)

	pushStack := func(depth int, owner part.Part) error {
		cc := owner.Children()
		var kids []part.Part
		for i := 0; ; i++ {
			ch, ok, err := cc.DirectChildAt(i)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			kids = append(kids, ch)
		}
		for i := len(kids) - 1; i >= 0; i-- {
			openStack = append(openStack, frame{depth, i, kids[i]})
		}
		return nil
	}

	popStack := func() frame {
		end := len(openStack) - 1
		f := openStack[end]
		openStack = openStack[:end]
		return f
	}

	openStack = append(openStack, frame{0, 0, p})
	for len(openStack) > 0 {
		f := popStack()
		if err := w(f.depth, f.i, f.part); err != nil {
			return err
		}
		if err := pushStack(f.depth+1, f.part); err != nil {
			return err
		}
	}

	return nil
}

// WalkOpaque calls w for each leaf (non-multipart) part found by a
// depth-first traversal of p's subtree. It terminates the walk immediately
// if w returns an error and returns that error.
func (w PartWalker) WalkOpaque(p part.Part) error {
	var opw PartWalker = func(depth, i int, pt part.Part) error {
		if !pt.IsMultipart() {
			return w(depth, i, pt)
		}
		return nil
	}
	return opw.Walk(p)
}

// WalkMultipart calls w for each multipart container part found by a
// depth-first traversal of p's subtree. It terminates the walk immediately
// if w returns an error and returns that error.
func (w PartWalker) WalkMultipart(p part.Part) error {
	var mlw PartWalker = func(depth, i int, pt part.Part) error {
		if pt.IsMultipart() {
			return w(depth, i, pt)
		}
		return nil
	}
	return mlw.Walk(p)
}
