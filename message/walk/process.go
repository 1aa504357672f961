package walk

import "github.com/mimeforge/mimetree/part"

// Processor is a callback that can be passed to AndProcess to do any kind
// of generic processing of a part and its descendants.
//
// The Processor is given a part to transform and the ancestry of the part.
// If len(parents) is zero, then this is the top-level part AndProcess was
// called upon, which might not be the root of the whole tree.
//
// The Processor may return an error to cause AndProcess to terminate
// immediately and return that error.
type Processor func(p part.Part, parents []part.Part) error

// AndProcess walks p's subtree (p included) and calls processor for each
// part found, in depth-first pre-order. Only parts whose IsMultipart is true
// are descended into, so the nested message of a message/rfc822 part and
// the uuencoded stanzas of a NonMimePart are not visited. It terminates once
// every part has been processed and returns nil, or returns early with
// whatever error processor returns.
func AndProcess(processor Processor, p part.Part) error {
	parents := make([]part.Part, 0, 10)
	return andProcess(processor, p, parents)
}

func andProcess(processor Processor, p part.Part, parents []part.Part) error {
	if err := processor(p, parents); err != nil {
		return err
	}

	if !p.IsMultipart() {
		return nil
	}

	parents = append(parents, p)
	cc := p.Children()
	for i := 0; ; i++ {
		child, ok, err := cc.DirectChildAt(i)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := andProcess(processor, child, parents); err != nil {
			return err
		}
	}
}
