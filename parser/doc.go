// Package parser reads a byte stream into a part tree. It is the
// state machine described for the core: it reads header blocks and
// boundary lines on demand, handing back one child at a time through the
// part.Expander seam, so that a caller who only inspects the first few
// parts of a large message never forces the rest of it to be scanned.
package parser
