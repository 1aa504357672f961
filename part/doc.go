// Package part holds the message tree data model: the Part variants
// (MimePart, NonMimePart, UUEncodedPart, Message), the stream container
// that tracks a part's header/content byte ranges, and the two children
// containers — EagerChildren for a fully-built tree and LazyChildren for
// one still being pulled out of a Parser on demand.
//
// This package knows nothing about how bytes become parts; that is
// package parser's job. It only knows how to hold the tree once built and
// how to keep holding it correctly while a caller is still building it one
// child at a time.
package part
