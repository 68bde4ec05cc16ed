// Package field provides the low-level tokenization of header fields. A header
// is split into lines with ParseLines() and each line is turned into a Field
// with Parse(). A parsed Field remembers its original bytes so that it can be
// written back out exactly as it was read.
package field
