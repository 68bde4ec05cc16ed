// Package header reads and writes the header of a message or part.
//
// Parse() keeps every field exactly as it was read, folding, odd spacing, and
// junk before the first field included, so a header that is not changed is
// written back byte for byte. Fields that are added or replaced are rendered
// in a strictly correct form. Reads return the last field of a name and names
// are matched without regard to case.
//
// The typed getters, such as GetDate() and GetContentType(), parse field
// bodies on demand. The field package handles single fields and the param
// package handles parameterized values like those of Content-Type.
package header
