// Package mimetree is the root of a library for reading, building, and
// rewriting MIME email messages as trees of parts.
//
// The work is split by concern:
//
//   - message holds the part tree: parsing, the content of each part, the
//     builders for new messages, and the functions classifying parts as inline
//     or attachments.
//   - message/header and its subpackages handle header fields and
//     parameterized values such as Content-Type.
//   - message/transfer implements the Content-Transfer-Encodings.
//   - message/attachment decodes and hashes attachments on demand.
//   - message/walk searches a tree for inline parts, alternatives, related
//     parts, and attachments, and rebuilds a tree with attachments replaced.
//
// Parsing is lossless. A message that is parsed and written back out without
// changes produces exactly the bytes that were read, even when those bytes are
// not strictly correct. The mimetool command in cmd/mimetool demonstrates this
// with its roundtrip subcommand.
package mimetree
