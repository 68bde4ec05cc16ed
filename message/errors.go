package message

import "errors"

// Errors returned while building messages.
var (
	// ErrNoParts is returned by CreateMultipart when it is given no parts.
	ErrNoParts = errors.New("a multipart needs at least one part")

	// ErrNoBody is returned by CreateEnvelope when no body part is given.
	ErrNoBody = errors.New("an envelope needs a body part")
)

// Errors that occur during parsing.
var (
	// ErrNoBoundary is returned by ParseContent when the boundary parameter is
	// not set on the Content-Type field of a multipart.
	ErrNoBoundary = errors.New("the boundary parameter is missing from Content-Type")

	// ErrMalformedMultipart is returned by ParseContent when a multipart body
	// contains no boundary delimiter at all.
	ErrMalformedMultipart = errors.New("the multipart body has no boundary delimiters")

	// ErrLargeHeader is returned by Parse when the header is longer than the
	// configured WithMaxHeaderLength option (or the default,
	// DefaultMaxHeaderLength).
	ErrLargeHeader = errors.New("the header exceeds the maximum parse length")

	// ErrLargePart is returned by ParseContent when a part is longer than the
	// configured WithMaxPartLength option (or the default,
	// DefaultMaxPartLength).
	ErrLargePart = errors.New("a message part exceeds the maximum parse length")
)

// ErrAmbiguousPayload is returned when the decoded payload of a multipart is
// requested. A multipart has no single payload: decompose it into its parts
// first.
var ErrAmbiguousPayload = errors.New("a multipart has no single payload")
