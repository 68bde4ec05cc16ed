// Package transfer applies and removes Content-Transfer-Encodings.
//
// Only base64 and quoted-printable change the bytes. The identity encodings,
// 7bit, 8bit, and binary, pass bytes through untouched, as does a missing
// header. Encoding always means going from payload bytes to the wire form and
// decoding the reverse.
//
// An OctetStream pairs wire bytes with their Encoding. For every supported
// encoding, decoding the result of Encode() gives back the input.
package transfer
