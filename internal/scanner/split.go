// Package scanner adapts bufio.SplitFunc for splitters that consume input
// without producing a token on every call.
package scanner

import (
	"bufio"
	"errors"
)

// ErrContinue may be returned by a split function wrapped with
// MakeSplitFuncExitByAdvance to consume the advanced bytes and be called again
// at once, even where the scanner would otherwise stop.
var ErrContinue = errors.New("split func continue")

// MakeSplitFuncExitByAdvance wraps split so that a call which advances without
// returning a token is retried on the remaining data instead of being handed
// back to the bufio.Scanner.
//
// A plain bufio.Scanner stops when a split function returns a nil token at
// EOF, even if bytes were consumed. The wrapped function returns to the
// scanner only when split produces a token, asks for more data by advancing
// zero bytes, consumes all the data, or fails. The advances of all the calls
// are summed so the scanner skips the right number of bytes.
func MakeSplitFuncExitByAdvance(split bufio.SplitFunc) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		totalAdvance := 0
		for {
			advance, token, err := split(data, atEOF)

			if errors.Is(err, ErrContinue) {
				data = data[advance:]
				totalAdvance += advance
				continue
			}

			if token != nil || advance == 0 || len(data)-advance <= 0 || err != nil {
				return totalAdvance + advance, token, err
			}

			data = data[advance:]
			totalAdvance += advance
		}
	}
}
