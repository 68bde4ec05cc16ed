package header

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/zostay/go-addr/pkg/addr"
)

// UnixDateWithEarlyYear is a date layout found in old mailboxes that neither
// net/mail nor dateparse accept.
const UnixDateWithEarlyYear = "Mon Jan 02 15:04:05 2006 MST"

var timeParsers = []func(string) (time.Time, error){
	mail.ParseDate,
	func(s string) (time.Time, error) { return dateparse.ParseAny(s) },
	func(s string) (time.Time, error) { return time.Parse(UnixDateWithEarlyYear, s) },
}

// ParseTime parses a date field body. RFC 5322 dates are tried first, then
// anything dateparse recognizes, then UnixDateWithEarlyYear.
func ParseTime(body string) (time.Time, error) {
	for _, parse := range timeParsers {
		if t, err := parse(body); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("time string %q cannot be parsed", body)
}

// ParseAddressListStrict parses body as an RFC 5322 address list and fails
// on anything else.
func ParseAddressListStrict(body string) (addr.AddressList, error) {
	return addr.ParseEmailAddressList(body)
}

// ParseAddressList parses body as an address list, falling back to a guess
// when the strict parser fails. The guess splits on commas and, for each
// entry, takes parenthesized text as the comment, the last word as the
// address, and the words before it as the display name. Groups are not
// recognized. Any input gives some result.
func ParseAddressList(body string) addr.AddressList {
	if al, err := addr.ParseEmailAddressList(body); err == nil {
		return al
	}
	return guessAddressList(body)
}

func guessAddressList(body string) addr.AddressList {
	var al addr.AddressList
	for _, entry := range strings.Split(body, ",") {
		text, comment := extractComments(entry)
		words := strings.Fields(text)
		if len(words) == 0 {
			continue
		}

		email := strings.TrimSuffix(strings.TrimPrefix(words[len(words)-1], "<"), ">")
		if email == "" {
			continue
		}
		display := strings.Join(words[:len(words)-1], " ")

		local, domain := email, ""
		if at := strings.LastIndexByte(email, '@'); at >= 0 {
			local, domain = email[:at], email[at+1:]
		}
		addrSpec := addr.NewAddrSpecParsed(local, domain, email)

		mb, err := addr.NewMailboxParsed(display, addrSpec, strings.TrimSpace(comment), entry)
		if err != nil {
			// the comment is the usual culprit
			mb, err = addr.NewMailboxParsed(display, addrSpec, "", entry)
		}
		if err != nil {
			continue
		}
		al = append(al, mb)
	}
	return al
}

// extractComments separates s into the text outside parentheses and the text
// inside them. Inner parentheses of nested comments stay in the comment, and
// an unmatched close is treated as text.
func extractComments(s string) (string, string) {
	var text, comment strings.Builder
	depth := 0
	for _, c := range s {
		switch {
		case c == '(':
			if depth > 0 {
				comment.WriteRune(c)
			}
			depth++
		case c == ')' && depth > 0:
			depth--
			if depth > 0 {
				comment.WriteRune(c)
			}
		case depth > 0:
			comment.WriteRune(c)
		default:
			text.WriteRune(c)
		}
	}
	return text.String(), comment.String()
}
