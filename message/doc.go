// Package message reads and builds MIME messages as trees of parts. Parsing
// is lenient and lossless: a message that is parsed and written back out
// without changes produces the same bytes, however odd the input was. Building
// is strict and produces well formed messages.
//
// A Part is a header and the raw body that follows it. A body is examined
// with ParseContent(), which tells whether it holds Data, a Nested message, or
// a Multipart, and parses just that one level:
//
//	p, err := message.Parse(in)
//	if err != nil {
//	  panic(err)
//	}
//
//	c, err := message.ParseContent(p, nil)
//	if err != nil {
//	  panic(err)
//	}
//
//	if mp, ok := c.(*message.Multipart); ok {
//	  for _, part := range mp.Parts {
//	    fmt.Println(message.ContentType(part))
//	  }
//	}
//
// Parts are never changed in place. SetContent() and ModifyHeader() return new
// parts, leaving the original tree intact. New messages are put together with
// CreateDataPart(), CreateMultipart(), CreateRelated(), and CreateEnvelope().
package message
