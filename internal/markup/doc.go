// Package markup re-serializes a stream of markup events while repairing
// out-of-order closing tags.
//
// # Event Model
//
// Feed tokenizes HTML with golang.org/x/net/html and drives a Handler with
// four events: start, self-closing, text and end. Comments and doctypes are
// delivered as text so they survive re-serialization untouched.
//
// # Handlers
//
//	Handler (interface)
//	    │
//	    ├── Reconstructor      - rebuilds markup on an io.Writer sink
//	    └── MetadataExtractor  - Reconstructor that strips control tags
//	                             and records them in a ControlList
//
// The Reconstructor keeps a stack of open elements. While the stack is
// empty, output drains straight to the sink; otherwise flushed elements are
// folded into the data of the new innermost element. Folding is plain string
// concatenation, so a repaired document never loses text even when its
// structure is repaired imperfectly.
//
// # Limitations
//
// Attribute values are written between double quotes exactly as decoded by
// the tokenizer. Embedded quotes and entities are not re-escaped.
package markup
