// Package wirefmt hardens the boundary between raw text and structured
// document trees for markup (XML) and object-notation (JSON) wire forms:
//
//   - Cheap format probing (LooksLikeXML/LooksLikeJSON) for dispatch
//   - Single-pass rewriting of named character references to numeric form
//   - Hardened readers: no DOCTYPE processing, no PI leakage, exact decimal text
//   - Fidelity-preserving writers: decimals round-trip byte-for-byte
//
// Design policy:
//   - Keep only public APIs in the root package; put detailed implementations under internal/.
//   - Token sources live under source/, value codecs under codec/, the CLI under cmd/wirefmt.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	if wirefmt.LooksLikeXML(raw) {
//		r, _ := wirefmt.NewReaderString(raw, wirefmt.FormatXML)
//		doc, err := r.ReadDocument()
//		...
//	}
//
//	out, err := wirefmt.EncodeDocument(wirefmt.FormatJSON, doc)
package wirefmt
