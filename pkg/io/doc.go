// Package io reads and writes scene documents: the persisted form of a
// [scene.Diagram].
//
// # Formats
//
// Two encodings carry the same document: JSON and TOML. [FormatFromPath]
// picks one from a file extension (.json, .toml).
//
//	id = "8f0e4f8e-1f6b-4d0c-9d9f-3c3b9e4a7d21"
//
//	[[nodes]]
//	name  = "pkg"
//	kind  = "container"
//	label = "billing"
//
//	[[nodes]]
//	name   = "invoice"
//	label  = "Invoice"
//	parent = "pkg"
//	x      = 16
//	y      = 40
//
//	[[nodes]]
//	name  = "customer"
//	label = "Customer"
//	x     = 320
//	y     = 60
//
//	[[edges]]
//	from = "invoice"
//	to   = "customer"
//
// # Node Fields
//
// Required:
//   - name: document-local key referenced by edges and parents
//
// Optional:
//   - uuid: persistent node identity (a fresh one is drawn when omitted)
//   - kind: "box" (default), "circle" or "container"
//   - label, tooltip: display text
//   - parent: name of the enclosing node
//   - x, y: location relative to the parent
//   - z, revision: integers; values outside the int range are rejected
//
// # Loading
//
// [Read] builds the node tree, connects the edges and then runs each node's
// FinishDeserializing hook, children before parents, so containers size
// themselves around already-built children. Every failure is a coded error
// from [errors]: INVALID_FORMAT for undecodable input, INVALID_INPUT for
// inconsistent documents.
//
// # Saving
//
// [Write] emits nodes parents-first with generated names (n1, n2, ...) and
// keeps node and diagram identities, so a saved diagram reloads with the
// same IDs.
//
// [scene.Diagram]: github.com/matzehuels/scenegraph/pkg/scene.Diagram
// [errors]: github.com/matzehuels/scenegraph/pkg/errors
package io
