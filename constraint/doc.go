// Package constraint holds the data model shared between the builder and
// its consumers: variables, wire positions, gate kinds and specs, the gate
// vector sink, and the error taxonomy. The numeric gate encoding and the
// field byte encoding are consumed by external prover backends and are
// fixed.
package constraint
