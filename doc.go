// Package forth implements an embeddable Forth interpreter: a small
// virtual machine executing threaded code over a single contiguous array
// of cells, together with a compiler that reads space-delimited source
// text and appends word definitions to an in-memory dictionary.
//
// A VM is created with New, fed source through Eval or a configured
// input, and driven with Run. Its entire state lives in one cell array
// that can be persisted with SaveCore and resumed elsewhere with
// LoadCore.
package forth
