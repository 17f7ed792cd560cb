// Package layout defines the positional document model reconstructed from
// fixed layout page descriptions: a flat offset addressed sequence of styled
// tokens, grouped into blocks, grouped into pages, plus embedded graphics
// anchored to token positions.
package layout
