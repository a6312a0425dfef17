// Package textdiff compares two text blobs for side-by-side display.
//
// The pipeline, leaves first:
//   - Format: optional cosmetic pass (pretty JSON, naive SQL keyword splitting, or identity).
//   - Compute: line diff of the normalized texts plus aggregate Stats. Statistics are always line-granular.
//   - Align: two index-aligned row sequences. Adjacent removed/added runs become modification pairs, and the side lacking a counterpart
//     gets Empty placeholder rows.
//   - Inline: char, word or sentence diff of a modification pair, projected onto each side.
//   - Blocks / NextBlock: one navigation stop per maximal run of changed rows, with circular movement.
//
// Compare runs the whole pipeline and returns a Comparison.
//
// Normalization (Options.IgnoreCase, Options.IgnoreWhitespace) only affects comparison keys. Displayed content and line numbers always come
// from the original lines. Case is folded before whitespace is collapsed, and whitespace is collapsed within a line, never across lines.
//
// Lines: '\n' separates lines. A final '\n' does not start another line, so "a" and "a\n" compare equal, and "" has zero lines.
//
// Every function is pure and total: the same inputs always produce the same output, and no input makes them fail.
package textdiff
