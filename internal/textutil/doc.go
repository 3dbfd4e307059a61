// Package textutil provides small text helpers shared by the transcript
// cleaner, the analysis package, and output naming.
//
// Tokenize lowercases text, splits on non-alphanumeric characters, and drops
// tokens shorter than three characters. CollapseSpace folds runs of
// whitespace, including newlines, into single spaces.
package textutil
