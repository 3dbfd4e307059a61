// Package analysis derives a small sentiment and keyword summary from
// transcript text.
//
// Sentiment scoring averages an embedded opinion lexicon over the words that
// appear in it. A negator within the preceding three words flips and dampens a
// word's polarity; an intensifier immediately before it scales the polarity.
// Keywords are the most frequent non-stopword tokens, ties broken
// alphabetically so output is deterministic.
package analysis
