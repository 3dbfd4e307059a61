// Package comments turns the provider's flat, paginated comment stream into a
// capped two-tier forest (root comments plus one level of replies) and orders
// it for presentation.
//
// Build consumes pages lazily from a Source and stops pulling as soon as the
// ingestion ceiling is reached, so providers never need mid-page cancellation.
// Replies attach only to roots that were already accepted; everything else is
// dropped and counted. A transient provider failure ends ingestion early and
// marks the result partial instead of failing the video.
//
// Ordering is applied afterwards by Sorted and never changes which comments
// were admitted, only their order.
package comments
