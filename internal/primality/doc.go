// Package primality implements trial-division primality testing over
// half-open divisor ranges, plus the helpers that split a search range into
// contiguous partitions for concurrent evaluation.
package primality
