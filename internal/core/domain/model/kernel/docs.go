// Package kernel contains the shared value objects of the dispatch domain:
// entity identifiers and geographic coordinates. Both are immutable and
// must be created through their constructor functions; zero values fail
// validation.
package kernel
