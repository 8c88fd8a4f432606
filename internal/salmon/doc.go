// Package salmon provides types for salmon run statistics scraped from Swedish Lapland Fishing.
//
// The salmon package defines the fixed set of monitored rivers, the per-year Series of
// dates and fish counts, and the ordered collections that hold them for a single run.
// Nothing here touches the network or the filesystem.
package salmon
