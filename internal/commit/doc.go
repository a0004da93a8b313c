// Package commit defines the commit record consumed by the changelog pipeline.
//
// A Record carries two date encodings of the same instant: a canonical
// CalendarDate used for bucketing and ordering, and a free-form display
// string used only in rendered text. Records are built once when a raw
// commit is parsed and are treated as values afterwards.
package commit
