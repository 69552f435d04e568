package domain

// SectionEntry describes one heading of an article body.
//
// Offsets are byte positions into the body. [Start, End) spans partition the
// body after any text preceding the first heading. [ContentStart, SubtreeEnd)
// is the section's content including nested sub-sections.
type SectionEntry struct {
	// Level is the heading depth, 1 being the top.
	Level int

	// Heading is the heading text without markers.
	Heading string

	// Start is the offset of the heading line.
	Start int

	// ContentStart is the offset just after the heading line.
	ContentStart int

	// End is the offset of the next heading of any level, or the body length.
	End int

	// SubtreeEnd is the offset of the next heading whose level is at most
	// Level, or the body length.
	SubtreeEnd int
}

// SectionHeading is the content-free outline entry returned to callers.
type SectionHeading struct {
	Level   int    `json:"level"`
	Heading string `json:"header"`
}

// Outline returns the content-free entry for the section.
func (e SectionEntry) Outline() SectionHeading {
	return SectionHeading{Level: e.Level, Heading: e.Heading}
}
