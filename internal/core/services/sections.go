package services

import (
	"strings"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
)

// maxHeadingLevel is the deepest markdown heading recognised.
const maxHeadingLevel = 6

// IndexSections parses markdown headings out of body.
//
// A heading is a line with at most three leading spaces, one to six '#'
// characters, a space or tab and non-empty text. Lines inside fenced code
// blocks are ignored. The result is ordered by offset and is never nil.
func IndexSections(body string) []domain.SectionEntry {
	entries := make([]domain.SectionEntry, 0)

	var fence string
	for lineStart := 0; lineStart < len(body); {
		lineEnd := len(body)
		next := len(body)
		if i := strings.IndexByte(body[lineStart:], '\n'); i >= 0 {
			lineEnd = lineStart + i
			next = lineEnd + 1
		}
		line := strings.TrimSuffix(body[lineStart:lineEnd], "\r")

		if marker := fenceMarker(line); marker != "" {
			switch {
			case fence == "":
				fence = marker
			case strings.HasPrefix(marker, fence):
				fence = ""
			}
		} else if fence == "" {
			if level, heading, ok := parseHeading(line); ok {
				entries = append(entries, domain.SectionEntry{
					Level:        level,
					Heading:      heading,
					Start:        lineStart,
					ContentStart: next,
				})
			}
		}

		lineStart = next
	}

	for i := range entries {
		entries[i].End = len(body)
		if i+1 < len(entries) {
			entries[i].End = entries[i+1].Start
		}

		entries[i].SubtreeEnd = len(body)
		for j := i + 1; j < len(entries); j++ {
			if entries[j].Level <= entries[i].Level {
				entries[i].SubtreeEnd = entries[j].Start
				break
			}
		}
	}

	return entries
}

// FindSection returns the first entry whose heading matches name ignoring
// case. Leading '#' markers and surrounding space in name are ignored.
func FindSection(entries []domain.SectionEntry, name string) (domain.SectionEntry, bool) {
	name = normaliseHeadingQuery(name)
	for _, e := range entries {
		if strings.EqualFold(e.Heading, name) {
			return e, true
		}
	}
	return domain.SectionEntry{}, false
}

// SectionText returns the trimmed content of entry, nested sub-sections
// included and the heading line itself excluded.
func SectionText(body string, entry domain.SectionEntry) string {
	start := min(entry.ContentStart, len(body))
	end := min(entry.SubtreeEnd, len(body))
	if start >= end {
		return ""
	}
	return strings.TrimSpace(body[start:end])
}

// Headings returns the heading text of each entry in order.
func Headings(entries []domain.SectionEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Heading
	}
	return out
}

func parseHeading(line string) (level int, heading string, ok bool) {
	indent := 0
	for indent < len(line) && line[indent] == ' ' {
		indent++
	}
	if indent > 3 {
		return 0, "", false
	}
	line = line[indent:]

	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > maxHeadingLevel || level == len(line) {
		return 0, "", false
	}
	if line[level] != ' ' && line[level] != '\t' {
		return 0, "", false
	}

	heading = strings.TrimSpace(line[level:])
	heading = trimClosingHashes(heading)
	if heading == "" {
		return 0, "", false
	}
	return level, heading, true
}

// trimClosingHashes drops an optional closing "###" sequence. The run
// only counts as closing when preceded by a space, as in "Title ##".
func trimClosingHashes(heading string) string {
	trimmed := strings.TrimRight(heading, "#")
	if trimmed == heading {
		return heading
	}
	if trimmed == "" {
		return ""
	}
	if last := trimmed[len(trimmed)-1]; last != ' ' && last != '\t' {
		return heading
	}
	return strings.TrimSpace(trimmed)
}

// fenceMarker returns the fence run (``` or ~~~ and longer) opening line,
// or "" when line is not a fence.
func fenceMarker(line string) string {
	line = strings.TrimLeft(line, " ")
	for _, ch := range []byte{'`', '~'} {
		n := 0
		for n < len(line) && line[n] == ch {
			n++
		}
		if n >= 3 {
			return line[:n]
		}
	}
	return ""
}

func normaliseHeadingQuery(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimLeft(name, "#")
	return strings.TrimSpace(name)
}
