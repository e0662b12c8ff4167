package summary

import (
	"regexp"
	"strings"
)

const (
	maxMergedBullets    = 20
	minBulletNormLen    = 10
	maxSectionLines     = 50
	maxUnsectionedLines = 30
)

var (
	numberedBulletRe = regexp.MustCompile(`^\d+\.\s+`)
	nonWordRe        = regexp.MustCompile(`[^\w\s]`)
)

// MergeSummaries combines ordered partial summaries into one text using the
// strategy that matches the style. Order is the chunk order, never the
// completion order. One summary is returned unchanged, zero yield "".
func MergeSummaries(summaries []string, style Style) string {
	switch len(summaries) {
	case 0:
		return ""
	case 1:
		return summaries[0]
	}

	switch style {
	case StyleBulletPoints:
		return mergeBullets(summaries)
	case StyleParagraph, StyleExecutive:
		return strings.Join(summaries, "\n\n")
	case StyleDetailed, StyleAcademic:
		return mergeStructured(summaries)
	default:
		return strings.Join(summaries, "\n\n---\n\n")
	}
}

// mergeBullets collects bullet lines from every summary, drops duplicates
// and trivially short entries, and re-emits them in first-seen order.
func mergeBullets(summaries []string) string {
	seen := make(map[string]struct{})
	var unique []string
	for _, summary := range summaries {
		for _, bullet := range extractBullets(summary) {
			normalized := normalizeBullet(bullet)
			if len(normalized) <= minBulletNormLen {
				continue
			}
			if _, dup := seen[normalized]; dup {
				continue
			}
			seen[normalized] = struct{}{}
			unique = append(unique, bullet)
			if len(unique) == maxMergedBullets {
				break
			}
		}
		if len(unique) == maxMergedBullets {
			break
		}
	}

	var b strings.Builder
	for i, bullet := range unique {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("• ")
		b.WriteString(bullet)
	}
	return b.String()
}

func extractBullets(text string) []string {
	var bullets []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "• "), strings.HasPrefix(line, "- "),
			strings.HasPrefix(line, "* "), strings.HasPrefix(line, "· "):
			bullets = append(bullets, strings.TrimSpace(line[strings.IndexByte(line, ' ')+1:]))
		case numberedBulletRe.MatchString(line):
			bullets = append(bullets, strings.TrimSpace(numberedBulletRe.ReplaceAllString(line, "")))
		}
	}
	return bullets
}

func normalizeBullet(bullet string) string {
	normalized := strings.ToLower(strings.TrimSpace(bullet))
	return nonWordRe.ReplaceAllString(normalized, "")
}

// mergeStructured groups lines under their headings across all summaries.
// A heading is a markdown "## " line or a line fully wrapped in bold
// markers. Same-named sections are merged; content with no heading lands in
// a trailing bucket.
func mergeStructured(summaries []string) string {
	type section struct {
		name  string
		lines []string
	}
	var (
		ordered []*section
		byName  = make(map[string]*section)
		other   []string
	)

	for _, summary := range summaries {
		var current *section
		for _, line := range strings.Split(summary, "\n") {
			if isHeading(line) {
				name := strings.Trim(line, "#* ")
				sec, ok := byName[name]
				if !ok {
					sec = &section{name: name}
					byName[name] = sec
					ordered = append(ordered, sec)
				}
				current = sec
				continue
			}
			if current != nil {
				current.lines = append(current.lines, line)
			} else {
				other = append(other, line)
			}
		}
	}

	var parts []string
	for _, sec := range ordered {
		lines := sec.lines
		if len(lines) > maxSectionLines {
			lines = lines[:maxSectionLines]
		}
		parts = append(parts, "## "+sec.name, strings.Join(lines, "\n"))
	}
	if len(other) > 0 {
		if len(other) > maxUnsectionedLines {
			other = other[:maxUnsectionedLines]
		}
		parts = append(parts, strings.Join(other, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

func isHeading(line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "## ") {
		return true
	}
	return len(trimmed) > 4 && strings.HasPrefix(trimmed, "**") && strings.HasSuffix(trimmed, "**")
}
