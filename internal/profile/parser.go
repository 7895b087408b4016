package profile

import (
	"regexp"
	"strings"
)

const (
	maxSkills     = 50
	maxSummaryLen = 500
)

var (
	nameHeadingRe     = regexp.MustCompile(`(?m)^#{1,2}\s+(.+)$`)
	headlineLabelRe   = regexp.MustCompile(`(?im)^(?:headline|title)\s*:\s*(.+)$`)
	headlineHeadingRe = regexp.MustCompile(`(?m)^###\s+(.+)$`)
	currentPosRe      = regexp.MustCompile(`(?i)(?:current|present)\s+position\s*[:\-–—]\s*(.+?)\s+(?:at|@)\s+(.+?)\s*$`)

	experienceHeadingRe = regexp.MustCompile(`(?i)^#{1,6}\s*(?:experience|work history)\b`)
	experienceStopRe    = regexp.MustCompile(`(?i)^#{1,6}\s*(?:education|skills)\b`)
	educationHeadingRe  = regexp.MustCompile(`(?i)^#{1,6}\s*education\b`)
	skillsHeadingRe     = regexp.MustCompile(`(?i)^#{1,6}\s*skills\b`)
	summaryHeadingRe    = regexp.MustCompile(`(?i)^#{1,6}\s*(?:about|summary)\b`)
	anyHeadingRe        = regexp.MustCompile(`^#{1,6}\s`)

	bulletPositionRe = regexp.MustCompile(`^\s*[-*•]\s*(.+?)\s+at\s+(.+?)(?:\s*[–—-]\s*(.+?))?\s*$`)
	plainPositionRe  = regexp.MustCompile(`^(.+?)\s+at\s+(.+?)\s*\((.+?)\)\s*$`)

	bulletRe    = regexp.MustCompile(`^\s*[-*•]\s*(.*)$`)
	eduSplitRe  = regexp.MustCompile(`[,;|]`)
	leadingHash = regexp.MustCompile(`^#+\s*`)
)

// ParseMarkdown extracts a structured Profile from unstructured scraped
// Markdown. It never fails: every extractor is an independent ordered
// heuristic that falls back to defaults when its field cannot be located.
func ParseMarkdown(markdown string) Profile {
	p := Profile{
		PastPositions: []Position{},
		Education:     []Education{},
		Skills:        []string{},
		RawMarkdown:   markdown,
	}

	lines := strings.Split(markdown, "\n")
	nonEmpty := nonEmptyLines(lines)

	p.Name = extractName(markdown, nonEmpty)
	p.Headline = extractHeadline(markdown, nonEmpty)
	p.CurrentPosition = extractCurrentPosition(lines)
	p.PastPositions = extractPastPositions(lines)
	p.Education = extractEducation(lines)
	p.Skills = extractSkills(lines)
	p.Summary = extractSummary(lines)

	return p
}

func nonEmptyLines(lines []string) []string {
	var out []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, strings.TrimSpace(l))
		}
	}
	return out
}

// extractName takes the first H1/H2 heading, falling back to the first
// non-empty line with leading heading markers stripped.
func extractName(markdown string, nonEmpty []string) string {
	if m := nameHeadingRe.FindStringSubmatch(markdown); m != nil {
		return strings.TrimSpace(m[1])
	}
	if len(nonEmpty) > 0 {
		return strings.TrimSpace(leadingHash.ReplaceAllString(nonEmpty[0], ""))
	}
	return ""
}

// extractHeadline prefers an explicit "headline:"/"title:" label, then an H3
// heading, then the second non-empty line of the text.
func extractHeadline(markdown string, nonEmpty []string) string {
	if m := headlineLabelRe.FindStringSubmatch(markdown); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := headlineHeadingRe.FindStringSubmatch(markdown); m != nil {
		return strings.TrimSpace(m[1])
	}
	if len(nonEmpty) > 1 {
		return strings.TrimSpace(leadingHash.ReplaceAllString(nonEmpty[1], ""))
	}
	return ""
}

// extractCurrentPosition matches a "current/present position: Title at
// Company" line. Duration is always "Present" — the pattern never attempts
// to parse a date range for the current role.
func extractCurrentPosition(lines []string) *Position {
	for _, l := range lines {
		if m := currentPosRe.FindStringSubmatch(l); m != nil {
			return &Position{
				Title:    strings.TrimSpace(m[1]),
				Company:  strings.TrimSpace(m[2]),
				Duration: "Present",
			}
		}
	}
	return nil
}

// extractPastPositions applies two alternative line patterns inside the
// experience section: bulleted "Title at Company – Duration" and plain
// "Title at Company (Duration)". Every match from both patterns is kept, so
// a line matching both yields two entries; duplicates are intentionally not
// removed.
func extractPastPositions(lines []string) []Position {
	section := sectionLines(lines, experienceHeadingRe, experienceStopRe)
	positions := []Position{}
	for _, l := range section {
		if m := bulletPositionRe.FindStringSubmatch(l); m != nil {
			duration := strings.TrimSpace(m[3])
			if duration == "" {
				duration = "N/A"
			}
			positions = append(positions, Position{
				Title:    strings.TrimSpace(m[1]),
				Company:  strings.TrimSpace(m[2]),
				Duration: duration,
			})
		}
		if m := plainPositionRe.FindStringSubmatch(l); m != nil {
			positions = append(positions, Position{
				Title:    strings.TrimSpace(m[1]),
				Company:  strings.TrimSpace(m[2]),
				Duration: strings.TrimSpace(m[3]),
			})
		}
	}
	return positions
}

// extractEducation reads bulleted lines of the education section as
// comma/semicolon/pipe-delimited school, degree, field. Non-bulleted lines
// are ignored.
func extractEducation(lines []string) []Education {
	section := sectionLines(lines, educationHeadingRe, anyHeadingRe)
	entries := []Education{}
	for _, l := range section {
		m := bulletRe.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		fields := eduSplitRe.Split(m[1], -1)
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if len(fields) == 0 || fields[0] == "" {
			continue
		}
		e := Education{School: fields[0], Degree: "N/A", Field: "N/A"}
		if len(fields) > 1 && fields[1] != "" {
			e.Degree = fields[1]
		}
		if len(fields) > 2 && fields[2] != "" {
			e.Field = fields[2]
		}
		entries = append(entries, e)
	}
	return entries
}

// extractSkills collects skills from the skills section: a bullet is one
// skill, a comma-separated line is several, any other non-empty non-heading
// line is taken whole. Capped at the first maxSkills entries.
func extractSkills(lines []string) []string {
	section := sectionLines(lines, skillsHeadingRe, anyHeadingRe)
	skills := []string{}
	for _, l := range section {
		trimmed := strings.TrimSpace(l)
		switch {
		case trimmed == "" || anyHeadingRe.MatchString(trimmed):
			continue
		case bulletRe.MatchString(trimmed):
			skills = append(skills, strings.TrimSpace(bulletRe.FindStringSubmatch(trimmed)[1]))
		case strings.Contains(trimmed, ","):
			for _, s := range strings.Split(trimmed, ",") {
				skills = append(skills, strings.TrimSpace(s))
			}
		default:
			skills = append(skills, trimmed)
		}
	}
	filtered := skills[:0]
	for _, s := range skills {
		if s != "" {
			filtered = append(filtered, s)
		}
	}
	if len(filtered) > maxSkills {
		filtered = filtered[:maxSkills]
	}
	return filtered
}

// extractSummary returns the about/summary section text truncated to
// maxSummaryLen characters, or "" when no such section exists.
func extractSummary(lines []string) string {
	section := sectionLines(lines, summaryHeadingRe, anyHeadingRe)
	text := strings.TrimSpace(strings.Join(section, "\n"))
	if runes := []rune(text); len(runes) > maxSummaryLen {
		text = string(runes[:maxSummaryLen])
	}
	return text
}

// sectionLines returns the lines between the first heading matching start
// and the next heading matching stop (or end of text). Returns nil when no
// start heading is found.
func sectionLines(lines []string, start, stop *regexp.Regexp) []string {
	begin := -1
	for i, l := range lines {
		if start.MatchString(strings.TrimSpace(l)) {
			begin = i + 1
			break
		}
	}
	if begin < 0 {
		return nil
	}
	end := len(lines)
	for i := begin; i < len(lines); i++ {
		if stop.MatchString(strings.TrimSpace(lines[i])) {
			end = i
			break
		}
	}
	return lines[begin:end]
}
