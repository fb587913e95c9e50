package summarize

import "strings"

// parseBatchResponse recovers per-article summaries from a "SUMMARY n: ..."
// formatted response. A line starting with the marker opens a new summary;
// other non-blank lines are appended to the current one, so multi-line
// summaries survive. When no marker appears at all, blank-line separated
// blocks of the raw text are used instead.
func parseBatchResponse(text string) []string {
	var summaries []string
	var cur strings.Builder
	started := false

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.HasPrefix(strings.ToUpper(line), "SUMMARY") {
			if started {
				summaries = append(summaries, strings.TrimSpace(cur.String()))
				cur.Reset()
			}
			started = true
			if _, rest, ok := strings.Cut(line, ":"); ok {
				cur.WriteString(strings.TrimSpace(rest))
			}
			continue
		}

		if started {
			if cur.Len() > 0 {
				cur.WriteString(" ")
			}
			cur.WriteString(line)
		}
	}
	if started && strings.TrimSpace(cur.String()) != "" {
		summaries = append(summaries, strings.TrimSpace(cur.String()))
	}

	if len(summaries) == 0 {
		for _, block := range strings.Split(text, "\n\n") {
			if s := strings.TrimSpace(block); s != "" {
				summaries = append(summaries, s)
			}
		}
	}

	return summaries
}
