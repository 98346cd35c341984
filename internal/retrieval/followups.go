package retrieval

import "strings"

// FollowUpExtractor separates a model answer into the main response and
// suggested follow-up questions. Implementations are swappable: a
// structured-output model can replace the free-text heuristic without
// touching callers.
type FollowUpExtractor interface {
	Extract(answer string) (main string, followUps []string)
}

// HeuristicExtractor is the default FollowUpExtractor, parsing the loose
// free-text formats chat models produce.
type HeuristicExtractor struct{}

// Extract implements FollowUpExtractor via SplitAnswer.
func (HeuristicExtractor) Extract(answer string) (string, []string) {
	return SplitAnswer(answer)
}

var _ FollowUpExtractor = HeuristicExtractor{}

// SplitAnswer separates a model answer into the main response and any
// suggested follow-up questions. The prompt asks the model to append
// follow-ups after the answer; models format them loosely, so this is a
// heuristic: the first paragraph is the answer, and the first later
// paragraph that looks like a suggestion list yields its question lines.
func SplitAnswer(answer string) (string, []string) {
	parts := strings.Split(strings.TrimSpace(answer), "\n\n")
	if len(parts) == 0 {
		return "", nil
	}

	main := strings.TrimSpace(parts[0])

	var followUps []string
	for _, part := range parts[1:] {
		lower := strings.ToLower(part)
		if !strings.Contains(lower, "follow-up") && !strings.Contains(part, "-") && !strings.Contains(part, "?") {
			continue
		}
		for _, line := range strings.Split(strings.TrimSpace(part), "\n") {
			if !strings.Contains(line, "?") {
				continue
			}
			line = strings.TrimSpace(strings.Trim(line, "–-•* "))
			if line != "" {
				followUps = append(followUps, line)
			}
		}
		break
	}

	return main, followUps
}
