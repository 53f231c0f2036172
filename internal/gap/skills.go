package gap

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxMilestones = 3

// CompareSkills contrasts two comma-separated skill lists. Skills are
// compared lower-cased; overlap and gaps keep the target list's order.
func CompareSkills(in SkillsInput) SkillsResult {
	current := skillList(in.CurrentSkills)
	target := skillList(in.TargetSkills)

	res := SkillsResult{
		Overlap: []string{},
		Gaps:    []string{},
		Suggestions: SkillsSuggestions{
			Learn:      []string{},
			Practice:   []string{},
			Milestones: []string{},
		},
	}
	for _, s := range target {
		if slices.Contains(current, s) {
			res.Overlap = append(res.Overlap, s)
		} else {
			res.Gaps = append(res.Gaps, s)
		}
	}

	titled := make([]string, 0, len(res.Gaps))
	for i, s := range res.Gaps {
		name := capitalize(s)
		titled = append(titled, name)
		res.Suggestions.Learn = append(res.Suggestions.Learn, "Complete a focused course on "+name)
		res.Suggestions.Practice = append(res.Suggestions.Practice, "Apply "+name+" on a small weekly task")
		if i < maxMilestones {
			res.Suggestions.Milestones = append(res.Suggestions.Milestones,
				fmt.Sprintf("Milestone %d: Demonstrate %s in a mini-project", i+1, name))
		}
	}

	focus := "reinforcing your strengths"
	if len(titled) > 0 {
		focus = strings.Join(titled, ", ")
	}
	res.Summary = fmt.Sprintf("To move from %s to %s in %s, prioritize %s. Keep goals small and measurable.",
		orDefault(in.CurrentRole, "your current role"),
		orDefault(in.TargetRole, "your target role"),
		orDefault(in.Timeframe, "your timeframe"),
		focus)
	return res
}

func skillList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		s := strings.ToLower(strings.TrimSpace(part))
		if s != "" && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}
