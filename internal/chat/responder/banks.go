package responder

import "strings"

// Keyword is one weighted term of a bank.
type Keyword struct {
	Term   string
	Weight int
}

// Bank is a named intent scored by keyword presence.
type Bank struct {
	Name     string
	Keywords []Keyword
	Reply    func(original string) string
}

// Score sums the weights of keywords present in text. Repeats count once.
func (b Bank) Score(text string) int {
	score := 0
	for _, kw := range b.Keywords {
		if strings.Contains(text, kw.Term) {
			score += kw.Weight
		}
	}
	return score
}

func fixed(s string) func(string) string {
	return func(string) string { return s }
}

// Banks is ordered; on equal scores the earlier bank wins.
var Banks = []Bank{
	{
		Name: "idp",
		Keywords: []Keyword{
			{"idp", 3}, {"plan", 2}, {"development", 2}, {"goal", 1}, {"activities", 1},
		},
		Reply: fixed("Let's build your plan: 1) pick a target role, 2) choose 2–3 activities (training, mentorship, project), 3) set deadlines. Want a quick template with examples?"),
	},
	{
		Name: "learning",
		Keywords: []Keyword{
			{"learn", 3}, {"course", 2}, {"training", 2}, {"content", 2}, {"module", 1}, {"skill", 1},
		},
		Reply: fixed("Based on skill growth, start with Leadership Fundamentals and Strategic Thinking Workshop. Prefer content by skill area like Communication or Strategic Thinking?"),
	},
	{
		Name: "mentorship",
		Keywords: []Keyword{
			{"mentor", 3}, {"mentorship", 3}, {"coach", 1}, {"guidance", 1},
		},
		Reply: fixed("Good mentorship = one clear goal, biweekly check-ins, and short action items. Which area do you want coaching in first?"),
	},
	{
		Name: "analytics",
		Keywords: []Keyword{
			{"analytics", 3}, {"insight", 2}, {"dashboard", 2}, {"progress", 2}, {"metric", 1},
		},
		Reply: fixed("Your dashboard highlights Active Plans, Completed Learning, and Progress. Want a tip to increase your progress this week?"),
	},
	{
		Name: "projects",
		Keywords: []Keyword{
			{"project", 3}, {"apply", 2}, {"opportunity", 2}, {"stretch", 2},
		},
		Reply: fixed("Choose one impact project aligned to your target role with a measurable outcome. Need help picking a suitable project?"),
	},
}

// BestBank returns the highest scoring bank for text, first declared on ties.
func BestBank(text string) (Bank, int) {
	best, bestScore := Banks[0], Banks[0].Score(text)
	for _, b := range Banks[1:] {
		if s := b.Score(text); s > bestScore {
			best, bestScore = b, s
		}
	}
	return best, bestScore
}
