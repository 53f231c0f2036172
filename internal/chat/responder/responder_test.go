package responder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedPicker(i int) Picker {
	return PickerFunc(func(int) int { return i })
}

func TestExactRoutesInPriorityOrder(t *testing.T) {
	cases := []struct {
		in     string
		intent string
	}{
		{"What's your name", "name"},
		{"whats your name", "name"},
		{"tell me name", "name"},
		{"Who are you?", "name"},
		{"what's your name, can you help with my development plan and courses?", "name"},
		{"help me create my idp", "about"},
		{"what do you do", "about"},
		{"create my IDP", "idp_create"},
		{"please build an individual development plan", "idp_create"},
		{"browse learning", "browse_learning"},
		{"show me courses", "browse_learning"},
		{"learning", "browse_learning"},
		{"hello there", "greeting"},
		{"hi", "greeting"},
	}
	r := New(fixedPicker(0))
	for _, tc := range cases {
		got := r.Respond(tc.in, "")
		assert.Equal(t, StageExact, got.Stage, "input %q", tc.in)
		assert.Equal(t, tc.intent, got.Intent, "input %q", tc.in)
	}
}

func TestNameReplyBeatsKeywords(t *testing.T) {
	got := New(fixedPicker(0)).Respond("what's your name? idp plan development goal", "")
	assert.Equal(t, "My name is LokYodha Assistant.", got.Base)
}

func TestGreetingNeedsWordBoundary(t *testing.T) {
	_, _, ok := RouteExact("history of the company")
	assert.False(t, ok)
	_, _, ok = RouteExact("hey!")
	assert.True(t, ok)
}

func TestKeywordScoring(t *testing.T) {
	cases := []struct {
		in   string
		bank string
	}{
		{"my idp goals", "idp"},
		{"i want to learn something new", "learning"},
		{"looking for a mentor", "mentorship"},
		{"my analytics insight", "analytics"},
		{"any stretch project opportunity", "projects"},
	}
	r := New(fixedPicker(0))
	for _, tc := range cases {
		got := r.Respond(tc.in, "")
		assert.Equal(t, StageKeyword, got.Stage, "input %q", tc.in)
		assert.Equal(t, tc.bank, got.Intent, "input %q", tc.in)
	}
}

func TestKeywordPresenceCountsOnce(t *testing.T) {
	b := Banks[0]
	assert.Equal(t, 2, b.Score("plan"))
	assert.Equal(t, 2, b.Score("plan plan plan"))
}

func TestKeywordTieBreakFavorsEarlierBank(t *testing.T) {
	// idp: plan=2, learning: course=2.
	bank, score := BestBank("plan course")
	require.Equal(t, 2, score)
	assert.Equal(t, "idp", bank.Name)

	// mentorship: coach=1, analytics: metric=1.
	bank, score = BestBank("coach metric")
	require.Equal(t, 1, score)
	assert.Equal(t, "mentorship", bank.Name)
}

func TestFallbackWhenNothingScores(t *testing.T) {
	r := New(fixedPicker(0))
	for _, in := range []string{"", "   ", "xyzzy"} {
		got := r.Respond(in, "")
		assert.Equal(t, StageFallback, got.Stage, "input %q", in)
		assert.Equal(t, FallbackReply, got.Base)
	}
}

func TestTipAppendedAfterBlankLine(t *testing.T) {
	got := New(fixedPicker(2)).Respond("xyzzy", "")
	assert.Equal(t, FallbackReply+"\n\n"+Tips[2], got.Content)
	assert.Equal(t, Tips[2], got.Tip)
	assert.False(t, got.WrapUp)
}

func TestWrapUpWrapsTipInParentheses(t *testing.T) {
	got := New(fixedPicker(1)).Respond("thanks, that's all!", "")
	require.True(t, got.WrapUp)
	assert.True(t, strings.HasSuffix(got.Content, "\n\n("+Tips[1]+")"), "content %q", got.Content)
}

func TestWrapUpBoundaries(t *testing.T) {
	cases := map[string]bool{
		"thanks, that's all!": true,
		"Thank you.":          true,
		"ok":                  true,
		"okay":                true,
		"That's all":          true,
		"bye!":                true,
		"okayish":             false,
		"thanksgiving plans":  false,
		"ok then":             false,
		"goodbyes are hard":   false,
		"I am done.":          true,
		// A leading "thanks" followed by whitespace satisfies the boundary group.
		"thanks for the info": true,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsWrapUp(in), "input %q", in)
	}
}

func TestRepeatedMessageGetsDifferentReply(t *testing.T) {
	r := New(fixedPicker(0))
	first := r.Respond("plan course", "")
	second := r.Respond("plan course", first.Content)

	assert.True(t, second.Substituted)
	assert.NotEqual(t, first.Base, second.Base)
	assert.NotEqual(t, first.Content, second.Content)
	assert.Equal(t, "Try Leadership Fundamentals and Strategic Thinking Workshop. Should I queue them for you?", second.Base)
}

func TestRepetitionDetectedAcrossDifferentTips(t *testing.T) {
	first := New(fixedPicker(0)).Respond("who are you", "")
	second := New(fixedPicker(2)).Respond("who are you", first.Content)

	assert.True(t, second.Substituted)
	assert.Equal(t, "I'm LokYodha Assistant.", second.Base)
}

func TestRepetitionDetectedAfterWrapUpReply(t *testing.T) {
	first := New(fixedPicker(0)).Respond("my idp, thanks", "")
	require.True(t, first.WrapUp)
	second := New(fixedPicker(0)).Respond("my idp", first.Content)

	assert.True(t, second.Substituted)
	assert.Equal(t, "I can generate a starter IDP with 3 activities and timelines. Want me to draft it?", second.Base)
}

func TestNoSubstitutionWhenPreviousDiffers(t *testing.T) {
	got := New(fixedPicker(0)).Respond("plan course", WelcomeMessage)
	assert.False(t, got.Substituted)
}

func TestAlternateOrder(t *testing.T) {
	assert.Equal(t, "I'm LokYodha Assistant.", Alternate("your name and courses"))
	assert.Equal(t, "Try Leadership Fundamentals and Strategic Thinking Workshop. Should I queue them for you?", Alternate("browse plan"))
	assert.Equal(t, "I can generate a starter IDP with 3 activities and timelines. Want me to draft it?", Alternate("my development"))
	assert.Equal(t, "Plan, Learning, or Analytics—what would you like to focus on?", Alternate("xyz"))
}

func TestStripTip(t *testing.T) {
	for _, tip := range Tips {
		assert.Equal(t, "base", StripTip("base\n\n"+tip))
		assert.Equal(t, "base", StripTip("base\n\n("+tip+")"))
	}
	assert.Equal(t, WelcomeMessage, StripTip(WelcomeMessage))
}

func TestOutOfRangePickerFallsBackToFirstTip(t *testing.T) {
	got := New(fixedPicker(7)).Respond("xyzzy", "")
	assert.Equal(t, Tips[0], got.Tip)
}

func TestDefaultPickerStaysInRange(t *testing.T) {
	r := New(nil)
	for i := 0; i < 50; i++ {
		got := r.Respond("hi", "")
		assert.Contains(t, Tips, got.Tip)
	}
}
