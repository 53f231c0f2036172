// Package responder picks the assistant reply for a chat message. It routes a
// handful of exact phrasings first, then scores keyword banks, then avoids
// repeating the previous reply and appends a tip.
package responder

import (
	"math/rand/v2"
	"regexp"
	"strings"
)

// WelcomeMessage seeds every new chat session.
const WelcomeMessage = "Welcome to LokYodha! How can I help with succession planning or your development journey today?"

const (
	nameReply       = "My name is LokYodha Assistant."
	capabilityReply = "I help with succession planning: creating an Individual Development Plan (IDP), browsing tailored learning, and understanding your analytics. Ask me to 'create my IDP', 'browse learning', or 'explain analytics'."
	idpHowToReply   = "To create your IDP: 1) Open Dashboard → AI Gap Analysis, 2) answer the 4 quick questions, 3) review the generated recommendations, 4) convert them into your plan activities. Want a quick starter template?"
	browseReply     = "You can start with Leadership Fundamentals and Strategic Thinking Workshop. Prefer filtering by skill (e.g., Communication, Strategic Thinking) or by difficulty (beginner/intermediate/advanced)?"
	greetingReply   = "Hi! I can help you create an IDP, browse learning, or review analytics. What would you like to do?"

	// FallbackReply answers input that matches no route and no keyword.
	FallbackReply = "I can help you with: 1) creating your IDP, 2) tailored learning, or 3) reading your analytics. Which would you like to do?"
)

// Tips are appended to every reply.
var Tips = []string{
	"Tip: Keep goals small enough to finish within 2 weeks.",
	"Tip: Pair one course with a tiny practice task to lock learning.",
	"Tip: A single weekly progress update keeps momentum high.",
}

// Stage reports which step produced the base reply.
type Stage string

const (
	StageExact    Stage = "exact"
	StageKeyword  Stage = "keyword"
	StageFallback Stage = "fallback"
)

// Picker chooses an index in [0, n). Tests inject a fixed picker.
type Picker interface {
	IntN(n int) int
}

type randPicker struct{}

func (randPicker) IntN(n int) int { return rand.IntN(n) }

// PickerFunc adapts a function to Picker.
type PickerFunc func(n int) int

func (f PickerFunc) IntN(n int) int { return f(n) }

// Reply is the outcome for one user message.
type Reply struct {
	// Content is the full assistant message, tip included.
	Content string
	// Base is the reply before the tip was appended.
	Base        string
	Stage       Stage
	Intent      string
	WrapUp      bool
	Substituted bool
	Tip         string
}

// Responder is safe for concurrent use when its Picker is.
type Responder struct {
	picker Picker
}

// New returns a Responder drawing tips from p, or from math/rand when p is nil.
func New(p Picker) *Responder {
	if p == nil {
		p = randPicker{}
	}
	return &Responder{picker: p}
}

// Respond builds the assistant reply to content. previous is the last assistant
// message of the session, or "" when there is none.
func (r *Responder) Respond(content, previous string) Reply {
	text := strings.ToLower(strings.TrimSpace(content))

	out := Reply{WrapUp: IsWrapUp(content)}
	if base, intent, ok := RouteExact(text); ok {
		out.Base, out.Intent, out.Stage = base, intent, StageExact
	} else if b, score := BestBank(text); score > 0 {
		out.Base, out.Intent, out.Stage = b.Reply(content), b.Name, StageKeyword
	} else {
		out.Base, out.Stage = FallbackReply, StageFallback
	}

	if previous != "" && repeats(out.Base, previous) {
		out.Base = Alternate(text)
		out.Substituted = true
	}

	out.Tip = Tips[r.pickTip()]
	if out.WrapUp {
		out.Content = out.Base + "\n\n(" + out.Tip + ")"
	} else {
		out.Content = out.Base + "\n\n" + out.Tip
	}
	return out
}

func (r *Responder) pickTip() int {
	i := r.picker.IntN(len(Tips))
	if i < 0 || i >= len(Tips) {
		return 0
	}
	return i
}

type route struct {
	intent string
	match  func(string) bool
	reply  string
}

var (
	nameRe       = regexp.MustCompile(`(what('?| i)s|tell me) (your )?name`)
	whoAreYouRe  = regexp.MustCompile(`^who are you\??$`)
	capabilityRe = regexp.MustCompile(`(details|about|what do you do|help)`)
	idpCreateRe  = regexp.MustCompile(`(create|make|build).*(idp|individual development plan)|^create my idp$`)
	browseRe     = regexp.MustCompile(`(browse|show|find).*(learning|courses)|^learning$|^browse learning$`)
	greetingRe   = regexp.MustCompile(`^(hi|hii|hello|hey)\b`)

	wrapUpRe = regexp.MustCompile(`(?i)(^|\s)(thanks|thank you|done|that's all|thats all|bye|goodbye|ok$|okay$)(\s|!|\.|$)`)

	altNameRe  = regexp.MustCompile(`name|who are you`)
	altLearnRe = regexp.MustCompile(`browse|learning|course`)
	altPlanRe  = regexp.MustCompile(`idp|plan|development`)
)

// Evaluated in order; the first match wins.
var routes = []route{
	{intent: "name", reply: nameReply, match: func(t string) bool { return nameRe.MatchString(t) || whoAreYouRe.MatchString(t) }},
	{intent: "about", reply: capabilityReply, match: capabilityRe.MatchString},
	{intent: "idp_create", reply: idpHowToReply, match: idpCreateRe.MatchString},
	{intent: "browse_learning", reply: browseReply, match: browseRe.MatchString},
	{intent: "greeting", reply: greetingReply, match: greetingRe.MatchString},
}

// RouteExact matches normalized text against the fixed phrasings.
func RouteExact(text string) (reply, intent string, ok bool) {
	for _, rt := range routes {
		if rt.match(text) {
			return rt.reply, rt.intent, true
		}
	}
	return "", "", false
}

// IsWrapUp reports whether content reads as a sign-off.
func IsWrapUp(content string) bool {
	return wrapUpRe.MatchString(content)
}

// Alternate is the replacement used when the base reply would repeat the previous one.
func Alternate(text string) string {
	switch {
	case altNameRe.MatchString(text):
		return "I'm LokYodha Assistant."
	case altLearnRe.MatchString(text):
		return "Try Leadership Fundamentals and Strategic Thinking Workshop. Should I queue them for you?"
	case altPlanRe.MatchString(text):
		return "I can generate a starter IDP with 3 activities and timelines. Want me to draft it?"
	default:
		return "Plan, Learning, or Analytics—what would you like to focus on?"
	}
}

// repeats compares base with the previous assistant message, ignoring the tip suffix.
func repeats(base, previous string) bool {
	base = strings.TrimSpace(base)
	prev := strings.TrimSpace(previous)
	return prev == base || StripTip(prev) == base
}

// StripTip removes a trailing tip paragraph added by Respond.
func StripTip(content string) string {
	for _, tip := range Tips {
		for _, suffix := range []string{"\n\n(" + tip + ")", "\n\n" + tip} {
			if strings.HasSuffix(content, suffix) {
				return strings.TrimSpace(strings.TrimSuffix(content, suffix))
			}
		}
	}
	return content
}
