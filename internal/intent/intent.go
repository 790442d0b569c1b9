package intent

import (
	"regexp"
	"strings"
)

// Intent is the closed set of message categories the bot understands.
type Intent string

const (
	Greeting         Intent = "greeting"
	Goodbye          Intent = "goodbye"
	Thanks           Intent = "thanks"
	HowAreYou        Intent = "how_are_you"
	NameQuestion     Intent = "name_question"
	Weather          Intent = "weather"
	Time             Intent = "time"
	Joke             Intent = "joke"
	ConfluenceHelp   Intent = "confluence_help"
	LoadPage         Intent = "load_page"
	SearchConfluence Intent = "search_confluence"
	Default          Intent = "default"
)

type entry struct {
	intent   Intent
	patterns []*regexp.Regexp
}

// The table is an ordered slice, not a map: declaration order is precedence
// order when several patterns could match.
var table = []entry{
	{Greeting, compile(
		`\b(hi|hello|hey|greetings|good morning|good afternoon|good evening)\b`,
	)},
	{Goodbye, compile(
		`\b(bye|goodbye|see you|farewell|talk to you later|ttyl)\b`,
	)},
	{Thanks, compile(
		`\b(thanks|thank you|thx|appreciated)\b`,
	)},
	{HowAreYou, compile(
		`\b(how are you|how're you|how do you feel|how are things)\b`,
	)},
	{NameQuestion, compile(
		`\b(what's your name|who are you|what are you called|your name)\b`,
	)},
	{Weather, compile(
		`\b(weather|temperature|rain|sunny|cloudy|forecast)\b`,
	)},
	{Time, compile(
		`\b(time|what time|current time|clock)\b`,
	)},
	{Joke, compile(
		`\b(joke|funny|laugh|humor|humour|make me laugh)\b`,
	)},
	{ConfluenceHelp, compile(
		`\b(confluence help|help with confluence|what can you do with confluence|wiki help)\b`,
	)},
	{LoadPage, compile(
		`\b(load|open|show|read)\s+(the\s+)?(page|document|doc)\b`,
	)},
	{SearchConfluence, compile(
		`\b(search|find|look up|look for)\b.*\b(confluence|wiki|pages?|documents?)\b`,
	)},
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}

// Classify returns the first intent whose pattern list matches the
// case-folded text, or Default. It never fails: unmatched input is not an
// error, it is the default intent.
func Classify(text string) Intent {
	lower := strings.ToLower(text)
	for _, e := range table {
		for _, p := range e.patterns {
			if p.MatchString(lower) {
				return e.intent
			}
		}
	}
	return Default
}
