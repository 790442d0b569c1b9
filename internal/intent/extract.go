package intent

import (
	"regexp"
	"strings"
)

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`my name is (\w+)`),
	regexp.MustCompile(`i'm (\w+)`),
	regexp.MustCompile(`i am (\w+)`),
	regexp.MustCompile(`call me (\w+)`),
}

// ExtractName looks for a self-introduction in the message and returns the
// captured name, capitalized. The caller owns the resulting state change and
// must apply it at most once per message.
func ExtractName(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, p := range namePatterns {
		if m := p.FindStringSubmatch(lower); m != nil {
			return capitalize(m[1]), true
		}
	}
	return "", false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
