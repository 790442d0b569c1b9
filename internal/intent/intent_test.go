package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		text string
		want Intent
	}{
		{"Hello there", Greeting},
		{"good morning!", Greeting},
		{"BYE!!!", Goodbye},
		{"Goodbye.", Goodbye},
		{"ok, see you later", Goodbye},
		{"thanks a lot", Thanks},
		{"how are you doing?", HowAreYou},
		{"what's your name?", NameQuestion},
		{"is it sunny outside", Weather},
		{"what time is it", Time},
		{"tell me a joke", Joke},
		{"wiki help please", ConfluenceHelp},
		{"load the page Deployment Guide", LoadPage},
		{"open doc 42", LoadPage},
		{"search the wiki for onboarding", SearchConfluence},
		{"find pages about releases", SearchConfluence},
		{"the mitochondria is the powerhouse of the cell", Default},
		{"", Default},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.text), "text=%q", tc.text)
	}
}

func TestClassifyTableOrderWins(t *testing.T) {
	// Both greeting and thanks patterns match; greeting is declared first.
	assert.Equal(t, Greeting, Classify("hello and thanks"))
	// Goodbye is declared before thanks.
	assert.Equal(t, Goodbye, Classify("thanks, goodbye"))
}

func TestExtractName(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"My name is Alice", "Alice"},
		{"my name is alice", "Alice"},
		{"I'm bob", "Bob"},
		{"i am sam", "Sam"},
		{"Call me Ishmael", "Ishmael"},
	}

	for _, tc := range cases {
		got, ok := ExtractName(tc.text)
		require.True(t, ok, "text=%q", tc.text)
		assert.Equal(t, tc.want, got)
	}

	_, ok := ExtractName("nothing to see here")
	assert.False(t, ok)
}
