package bot

import (
	"fmt"
	"math/rand"
	"time"

	"confluencebot/internal/intent"
)

var templateSets = map[intent.Intent][]string{
	intent.Greeting: {
		"Hello! How can I help you today?",
		"Hi there! What's on your mind?",
		"Greetings! How are you doing?",
		"Hey! Nice to meet you!",
	},
	intent.Goodbye: {
		"Goodbye! Have a great day!",
		"See you later! Take care!",
		"Bye! It was nice chatting with you!",
		"Until next time! Stay safe!",
	},
	intent.Thanks: {
		"You're welcome!",
		"Happy to help!",
		"No problem at all!",
		"Glad I could assist!",
	},
	intent.HowAreYou: {
		"I'm doing well, thank you for asking!",
		"I'm great! How about you?",
		"I'm functioning perfectly! How are you?",
		"I'm having a wonderful day! Thanks for asking!",
	},
	intent.Weather: {
		"I don't have access to real-time weather data, but I hope it's nice where you are!",
		"I can't check the weather right now, but you could try a weather app or website!",
		"Sorry, I don't have weather information, but I hope you're having good weather!",
	},
	intent.Joke: {
		"Why don't scientists trust atoms? Because they make up everything!",
		"Why did the scarecrow win an award? He was outstanding in his field!",
		"What do you call a fake noodle? An impasta!",
		"Why don't eggs tell jokes? They'd crack each other up!",
	},
	intent.ConfluenceHelp: {
		`I can look things up in Confluence for you. Try "load page <title>" or ask me to search the wiki.`,
		`Ask me to load a page by title or ID, or to search the wiki for a topic.`,
	},
	intent.LoadPage: {
		`I couldn't find that page. Try quoting the exact title, like: load page "Project Overview".`,
		"I couldn't load that page. Double-check the title or give me its ID.",
	},
	intent.SearchConfluence: {
		"I couldn't find anything in Confluence for that. Try different keywords.",
		"No wiki results for that, sorry. Maybe rephrase the search?",
	},
	intent.Default: {
		"That's interesting! Can you tell me more?",
		"I see. What else is on your mind?",
		"Hmm, that's something to think about!",
		"Could you elaborate on that?",
		"I'm not sure I understand completely. Could you rephrase that?",
		"That's a good point. What do you think about it?",
	},
}

// templateReply picks a canned response for the intent. Name-question and
// time intents render dynamic values; greeting and goodbye personalize when
// the participant's name is known.
func templateReply(in intent.Intent, botName, userName string, now time.Time) string {
	switch {
	case in == intent.Greeting && userName != "":
		return fmt.Sprintf("Hello again, %s! How can I assist you?", userName)
	case in == intent.Goodbye && userName != "":
		return fmt.Sprintf("Goodbye, %s! Have a wonderful day!", userName)
	case in == intent.NameQuestion:
		return pick([]string{
			fmt.Sprintf("I'm %s, your friendly chat bot!", botName),
			fmt.Sprintf("You can call me %s. What's your name?", botName),
			fmt.Sprintf("I'm %s! Nice to meet you!", botName),
		})
	case in == intent.Time:
		return pick([]string{
			fmt.Sprintf("The current time is %s", now.Format("15:04:05")),
			fmt.Sprintf("Right now it's %s", now.Format("3:04 PM")),
			fmt.Sprintf("The time is %s", now.Format("15:04")),
		})
	}

	set, ok := templateSets[in]
	if !ok {
		set = templateSets[intent.Default]
	}
	return pick(set)
}

func pick(set []string) string {
	return set[rand.Intn(len(set))]
}
