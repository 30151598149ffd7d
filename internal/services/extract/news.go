package extract

import "regexp"

// DefaultNewsTopic is searched when nothing but filler words remain
const DefaultNewsTopic = "world"

var newsTrigger = regexp.MustCompile(`\b(?:news|latest|today|headlines?|recent|recently|breaking|current events)\b`)

var newsStopWords = wordSet(
	"news", "latest", "today", "today's", "todays", "headline", "headlines", "recent", "recently",
	"breaking", "current", "events", "happening", "what", "what's", "whats", "is", "are", "was",
	"the", "a", "an", "on", "about", "in", "of", "for", "me", "tell", "show", "give", "get", "any",
	"some", "update", "updates", "top", "stories", "story", "please", "regarding", "with", "s",
	"there", "new", "i", "want", "to", "know", "can", "you",
)

func matchNews(lower, _ string) bool {
	return newsTrigger.MatchString(lower)
}

func extractNews(lower, _ string) (Entity, bool) {
	topic := stripWords(lower, newsStopWords)
	if len(topic) < 3 {
		topic = DefaultNewsTopic
	}
	return Entity{Topic: topic}, true
}
