package extract

import "regexp"

var movieTrigger = regexp.MustCompile(`\b(?:movies?|films?|releas(?:e|ed|es|ing)|box office|trailers?|cinema|sequel|marvel|avengers|star wars|harry potter|batman|spider-?man|superman|jurassic|james bond|007|mission impossible|fast (?:and|&) (?:the )?furious|pixar|toy story)\b`)

var movieStopWords = wordSet(
	"movie", "movies", "film", "films", "release", "released", "releases", "releasing",
	"date", "dates", "when", "what", "what's", "whats", "when's", "is", "are", "was", "will", "be",
	"does", "did", "do", "the", "a", "an", "of", "new", "latest", "upcoming", "coming", "out",
	"about", "tell", "me", "info", "information", "details", "trailer", "trailers", "box", "office",
	"cinema", "cinemas", "theater", "theaters", "theatre", "theatres", "in", "on", "for", "show",
	"find", "search", "please", "today", "now", "this", "next", "year", "week", "month", "soon",
	"rating", "review", "reviews", "any", "there", "know", "you", "can", "i", "want", "to",
)

func matchMovie(lower, _ string) bool {
	return movieTrigger.MatchString(lower)
}

func extractMovie(lower, _ string) (Entity, bool) {
	title := stripWords(lower, movieStopWords)
	if len(title) < 2 {
		return Entity{}, false
	}
	return Entity{Title: title}, true
}
