package service

import (
	"regexp"
	"strings"
)

// Scope is the classifier's verdict on a chat message.
type Scope int

const (
	ScopeOutOfDomain Scope = iota
	ScopeGreeting
	ScopeInDomain
)

func (s Scope) String() string {
	switch s {
	case ScopeGreeting:
		return "greeting"
	case ScopeInDomain:
		return "in_domain"
	default:
		return "out_of_domain"
	}
}

var greetingPattern = regexp.MustCompile(
	`^(?:hello|hi|hey|greetings|good morning|good afternoon|good evening)[.!?\s]*$`,
)

// tourismKeywords are matched as plain substrings of the lower-cased message,
// so a keyword inside a longer word ("do" in "London") still counts.
var tourismKeywords = []string{
	"tourist", "place", "visit", "travel", "temple", "beach", "hill", "station",
	"monument", "wildlife", "waterfall", "fort", "garden", "museum",
	"accommodation", "district", "entry fee", "timings", "attraction",
	"accommodations", "hotel", "resort", "stay", "trip", "route", "how to reach",
	"best time", "nearby", "tamil nadu", "ooty", "kodaikanal", "madurai",
	"chennai", "coimbatore", "pondicherry", "tourism", "guide", "places", "park",
	"lake", "mountain", "festival", "season", "weather", "distance", "map",
	"directions", "bus", "train", "airport", "transport", "food", "cuisine",
	"local", "culture", "heritage", "history", "famous", "popular", "recommend",
	"suggest", "see", "do", "things to do", "must see",
}

// IsGreeting reports whether text is nothing but a salutation.
func IsGreeting(text string) bool {
	return greetingPattern.MatchString(strings.ToLower(strings.TrimSpace(text)))
}

// IsTourismQuery reports whether text mentions any topical keyword.
func IsTourismQuery(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range tourismKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Classify decides which response path a message takes. Greeting wins over
// keyword matching.
func Classify(text string) Scope {
	if IsGreeting(text) {
		return ScopeGreeting
	}
	if IsTourismQuery(text) {
		return ScopeInDomain
	}
	return ScopeOutOfDomain
}
