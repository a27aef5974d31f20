package service

import (
	"fmt"
	"strings"

	"github.com/set-night/tnguide/internal/config"
	"github.com/set-night/tnguide/internal/domain"
)

// PlaceContext renders the grounding block sent to the model for a place.
// Optional fields appear only when set, always in the same order.
func PlaceContext(place domain.Place) string {
	var sb strings.Builder
	sb.WriteString("Tourist Place Information:\n")
	fmt.Fprintf(&sb, "Name: %s\n", place.Name)
	fmt.Fprintf(&sb, "Category: %s\n", place.Category)
	fmt.Fprintf(&sb, "District: %s\n", place.District)
	fmt.Fprintf(&sb, "Description: %s\n", place.ShortDescription)

	optional := []struct {
		label string
		value string
	}{
		{"Detailed Description", place.DetailedDescription},
		{"How to Reach", place.HowToReach},
		{"Best Time to Visit", place.BestTimeToVisit},
		{"Entry Fee", place.EntryFee},
		{"Timings", place.Timings},
		{"Nearby Attractions", place.NearbyAttractions},
		{"Accommodation", place.Accommodation},
	}
	for _, f := range optional {
		if f.value == "" {
			continue
		}
		fmt.Fprintf(&sb, "%s: %s\n", f.label, f.value)
	}
	return sb.String()
}

// Windowed keeps the most recent turns of a chronologically ordered history.
func Windowed(history []domain.ChatTurn) []domain.Exchange {
	start := 0
	if len(history) > config.ChatHistoryWindow {
		start = len(history) - config.ChatHistoryWindow
	}
	window := make([]domain.Exchange, 0, len(history)-start)
	for _, turn := range history[start:] {
		window = append(window, domain.Exchange{
			Message:  turn.Message,
			Response: turn.Response,
		})
	}
	return window
}
