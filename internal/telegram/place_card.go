package telegram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/set-night/tnguide/internal/config"
	"github.com/set-night/tnguide/internal/domain"
)

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// EscapeMarkdown escapes the characters that are special in Telegram's
// legacy Markdown mode.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// PlainText flattens an HTML fragment to text, keeping paragraph and list
// breaks. Text without markup is returned trimmed.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").PrependHtml("• ")
	doc.Find("p, li, div, h1, h2, h3, h4").AppendHtml("\n")

	lines := strings.Split(doc.Text(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// PlaceCard renders a place as a Markdown caption no longer than
// config.PlaceCardMaxLen runes.
func PlaceCard(p domain.Place, favorite bool) string {
	var sb strings.Builder
	star := ""
	if favorite {
		star = " ⭐"
	}
	fmt.Fprintf(&sb, "*%s*%s\n", EscapeMarkdown(p.Name), star)
	fmt.Fprintf(&sb, "🏷 %s · 📍 %s\n\n", EscapeMarkdown(string(p.Category)), EscapeMarkdown(p.District))
	sb.WriteString(EscapeMarkdown(PlainText(p.ShortDescription)))
	sb.WriteString("\n")

	details := []struct {
		label string
		value string
	}{
		{"🎟 Entry fee", p.EntryFee},
		{"🕐 Timings", p.Timings},
		{"🌤 Best time to visit", p.BestTimeToVisit},
		{"🚌 How to reach", p.HowToReach},
	}
	for _, d := range details {
		if d.value == "" {
			continue
		}
		fmt.Fprintf(&sb, "\n*%s:* %s", d.label, EscapeMarkdown(PlainText(d.value)))
	}

	return truncateRunes(sb.String(), config.PlaceCardMaxLen)
}

// MapsURL links to the place's coordinates, or returns "" when unknown.
func MapsURL(p domain.Place) string {
	if !p.Latitude.Valid || !p.Longitude.Valid {
		return ""
	}
	return fmt.Sprintf("https://www.google.com/maps?q=%s,%s", p.Latitude.Decimal.String(), p.Longitude.Decimal.String())
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	// Cut at a line boundary so Markdown entities stay balanced.
	runes := []rune(s)[:limit-2]
	cut := string(runes)
	if idx := strings.LastIndex(cut, "\n"); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "\n…"
}
