package telegram

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// SplitMessage splits a message into chunks of maxLen characters,
// trying to split at newlines when possible.
func SplitMessage(text string, maxLen int) []string {
	if utf8.RuneCountInString(text) <= maxLen {
		return []string{text}
	}

	var parts []string
	for len(text) > 0 {
		if utf8.RuneCountInString(text) <= maxLen {
			parts = append(parts, text)
			break
		}

		// Find split point
		runes := []rune(text)
		splitAt := maxLen

		// Try to split at a newline
		chunk := string(runes[:maxLen])
		lastNewline := strings.LastIndex(chunk, "\n")
		if lastNewline > maxLen/2 {
			splitAt = lastNewline + 1
		}

		parts = append(parts, string(runes[:splitAt]))
		text = string(runes[splitAt:])
	}

	return parts
}

var headingPattern = regexp.MustCompile(`(?m)^#{1,6}\s+(.+?)\s*#*$`)

// FromModelMarkdown converts the CommonMark a chat model tends to emit into
// Telegram's legacy Markdown: headings and **bold** become *bold*.
func FromModelMarkdown(text string) string {
	text = headingPattern.ReplaceAllString(text, "*$1*")
	text = strings.ReplaceAll(text, "**", "*")
	return FixMarkdown(text)
}

// FixMarkdown closes unbalanced code blocks, inline code and bold markers.
func FixMarkdown(text string) string {
	// Fix unclosed code blocks
	codeBlockCount := strings.Count(text, "```")
	if codeBlockCount%2 != 0 {
		text += "\n```"
	}

	// Fix unclosed inline code (outside of code blocks)
	text = fixInlineCode(text)
	return fixBold(text)
}

// fixBold escapes a trailing unmatched '*' outside code.
func fixBold(text string) string {
	runes := []rune(text)
	inCode := false
	last := -1
	open := false
	for i := 0; i < len(runes); i++ {
		switch {
		case runes[i] == '`':
			inCode = !inCode
		case runes[i] == '\\' && i+1 < len(runes):
			i++
		case !inCode && runes[i] == '*':
			open = !open
			last = i
		}
	}
	if !open {
		return text
	}
	return string(runes[:last]) + "\\*" + string(runes[last+1:])
}

func fixInlineCode(text string) string {
	var builder strings.Builder
	inCodeBlock := false
	inlineOpen := false

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		// Check for code blocks
		if i+2 < len(runes) && string(runes[i:i+3]) == "```" {
			if inlineOpen {
				builder.WriteRune('`')
				inlineOpen = false
			}
			inCodeBlock = !inCodeBlock
			builder.WriteString("```")
			i += 2
			continue
		}

		if !inCodeBlock && runes[i] == '`' {
			inlineOpen = !inlineOpen
		}

		builder.WriteRune(runes[i])
	}

	if inlineOpen {
		builder.WriteRune('`')
	}

	return builder.String()
}
