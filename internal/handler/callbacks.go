package handler

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	placesPagePrefix = "pl:"
	placeOpenPrefix  = "place_"
	placeAskPrefix   = "ask_"
	favTogglePrefix  = "fav_"
	unfavPrefix      = "unfav_"

	// Telegram rejects callback data longer than this many bytes.
	maxCallbackData = 64
)

// placesCallback encodes a listing page and its search query. The query is
// cut on a rune boundary to fit Telegram's callback size limit.
func placesCallback(page int, query string) string {
	head := fmt.Sprintf("%s%d:", placesPagePrefix, page)
	room := maxCallbackData - len(head)
	for len(query) > room {
		_, size := utf8.DecodeLastRuneInString(query)
		query = query[:len(query)-size]
	}
	return head + query
}

func parsePlacesCallback(data string) (int, string, bool) {
	rest, ok := strings.CutPrefix(data, placesPagePrefix)
	if !ok {
		return 0, "", false
	}
	pageStr, query, ok := strings.Cut(rest, ":")
	if !ok {
		return 0, "", false
	}
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		return 0, "", false
	}
	return page, query, true
}

func idCallback(prefix string, id int64) string {
	return prefix + strconv.FormatInt(id, 10)
}

func parseIDCallback(data, prefix string) (int64, bool) {
	rest, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// placeDeepLink opens the bot straight on a place card.
func placeDeepLink(botUsername string, placeID int64) string {
	return fmt.Sprintf("https://t.me/%s?start=%s", botUsername, idCallback(placeOpenPrefix, placeID))
}

// commandArg returns the text after the command word, trimmed.
func commandArg(text string) string {
	parts := strings.SplitN(text, " ", 2)
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
