package config

import "time"

const (
	// Assistant
	ChatHistoryWindow = 5
	GroundedMaxTokens = 500
	GeneralMaxTokens  = 400
	ChatTemperature   = 0.7

	// Matches chat_messages.session_id VARCHAR(100)
	MaxSessionIDLength = 100

	// Generation backend request timeout
	RequestTimeout = 60 * time.Second

	// Catalog listing
	PlacesPerPage       = 9
	FeaturedPlacesLimit = 5
	ShortDescriptionMax = 300

	// Caches
	FacetsCacheDuration = 10 * time.Minute
	PlaceCacheTTL       = 1 * time.Hour

	// Accounts
	TokenExpiration = 24 * time.Hour

	// HTTP server
	ShutdownTimeout = 5 * time.Second

	// Telegram limits
	MaxTelegramMessageLen = 4096
	PlaceCardMaxLen       = 900

	// Bot listings
	BotPlacesPerPage = 5
	HistoryPreview   = 5

	// Bot conversations idle longer than this start a new session
	SessionIdleTimeout = 30 * time.Minute

	// Rate limits (per minute)
	RateLimitPerMinute = 10

	// Stale rate-limit counter cleanup interval
	RateLimitCleanup = 5 * time.Minute
)
