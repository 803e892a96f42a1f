package config

// LINE Messaging API limits.
// References: https://developers.line.biz/en/reference/messaging-api/
const (
	// MaxMessagesPerReply is the maximum number of messages one reply call
	// may carry. Batches outside 1..MaxMessagesPerReply are rejected.
	MaxMessagesPerReply = 5

	// MaxTemplateActions is the maximum number of actions in a buttons
	// template. A 5th action is a builder error, not a truncation.
	MaxTemplateActions = 4

	// MaxTextMessageLength is the maximum content length of a text message.
	MaxTextMessageLength = 5000

	// MaxAltTextLength is the maximum template alt text length.
	MaxAltTextLength = 400

	// MaxPostbackData is the maximum postback action data length.
	MaxPostbackData = 300

	// MaxEventsPerWebhook caps the events accepted from one envelope.
	MaxEventsPerWebhook = 100
)

// Application defaults.
const (
	// DefaultMinReplyTokenLength is the minimum plausible reply token
	// length; shorter tokens are skipped without a delivery attempt.
	DefaultMinReplyTokenLength = 10

	// DefaultGlobalRateRPS is the default reply-endpoint rate limit.
	// LINE allows 100 RPS; 80 leaves headroom.
	DefaultGlobalRateRPS = 80.0
)
