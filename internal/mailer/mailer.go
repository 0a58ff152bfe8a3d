package mailer

import "embed"

const (
	FromName              = "Mesa"
	maxRetries            = 3
	FeedbackReplyTemplate = "feedback_reply.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) (int, error)
}
