package mailer

import "context"

type Service interface {
	Send(ctx context.Context, e Email) error
}

type Email struct {
	FromName string // optional: "Angel Baby Dresses"
	From     string // required: "no-reply@local.test"

	To []string

	Subject string

	TextBody string
	HTMLBody string
}
