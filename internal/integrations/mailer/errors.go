package mailer

import "errors"

var (
	ErrInternal = errors.New("mailer: internal error")
	ErrSend     = errors.New("mailer: failed to send message")
)
