package middleware

import (
	"strings"

	"gopkg.in/telebot.v3"
)

// EditOrSend edits the callback message in place and falls back to a new
// message when there is nothing to edit.
func EditOrSend(c telebot.Context, text string, markup *telebot.ReplyMarkup) error {
	var opts []interface{}
	if markup != nil {
		opts = append(opts, markup)
	}
	if c.Callback() == nil {
		return c.Send(text, opts...)
	}
	if err := c.Edit(text, opts...); err != nil {
		// Re-rendering the same view is not an error worth a second message.
		if strings.Contains(err.Error(), "not modified") {
			return nil
		}
		return c.Send(text, opts...)
	}
	return nil
}
