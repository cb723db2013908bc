package testutil

import (
	tele "gopkg.in/telebot.v3"
)

// FakeContext implements the parts of tele.Context used by handlers and middleware.
// Calling any other method panics on the nil embedded Context.
type FakeContext struct {
	tele.Context

	User          *tele.User
	CallbackQuery *tele.Callback

	Sent      []interface{}
	Edited    []interface{}
	Markups   []*tele.ReplyMarkup
	Responses []*tele.CallbackResponse
}

// NewFakeCallback returns a context for a button press by userID
func NewFakeCallback(userID int64, unique, data string) *FakeContext {
	return &FakeContext{
		User:          &tele.User{ID: userID},
		CallbackQuery: &tele.Callback{ID: "cb", Unique: unique, Data: data},
	}
}

func (c *FakeContext) Sender() *tele.User       { return c.User }
func (c *FakeContext) Callback() *tele.Callback { return c.CallbackQuery }

func (c *FakeContext) Send(what interface{}, opts ...interface{}) error {
	c.Sent = append(c.Sent, what)
	c.recordMarkup(opts)
	return nil
}

func (c *FakeContext) Edit(what interface{}, opts ...interface{}) error {
	c.Edited = append(c.Edited, what)
	c.recordMarkup(opts)
	return nil
}

func (c *FakeContext) Respond(resp ...*tele.CallbackResponse) error {
	c.Responses = append(c.Responses, resp...)
	return nil
}

func (c *FakeContext) recordMarkup(opts []interface{}) {
	for _, opt := range opts {
		if m, ok := opt.(*tele.ReplyMarkup); ok {
			c.Markups = append(c.Markups, m)
		}
	}
}

// LastMarkup returns the keyboard of the latest sent or edited message
func (c *FakeContext) LastMarkup() *tele.ReplyMarkup {
	if len(c.Markups) == 0 {
		return nil
	}
	return c.Markups[len(c.Markups)-1]
}
