package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	to, subject, text, html string
}

type fakeSender struct {
	got []sent
	err error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	f.got = append(f.got, sent{to, subject, text, html})
	return f.err
}

func TestDeliver_WelcomeTemplate(t *testing.T) {
	s := &fakeSender{}
	job := NewWelcomeJob("Courses", "john@doe.com", "John", "Doe")

	require.NoError(t, Deliver(context.Background(), s, job))
	require.Len(t, s.got, 1)
	m := s.got[0]
	assert.Equal(t, "john@doe.com", m.to)
	assert.Equal(t, "Welcome to Courses, John", m.subject)
	assert.Contains(t, m.text, "Hi John Doe")
	assert.Contains(t, m.html, "<strong>john@doe.com</strong>")
}

func TestDeliver_LiteralBody(t *testing.T) {
	s := &fakeSender{}
	job := EmailJob{To: "a@b.c", Subject: "hello", Text: "plain"}

	require.NoError(t, Deliver(context.Background(), s, job))
	assert.Equal(t, sent{"a@b.c", "hello", "plain", ""}, s.got[0])
}

func TestDeliver_Errors(t *testing.T) {
	s := &fakeSender{}
	err := Deliver(context.Background(), s, EmailJob{Template: "welcome"})
	assert.ErrorIs(t, err, ErrNoRecipient)

	err = Deliver(context.Background(), s, EmailJob{To: "a@b.c", Template: "missing"})
	assert.Error(t, err)
	assert.Empty(t, s.got)

	boom := errors.New("boom")
	s.err = boom
	err = Deliver(context.Background(), s, EmailJob{To: "a@b.c", Subject: "x"})
	assert.ErrorIs(t, err, boom)
}
