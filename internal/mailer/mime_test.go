package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildMIMEMessageTextOnly(t *testing.T) {
	t.Parallel()

	msg, err := buildMIMEMessage(Email{
		From:     "orders@example.com",
		FromName: "Angel Baby Dresses",
		To:       []string{"jo@example.com"},
		Subject:  "Your order",
		TextBody: "Thank you!\n",
	}, "example.com")
	require.NoError(t, err)
	require.Contains(t, msg, "To: jo@example.com")
	require.Contains(t, msg, "Content-Type: text/plain; charset=UTF-8")
	require.Contains(t, msg, "Thank you!")
	require.NotContains(t, msg, "multipart/alternative")
}

func TestBuildMIMEMessageMultipart(t *testing.T) {
	t.Parallel()

	msg, err := buildMIMEMessage(Email{
		From:     "orders@example.com",
		To:       []string{"jo@example.com"},
		Subject:  "Your order",
		TextBody: "plain",
		HTMLBody: "<p>html</p>",
	}, "example.com")
	require.NoError(t, err)
	require.Contains(t, msg, "multipart/alternative")
	require.Contains(t, msg, "text/plain")
	require.Contains(t, msg, "text/html")
	require.Equal(t, 1, strings.Count(msg, "--\r\n"), "exactly one closing boundary")
}

func TestBuildMIMEMessageValidation(t *testing.T) {
	t.Parallel()

	_, err := buildMIMEMessage(Email{From: "a@b.c", Subject: "s", TextBody: "x"}, "d")
	require.Error(t, err, "missing recipient")

	_, err = buildMIMEMessage(Email{To: []string{"a@b.c"}, Subject: "s", TextBody: "x"}, "d")
	require.Error(t, err, "missing from")

	_, err = buildMIMEMessage(Email{From: "a@b.c", To: []string{"a@b.c"}, TextBody: "x"}, "d")
	require.Error(t, err, "missing subject")

	_, err = buildMIMEMessage(Email{From: "a@b.c", To: []string{"a@b.c"}, Subject: "s"}, "d")
	require.Error(t, err, "missing body")
}

func TestFormatAddressEncodesDisplayName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "a@b.c", formatAddress("", "a@b.c"))
	require.Contains(t, formatAddress("Plain Name", "a@b.c"), "<a@b.c>")
}
