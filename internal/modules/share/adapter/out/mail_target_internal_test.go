package out

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	gomail "gopkg.in/mail.v2"

	"audiomark/internal/modules/share/domain"
	apperrors "audiomark/internal/platform/errors"
)

func TestMailTargetUnavailableWithoutSettings(t *testing.T) {
	t.Parallel()
	target := NewMailTarget(MailSettings{Host: "smtp.example.com"})
	if err := target.Available(context.Background()); !errors.Is(err, apperrors.ErrTargetUnavailable) {
		t.Fatalf("expected target unavailable, got %v", err)
	}
}

func TestMailTargetBuildsPlainTextMessage(t *testing.T) {
	t.Parallel()
	target := NewMailTarget(MailSettings{Host: "smtp.example.com", Port: 587, From: "me@example.com", To: "inbox@example.com"}).(*MailTarget)
	var sent bytes.Buffer
	target.send = func(msg *gomail.Message) error {
		_, err := msg.WriteTo(&sent)
		return err
	}
	receipt, err := target.Share(context.Background(), domain.Note{Subject: "Lecture 3", Body: "#Edit-times\n\n00:00:01\n", MIME: "text/plain"})
	if err != nil {
		t.Fatalf("share: %v", err)
	}
	if receipt.Location != "mailto:inbox@example.com" {
		t.Fatalf("unexpected receipt %+v", receipt)
	}
	raw := sent.String()
	for _, want := range []string{"Subject: Lecture 3", "To: inbox@example.com", "text/plain", "#Edit-times"} {
		if !strings.Contains(raw, want) {
			t.Fatalf("message missing %q:\n%s", want, raw)
		}
	}
}
