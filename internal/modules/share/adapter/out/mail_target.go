package out

import (
	"context"
	"fmt"
	"time"

	gomail "gopkg.in/mail.v2"

	"audiomark/internal/modules/share/domain"
	shareout "audiomark/internal/modules/share/port/out"
	apperrors "audiomark/internal/platform/errors"
)

const mailDialTimeout = 10 * time.Second

type MailSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

func (m MailSettings) configured() bool {
	return m.Host != "" && m.From != "" && m.To != ""
}

// MailTarget sends the note as a plain-text message to a notes inbox.
type MailTarget struct {
	settings MailSettings
	send     func(*gomail.Message) error
}

func NewMailTarget(settings MailSettings) shareout.Target {
	t := &MailTarget{settings: settings}
	t.send = t.dialAndSend
	return t
}

func (t *MailTarget) Name() string { return domain.TargetMail }

func (t *MailTarget) Available(_ context.Context) error {
	if !t.settings.configured() {
		return fmt.Errorf("%w: mail host, from and to must be configured", apperrors.ErrTargetUnavailable)
	}
	return nil
}

func (t *MailTarget) message(note domain.Note) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", t.settings.From)
	msg.SetHeader("To", t.settings.To)
	msg.SetHeader("Subject", note.Subject)
	mime := note.MIME
	if mime == "" {
		mime = "text/plain"
	}
	msg.SetBody(mime, note.Body)
	return msg
}

func (t *MailTarget) Share(ctx context.Context, note domain.Note) (domain.Receipt, error) {
	if err := t.Available(ctx); err != nil {
		return domain.Receipt{}, err
	}
	if err := t.send(t.message(note)); err != nil {
		return domain.Receipt{}, fmt.Errorf("failed to send mail: %w", err)
	}
	return domain.Receipt{Location: "mailto:" + t.settings.To}, nil
}

func (t *MailTarget) dialAndSend(msg *gomail.Message) error {
	dialer := gomail.NewDialer(t.settings.Host, t.settings.Port, t.settings.Username, t.settings.Password)
	dialer.Timeout = mailDialTimeout
	return dialer.DialAndSend(msg)
}
