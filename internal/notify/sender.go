package notify

import (
	"context"
	"fmt"
	"mime/quotedprintable"
	"net/smtp"
	"strings"
)

// Sender delivers one rendered email.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

type smtpSender struct {
	addr string
	from string
}

// NewSMTPSender returns a Sender that relays through the given SMTP host.
func NewSMTPSender(host, port, from string) Sender {
	return &smtpSender{
		addr: fmt.Sprintf("%s:%s", host, port),
		from: from,
	}
}

func (s *smtpSender) Send(ctx context.Context, email Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := buildMessage(s.from, email)
	if err != nil {
		return fmt.Errorf("building message: %w", err)
	}

	if err := smtp.SendMail(s.addr, nil, s.from, []string{email.To}, msg); err != nil {
		return fmt.Errorf("sending mail to %s: %w", email.To, err)
	}
	return nil
}

// headerValue strips CR and LF so record fields interpolated into header
// lines cannot smuggle in extra headers.
func headerValue(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

// buildMessage assembles a multipart/alternative MIME message with the
// plain-text part first so clients that prefer text pick it up.
func buildMessage(from string, email Email) ([]byte, error) {
	const boundary = "intake-email-boundary"

	var b strings.Builder
	b.WriteString("From: " + headerValue(from) + "\r\n")
	b.WriteString("To: " + headerValue(email.To) + "\r\n")
	b.WriteString("Subject: " + headerValue(email.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: multipart/alternative; boundary=" + boundary + "\r\n")
	b.WriteString("\r\n")

	writePart := func(contentType, body string) error {
		b.WriteString("--" + boundary + "\r\n")
		b.WriteString("Content-Type: " + contentType + "; charset=UTF-8\r\n")
		b.WriteString("Content-Transfer-Encoding: quoted-printable\r\n")
		b.WriteString("\r\n")
		w := quotedprintable.NewWriter(&b)
		if _, err := w.Write([]byte(body)); err != nil {
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}
		b.WriteString("\r\n")
		return nil
	}

	if err := writePart("text/plain", email.TextBody); err != nil {
		return nil, err
	}
	if err := writePart("text/html", email.HTMLBody); err != nil {
		return nil, err
	}
	b.WriteString("--" + boundary + "--\r\n")

	return []byte(b.String()), nil
}
