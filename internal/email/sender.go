package email

import (
	"fmt"
	"mime"
	"net/smtp"
	"strings"
)

// Sender delivers mail through a single SMTP endpoint with PLAIN auth.
type Sender struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       []string
}

func NewSender(host string, port int, username, password, from string, to []string) *Sender {
	return &Sender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		to:       to,
	}
}

const altBoundary = "briefing-alt-7f3a9c"

// Send delivers a multipart/alternative message carrying both the plain-text
// and HTML renderings.
func (s *Sender) Send(subject, textBody, htmlBody string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(s.to, ","))
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", altBoundary)

	fmt.Fprintf(&msg, "--%s\r\n", altBoundary)
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	msg.WriteString(textBody)
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s\r\n", altBoundary)
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	msg.WriteString(htmlBody)
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s--\r\n", altBoundary)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	if err := smtp.SendMail(addr, auth, s.from, s.to, []byte(msg.String())); err != nil {
		return fmt.Errorf("email: failed to send: %w", err)
	}
	return nil
}
