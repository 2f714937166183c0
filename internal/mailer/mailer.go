package mailer

import (
	"context"
	"fmt"
	"html"
	"io"
	"time"

	"github.com/penwyp/go-timelog/internal/config"
	"github.com/penwyp/go-timelog/internal/util"
	"github.com/wneessen/go-mail"
)

const dialTimeout = 30 * time.Second

// Transport is the part of an SMTP client the mailer needs.
type Transport interface {
	DialWithContext(ctx context.Context) error
	Send(messages ...*mail.Msg) error
	Close() error
}

// Dialer creates a transport for the SMTP settings.
type Dialer func(cfg config.SMTPConfig) (Transport, error)

// Mailer sends the monthly report. Failures are printed and logged, never returned, so a
// scheduled run always exits cleanly.
type Mailer struct {
	cfg  config.SMTPConfig
	dial Dialer
	out  io.Writer
}

// NewMailer creates a mailer that reports failures on out.
func NewMailer(cfg config.SMTPConfig, out io.Writer) *Mailer {
	return &Mailer{cfg: cfg, dial: NewClient, out: out}
}

// NewClient builds a go-mail client from the settings.
func NewClient(cfg config.SMTPConfig) (Transport, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(dialTimeout),
		mail.WithTLSPolicy(tlsPolicy(cfg.TLS)),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password))
	}
	return mail.NewClient(cfg.Host, opts...)
}

func tlsPolicy(policy string) mail.TLSPolicy {
	switch policy {
	case "mandatory":
		return mail.TLSMandatory
	case "none":
		return mail.NoTLS
	default:
		return mail.TLSOpportunistic
	}
}

// BuildMessage wraps body in a plain text message with an HTML alternative that keeps the
// fixed-width layout.
func BuildMessage(from string, to []string, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := msg.To(to...); err != nil {
		return nil, fmt.Errorf("invalid recipients: %w", err)
	}
	msg.Subject(subject)
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextPlain, body)
	msg.AddAlternativeString(mail.TypeTextHTML, "<pre>"+html.EscapeString(body)+"</pre>")
	return msg, nil
}

// Send mails the report to every recipient and reports whether it went out.
func (m *Mailer) Send(ctx context.Context, subject, body string) bool {
	if err := m.send(ctx, subject, body); err != nil {
		fmt.Fprintln(m.out, err)
		util.LogError("Failed to send report", util.Field{Key: "error", Value: err.Error()})
		return false
	}

	util.LogInfo("Report sent",
		util.Field{Key: "subject", Value: subject},
		util.Field{Key: "recipients", Value: len(m.cfg.Recipients)})
	return true
}

func (m *Mailer) send(ctx context.Context, subject, body string) (err error) {
	if m.cfg.Host == "" {
		return fmt.Errorf("smtp.host is not configured")
	}
	if len(m.cfg.Recipients) == 0 {
		return fmt.Errorf("smtp.recipients is empty")
	}

	from := m.cfg.From
	if from == "" {
		from = m.cfg.Username
	}

	msg, err := BuildMessage(from, m.cfg.Recipients, subject, body)
	if err != nil {
		return err
	}

	client, err := m.dial(m.cfg)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to %s:%d: %w", m.cfg.Host, m.cfg.Port, err)
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			util.LogWarn("Closing smtp connection failed", util.Field{Key: "error", Value: closeErr.Error()})
		}
	}()

	if err := client.Send(msg); err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}
	return nil
}
