// Package mail delivers digests over SMTP with go-mail.
package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/blogwatch"
	gomail "github.com/wneessen/go-mail"
)

// Defaults match a Gmail account sending through its submission port.
const (
	DefaultHost    = "smtp.gmail.com"
	DefaultPort    = 587
	DefaultTimeout = 30 * time.Second
)

// Ensure Notifier implements blogwatch.Notifier at compile time.
var _ blogwatch.Notifier = (*Notifier)(nil)

// Config holds SMTP account settings.
type Config struct {
	Host     string
	Port     int
	Address  string
	Password string

	// To lists recipients. When empty the digest is sent to Address.
	To []string

	Timeout time.Duration
}

// Notifier sends digests as multipart/alternative mail. Every connection
// is upgraded with STARTTLS and authenticated with PLAIN before sending.
type Notifier struct {
	cfg Config
}

// NewNotifier creates a Notifier, filling unset fields with defaults.
func NewNotifier(cfg Config) (*Notifier, error) {
	if cfg.Address == "" {
		return nil, blogwatch.Errorf(blogwatch.EINVALID, "sender address required")
	}
	if cfg.Password == "" {
		return nil, blogwatch.Errorf(blogwatch.EINVALID, "sender password required")
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if len(cfg.To) == 0 {
		cfg.To = []string{cfg.Address}
	}
	return &Notifier{cfg: cfg}, nil
}

// Message builds the mail for digest without sending it.
func (n *Notifier) Message(digest *blogwatch.Digest) (*gomail.Msg, error) {
	if digest == nil {
		return nil, blogwatch.Errorf(blogwatch.EINVALID, "nil digest")
	}

	m := gomail.NewMsg()
	if err := m.From(n.cfg.Address); err != nil {
		return nil, blogwatch.Errorf(blogwatch.EINVALID, "invalid sender %q: %v", n.cfg.Address, err)
	}
	if err := m.To(n.cfg.To...); err != nil {
		return nil, blogwatch.Errorf(blogwatch.EINVALID, "invalid recipient: %v", err)
	}
	m.Subject(digest.Subject)
	m.SetDate()
	m.SetBodyString(gomail.TypeTextPlain, digest.Text)
	m.AddAlternativeString(gomail.TypeTextHTML, digest.HTML)
	return m, nil
}

// Send delivers digest. The whole exchange is bounded by the context and
// the configured timeout.
func (n *Notifier) Send(ctx context.Context, digest *blogwatch.Digest) error {
	m, err := n.Message(digest)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(n.cfg.Host,
		gomail.WithPort(n.cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(n.cfg.Address),
		gomail.WithPassword(n.cfg.Password),
		gomail.WithTimeout(n.cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send mail via %s:%d: %w", n.cfg.Host, n.cfg.Port, err)
	}
	return nil
}
