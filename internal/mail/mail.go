package mail

import (
	"context"

	"github.com/sirupsen/logrus"
	gomail "github.com/wneessen/go-mail"
)

type Message struct {
	To      string
	Subject string
	Text    string
}

// Mailer delivers a single message. Implementations report failure to the
// caller and never retry on their own.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type Config struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
}

type SMTP struct {
	cfg Config
	log *logrus.Entry
}

var _ Mailer = (*SMTP)(nil)

func NewSMTP(cfg Config, l *logrus.Logger) *SMTP {
	return &SMTP{
		cfg: cfg,
		log: l.WithFields(map[string]interface{}{
			"from": "mail",
		}),
	}
}

func (s *SMTP) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return err
	}
	if err := m.To(msg.To); err != nil {
		return err
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Text)

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(s.cfg.Password),
	)
	if err != nil {
		return err
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return err
	}
	s.log.WithField("to", msg.To).Debug("mail sent")
	return nil
}
