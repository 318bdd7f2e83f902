package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string

	send func(*gomail.Message) error
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	s := &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
	s.send = func(m *gomail.Message) error {
		return gomail.NewDialer(s.Host, s.Port, s.User, s.Password).DialAndSend(m)
	}
	return s
}

func (s *EmailSender) SendLeadNotification(ctx context.Context, to []string, lead *entity.Lead) error {
	if len(to) == 0 {
		return errors.New("no recipients")
	}

	body, err := render(leadNotificationTmpl, newLeadEmailData(lead))
	if err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	subject := "Novo lead RFQ"
	if brand := lead.Field("brand"); brand != "" {
		subject = fmt.Sprintf("Novo lead RFQ - %s", brand)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	if replyTo := strings.TrimSpace(lead.Field("email")); replyTo != "" {
		m.SetHeader("Reply-To", replyTo)
	}
	m.SetBody("text/html", body)

	return s.deliver(ctx, m)
}

func (s *EmailSender) SendCustomerConfirmation(ctx context.Context, to string, lead *entity.Lead) error {
	body, err := render(customerConfirmationTmpl, newLeadEmailData(lead))
	if err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Recebemos seu pedido de cotação")
	m.SetBody("text/html", body)

	return s.deliver(ctx, m)
}

// gomail has no context support, so the SMTP exchange runs in its own goroutine
// and is abandoned (not aborted) when ctx expires.
func (s *EmailSender) deliver(ctx context.Context, m *gomail.Message) error {
	done := make(chan error, 1)
	go func() {
		done <- s.send(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("erro ao enviar email SMTP: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("erro ao enviar email SMTP: %w", ctx.Err())
	}
}
