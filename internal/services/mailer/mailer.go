// Package services содержит отправку служебных писем пользователям.
package services

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/tour-booking-api/internal/lib/sl"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/smtp"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
)

// MailerService отправляет письма через SMTP транспорт.
type MailerService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewMailerService создает новый экземпляр MailerService.
func NewMailerService(transport smtp.TransportInterface, log *slog.Logger) *MailerService {
	return &MailerService{
		transport: transport,
		log:       log,
	}
}

// SendPasswordReset отправляет пользователю ссылку для сброса пароля.
// Ссылка действительна ограниченное время, открытый токен нигде не хранится.
func (s *MailerService) SendPasswordReset(user *models.User, resetURL string) error {
	to := []string{user.Email}
	subject := "Сброс пароля (ссылка действительна 10 минут)"
	bodyText := fmt.Sprintf(`Здравствуйте, %s!

Вы запросили сброс пароля. Чтобы задать новый пароль, отправьте PATCH запрос
с новым паролем на адрес: %s

Если вы не запрашивали сброс пароля, просто проигнорируйте это письмо.`,
		user.Name, resetURL)

	return s.sendEmail(to, subject, bodyText)
}

func (s *MailerService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPFrom(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPFrom()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.GetSMTPFrom(), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
