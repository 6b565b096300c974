package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendUnreadNotification(toEmail, senderName, roomName string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)
	return &emailService{
		dialer:      d,
		senderEmail: username,
		senderName:  senderName,
	}
}

// SendUnreadNotification tells an offline user there is a new message waiting.
func (s *emailService) SendUnreadNotification(toEmail, senderName, roomName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("New message from %s", senderName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>You have a new message</h2>
			<p><strong>%s</strong> sent you a message in <strong>%s</strong> while you were away.</p>
			<p>Open the app to read it.</p>
		</div>
	`, senderName, roomName)
	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}
