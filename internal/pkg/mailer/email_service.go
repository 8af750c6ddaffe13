package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendResource(ctx context.Context, toEmail, resource, link string) error
	NotifyOwner(ctx context.Context, reason, detail string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	ownerEmail  string
}

func NewEmailService(host string, port int, username, password, senderEmail, ownerEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		ownerEmail:  ownerEmail,
	}
}

// SendResource mails a time-limited download link for the requested resource.
func (s *emailService) SendResource(_ context.Context, toEmail, resource, link string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "The resume you asked for")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Thanks for reaching out!</h2>
			<p>You asked for the %s while chatting on the site. Here it is:</p>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Download</a>
			<p>Or copy this link:</p>
			<p>%s</p>
			<p>The link expires after a short while, so grab it soon.</p>
		</div>
	`, resource, link, link)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send resource to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Resource %s sent to %s\n", resource, toEmail)
	return nil
}

// NotifyOwner emails the site owner about notable chat activity (a hiring
// signal, an explicit resume request).
func (s *emailService) NotifyOwner(_ context.Context, reason, detail string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", s.ownerEmail)
	m.SetHeader("Subject", fmt.Sprintf("Chatbot alert: %s", reason))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Someone interesting is on the site</h2>
			<p>Trigger: <strong>%s</strong></p>
			<p>Their latest message:</p>
			<blockquote style="border-left: 3px solid #007BFF; padding-left: 10px; color: #555;">%s</blockquote>
		</div>
	`, reason, detail)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send owner alert: %v\n", err)
		return err
	}

	fmt.Printf("[MAILER] Owner alerted: %s\n", reason)
	return nil
}
