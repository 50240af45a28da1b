package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendFlaggedReport(toEmail, userID, message, category string) error
	SendIndexingAlert(toEmail, fileName, reason string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

// SendFlaggedReport notifies university staff that a student message was
// flagged by moderation.
func (s *emailService) SendFlaggedReport(toEmail, userID, message, category string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Mensaje inapropiado detectado")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Reporte de moderación</h2>
			<p>El asistente detectó un mensaje inapropiado de un estudiante.</p>
			<p><strong>Usuario:</strong> %s</p>
			<p><strong>Categoría:</strong> %s</p>
			<p><strong>Mensaje:</strong></p>
			<blockquote style="border-left: 3px solid #c00; padding-left: 10px;">%s</blockquote>
		</div>
	`, userID, category, message)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send flagged report to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Flagged report sent to %s\n", toEmail)
	return nil
}

// SendIndexingAlert tells staff that a document repeatedly failed to index
// and needs manual attention.
func (s *emailService) SendIndexingAlert(toEmail, fileName, reason string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Documento requiere atención")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Fallo de indexación</h2>
			<p>El documento <strong>%s</strong> no pudo ser indexado.</p>
			<p><strong>Motivo:</strong> %s</p>
			<p>Revisa el archivo y vuelve a subirlo o reprocésalo desde el panel.</p>
		</div>
	`, fileName, reason)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send indexing alert to %s: %v\n", toEmail, err)
		return err
	}
	return nil
}
