package service

import (
	"context"
	"fmt"
	"html"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/logger"
)

const dateFormat = "02/01/2006 15:04"

type emailService struct {
	client     *sendgrid.Client
	fromEmail  string
	fromName   string
	adminEmail string
}

// NewEmailService sends through SendGrid. With an empty API key a no-op
// implementation is returned.
func NewEmailService(apiKey, fromEmail, fromName, adminEmail string) EmailService {
	if apiKey == "" {
		logger.Info("SendGrid API key not configured, emails are disabled")
		return noopEmailService{}
	}
	return &emailService{
		client:     sendgrid.NewSendClient(apiKey),
		fromEmail:  fromEmail,
		fromName:   fromName,
		adminEmail: adminEmail,
	}
}

func (s *emailService) send(ctx context.Context, toEmail, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	logger.ExternalServiceCall("sendgrid", "send", "to", toEmail, "subject", subject)
	response, err := s.client.SendWithContext(ctx, message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "send", err, "to", toEmail)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *emailService) SendReservationConfirmation(ctx context.Context, customer *domain.Customer, supplierName string, r *domain.Reservation) error {
	subject := fmt.Sprintf("Reservation #%d confirmed", r.ID)
	plainText := fmt.Sprintf("Hello %s,\n\nYour car rental with %s is booked.\n\nPickup: %s\nReturn: %s\nCar group: %s\nPrice: %s\n\nThank you.",
		customer.FullName(), supplierName, r.StartAt.Format(dateFormat), r.EndAt.Format(dateFormat), r.CarGroup, r.Price.StringFixed(2))
	htmlContent := fmt.Sprintf(`<html>
	<body>
		<h2>Reservation #%d</h2>
		<p>Hello <strong>%s</strong>, your car rental with <strong>%s</strong> is booked.</p>
		<table>
			<tr><td>Pickup</td><td>%s</td></tr>
			<tr><td>Return</td><td>%s</td></tr>
			<tr><td>Car group</td><td>%s</td></tr>
			<tr><td>Price</td><td>%s</td></tr>
		</table>
	</body>
</html>`, r.ID, html.EscapeString(customer.FullName()), html.EscapeString(supplierName),
		r.StartAt.Format(dateFormat), r.EndAt.Format(dateFormat), html.EscapeString(r.CarGroup), r.Price.StringFixed(2))

	return s.send(ctx, customer.Email, customer.FullName(), subject, plainText, htmlContent)
}

func (s *emailService) SendAdminNotification(ctx context.Context, subject, message string) error {
	if s.adminEmail == "" {
		return nil
	}
	htmlContent := "<html><body><pre>" + html.EscapeString(message) + "</pre></body></html>"
	return s.send(ctx, s.adminEmail, "", subject, message, htmlContent)
}

type noopEmailService struct{}

func (noopEmailService) SendReservationConfirmation(ctx context.Context, customer *domain.Customer, supplierName string, r *domain.Reservation) error {
	logger.Debug("Email disabled, skipping reservation confirmation", "reservationID", r.ID)
	return nil
}

func (noopEmailService) SendAdminNotification(ctx context.Context, subject, message string) error {
	logger.Debug("Email disabled, skipping admin notification", "subject", subject)
	return nil
}
