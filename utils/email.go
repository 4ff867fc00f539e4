// utils/email.go
package utils

import (
	"fmt"
	"os"

	"github.com/keighl/postmark"

	"grocery-api/models"
)

// EmailService handles sending emails using Postmark
type EmailService struct {
	client *postmark.Client
}

// NewEmailService initializes and returns a new EmailService instance
func NewEmailService() *EmailService {
	apiToken := os.Getenv("POSTMARK_API_TOKEN")
	if apiToken == "" {
		panic("POSTMARK_API_TOKEN is not set in environment variables")
	}
	client := postmark.NewClient(apiToken, "")
	return &EmailService{
		client: client,
	}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	_, err := es.client.SendEmail(postmark.Email{
		From:     os.Getenv("EMAIL_SENDER"),
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})

	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// OrderPlaced sends an order confirmation email to the user
func (es *EmailService) OrderPlaced(user models.User, order models.Order) error {
	subject := "Order Confirmation"
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Thank you for your purchase! Your order (ID: %s) has been placed successfully.<br><br>Total Amount: <strong>%d</strong><br>Payment Method: <strong>%s</strong><br><br>Thank you for shopping with us!",
		user.Name,
		order.ID.Hex(),
		order.Amount,
		order.PaymentType,
	)
	return es.SendEmail(user.Email, subject, htmlContent)
}

// OrderPaid notifies the user that an online payment was confirmed
func (es *EmailService) OrderPaid(user models.User, order models.Order) error {
	subject := "Payment Received"
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>We have received your payment for order (ID: %s). It is now being prepared for delivery.<br><br>Total Amount: <strong>%d</strong><br><br>Thank you for shopping with us!",
		user.Name,
		order.ID.Hex(),
		order.Amount,
	)
	return es.SendEmail(user.Email, subject, htmlContent)
}
