package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendInvoiceIssued(toEmail, invoiceNumber string, amount int64, dueDate string) error
	SendPaymentReceipt(toEmail, receiptNumber, invoiceNumber string, amount int64) error
	SendRenewalReminder(toEmail, invoiceNumber string, amount int64, daysLeft int) error
	SendSuspensionNotice(toEmail, reason string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send %q to %s: %v\n", subject, toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] %q sent to %s\n", subject, toEmail)
	return nil
}

func (s *emailService) SendInvoiceIssued(toEmail, invoiceNumber string, amount int64, dueDate string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New Invoice %s</h2>
			<p>An invoice of <strong>%d FCFA</strong> has been issued for your subscription.</p>
			<p>Payment is due by <strong>%s</strong>.</p>
			<p>You can declare a payment from your dashboard once it has been made.</p>
		</div>
	`, invoiceNumber, amount, dueDate)
	return s.send(toEmail, fmt.Sprintf("Invoice %s", invoiceNumber), body)
}

func (s *emailService) SendPaymentReceipt(toEmail, receiptNumber, invoiceNumber string, amount int64) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Payment Received</h2>
			<p>Your payment of <strong>%d FCFA</strong> for invoice %s has been validated.</p>
			<p>Receipt number: <strong>%s</strong></p>
			<p>Thank you.</p>
		</div>
	`, amount, invoiceNumber, receiptNumber)
	return s.send(toEmail, fmt.Sprintf("Receipt %s", receiptNumber), body)
}

func (s *emailService) SendRenewalReminder(toEmail, invoiceNumber string, amount int64, daysLeft int) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Upcoming Payment</h2>
			<p>Invoice %s (<strong>%d FCFA</strong>) is due in <strong>%d day(s)</strong>.</p>
			<p>Please settle it before the due date to avoid suspension.</p>
		</div>
	`, invoiceNumber, amount, daysLeft)
	return s.send(toEmail, "Payment reminder", body)
}

func (s *emailService) SendSuspensionNotice(toEmail, reason string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Subscription Suspended</h2>
			<p>Your subscription has been suspended: %s</p>
			<p>Settle your outstanding invoices to reactivate it.</p>
		</div>
	`, reason)
	return s.send(toEmail, "Subscription suspended", body)
}
