package utils

import (
	"fmt"
	"net/smtp"
	"plms/config"
	"strings"
)

// SendEmail delivers a generic HTML email over SMTP
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Professional Loan Services <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all outbound mails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A2E4C; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A2E4C; line-height: 1.6; }
			.content h2 { color: #1A2E4C; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #2E7D32; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>PROFESSIONAL LOAN SERVICES</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Professional Loan Services. All rights reserved.<br>
				Borrow responsibly. Please read all loan documents carefully.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendWelcomeEmail greets a newly registered user
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Professional Loan Services"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Professional Loan Services</strong>! Your account has been created successfully.</p>
		<p>You can now apply for a personal loan and track your application from your dashboard.</p>
		<p>If you have any questions, feel free to reach out to our support team.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// SendLoanStatusEmail informs the holder about a status change on their application
func SendLoanStatusEmail(email, name, applicationID, status string) {
	subject := "Loan Application Update: " + status
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>The status of your loan application <strong>%s</strong> has changed.</p>
		<div class="info-box">
			<strong>New Status:</strong> %s
		</div>
		<p>Log in to your dashboard for full details of your application and repayment schedule.</p>
	`, name, applicationID, status)

	go SendEmail([]string{email}, subject, getEmailTemplate("Application Status Changed", body))
}

// SendEMIPaidEmail confirms a settled installment
func SendEMIPaidEmail(email, name string, emiNumber int, amount string) {
	subject := fmt.Sprintf("EMI #%d Payment Received", emiNumber)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We have received your payment of <strong>&#8377;%s</strong> for EMI #%d.</p>
		<p>Thank you for paying on time.</p>
	`, name, amount, emiNumber)

	go SendEmail([]string{email}, subject, getEmailTemplate("Payment Confirmed", body))
}

// SendOTPEmail sends the password reset OTP
func SendOTPEmail(email, otp string) {
	subject := "Password Reset OTP"
	body := fmt.Sprintf(`
		<p>Your One Time Password (OTP) for resetting your password is:</p>
		<h1 style="text-align: center; letter-spacing: 6px;">%s</h1>
		<p>The OTP is valid for 10 minutes. Do not share it with anyone.</p>
	`, otp)

	go SendEmail([]string{email}, subject, getEmailTemplate("Password Reset", body))
}
