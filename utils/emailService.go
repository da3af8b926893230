package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"lms/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Dohy Academy <%s>\r\n", from)
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

// SendEnrollmentEmail sends an email notification when a learner enrolls in a course
func SendEnrollmentEmail(email, userName, courseName string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">🎉 Enrollment Successful!</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">Congratulations! You have successfully enrolled in:</p>
					<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
					<p style="font-size: 14px; color: #666666;">You can now access all the course content and start learning. Track your progress and complete all lessons to earn your certificate.</p>
					<p style="font-size: 14px; color: #999999; text-align: center; margin-top: 30px;">Happy Learning!</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 20px;">Dohy Academy Team</p>
				</div>
			</body>
		</html>
	`, userName, courseName)

	return SendEmail([]string{email}, "Course Enrollment Confirmation - Dohy Academy", body)
}

// SendCertificateEmail sends certificate notification email
func SendCertificateEmail(email, userName, courseName, certificateCode string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">🏆 Certificate of Completion</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">Congratulations on completing the course:</p>
					<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
					<div style="background-color: #f8f9fa; border-radius: 8px; padding: 20px; margin: 20px 0; text-align: center;">
						<p style="font-size: 14px; color: #666666; margin-bottom: 10px;">Your Certificate Code:</p>
						<h2 style="color: #2196F3; margin: 0;">%s</h2>
					</div>
					<p style="font-size: 14px; color: #666666;">Your certificate is now available. You can use this certificate code for verification purposes.</p>
					<p style="font-size: 14px; color: #999999; text-align: center; margin-top: 30px;">Congratulations on this achievement!</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 20px;">Dohy Academy Team</p>
				</div>
			</body>
		</html>
	`, userName, courseName, certificateCode)

	return SendEmail([]string{email}, "Course Completion Certificate - Dohy Academy", body)
}
