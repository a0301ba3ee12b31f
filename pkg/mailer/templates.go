package mailer

import (
	"fmt"
	"html"
	"time"
)

type template struct {
	Subject   string
	Greeting  string
	Message   string
	CodeBlock string
	Closing   string
}

func (c Config) render(t template) string {
	code := ""
	if t.CodeBlock != "" {
		code = fmt.Sprintf(`<div style="background: #5F6F52; color: #fff; font-size: 2rem; font-weight: bold; padding: 15px 0; border-radius: 8px; text-align: center; margin: 20px 0; letter-spacing: 2px;">%s</div>`, t.CodeBlock)
	}
	return fmt.Sprintf(`
    <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; background: #EDEBE8; border-radius: 10px; border: 1px solid #5F6F52;">
      <div style="background: #5F6F52; color: #fff; padding: 20px 30px; border-radius: 10px 10px 0 0;">
        <h2 style="margin: 0;">%s</h2>
        <p style="margin: 0; font-size: 1rem;">%s</p>
        <p style="margin: 0; font-size: 0.95rem;">%s</p>
      </div>
      <div style="padding: 30px;">
        <h3 style="color: #5F6F52; margin-top: 0;">%s</h3>
        <p>%s</p>
        <p>%s</p>
        %s
        <p style="color: #333;">%s</p>
      </div>
      <div style="background: #5F6F52; color: #fff; padding: 15px 30px; border-radius: 0 0 10px 10px; font-size: 0.95rem;">
        <p style="margin: 0;">%s</p>
        <p style="margin: 0; font-size: 0.9rem;">This is an automated message from the Seminar Management System. Please do not reply.</p>
      </div>
    </div>`,
		html.EscapeString(c.Department), html.EscapeString(c.College), html.EscapeString(c.University),
		t.Subject, t.Greeting, t.Message, code, t.Closing,
		html.EscapeString(c.Address))
}

func greeting(name string) string {
	if name == "" {
		name = "User"
	}
	return fmt.Sprintf("Dear %s,", html.EscapeString(name))
}

// OTPMail is the verification-code message sent on request-otp.
func (c Config) OTPMail(code, name string) (subject, body string) {
	subject = "Your OTP for Seminar Management System"
	body = c.render(template{
		Subject:   "OTP Verification",
		Greeting:  greeting(name),
		Message:   "Your One-Time Password (OTP) for verification is:",
		CodeBlock: code,
		Closing:   "This OTP is valid for 5 minutes. Please do not share it with anyone. If you did not request this OTP, please ignore this email.",
	})
	return subject, body
}

// ResetMail is the password-reset code message.
func (c Config) ResetMail(code, name string) (subject, body string) {
	subject = "Password Reset OTP for Seminar Management System"
	body = c.render(template{
		Subject:   "Password Reset Request",
		Greeting:  greeting(name),
		Message:   "You have requested to reset your password. Use the following OTP to proceed:",
		CodeBlock: code,
		Closing:   "This OTP is valid for 5 minutes. If you did not request a password reset, please ignore this email.",
	})
	return subject, body
}

// ReminderMail nudges a borrower about a pending return.
func (c Config) ReminderMail(name, bookTitle string, returnDate time.Time) (subject, body string) {
	subject = "Book Return Reminder - Seminar Management System"
	body = c.render(template{
		Subject:  "Book Return Reminder",
		Greeting: greeting(name),
		Message: fmt.Sprintf("This is a reminder that you have borrowed the book <b>%s</b>. Please return it by <b>%s</b>.",
			html.EscapeString(bookTitle), returnDate.Format("02 Jan 2006")),
		Closing: "If you have already returned the book, please ignore this message.",
	})
	return subject, body
}
