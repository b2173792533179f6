// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
)

// VerificationEmailData holds data for the signup verification email.
type VerificationEmailData struct {
	SiteName  string
	Code      string
	ExpiresIn string // e.g., "10 minutes"
}

// BuildVerificationEmail creates the signup verification email.
func BuildVerificationEmail(data VerificationEmailData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("Your %s verification code", data.SiteName),
		TextBody: buildVerificationText(data),
	}
}

func buildVerificationText(data VerificationEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Your %s verification code is: %s\n\n", data.SiteName, data.Code))
	buf.WriteString(fmt.Sprintf("Enter it in the app to finish signing up. This code expires in %s.\n\n", data.ExpiresIn))
	buf.WriteString("If you did not create an account, you can safely ignore this email.\n")
	return buf.String()
}
