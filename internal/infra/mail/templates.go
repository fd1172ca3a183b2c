package mail

import (
	"bytes"
	"html"
	"html/template"
	"regexp"
	"strings"
	"time"

	"vigil/internal/domain/entity"
	"vigil/internal/errors"
)

var codeTemplate = template.Must(template.New("code").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2933;">
  <h2>{{.Heading}}</h2>
  <p>{{.Intro}}</p>
  <p style="font-size: 28px; font-weight: bold; letter-spacing: 6px;">{{.Code}}</p>
  <p>This code expires in {{.Minutes}} minutes and can only be used once.</p>
  <p>If you did not request it, you can ignore this email.</p>
</body>
</html>`))

type codeView struct {
	Heading string
	Intro   string
	Code    string
	Minutes int
}

// renderCodeEmail builds the subject and HTML body for an issued code.
func renderCodeEmail(code *entity.SecondFactorCode) (subject, body string, err error) {
	view := codeView{
		Code:    code.Code,
		Minutes: int(code.ExpiresAt.Sub(code.IssuedAt).Round(time.Minute) / time.Minute),
	}

	switch code.Purpose {
	case entity.CodePurposeReset:
		subject = "Your password reset code"
		view.Heading = "Password reset"
		view.Intro = "Use the code below to reset your password."
	default:
		subject = "Your sign-in verification code"
		view.Heading = "Sign-in verification"
		view.Intro = "Use the code below to finish signing in."
	}

	var buf bytes.Buffer
	if err := codeTemplate.Execute(&buf, view); err != nil {
		return "", "", errors.Wrap(err, "failed to render code email")
	}

	return subject, buf.String(), nil
}

var (
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// plainTextFallback strips markup for the text/plain part and for logs.
func plainTextFallback(htmlBody string) string {
	text := tagPattern.ReplaceAllString(htmlBody, " ")
	text = html.UnescapeString(text)

	return strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))
}
