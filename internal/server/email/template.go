package email

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

const passwordResetSubject = "Password reset request"

var passwordResetTemplate = template.Must(template.New("password_reset").Parse(`<html>
<body>
  <p>Hi {{.Email}},</p>
  <p>We received a request to reset the password for your account.
     Click the link below to choose a new password:</p>
  <p><a href="{{.ResetLink}}">{{.ResetLink}}</a></p>
  <p>The link is valid for {{.ValidMinutes}} minutes. If you did not request
     a password reset, you can ignore this email.</p>
</body>
</html>
`))

type passwordResetParams struct {
	Email        string
	ResetLink    string
	ValidMinutes int
}

// RenderPasswordReset produces the reset email for the given recipient.
// The link embeds the reset token under the configured base URL.
func RenderPasswordReset(to, linkBase, token string, validity time.Duration) (Message, error) {
	params := passwordResetParams{
		Email:        to,
		ResetLink:    fmt.Sprintf("%s/reset-password/%s", strings.TrimRight(linkBase, "/"), token),
		ValidMinutes: int(validity.Minutes()),
	}

	var body strings.Builder
	if err := passwordResetTemplate.Execute(&body, params); err != nil {
		return Message{}, fmt.Errorf("error rendering reset email: %w", err)
	}

	return Message{To: to, Subject: passwordResetSubject, HTML: body.String()}, nil
}
