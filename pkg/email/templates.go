package email

import (
	"bytes"
	"fmt"
	"html/template"
)

type VerifyEmailData struct {
	AppName string
	Name    string
	Link    string
}

type ResetPasswordData struct {
	AppName string
	Link    string
}

type CredentialsEmailData struct {
	AppName  string
	Username string
	Email    string
	Password string
	Role     string
	LoginURL string
}

const layoutHead = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .button { display: inline-block; padding: 10px 20px; background: #0066cc; color: white; text-decoration: none; border-radius: 4px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
<div class="container">`

const layoutFoot = `
    <div class="footer"><p>{{.AppName}}</p></div>
</div>
</body>
</html>`

const verifyEmailTemplate = layoutHead + `
    <div class="header"><h1>Verify Email Address</h1></div>
    <div class="content">
        <p>Hello {{.Name}},</p>
        <p>Please click the button below to verify your email address.</p>
        <p><a class="button" href="{{.Link}}">Verify Email Address</a></p>
        <p>If you did not create an account, no further action is required.</p>
    </div>` + layoutFoot

const resetPasswordTemplate = layoutHead + `
    <div class="header"><h1>Reset Password</h1></div>
    <div class="content">
        <p>You are receiving this email because we received a password reset request for your account.</p>
        <p><a class="button" href="{{.Link}}">Reset Password</a></p>
        <p>If you did not request a password reset, no further action is required.</p>
    </div>` + layoutFoot

const credentialsTemplate = layoutHead + `
    <div class="header"><h1>Welcome</h1></div>
    <div class="content">
        <p>An account was created for you with the role <strong>{{.Role}}</strong>.</p>
        <p>Username: {{.Username}}<br>Email: {{.Email}}<br>Password: {{.Password}}</p>
        {{if .LoginURL}}<p><a class="button" href="{{.LoginURL}}">Sign in</a></p>{{end}}
        <p>Please change your password after signing in.</p>
    </div>` + layoutFoot

func render(tmpl string, data interface{}) (string, error) {
	t, err := template.New("email").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}
	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}
