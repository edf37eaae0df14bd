package mailer

import (
	"errors"
	"fmt"
	"strings"

	mailtpl "github.com/oksasatya/go-library-backend/pkg/mailer/templates"
)

var (
	ErrNoRecipient = errors.New("email job without recipient")
	ErrNoContent   = errors.New("email job needs a template or a subject with a body")
)

// EmailJob is the JSON message on the loan notification queue. Either Template with Data,
// or Subject with Text and/or HTML, must be set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// Recipient is To, or the Email entry of Data when To is blank.
func (j EmailJob) Recipient() string {
	if to := strings.TrimSpace(j.To); to != "" {
		return to
	}
	if v, ok := j.Data["Email"]; ok && v != nil {
		return strings.TrimSpace(fmt.Sprint(v))
	}
	return ""
}

// Content renders the job's template, or returns its literal subject and bodies.
func (j EmailJob) Content() (subject, text, html string, err error) {
	if j.Template != "" {
		return mailtpl.Render(j.Template, j.Data)
	}
	if j.Subject == "" || (j.Text == "" && j.HTML == "") {
		return "", "", "", ErrNoContent
	}
	return j.Subject, j.Text, j.HTML, nil
}
