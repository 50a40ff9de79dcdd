package notify

import (
	"bytes"
	"fmt"
	"html/template"
)

var (
	applicationTmpl = template.Must(template.New("application").Parse(`<h2>New Job Application Received</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Position:</strong> {{.Position}}</p>
<p><strong>Message:</strong> {{if .Message}}{{.Message}}{{else}}N/A{{end}}</p>
<p><strong>Resume:</strong> {{.Resume}}</p>
<p><em>Check the admin dashboard to download the resume and review the application.</em></p>
`))

	testTmpl = template.Must(template.New("test").Parse(`<h2>Test Email</h2>
<p>This is a test email to verify the email system is working correctly.</p>
<p>Sent through the {{.}} sender.</p>
`))
)

// ApplicationNotice holds the fields rendered into the new application email.
type ApplicationNotice struct {
	Name     string
	Email    string
	Position string
	Message  string
	Resume   string
}

// Subject returns the email subject for the notice.
func (n ApplicationNotice) Subject() string {
	position := n.Position
	if position == "" || position == "General Application" {
		position = "General"
	}
	return fmt.Sprintf("New Application: %s - %s", n.Name, position)
}

// RenderApplication renders the notice as HTML with applicant input escaped.
func RenderApplication(n ApplicationNotice) (string, error) {
	var buf bytes.Buffer
	if err := applicationTmpl.Execute(&buf, n); err != nil {
		return "", fmt.Errorf("failed to render application email: %w", err)
	}
	return buf.String(), nil
}

// TestSubject is the subject of the delivery check email.
const TestSubject = "Test Email from the job board"

// RenderTest renders the delivery check email for the named sender.
func RenderTest(sender string) (string, error) {
	var buf bytes.Buffer
	if err := testTmpl.Execute(&buf, sender); err != nil {
		return "", fmt.Errorf("failed to render test email: %w", err)
	}
	return buf.String(), nil
}
