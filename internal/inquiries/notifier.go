// internal/inquiries/notifier.go
package inquiries

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	apperrors "portfolio-backend/internal/common/errors"
	"portfolio-backend/internal/common/logger"
	"portfolio-backend/internal/common/metrics"
)

// Notifier tells the site owner about a stored submission.
type Notifier interface {
	NotifyProjectInitiation(ctx context.Context, p ProjectInitiation) error
	NotifyMeeting(ctx context.Context, m Meeting) error
}

// Mailer is satisfied by aws.SESClient.
type Mailer interface {
	SendHTML(ctx context.Context, to []string, subject, html string) (string, error)
}

// Publisher is satisfied by aws.SNSClient.
type Publisher interface {
	Publish(ctx context.Context, subject, message string) (string, error)
}

const (
	channelEmail = "ses"
	channelTopic = "sns"
)

// OwnerNotifier e-mails the owner and, when a publisher is set, posts a
// one-line summary to the topic.
type OwnerNotifier struct {
	ownerEmail string
	mailer     Mailer
	publisher  Publisher
	logger     logger.Logger
}

func NewOwnerNotifier(ownerEmail string, mailer Mailer, publisher Publisher, log logger.Logger) *OwnerNotifier {
	return &OwnerNotifier{
		ownerEmail: ownerEmail,
		mailer:     mailer,
		publisher:  publisher,
		logger:     log.WithFields(map[string]interface{}{"component": "notifier"}),
	}
}

func (n *OwnerNotifier) NotifyProjectInitiation(ctx context.Context, p ProjectInitiation) error {
	subject := fmt.Sprintf("🚀 New Project Initiation: %s", p.Name)
	html, err := render(projectInitiationEmail, p)
	if err != nil {
		return err
	}
	summary := fmt.Sprintf("New project initiation from %s <%s> (%s)", p.Name, p.Email, p.BusinessType)
	return n.send(ctx, p.ID, subject, html, "New project initiation", summary)
}

func (n *OwnerNotifier) NotifyMeeting(ctx context.Context, m Meeting) error {
	subject := fmt.Sprintf("🗓️ New Meeting Booked: %s", m.Email)
	html, err := render(meetingEmail, m)
	if err != nil {
		return err
	}
	summary := fmt.Sprintf("New meeting booked by %s on %s at %s", m.Email, m.Date, m.Time)
	return n.send(ctx, m.ID, subject, html, "New meeting booked", summary)
}

// send tries every channel and returns the first failure. SNS subjects must
// be ASCII, so the topic gets its own.
func (n *OwnerNotifier) send(ctx context.Context, recordID, subject, html, topicSubject, summary string) error {
	var firstErr error

	messageID, err := n.mailer.SendHTML(ctx, []string{n.ownerEmail}, subject, html)
	if err != nil {
		firstErr = apperrors.NewNotificationSendFailedError(channelEmail, err).WithMetadata("recordId", recordID)
		metrics.NotificationsTotal.WithLabelValues(channelEmail, "failure").Inc()
	} else {
		metrics.NotificationsTotal.WithLabelValues(channelEmail, "success").Inc()
		n.logger.Info("owner e-mail sent", map[string]interface{}{"recordId": recordID, "messageId": messageID})
	}

	if n.publisher == nil {
		return firstErr
	}

	messageID, err = n.publisher.Publish(ctx, topicSubject, summary)
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues(channelTopic, "failure").Inc()
		if firstErr == nil {
			firstErr = apperrors.NewNotificationSendFailedError(channelTopic, err).WithMetadata("recordId", recordID)
		}
	} else {
		metrics.NotificationsTotal.WithLabelValues(channelTopic, "success").Inc()
		n.logger.Info("owner alert published", map[string]interface{}{"recordId": recordID, "messageId": messageID})
	}
	return firstErr
}

// NoopNotifier is used when notifications are disabled.
type NoopNotifier struct{}

func (NoopNotifier) NotifyProjectInitiation(context.Context, ProjectInitiation) error { return nil }
func (NoopNotifier) NotifyMeeting(context.Context, Meeting) error                     { return nil }

func render(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

const emailStyle = `
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
    .field { margin-bottom: 15px; }
    .label { font-weight: bold; }
    .value { margin-top: 5px; }`

var funcs = template.FuncMap{
	"submitted": func(t time.Time) string {
		return t.UTC().Format("Jan 2, 2006 3:04 PM MST")
	},
}

var projectInitiationEmail = template.Must(template.New("project_initiation").Funcs(funcs).Parse(`<!DOCTYPE html>
<html>
<head><style>` + emailStyle + `
    .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; border-radius: 10px 10px 0 0; }
    .label { color: #667eea; }
</style></head>
<body>
  <div class="container">
    <div class="header"><h1>🚀 New Project Initiation</h1></div>
    <div class="content">
      <div class="field"><div class="label">Client Name:</div><div class="value">{{.Name}}</div></div>
      <div class="field"><div class="label">Email:</div><div class="value"><a href="mailto:{{.Email}}">{{.Email}}</a></div></div>
      <div class="field"><div class="label">Business Type:</div><div class="value">{{.BusinessType}}</div></div>
      <div class="field"><div class="label">Website:</div><div class="value">{{if .Website}}{{.Website}}{{else}}Not provided{{end}}</div></div>
      <div class="field"><div class="label">Requirements:</div><div class="value">{{.Requirements}}</div></div>
      <div class="field"><div class="label">Submitted:</div><div class="value">{{submitted .CreatedAt}}</div></div>
    </div>
  </div>
</body>
</html>
`))

var meetingEmail = template.Must(template.New("meeting").Funcs(funcs).Parse(`<!DOCTYPE html>
<html>
<head><style>` + emailStyle + `
    .header { background: linear-gradient(135deg, #3b82f6 0%, #8b5cf6 100%); color: white; padding: 30px; border-radius: 10px 10px 0 0; }
    .label { color: #3b82f6; }
    .highlight { background: #3b82f6; color: white; padding: 15px; border-radius: 8px; margin: 20px 0; }
</style></head>
<body>
  <div class="container">
    <div class="header"><h1>🗓️ New Meeting Scheduled</h1></div>
    <div class="content">
      <div class="highlight"><strong>📅 {{.Date}} at {{.Time}}</strong></div>
      <div class="field"><div class="label">Client Email:</div><div class="value"><a href="mailto:{{.Email}}">{{.Email}}</a></div></div>
      <div class="field"><div class="label">Project Goals:</div><div class="value">{{.Goals}}</div></div>
      <div class="field"><div class="label">Booked:</div><div class="value">{{submitted .CreatedAt}}</div></div>
    </div>
  </div>
</body>
</html>
`))
