package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"insight-stack/internal/models"
	"insight-stack/shared/config"
)

type Sender struct {
	config *config.EmailConfig
}

func NewSender(cfg *config.EmailConfig) *Sender {
	return &Sender{
		config: cfg,
	}
}

const digestTemplate = `<html>
<body style="font-family: sans-serif; max-width: 720px; margin: 0 auto;">
<h2>Channel Insights Digest - {{.Date.Format "Jan 2, 2006"}}</h2>
<p>{{.Resolved}} of {{.Total}} videos produced a transcript.</p>
{{range .Videos}}
<div style="border: 1px solid #ddd; border-radius: 6px; padding: 12px; margin-bottom: 12px;">
	<h3><a href="{{.Video.URL}}">{{.Video.Title}}</a></h3>
	<p><em>{{.Video.ChannelTitle}}</em></p>
	{{with .Insights.Sentiment}}<p>Sentiment: <strong>{{.Label}}</strong> ({{printf "%.3f" .Score}})</p>{{end}}
	{{if .Insights.Summary}}<p>{{.Insights.Summary}}</p>{{end}}
	{{if .Insights.Entities}}<p>Mentions:
	{{range $i, $e := .Insights.Entities}}{{if $i}}, {{end}}{{$e.Text}} ({{$e.Category}}){{end}}
	</p>{{end}}
</div>
{{end}}
</body>
</html>`

func (s *Sender) SendDigest(report *models.DigestReport) error {
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}

	if len(report.Videos) == 0 {
		return nil // Nothing to report
	}

	subject := fmt.Sprintf("Channel Insights - %d Videos Analyzed (%s)",
		len(report.Videos), report.Date.Format("Jan 2, 2006"))

	body, err := s.generateDigestBody(report)
	if err != nil {
		return fmt.Errorf("failed to generate email body: %w", err)
	}

	return s.sendViaSMTP(subject, body)
}

func (s *Sender) sendViaSMTP(subject, body string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.SMTPServer)

	to := []string{s.config.ToEmail}
	msg := []byte(fmt.Sprintf(`To: %s
From: %s
Subject: %s
MIME-Version: 1.0
Content-Type: text/html; charset=UTF-8

%s`, s.config.ToEmail, s.config.FromEmail, subject, body))

	addr := fmt.Sprintf("%s:%d", s.config.SMTPServer, s.config.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.FromEmail, to, msg)
}

func (s *Sender) generateDigestBody(report *models.DigestReport) (string, error) {
	tmpl, err := template.New("digest").Parse(digestTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, report); err != nil {
		return "", err
	}

	return buf.String(), nil
}
