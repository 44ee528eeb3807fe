package notify

import (
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"compass.app/intake/internal/model"
)

// EmailKind selects between the submitter confirmation and the team
// notification. Both render from the same field set.
type EmailKind string

const (
	KindConfirmation EmailKind = "confirmation"
	KindTeam         EmailKind = "team"
)

// Email is one rendered message ready for a Sender.
type Email struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

type emailData struct {
	IsConfirmation    bool
	HeaderTitle       string
	HeaderSubtitle    string
	ReferenceNumber   string
	SubmittedAt       string
	Service           string
	FeatureType       string
	Stakeholder       string
	CustomerProblem   string
	AdditionalContext string
}

// Templates are parsed once at startup. All record fields pass through
// html/template's contextual escaping in the HTML variant, so markup that
// survived upstream sanitization still cannot execute in a mail client.
var (
	htmlTmpl = htmltemplate.Must(htmltemplate.New("email").Parse(emailHTML))
	textTmpl = texttemplate.Must(texttemplate.New("email").Parse(emailText))
)

// Render produces the HTML and plain-text bodies for one record.
func Render(record model.IntakeRecord, kind EmailKind) (html string, text string, err error) {
	data := buildEmailData(record, kind)

	var htmlBuf, textBuf strings.Builder
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("rendering html body: %w", err)
	}
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("rendering text body: %w", err)
	}
	return htmlBuf.String(), textBuf.String(), nil
}

// Subject builds the subject line for one record.
func Subject(record model.IntakeRecord, kind EmailKind) string {
	if kind == KindConfirmation {
		return fmt.Sprintf("✅ UX Intake Submitted: %s", record.ReferenceNumber)
	}
	return fmt.Sprintf("🆕 New UX Intake: %s - %s", record.ReferenceNumber, record.Service)
}

func buildEmailData(record model.IntakeRecord, kind EmailKind) emailData {
	isConfirmation := kind == KindConfirmation

	featureType := string(record.FeatureType)
	switch record.FeatureType {
	case model.FeatureTypeNew:
		featureType = "New Feature"
	case model.FeatureTypeEnhancement:
		featureType = "Enhancement"
	case "":
		featureType = "TBD"
	}
	if record.EnhancingFeature != nil && *record.EnhancingFeature != "" {
		featureType += " - " + *record.EnhancingFeature
	}

	stakeholder := "None provided"
	if record.Stakeholder != "" && record.Stakeholder != "Not specified" {
		stakeholder = record.Stakeholder
	}

	additionalContext := "None provided"
	if record.AdditionalContext != nil && *record.AdditionalContext != "" {
		additionalContext = *record.AdditionalContext
	}

	submittedAt := record.SubmittedAt.Format(time.RFC1123)

	headerTitle := "🆕 New UX Intake Request"
	headerSubtitle := fmt.Sprintf("%s | Submitted %s", record.ReferenceNumber, submittedAt)
	if isConfirmation {
		headerTitle = "🧭 SSO UX Intake"
		headerSubtitle = "Your request has been submitted successfully!"
	}

	return emailData{
		IsConfirmation:    isConfirmation,
		HeaderTitle:       headerTitle,
		HeaderSubtitle:    headerSubtitle,
		ReferenceNumber:   record.ReferenceNumber,
		SubmittedAt:       submittedAt,
		Service:           record.Service,
		FeatureType:       featureType,
		Stakeholder:       stakeholder,
		CustomerProblem:   record.CustomerProblem,
		AdditionalContext: additionalContext,
	}
}

const emailHTML = `<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: 'Amazon Ember', Arial, sans-serif; line-height: 1.6; color: #232f3e; margin: 0; padding: 0; background: #f5f5f5; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #FF9900, #FF6600); color: white; padding: 30px; text-align: center; border-radius: 12px 12px 0 0; }
    .header h1 { margin: 0 0 10px 0; font-size: 28px; }
    .header p { margin: 0; opacity: 0.95; }
    .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 12px 12px; }
    .reference-label { color: #666; font-size: 14px; margin-bottom: 5px; }
    .reference { font-size: 28px; font-weight: bold; color: #FF9900; margin-bottom: 25px; }
    .section { background: white; padding: 18px 20px; margin: 12px 0; border-radius: 8px; border-left: 4px solid #FF9900; }
    .label { font-weight: 600; color: #666; font-size: 11px; text-transform: uppercase; letter-spacing: 0.5px; margin-bottom: 6px; }
    .value { font-size: 16px; color: #232f3e; }
    .next-steps { background: #232f3e; color: white; padding: 24px; border-radius: 8px; margin-top: 25px; }
    .next-steps h3 { color: #FF9900; margin: 0 0 16px 0; font-size: 18px; }
    .next-steps p { margin: 10px 0; font-size: 15px; }
    .next-steps strong { color: #FF9900; }
    .footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
    .footer a { color: #FF9900; text-decoration: none; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>{{.HeaderTitle}}</h1>
      <p>{{.HeaderSubtitle}}</p>
    </div>
    <div class="content">
      <p class="reference-label">Reference Number:</p>
      <p class="reference">{{.ReferenceNumber}}</p>

      <div class="section">
        <div class="label">Service</div>
        <div class="value">{{.Service}}</div>
      </div>

      <div class="section">
        <div class="label">Feature Type</div>
        <div class="value">{{.FeatureType}}</div>
      </div>

      <div class="section">
        <div class="label">Customer Problem</div>
        <div class="value">{{.CustomerProblem}}</div>
      </div>

      <div class="section">
        <div class="label">Stakeholder</div>
        <div class="value">{{.Stakeholder}}</div>
      </div>

      <div class="section">
        <div class="label">Additional Context</div>
        <div class="value">{{.AdditionalContext}}</div>
      </div>

      {{if .IsConfirmation}}
      <div class="next-steps">
        <h3>What Happens Next?</h3>
        <p>✅ Your request has been added to our intake queue</p>
        <p>👥 The SSO UX team will review your submission</p>
        <p>💡 We'll contact you within <strong>48 hours</strong> with an initial concept</p>
      </div>
      {{end}}
    </div>
    <div class="footer">
      <p>Questions? Reply to this email or contact <a href="mailto:sso-ux-intake@amazon.com">sso-ux-intake@amazon.com</a></p>
      <p>© 2026 SSO UX Team | Security Search and Observability</p>
    </div>
  </div>
</body>
</html>
`

const emailText = `{{if .IsConfirmation}}SSO UX INTAKE - CONFIRMATION{{else}}NEW UX INTAKE REQUEST{{end}}
=============================

Reference Number: {{.ReferenceNumber}}
Submitted: {{.SubmittedAt}}

SERVICE: {{.Service}}
FEATURE TYPE: {{.FeatureType}}
STAKEHOLDER: {{.Stakeholder}}

CUSTOMER PROBLEM:
{{.CustomerProblem}}

ADDITIONAL CONTEXT:
{{.AdditionalContext}}
{{if .IsConfirmation}}
WHAT HAPPENS NEXT:
✅ Your request has been added to our intake queue
👥 The SSO UX team will review your submission
💡 We'll contact you within 48 hours with an initial concept
{{end}}
---
Questions? Contact sso-ux-intake@amazon.com
SSO UX Team | Security Search and Observability
`
