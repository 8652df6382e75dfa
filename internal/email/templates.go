package email

import (
	"fmt"
	"html"

	"linkledger/internal/config"
	"linkledger/internal/models"
)

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a consistent HTML email template.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #2563eb; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; border: 1px solid #e5e7eb; border-top: none; }
        .info-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 15px 0; }
        .label { font-weight: 600; color: #374151; }
        .value { color: #6b7280; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
    </div>
    <div class="content">
        %s
    </div>
    <div class="footer">
        <p>This email was sent by LinkLedger</p>
        <p><a href="%s">%s</a></p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(title), content, t.cfg.BaseURL, t.cfg.BaseURL)
}

func describeRequest(req *models.DeleteRequest) string {
	if req.Type == models.DeleteTypeProject {
		if req.ProjectTitle != "" {
			return fmt.Sprintf("project %q", req.ProjectTitle)
		}
		return "a project"
	}
	if req.ProjectTitle != "" {
		return fmt.Sprintf("a backlink in project %q", req.ProjectTitle)
	}
	return "a backlink"
}

// DeleteRequestCreated generates the notification sent to admins when an
// editor submits a deletion for review.
func (t *Templates) DeleteRequestCreated(req *models.DeleteRequest) (subject, htmlBody, textBody string) {
	item := describeRequest(req)
	requester := req.RequesterName
	if requester == "" {
		requester = req.RequesterEmail
	}

	subject = "Delete request awaiting review"

	content := fmt.Sprintf(`
        <p>%s requested deletion of %s.</p>
        <div class="info-box">
            <p><span class="label">Requested by:</span> <span class="value">%s (%s)</span></p>
            <p><span class="label">Item:</span> <span class="value">%s</span></p>
        </div>
        <p>Review pending requests in the admin panel.</p>`,
		html.EscapeString(requester), html.EscapeString(item),
		html.EscapeString(req.RequesterName), html.EscapeString(req.RequesterEmail),
		html.EscapeString(item))

	htmlBody = t.baseHTML(subject, content)
	textBody = fmt.Sprintf("%s requested deletion of %s.\n\nReview pending requests at %s\n",
		requester, item, t.cfg.BaseURL)
	return subject, htmlBody, textBody
}

// DeleteRequestResolved generates the notification sent to the requester
// after an admin approves or rejects their request.
func (t *Templates) DeleteRequestResolved(req *models.DeleteRequest, approved bool, admin *models.User) (subject, htmlBody, textBody string) {
	item := describeRequest(req)

	outcome := "rejected"
	detail := "The item was left untouched."
	if approved {
		outcome = "approved"
		detail = "The item was moved to trash."
	}

	subject = fmt.Sprintf("Delete request %s", outcome)

	content := fmt.Sprintf(`
        <p>Your request to delete %s was %s by %s.</p>
        <p>%s</p>`,
		html.EscapeString(item), outcome, html.EscapeString(admin.Name), detail)

	htmlBody = t.baseHTML(subject, content)
	textBody = fmt.Sprintf("Your request to delete %s was %s by %s. %s\n",
		item, outcome, admin.Name, detail)
	return subject, htmlBody, textBody
}
