package email

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"linkledger/internal/config"
	"linkledger/internal/models"
)

// AdminEmailGetter is an interface for resolving notification recipients.
type AdminEmailGetter interface {
	GetAdminEmails(ctx context.Context) ([]string, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Notifier sends email notifications for delete request events.
type Notifier struct {
	service   *Service
	templates *Templates
	cfg       *config.Config
	db        AdminEmailGetter
}

// NewNotifier creates a new email notifier.
func NewNotifier(cfg *config.Config, db AdminEmailGetter) *Notifier {
	return &Notifier{
		service:   NewService(cfg),
		templates: NewTemplates(cfg),
		cfg:       cfg,
		db:        db,
	}
}

// NotifyDeleteRequestCreated notifies admins that a deletion needs review.
func (n *Notifier) NotifyDeleteRequestCreated(ctx context.Context, req *models.DeleteRequest) {
	if !n.service.IsEnabled() {
		return
	}

	emails, err := n.db.GetAdminEmails(ctx)
	if err != nil {
		log.Printf("Failed to get admin emails: %v", err)
		return
	}

	// Extra recipients configured outside the user table
	for _, e := range strings.Split(n.cfg.AdminEmails, ",") {
		if e = strings.TrimSpace(e); e != "" {
			emails = append(emails, e)
		}
	}

	if len(emails) == 0 {
		log.Println("No admin emails found for notification")
		return
	}

	subject, htmlBody, textBody := n.templates.DeleteRequestCreated(req)
	n.service.SendAsync(emails, subject, htmlBody, textBody)
}

// NotifyDeleteRequestResolved notifies the requester of the admin's decision.
func (n *Notifier) NotifyDeleteRequestResolved(ctx context.Context, req *models.DeleteRequest, approved bool, admin *models.User) {
	if !n.service.IsEnabled() || req.RequestedBy == nil {
		return
	}

	requester, err := n.db.GetUserByID(ctx, *req.RequestedBy)
	if err != nil {
		log.Printf("Failed to get requester: %v", err)
		return
	}
	if requester.Email == "" {
		return
	}

	subject, htmlBody, textBody := n.templates.DeleteRequestResolved(req, approved, admin)
	n.service.SendAsync([]string{requester.Email}, subject, htmlBody, textBody)
}
