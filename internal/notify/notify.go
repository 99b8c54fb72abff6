// Package notify sends the service's outbound emails.
package notify

import (
	"context"
	"fmt"

	"ecodonate-backend/internal/config"
	"ecodonate-backend/internal/domain"
	"ecodonate-backend/internal/logger"
)

// Message is a plain-text email
type Message struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NewMailer selects the delivery backend named by cfg.Provider
func NewMailer(cfg config.EmailConfig) (Mailer, error) {
	switch cfg.Provider {
	case "smtp":
		return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.From, cfg.FromName), nil
	case "sendgrid":
		return NewSendGridMailer(cfg.SendGridAPIKey, cfg.From, cfg.FromName), nil
	case "log", "":
		return NewLogMailer(), nil
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", cfg.Provider)
	}
}

type Notifier interface {
	OrganizationStatusChanged(ctx context.Context, owner *domain.User, org *domain.Organization) error
	DonationReceipt(ctx context.Context, donor *domain.User, org *domain.Organization, donation *domain.Donation) error
	// ApplicationSubmitted tells an admin that an organization awaits review
	ApplicationSubmitted(ctx context.Context, admin *domain.User, org *domain.Organization) error
}

type emailNotifier struct {
	mailer Mailer
}

func NewNotifier(mailer Mailer) Notifier {
	return &emailNotifier{mailer: mailer}
}

func (n *emailNotifier) OrganizationStatusChanged(ctx context.Context, owner *domain.User, org *domain.Organization) error {
	body := fmt.Sprintf("Hello %s,\n\nThe application for your organization '%s' is now: %s.", owner.Name, org.Name, org.Status)
	switch org.Status {
	case domain.OrganizationStatusApproved:
		body += "\n\nYour organization is now listed and can receive donations."
	case domain.OrganizationStatusRejected:
		body += "\n\nPlease contact support if you believe this is a mistake."
	}
	body += "\n\nBest regards,\nThe EcoDonate Team"

	return n.send(ctx, Message{
		To:      owner.Email,
		ToName:  owner.Name,
		Subject: fmt.Sprintf("Organization Status Update - %s", org.Name),
		Body:    body,
	})
}

func (n *emailNotifier) DonationReceipt(ctx context.Context, donor *domain.User, org *domain.Organization, donation *domain.Donation) error {
	body := fmt.Sprintf("Hello %s,\n\nThank you for your donation of $%s to %s.", donor.Name, donation.Amount.StringFixed(2), org.Name)
	if donation.IsRecurring && donation.Frequency != nil {
		body += fmt.Sprintf("\n\nThis is a %s recurring donation.", *donation.Frequency)
	}
	if donation.IsAnonymous {
		body += "\n\nYour name will not be shown to the organization."
	}
	body += fmt.Sprintf("\n\nReceipt number: %d\n\nBest regards,\nThe EcoDonate Team", donation.ID)

	return n.send(ctx, Message{
		To:      donor.Email,
		ToName:  donor.Name,
		Subject: fmt.Sprintf("Your donation receipt - %s", org.Name),
		Body:    body,
	})
}

func (n *emailNotifier) ApplicationSubmitted(ctx context.Context, admin *domain.User, org *domain.Organization) error {
	body := fmt.Sprintf("Hello %s,\n\nA new organization application is awaiting review:\n\n  #%d %s\n  %s\n\nBest regards,\nThe EcoDonate Team",
		admin.Name, org.ID, org.Name, org.Description)

	return n.send(ctx, Message{
		To:      admin.Email,
		ToName:  admin.Name,
		Subject: fmt.Sprintf("New organization application - %s", org.Name),
		Body:    body,
	})
}

func (n *emailNotifier) send(ctx context.Context, msg Message) error {
	logger.ExternalServiceCall(ctx, "email", "Send", "to", msg.To, "subject", msg.Subject)
	err := n.mailer.Send(ctx, msg)
	logger.ExternalServiceResult(ctx, "email", "Send", err, "to", msg.To)
	return err
}
