// Package services: services/email_service.go
package services

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"kiddushware/logger"
	"kiddushware/models"
)

const defaultFormSubmitURL = "https://formsubmit.co"

// EmailService posts sponsorship notifications through the transactional
// relay (formsubmit.co): one form-encoded POST to an address-specific
// endpoint. Strictly best-effort; a relay failure never blocks or fails
// the submission that triggered it.
type EmailService struct {
	BaseURL string
	Client  *http.Client
}

// NewEmailService builds a relay client against FORMSUBMIT_URL, defaulting
// to the public endpoint.
func NewEmailService() *EmailService {
	base := os.Getenv("FORMSUBMIT_URL")
	if base == "" {
		base = defaultFormSubmitURL
	}
	return &EmailService{
		BaseURL: base,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// NotifySponsorship sends the "new submission" email for rec to the
// configured notification address. Returns the relay error for logging and
// tests; callers ignore it for control flow.
func (e *EmailService) NotifySponsorship(notificationEmail string, rec models.SponsorshipRecord) error {
	if notificationEmail == "" {
		return nil
	}

	occasionLabel := rec.Parsha
	if rec.SponsorshipType == models.TypeCustom {
		occasionLabel = rec.CustomSponsorableTitle
	}

	form := url.Values{}
	form.Set("_captcha", "false")
	form.Set("_subject", fmt.Sprintf("New Kiddush Sponsorship: %s for %s", rec.SponsorName, occasionLabel))
	form.Set("_replyto", rec.ContactEmail)
	form.Set("Form Title", rec.FormTitle)
	form.Set("Sponsor Name", rec.SponsorName)
	form.Set("Occasion", rec.Occasion)
	form.Set("Contact Email", rec.ContactEmail)
	form.Set("Status", "Pending Review")
	if rec.SponsorshipType == models.TypeCustom {
		form.Set("Event", rec.CustomSponsorableTitle)
	} else {
		form.Set("Parsha", rec.Parsha)
		form.Set("Shabbat Date", rec.ShabbatDate)
	}

	endpoint := fmt.Sprintf("%s/%s", e.BaseURL, notificationEmail)
	resp, err := e.Client.PostForm(endpoint, form)
	if err != nil {
		logger.Error.Printf("NotifySponsorship: relay post failed: %v", err)
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		logger.Warn.Printf("NotifySponsorship: relay returned %s for %s", resp.Status, notificationEmail)
		return fmt.Errorf("relay returned %s", resp.Status)
	}
	logger.Info.Printf("Notification email relayed to %s for sponsorship %s", notificationEmail, rec.ID)
	return nil
}

// NotifySponsorshipAsync fires the notification in the background; the
// submission path never waits on the relay.
func (e *EmailService) NotifySponsorshipAsync(notificationEmail string, rec models.SponsorshipRecord) {
	go func() {
		_ = e.NotifySponsorship(notificationEmail, rec)
	}()
}
