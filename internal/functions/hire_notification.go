package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/rs/zerolog"
)

// HireNotificationConfig addresses the operator
type HireNotificationConfig struct {
	From       string
	AdminEmail string
	AdminPhone string
}

// HireNotificationResult is returned to the invoker
type HireNotificationResult struct {
	Success     bool   `json:"success"`
	AdminEmail  string `json:"admin_email_id"`
	ClientEmail string `json:"client_email_id"`
	SMSSent     bool   `json:"sms_sent"`
}

var adminTmpl = template.Must(template.New("admin").Parse(`<h1>New {{.Kind}} Hire Request</h1>
<h2>Client Information:</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Contact:</strong> {{.Contact}}</p>
<p><strong>Type:</strong> {{.Kind}} Request</p>
<h2>Project Details:</h2>
<p><strong>Reason for hiring:</strong></p>
<p>{{.Reason}}</p>
{{if .LicenseURL}}<p><strong>Company License:</strong> <a href="{{.LicenseURL}}">Download License</a></p>{{end}}
<hr>
<p>This request was submitted through your website's hire form.</p>`))

var clientTmpl = template.Must(template.New("client").Parse(`<h1>Thank you for your project request!</h1>
<p>Dear {{.Name}},</p>
<p>Thank you for submitting your {{.Lower}} project request. I have received your request and will review it shortly.</p>
<h2>Your Request Summary:</h2>
<p><strong>Type:</strong> {{.Kind}} Request</p>
<p><strong>Contact Email:</strong> {{.Email}}</p>
<p><strong>Contact Number:</strong> {{.Contact}}</p>
<h3>Project Description:</h3>
<p>{{.Reason}}</p>
<p>I will get back to you within 24-48 hours to discuss your project requirements in detail.</p>
<p>Best regards,<br>Indra Prasad Sharma<br>Adhikari Tech Solution</p>`))

type hireView struct {
	Kind, Lower          string
	Name, Email, Contact string
	Reason               string
	LicenseURL           string
}

func render(t *template.Template, v hireView) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// HireNotification emails the operator and the client about a new hire
// request. The emails are sent in order and the first failure aborts.
func HireNotification(cfg HireNotificationConfig, email domain.EmailSender, sms domain.SMSSender, log zerolog.Logger) Function {
	log = log.With().Str("function", "send-hire-notification").Logger()

	return func(ctx context.Context, body json.RawMessage) (any, error) {
		var req domain.HireRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}

		v := hireView{
			Kind:       "Personal",
			Lower:      "personal",
			Name:       req.ClientName(),
			Email:      req.ClientEmail(),
			Contact:    req.ClientContact(),
			Reason:     req.Reason,
			LicenseURL: req.CompanyLicenseURL,
		}
		if req.Type == domain.HireRequestCompany {
			v.Kind, v.Lower = "Company", "company"
		}

		adminHTML, err := render(adminTmpl, v)
		if err != nil {
			return nil, fmt.Errorf("failed to render admin email: %w", err)
		}
		clientHTML, err := render(clientTmpl, v)
		if err != nil {
			return nil, fmt.Errorf("failed to render client email: %w", err)
		}

		result := HireNotificationResult{}
		result.AdminEmail, err = email.SendEmail(ctx, domain.EmailMessage{
			From:    cfg.From,
			To:      []string{cfg.AdminEmail},
			Subject: fmt.Sprintf("New %s Hire Request from %s", v.Kind, v.Name),
			HTML:    adminHTML,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to send admin email: %w", err)
		}
		log.Info().Str("email_id", result.AdminEmail).Msg("admin email sent")

		result.ClientEmail, err = email.SendEmail(ctx, domain.EmailMessage{
			From:    cfg.From,
			To:      []string{v.Email},
			Subject: "Your Project Request Confirmation - Adhikari Tech Solution",
			HTML:    clientHTML,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to send client email: %w", err)
		}
		log.Info().Str("email_id", result.ClientEmail).Msg("client email sent")

		if cfg.AdminPhone != "" && sms != nil {
			msg := fmt.Sprintf("New %s hire request from %s (%s)", v.Lower, v.Name, v.Contact)
			if err := sms.SendSMS(ctx, cfg.AdminPhone, msg); err != nil {
				log.Warn().Err(err).Msg("operator sms failed")
			} else {
				result.SMSSent = true
			}
		}

		result.Success = true
		return result, nil
	}
}
