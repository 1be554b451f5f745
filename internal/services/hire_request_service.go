package services

import (
	"context"
	"fmt"
	"mime"
	"net/mail"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/indraprashad/Adhikari-tech-solution/internal/metrics"
	"github.com/rs/zerolog"
)

// HireNotificationFunction is the function invoked after a request is stored
const HireNotificationFunction = "send-hire-notification"

// licenseTypes maps the accepted license MIME types to the extension used when
// the upload has none
var licenseTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
}

// HireSubmission is the public hire form
type HireSubmission struct {
	Type           domain.HireRequestType `json:"type" form:"type"`
	CompanyName    string                 `json:"company_name" form:"company_name"`
	CompanyEmail   string                 `json:"company_email" form:"company_email"`
	CompanyContact string                 `json:"company_contact" form:"company_contact"`
	Name           string                 `json:"name" form:"name"`
	Email          string                 `json:"email" form:"email"`
	Contact        string                 `json:"contact" form:"contact"`
	Reason         string                 `json:"reason" form:"reason"`
	License        *domain.Upload         `json:"-" form:"-"`
}

// HireTimeouts bounds each outbound call of a submission
type HireTimeouts struct {
	Data     time.Duration
	Storage  time.Duration
	Function time.Duration
}

// HireRequestService stores hire requests and dispatches their notification
type HireRequestService struct {
	table     domain.Table[domain.HireRequest]
	storage   domain.FileStorage
	functions domain.FunctionInvoker
	bucket    string
	timeouts  HireTimeouts
	log       zerolog.Logger
}

// NewHireRequestService creates a HireRequestService
func NewHireRequestService(
	table domain.Table[domain.HireRequest],
	storage domain.FileStorage,
	functions domain.FunctionInvoker,
	bucket string,
	timeouts HireTimeouts,
	log zerolog.Logger,
) *HireRequestService {
	return &HireRequestService{
		table:     table,
		storage:   storage,
		functions: functions,
		bucket:    bucket,
		timeouts:  timeouts,
		log:       log.With().Str("component", "hire_requests").Logger(),
	}
}

// LicenseContentType resolves the MIME type of a license upload and rejects
// anything other than PDF, PNG or JPEG
func LicenseContentType(u *domain.Upload) (string, error) {
	ct := u.ContentType
	if ct == "" || ct == "application/octet-stream" {
		ct = mime.TypeByExtension(strings.ToLower(filepath.Ext(u.Filename)))
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFileType, u.Filename)
	}
	if _, ok := licenseTypes[mediaType]; !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, mediaType)
	}
	return mediaType, nil
}

func (s *HireRequestService) validate(sub HireSubmission) (*domain.HireRequest, error) {
	if !sub.Type.Valid() {
		return nil, domain.Invalid("type", "must be company or personal")
	}

	req := &domain.HireRequest{
		Type:   sub.Type,
		Reason: strings.TrimSpace(sub.Reason),
		Status: domain.HireStatusPending,
	}
	var email string
	if sub.Type == domain.HireRequestCompany {
		req.CompanyName = strings.TrimSpace(sub.CompanyName)
		req.CompanyEmail = strings.TrimSpace(sub.CompanyEmail)
		req.CompanyContact = strings.TrimSpace(sub.CompanyContact)
		email = req.CompanyEmail
		if err := required(
			[2]string{"company_name", req.CompanyName},
			[2]string{"company_email", req.CompanyEmail},
			[2]string{"company_contact", req.CompanyContact},
		); err != nil {
			return nil, err
		}
	} else {
		if sub.License != nil {
			return nil, domain.Invalid("company_license", "is only accepted for company requests")
		}
		req.Name = strings.TrimSpace(sub.Name)
		req.Email = strings.TrimSpace(sub.Email)
		req.Contact = strings.TrimSpace(sub.Contact)
		email = req.Email
		if err := required(
			[2]string{"name", req.Name},
			[2]string{"email", req.Email},
			[2]string{"contact", req.Contact},
		); err != nil {
			return nil, err
		}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.Invalid("email", "is not a valid address")
	}
	if err := required([2]string{"reason", req.Reason}); err != nil {
		return nil, err
	}
	return req, nil
}

// Submit validates the form, uploads the license, stores the request and then
// dispatches the notification. A notification failure never fails the submission.
func (s *HireRequestService) Submit(ctx context.Context, sub HireSubmission) (*domain.HireRequest, error) {
	req, err := s.validate(sub)
	if err != nil {
		return nil, err
	}

	if sub.License != nil {
		contentType, err := LicenseContentType(sub.License)
		if err != nil {
			return nil, err
		}
		url, err := s.uploadLicense(ctx, sub.License, contentType)
		if err != nil {
			return nil, err
		}
		req.CompanyLicenseURL = url
	}

	dctx, cancel := within(ctx, s.timeouts.Data)
	defer cancel()
	if err := s.table.Insert(dctx, req); err != nil {
		return nil, err
	}
	s.log.Info().Str("id", req.ID).Str("type", string(req.Type)).Msg("hire request stored")

	s.notify(ctx, req)
	return req, nil
}

func (s *HireRequestService) uploadLicense(ctx context.Context, u *domain.Upload, contentType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(u.Filename))
	if ext == "" {
		ext = licenseTypes[contentType]
	}
	path := uuid.NewString() + ext

	ctx, cancel := within(ctx, s.timeouts.Storage)
	defer cancel()
	if err := s.storage.Upload(ctx, s.bucket, path, u.Reader, u.Size, contentType); err != nil {
		return "", fmt.Errorf("failed to upload license: %w", err)
	}
	return s.storage.PublicURL(s.bucket, path), nil
}

// notify runs detached from the caller so a disconnect does not cancel it
func (s *HireRequestService) notify(ctx context.Context, req *domain.HireRequest) {
	ctx, cancel := within(context.WithoutCancel(ctx), s.timeouts.Function)
	defer cancel()

	if _, err := s.functions.Invoke(ctx, HireNotificationFunction, req); err != nil {
		metrics.NotificationFailures.Inc()
		s.log.Warn().Err(err).Str("id", req.ID).Msg("hire notification failed")
	}
}

// List returns every hire request, newest first
func (s *HireRequestService) List(ctx context.Context) ([]domain.HireRequest, error) {
	ctx, cancel := within(ctx, s.timeouts.Data)
	defer cancel()
	return s.table.Select(ctx, newest)
}

// UpdateStatus moves a request to one of the four known statuses
func (s *HireRequestService) UpdateStatus(ctx context.Context, id string, status domain.HireRequestStatus) error {
	if !status.Valid() {
		return domain.Invalid("status", "must be pending, in-progress, completed or rejected")
	}
	ctx, cancel := within(ctx, s.timeouts.Data)
	defer cancel()
	if err := s.table.Update(ctx, id, &domain.HireRequest{Status: status}, "status"); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Str("status", string(status)).Msg("hire request status updated")
	return nil
}
