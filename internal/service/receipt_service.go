package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/edu-enroll-api/pkg/errors"
	"github.com/noah-isme/edu-enroll-api/pkg/export"
	"github.com/noah-isme/edu-enroll-api/pkg/jobs"
	"github.com/noah-isme/edu-enroll-api/pkg/storage"
)

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

// receiptPayload travels through the job queue to the render worker.
type receiptPayload struct {
	ID          string
	RelPath     string
	Applicant   string
	Description string
	IssuedAt    time.Time
}

// ReceiptService renders acknowledgement PDFs asynchronously and hands out
// signed, expiring download tokens. Tokens are derivable immediately; the
// document materialises when the worker gets to the job.
type ReceiptService struct {
	store    *storage.LocalStorage
	signer   *storage.SignedURLSigner
	exporter *export.PDFExporter
	queue    jobDispatcher
	logger   *zap.Logger
}

// NewReceiptService constructs the receipt service.
func NewReceiptService(store *storage.LocalStorage, signer *storage.SignedURLSigner, exporter *export.PDFExporter, logger *zap.Logger) *ReceiptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if exporter == nil {
		exporter = export.NewPDFExporter()
	}
	return &ReceiptService{store: store, signer: signer, exporter: exporter, logger: logger}
}

// AttachQueue binds the worker queue. The queue's handler must be Process.
func (s *ReceiptService) AttachQueue(queue jobDispatcher) {
	s.queue = queue
}

// Enabled reports whether the service can issue receipts.
func (s *ReceiptService) Enabled() bool {
	return s != nil && s.store != nil && s.signer != nil && s.queue != nil
}

// Issue schedules rendering for a new acknowledgement and returns its signed
// download token.
func (s *ReceiptService) Issue(applicant, description string) (string, error) {
	if s == nil || s.store == nil || s.signer == nil || s.queue == nil {
		return "", fmt.Errorf("receipt service not fully configured")
	}
	now := time.Now().UTC()
	id := uuid.NewString()
	relPath := fmt.Sprintf("%s/%s.pdf", now.Format("2006/01"), id)

	token, _, err := s.signer.Generate(id, relPath)
	if err != nil {
		return "", fmt.Errorf("sign receipt token: %w", err)
	}
	err = s.queue.Enqueue(jobs.Job{
		ID:   id,
		Type: "receipt",
		Payload: receiptPayload{
			ID:          id,
			RelPath:     relPath,
			Applicant:   applicant,
			Description: description,
			IssuedAt:    now,
		},
	})
	if err != nil {
		return "", fmt.Errorf("enqueue receipt job: %w", err)
	}
	return token, nil
}

// Process renders and stores a queued receipt. Used as the queue handler.
func (s *ReceiptService) Process(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(receiptPayload)
	if !ok {
		return fmt.Errorf("unexpected receipt payload type %T", job.Payload)
	}
	data, err := s.exporter.Render(export.Receipt{
		ReferenceID: payload.ID,
		Title:       "Application Acknowledgement",
		IssuedAt:    payload.IssuedAt.Format("02 Jan 2006"),
		Lines: []export.ReceiptLine{
			{Label: "Applicant", Value: payload.Applicant},
			{Label: "Application", Value: payload.Description},
			{Label: "Status", Value: "Received, pending review"},
		},
		Footer: "This document acknowledges receipt of the application. It is not a certificate of enrollment.",
	})
	if err != nil {
		return err
	}
	if _, err := s.store.Save(payload.RelPath, data); err != nil {
		return err
	}
	s.logger.Sugar().Infow("receipt rendered", "receipt_id", payload.ID)
	return nil
}

// Resolve validates a download token and opens the rendered document.
func (s *ReceiptService) Resolve(token string) (*os.File, string, error) {
	id, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "receipt not found or expired")
	}
	file, err := s.store.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "receipt not ready")
	}
	return file, id + ".pdf", nil
}

// StartCleanup periodically removes receipts older than ttl until stop closes.
func (s *ReceiptService) StartCleanup(interval, ttl time.Duration, stop <-chan struct{}) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				deleted, err := s.store.CleanupOlderThan(ttl)
				if err != nil {
					s.logger.Sugar().Warnw("receipt cleanup failed", "error", err)
					continue
				}
				if len(deleted) > 0 {
					s.logger.Sugar().Infow("receipt cleanup", "deleted", len(deleted))
				}
			}
		}
	}()
}
