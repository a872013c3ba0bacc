// workers/notification_worker.go
package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"quizlearn-backend/models"
	"quizlearn-backend/utils"

	"gorm.io/gorm"
)

const (
	notificationBatchSize   = 50
	notificationMaxAttempts = 3
)

// NotificationWorker drains the notification queue: pending rows become
// HTTP calls to the push or SMS gateway. Delivery is best-effort; a row that
// keeps failing is parked as failed after a few attempts.
type NotificationWorker struct {
	db       *gorm.DB
	interval time.Duration

	pushURL string
	pushKey string
	smsURL  string
	smsKey  string
}

func NewNotificationWorker(db *gorm.DB, pushURL, pushKey, smsURL, smsKey string) *NotificationWorker {
	return &NotificationWorker{
		db:       db,
		interval: 15 * time.Second,
		pushURL:  pushURL,
		pushKey:  pushKey,
		smsURL:   smsURL,
		smsKey:   smsKey,
	}
}

func (w *NotificationWorker) Start(ctx context.Context) {
	log.Println("[notify-worker] starting notification delivery worker")
	go w.run(ctx)
}

func (w *NotificationWorker) run(ctx context.Context) {
	w.processBatch(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("[notify-worker] stopping")
			return
		case <-ticker.C:
			w.processBatch(ctx)
		}
	}
}

func (w *NotificationWorker) processBatch(ctx context.Context) {
	var pending []models.NotificationLog
	err := w.db.Where("status = ?", models.NotificationPending).
		Order("created_at ASC").
		Limit(notificationBatchSize).
		Find(&pending).Error
	if err != nil {
		log.Printf("[notify-worker] queue query failed: %v", err)
		return
	}

	for i := range pending {
		n := &pending[i]
		if err := w.deliver(ctx, n); err != nil {
			n.Attempts++
			if n.Attempts >= notificationMaxAttempts {
				n.Status = models.NotificationFailed
			}
			log.Printf("[notify-worker] delivery of %d failed (attempt %d): %v", n.ID, n.Attempts, err)
		} else {
			now := time.Now()
			n.Status = models.NotificationSent
			n.SentAt = &now
		}
		if err := w.db.Save(n).Error; err != nil {
			log.Printf("[notify-worker] failed to update notification %d: %v", n.ID, err)
		}
	}
}

func (w *NotificationWorker) deliver(ctx context.Context, n *models.NotificationLog) error {
	switch n.Channel {
	case "push":
		return w.deliverPush(ctx, n)
	case "sms":
		return w.deliverSMS(ctx, n)
	default:
		return fmt.Errorf("unknown channel %q", n.Channel)
	}
}

func (w *NotificationWorker) deliverPush(ctx context.Context, n *models.NotificationLog) error {
	if w.pushURL == "" {
		return fmt.Errorf("push gateway not configured")
	}

	var tokens []string
	err := w.db.Model(&models.DeviceToken{}).
		Where("learner_id = ?", n.LearnerID).
		Pluck("token", &tokens).Error
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		// Nothing registered; treat as delivered so the row does not spin.
		return nil
	}

	payload := map[string]interface{}{
		"tokens": tokens,
		"title":  n.Title,
		"body":   n.Body,
	}
	return w.post(ctx, w.pushURL, w.pushKey, payload)
}

func (w *NotificationWorker) deliverSMS(ctx context.Context, n *models.NotificationLog) error {
	if w.smsURL == "" {
		return fmt.Errorf("sms gateway not configured")
	}

	var learner models.Learner
	if err := w.db.Where("id = ?", n.LearnerID).First(&learner).Error; err != nil {
		return err
	}
	if learner.Phone == "" {
		return nil
	}

	payload := map[string]interface{}{
		"to":      learner.Phone,
		"message": n.Body,
	}
	return w.post(ctx, w.smsURL, w.smsKey, payload)
}

func (w *NotificationWorker) post(ctx context.Context, url, key string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := utils.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, snippet)
	}
	return nil
}
