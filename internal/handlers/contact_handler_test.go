package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/bharatheeyaseva/backend/internal/config"
	"github.com/gin-gonic/gin"
)

type fakeMailer struct {
	notifyErr error
	ackErr    error

	notified []string
	acked    []string
}

func (f *fakeMailer) SendContactNotification(name, email, message string) error {
	if f.notifyErr != nil {
		return f.notifyErr
	}
	f.notified = append(f.notified, email)
	return nil
}

func (f *fakeMailer) SendContactAcknowledgment(to, name, message string) error {
	if f.ackErr != nil {
		return f.ackErr
	}
	f.acked = append(f.acked, to)
	return nil
}

func contactRouter(mailer ContactMailer, env string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewContactHandler(mailer, &config.Config{Env: env})
	r := gin.New()
	r.POST("/public/contact", h.SubmitContact)
	return r
}

func TestSubmitContactSendsBothEmails(t *testing.T) {
	mailer := &fakeMailer{}
	r := contactRouter(mailer, "development")

	w := doJSON(t, r, http.MethodPost, "/public/contact", map[string]string{
		"name":    "Asha",
		"email":   "asha@example.com",
		"message": "Namaste, I would like to volunteer.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || !resp.Success {
		t.Errorf("response: %s", w.Body.String())
	}
	if len(mailer.notified) != 1 || mailer.notified[0] != "asha@example.com" {
		t.Errorf("notification: %v", mailer.notified)
	}
	if len(mailer.acked) != 1 || mailer.acked[0] != "asha@example.com" {
		t.Errorf("acknowledgment: %v", mailer.acked)
	}
}

func TestSubmitContactValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing name", map[string]string{"email": "a@example.com", "message": "hi"}},
		{"missing email", map[string]string{"name": "A", "message": "hi"}},
		{"missing message", map[string]string{"name": "A", "email": "a@example.com"}},
		{"whitespace only", map[string]string{"name": "  ", "email": "a@example.com", "message": "hi"}},
		{"bad email", map[string]string{"name": "A", "email": "not-an-email", "message": "hi"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &fakeMailer{}
			r := contactRouter(mailer, "development")
			w := doJSON(t, r, http.MethodPost, "/public/contact", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status %d, want 400", w.Code)
			}
			if len(mailer.notified) != 0 {
				t.Error("invalid submission reached the mailer")
			}
		})
	}
}

func TestSubmitContactNotificationFailure(t *testing.T) {
	mailer := &fakeMailer{notifyErr: errors.New("smtp down")}
	r := contactRouter(mailer, "development")

	w := doJSON(t, r, http.MethodPost, "/public/contact", map[string]string{
		"name": "A", "email": "a@example.com", "message": "hi",
	})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["details"] != "smtp down" {
		t.Errorf("development response should carry details: %v", resp)
	}
	if len(mailer.acked) != 0 {
		t.Error("acknowledgment sent despite notification failure")
	}
}

func TestSubmitContactHidesDetailsInProduction(t *testing.T) {
	mailer := &fakeMailer{notifyErr: errors.New("smtp down")}
	r := contactRouter(mailer, "production")

	w := doJSON(t, r, http.MethodPost, "/public/contact", map[string]string{
		"name": "A", "email": "a@example.com", "message": "hi",
	})
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, present := resp["details"]; present {
		t.Error("internal error details leaked in production")
	}
}

func TestSubmitContactAckFailureIsNotFatal(t *testing.T) {
	mailer := &fakeMailer{ackErr: errors.New("mailbox full")}
	r := contactRouter(mailer, "development")

	w := doJSON(t, r, http.MethodPost, "/public/contact", map[string]string{
		"name": "A", "email": "a@example.com", "message": "hi",
	})
	if w.Code != http.StatusOK {
		t.Errorf("status %d, want 200: acknowledgment failure must not fail the submission", w.Code)
	}
}
