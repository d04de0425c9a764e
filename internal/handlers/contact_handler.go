package handlers

import (
	"log"
	"net/http"

	"github.com/bharatheeyaseva/backend/internal/config"
	"github.com/bharatheeyaseva/backend/pkg/validation"
	"github.com/gin-gonic/gin"
)

// ContactMailer sends the two contact-form emails.
type ContactMailer interface {
	SendContactNotification(name, email, message string) error
	SendContactAcknowledgment(to, name, message string) error
}

type ContactHandler struct {
	mailer ContactMailer
	cfg    *config.Config
}

func NewContactHandler(mailer ContactMailer, cfg *config.Config) *ContactHandler {
	return &ContactHandler{mailer: mailer, cfg: cfg}
}

// SubmitContact validates a contact-form message and relays it: one
// email to the organization, one acknowledgment back to the sender.
// POST /public/contact
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	req.Name = validation.SanitizeString(req.Name)
	req.Email = validation.SanitizeString(req.Email)
	req.Message = validation.SanitizeString(req.Message)

	if req.Name == "" || req.Email == "" || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	if !validation.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		return
	}

	if err := h.mailer.SendContactNotification(req.Name, req.Email, req.Message); err != nil {
		log.Printf("Contact notification send failed: %v", err)
		resp := gin.H{"error": "Failed to send message. Please try again later."}
		if h.cfg.Env != "production" {
			resp["details"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	if err := h.mailer.SendContactAcknowledgment(req.Email, req.Name, req.Message); err != nil {
		// The organization already has the message; log and carry on.
		log.Printf("Contact acknowledgment send failed: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Message sent successfully! Check your email for confirmation.",
	})
}
