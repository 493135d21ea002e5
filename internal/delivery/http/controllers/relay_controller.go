package controllers

import (
	"log/slog"
	"net/http"

	"contactrelay/internal/contactform"
	h "contactrelay/internal/delivery/http/helpers"
	"contactrelay/internal/domain"
)

// Relay responses, kept identical to what the landing page expects.
const (
	RelaySuccessBody     = "Email sent successfully!"
	RelayFailurePrefix   = "Failed to send email: "
	MethodNotAllowedBody = "Method Not Allowed"
)

// SendEmailRequest is the request body for POST /.netlify/functions/sendEmail
type SendEmailRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Validate implements Validator using the same rules as the contact form.
func (s SendEmailRequest) Validate() []string {
	ok, errs := contactform.FormFromMessage(s.ContactMessage()).Validate()
	if ok {
		return nil
	}
	return errs.Messages()
}

// ContactMessage converts the request into the domain payload.
func (s SendEmailRequest) ContactMessage() domain.ContactMessage {
	return domain.ContactMessage{
		Name:    s.Name,
		Email:   s.Email,
		Phone:   s.Phone,
		Message: s.Message,
	}
}

type RelayController struct {
	Logger  *slog.Logger
	Service domain.RelayService
}

func NewRelayController(logger *slog.Logger, svc domain.RelayService) *RelayController {
	return &RelayController{
		Logger:  logger,
		Service: svc,
	}
}

// SendEmail godoc
// @Summary Relay a contact form message
// @Description Validate the contact form payload and email it to the site owner through the configured mail account. Only POST is accepted.
// @Tags contact
// @Accept json
// @Produce plain
// @Param body body SendEmailRequest true "Contact form fields"
// @Success 200 {string} string "Email sent successfully!"
// @Failure 400 {string} string "validation or decode error"
// @Failure 405 {string} string "Method Not Allowed"
// @Failure 500 {string} string "Failed to send email: <reason>"
// @Router /.netlify/functions/sendEmail [post]
func (c *RelayController) SendEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.WriteText(w, http.StatusMethodNotAllowed, MethodNotAllowedBody)
		return
	}
	var req SendEmailRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.Relay(r.Context(), req.ContactMessage()); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteText(w, http.StatusInternalServerError, RelayFailurePrefix+err.Error())
		return
	}
	h.WriteText(w, http.StatusOK, RelaySuccessBody)
}
