package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/mengeshaster/transcriber-twilio/application/ports/outbound"
	"github.com/mengeshaster/transcriber-twilio/config"
	twilioclient "github.com/twilio/twilio-go/client"
	"net/http"
)

const signatureHeader = "X-Twilio-Signature"

type WebhookAuthHandler interface {
	AuthMiddleware() gin.HandlerFunc
}

type webhookAuthHandler struct {
	validator     twilioclient.RequestValidator
	publicBaseURL string
	logger        outbound.LoggerPort
}

func NewWebhookAuthHandler(twilioConfig *config.TwilioConfig, logger outbound.LoggerPort) WebhookAuthHandler {
	return &webhookAuthHandler{
		validator:     twilioclient.NewRequestValidator(twilioConfig.AuthToken),
		publicBaseURL: twilioConfig.PublicBaseURL,
		logger:        logger,
	}
}

// AuthMiddleware rejects webhook posts whose X-Twilio-Signature does not
// match the request. Read-side and health endpoints are left open.
func (h *webhookAuthHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		signature := c.GetHeader(signatureHeader)
		if signature == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "signature header is required"})
			return
		}

		if err := c.Request.ParseForm(); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed form body"})
			return
		}

		params := make(map[string]string, len(c.Request.PostForm))
		for key := range c.Request.PostForm {
			params[key] = c.Request.PostForm.Get(key)
		}

		if !h.validator.Validate(h.requestURL(c), params, signature) {
			h.logger.WarnWithFields("Rejected webhook with invalid signature", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
			return
		}

		c.Next()
	}
}

func (h *webhookAuthHandler) requestURL(c *gin.Context) string {
	if h.publicBaseURL != "" {
		return h.publicBaseURL + c.Request.URL.RequestURI()
	}

	scheme := "https"
	if c.Request.TLS == nil {
		scheme = "http"
	}
	return scheme + "://" + c.Request.Host + c.Request.URL.RequestURI()
}
