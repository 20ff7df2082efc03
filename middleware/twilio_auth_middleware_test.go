package middleware

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"github.com/gin-gonic/gin"
	"github.com/mengeshaster/transcriber-twilio/config"
	"github.com/mengeshaster/transcriber-twilio/infrastructure/adapters"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testAuthToken = "12345"

// twilioSign reproduces the provider's signing scheme: HMAC-SHA1 over the
// URL plus the sorted form parameters.
func twilioSign(rawURL string, form url.Values) string {
	keys := make([]string, 0, len(form))
	for key := range form {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	builder.WriteString(rawURL)
	for _, key := range keys {
		builder.WriteString(key)
		builder.WriteString(form.Get(key))
	}

	mac := hmac.New(sha1.New, []byte(testAuthToken))
	mac.Write([]byte(builder.String()))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func authRouter() *gin.Engine {
	router := gin.New()
	handler := NewWebhookAuthHandler(&config.TwilioConfig{
		AuthToken:     testAuthToken,
		PublicBaseURL: "https://voicemail.example.com",
	}, adapters.NewZerologWrapper())
	router.Use(handler.AuthMiddleware())
	router.POST("/record_complete", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/calls/:caller", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestValidSignaturePasses(t *testing.T) {
	router := authRouter()

	form := url.Values{"RecordingSid": {"RE1"}, "CallSid": {"CA1"}}
	req := httptest.NewRequest(http.MethodPost, "/record_complete", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Twilio-Signature", twilioSign("https://voicemail.example.com/record_complete", form))

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Errorf("Status = %d, want 200 (body %s)", res.Code, res.Body.String())
	}
}

func TestInvalidSignatureRejected(t *testing.T) {
	router := authRouter()

	form := url.Values{"RecordingSid": {"RE1"}}
	req := httptest.NewRequest(http.MethodPost, "/record_complete", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Twilio-Signature", "bogus")

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Errorf("Status = %d, want 401", res.Code)
	}
}

func TestMissingSignatureRejected(t *testing.T) {
	router := authRouter()

	req := httptest.NewRequest(http.MethodPost, "/record_complete", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Errorf("Status = %d, want 401", res.Code)
	}
}

func TestReadEndpointsBypassSignature(t *testing.T) {
	router := authRouter()

	req := httptest.NewRequest(http.MethodGet, "/calls/15551234567", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Errorf("Status = %d, want 200", res.Code)
	}
}
