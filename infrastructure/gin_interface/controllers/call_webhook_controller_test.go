package controllers

import (
	"context"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/mengeshaster/transcriber-twilio/application/services"
	"github.com/mengeshaster/transcriber-twilio/domain"
	"github.com/mengeshaster/transcriber-twilio/infrastructure/adapters"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubOrchestrator struct {
	markup string
	err    error
}

func (s *stubOrchestrator) HandleCallStarted(_ context.Context, _ domain.CallEvent) (string, error) {
	return s.markup, s.err
}

func (s *stubOrchestrator) HandleRecordingComplete(_ context.Context, event domain.RecordingEvent) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return event.RecordingSid, nil
}

func (s *stubOrchestrator) HandleTranscriptionComplete(_ context.Context, event domain.TranscriptionEvent) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return event.RecordingSid, nil
}

func webhookRouter(orchestrator *stubOrchestrator) *gin.Engine {
	router := gin.New()
	NewCallWebhookController(adapters.NewZerologWrapper(), orchestrator).RegisterRoutes(router)
	return router
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestCallIncomingReturnsMarkup(t *testing.T) {
	router := webhookRouter(&stubOrchestrator{markup: "<Response><Say/><Record/></Response>"})

	res := postForm(router, "/call_incoming", url.Values{"CallSid": {"CA1"}})

	if res.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", res.Code)
	}
	if contentType := res.Header().Get("Content-Type"); !strings.HasPrefix(contentType, "text/xml") {
		t.Errorf("Content-Type = %q, want text/xml", contentType)
	}
	body, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(body), "<Record/>") {
		t.Errorf("Body = %q", body)
	}
}

func TestRecordCompleteAcknowledgesWithSid(t *testing.T) {
	router := webhookRouter(&stubOrchestrator{})

	res := postForm(router, "/record_complete", url.Values{"RecordingSid": {"RE1"}})

	if res.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", res.Code)
	}
	if body := res.Body.String(); body != "RE1" {
		t.Errorf("Body = %q, want RE1", body)
	}
}

func TestWebhookClientErrorsMapTo400(t *testing.T) {
	for _, err := range []error{
		services.ErrMissingRecordingSid,
		services.ErrMissingCallSid,
		services.ErrMissingTranscriptionSid,
	} {
		router := webhookRouter(&stubOrchestrator{err: err})
		res := postForm(router, "/twilio_transcription_complete", url.Values{})
		if res.Code != http.StatusBadRequest {
			t.Errorf("Status for %v = %d, want 400", err, res.Code)
		}
	}
}

func TestWebhookIntegrityErrorMapsTo500(t *testing.T) {
	router := webhookRouter(&stubOrchestrator{err: fmt.Errorf("%w: CA404", services.ErrUnknownCall)})

	res := postForm(router, "/record_complete", url.Values{"RecordingSid": {"RE1"}})

	if res.Code != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", res.Code)
	}
}
