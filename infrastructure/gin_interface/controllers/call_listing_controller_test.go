package controllers

import (
	"context"
	"encoding/json"
	"github.com/gin-gonic/gin"
	"github.com/mengeshaster/transcriber-twilio/domain"
	"github.com/mengeshaster/transcriber-twilio/infrastructure/adapters"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubListing struct {
	calls []domain.AugmentedCallDetails
	err   error
}

func (s *stubListing) List(_ context.Context, _ string) ([]domain.AugmentedCallDetails, error) {
	return s.calls, s.err
}

func listingRouter(listing *stubListing) *gin.Engine {
	router := gin.New()
	NewCallListingController(adapters.NewZerologWrapper(), listing).RegisterRoutes(router)
	return router
}

func getCalls(router *gin.Engine, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/calls/972501234567", nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func sampleCalls() []domain.AugmentedCallDetails {
	twilioText := "hello"
	return []domain.AugmentedCallDetails{
		{
			CallDetails: domain.CallDetails{
				Caller:             "+972501234567",
				RecordingStartTime: "Mon, 01 Jan 2024 10:00:00 +0000",
				RecordingSid:       "RE1",
				CallSid:            "CA1",
				Mp3PathTwilio:      "http://x/y.mp3",
			},
			TranscriptionTextTwilio: &twilioText,
		},
	}
}

func TestListCallsJSON(t *testing.T) {
	router := listingRouter(&stubListing{calls: sampleCalls()})

	res := getCalls(router, "")

	if res.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", res.Code)
	}

	var payload struct {
		Caller string `json:"caller"`
		Calls  []struct {
			RecordingSid            string
			TranscriptionTextTwilio *string
			TranscriptionTextAws    *string
		} `json:"calls"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &payload); err != nil {
		t.Fatal("Response is not valid JSON:", err)
	}

	if payload.Caller != "972501234567" {
		t.Errorf("caller = %q", payload.Caller)
	}
	if len(payload.Calls) != 1 {
		t.Fatalf("Expected one call, got %d", len(payload.Calls))
	}
	call := payload.Calls[0]
	if call.RecordingSid != "RE1" {
		t.Errorf("RecordingSid = %q", call.RecordingSid)
	}
	if call.TranscriptionTextTwilio == nil || *call.TranscriptionTextTwilio != "hello" {
		t.Errorf("TranscriptionTextTwilio = %v", call.TranscriptionTextTwilio)
	}
	if call.TranscriptionTextAws != nil {
		t.Errorf("TranscriptionTextAws should serialize as null, got %v", *call.TranscriptionTextAws)
	}
}

func TestListCallsEmptyIsNotAnError(t *testing.T) {
	router := listingRouter(&stubListing{calls: []domain.AugmentedCallDetails{}})

	res := getCalls(router, "")

	if res.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", res.Code)
	}
	if !strings.Contains(res.Body.String(), `"calls":[]`) {
		t.Errorf("Expected an empty calls array, got %s", res.Body.String())
	}
}

func TestListCallsHTML(t *testing.T) {
	router := listingRouter(&stubListing{calls: sampleCalls()})

	res := getCalls(router, "text/html")

	if res.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", res.Code)
	}
	if contentType := res.Header().Get("Content-Type"); !strings.HasPrefix(contentType, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", contentType)
	}

	body := res.Body.String()
	for _, want := range []string{
		"Calls from +972501234567",
		"<table",
		"<td>RE1</td>",
		"<td>hello</td>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("HTML body missing %q", want)
		}
	}
}
