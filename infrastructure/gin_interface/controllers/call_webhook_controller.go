package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/mengeshaster/transcriber-twilio/application/ports/inbound"
	"github.com/mengeshaster/transcriber-twilio/application/ports/outbound"
	"github.com/mengeshaster/transcriber-twilio/application/services"
	"github.com/mengeshaster/transcriber-twilio/domain"
	"net/http"
	"net/url"
)

const twimlContentType = "text/xml; charset=utf-8"

type CallWebhookController interface {
	CallIncoming(c *gin.Context)
	RecordComplete(c *gin.Context)
	TranscriptionComplete(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type callWebhookController struct {
	logger       outbound.LoggerPort
	orchestrator inbound.CallEventOrchestratorPort
}

func NewCallWebhookController(
	logger outbound.LoggerPort,
	orchestrator inbound.CallEventOrchestratorPort,
) CallWebhookController {
	return &callWebhookController{
		logger:       logger,
		orchestrator: orchestrator,
	}
}

func (w *callWebhookController) CallIncoming(c *gin.Context) {
	form, ok := w.parseForm(c)
	if !ok {
		return
	}

	markup, err := w.orchestrator.HandleCallStarted(c.Request.Context(), domain.NewCallEvent(form))
	if err != nil {
		w.abort(c, err)
		return
	}

	c.Data(http.StatusOK, twimlContentType, []byte(markup))
}

func (w *callWebhookController) RecordComplete(c *gin.Context) {
	form, ok := w.parseForm(c)
	if !ok {
		return
	}

	recordingSid, err := w.orchestrator.HandleRecordingComplete(c.Request.Context(), domain.NewRecordingEvent(form))
	if err != nil {
		w.abort(c, err)
		return
	}

	c.String(http.StatusOK, recordingSid)
}

func (w *callWebhookController) TranscriptionComplete(c *gin.Context) {
	form, ok := w.parseForm(c)
	if !ok {
		return
	}

	recordingSid, err := w.orchestrator.HandleTranscriptionComplete(c.Request.Context(), domain.NewTranscriptionEvent(form))
	if err != nil {
		w.abort(c, err)
		return
	}

	c.String(http.StatusOK, recordingSid)
}

func (w *callWebhookController) RegisterRoutes(g *gin.Engine) {
	g.POST("/call_incoming", w.CallIncoming)
	g.POST("/record_complete", w.RecordComplete)
	g.POST("/twilio_transcription_complete", w.TranscriptionComplete)
}

func (w *callWebhookController) parseForm(c *gin.Context) (url.Values, bool) {
	if err := c.Request.ParseForm(); err != nil {
		w.logger.Error(err, "Failed to parse webhook form")
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed form body"})
		return nil, false
	}
	return c.Request.PostForm, true
}

func (w *callWebhookController) abort(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if services.IsClientError(err) {
		status = http.StatusBadRequest
	} else {
		w.logger.Error(err, "Webhook handling failed")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
