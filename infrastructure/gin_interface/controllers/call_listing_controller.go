package controllers

import (
	"bytes"
	"github.com/gin-gonic/gin"
	"github.com/mengeshaster/transcriber-twilio/application/ports/inbound"
	"github.com/mengeshaster/transcriber-twilio/application/ports/outbound"
	"github.com/mengeshaster/transcriber-twilio/domain"
	"github.com/mengeshaster/transcriber-twilio/infrastructure/gin_interface/dto"
	"html/template"
	"net/http"
)

// callListingTemplate renders the same joined records the JSON branch
// returns; both derive from a single CallListingPort.List call.
var callListingTemplate = template.Must(template.New("calls").Parse(`<html>
<h1>Calls from +{{.Caller}}</h1>
<div>
<table border="1">
<tr><th>Caller</th><th>Time started</th><th>Recording SID</th><th>Call SID</th><th>MP3 Link</th><th>Transcription (Twilio)</th><th>Transcription (AWS)</th></tr>
{{range .Calls}}<tr><td>{{.Caller}}</td><td>{{.RecordingStartTime}}</td><td>{{.RecordingSid}}</td><td>{{.CallSid}}</td><td>{{.Mp3PathTwilio}}</td><td>{{if .TranscriptionTextTwilio}}{{.TranscriptionTextTwilio}}{{end}}</td><td>{{if .TranscriptionTextAws}}{{.TranscriptionTextAws}}{{end}}</td></tr>
{{end}}</table>
</div>
</html>
`))

type CallListingController interface {
	ListCalls(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type callListingController struct {
	logger  outbound.LoggerPort
	listing inbound.CallListingPort
}

func NewCallListingController(
	logger outbound.LoggerPort,
	listing inbound.CallListingPort,
) CallListingController {
	return &callListingController{
		logger:  logger,
		listing: listing,
	}
}

func (l *callListingController) ListCalls(c *gin.Context) {
	caller := c.Param("caller")

	calls, err := l.listing.List(c.Request.Context(), caller)
	if err != nil {
		l.logger.Error(err, "Failed to list calls")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML {
		l.renderHTML(c, caller, calls)
		return
	}

	c.JSON(http.StatusOK, dto.CallListingResponse{
		Caller: caller,
		Calls:  calls,
	})
}

func (l *callListingController) RegisterRoutes(g *gin.Engine) {
	g.GET("/calls/:caller", l.ListCalls)
}

func (l *callListingController) renderHTML(c *gin.Context, caller string, calls []domain.AugmentedCallDetails) {
	var buf bytes.Buffer
	err := callListingTemplate.Execute(&buf, dto.CallListingResponse{
		Caller: caller,
		Calls:  calls,
	})
	if err != nil {
		l.logger.Error(err, "Failed to render call listing")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
