package view

import (
	"html"
	"net/http"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/jiaming2012/broker-client/src/models"
)

// GenericFailureText is shown for any response the client has no specific rendering for.
const GenericFailureText = "something went wrong"

type MessageKind string

const (
	MessageKindSuccess        MessageKind = "success"
	MessageKindValidation     MessageKind = MessageKind(models.ErrorKindValidation)
	MessageKindAuthentication MessageKind = MessageKind(models.ErrorKindAuthentication)
	MessageKindNetwork        MessageKind = MessageKind(models.ErrorKindNetwork)
	MessageKindServer         MessageKind = MessageKind(models.ErrorKindServer)
	MessageKindUnknown        MessageKind = MessageKind(models.ErrorKindUnknown)
)

var defaultTexts = map[models.ErrorKind]string{
	models.ErrorKindValidation:     "please check the form and try again",
	models.ErrorKindAuthentication: "authentication failed",
	models.ErrorKindNetwork:        "could not reach the server",
	models.ErrorKindServer:         "the server failed to handle the request",
	models.ErrorKindUnknown:        GenericFailureText,
}

// Message is the content of a page's message element.
type Message struct {
	Kind MessageKind
	Text string
}

func (m Message) IsZero() bool {
	return m.Kind == "" && m.Text == ""
}

func (m Message) IsError() bool {
	return !m.IsZero() && m.Kind != MessageKindSuccess
}

func SuccessMessage(text string) Message {
	return Message{Kind: MessageKindSuccess, Text: sanitizeText(text)}
}

// MessageFor is the single rendering policy for failures.
func MessageFor(err error) Message {
	if err == nil {
		return Message{}
	}

	clientErr := models.AsClientError(err)

	text := sanitizeText(clientErr.Message)
	if text == "" {
		text = defaultTexts[clientErr.Kind]
	}

	if text == "" {
		text = GenericFailureText
	}

	return Message{Kind: MessageKind(clientErr.Kind), Text: text}
}

// ResponseMessage renders the outcome of a call answered with {message}.
// 200 shows the message, 422 the first validation msg and 400 the error message.
// Any other HTTP status shows GenericFailureText.
func ResponseMessage(result models.Result[models.MessageDTO]) Message {
	if result.IsOk() {
		return SuccessMessage(result.Value.Message)
	}

	switch result.Err.Status {
	case 0, http.StatusBadRequest, http.StatusUnprocessableEntity:
		return MessageFor(result.Err)
	default:
		return Message{Kind: MessageKind(result.Err.Kind), Text: GenericFailureText}
	}
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips any markup from server supplied text and returns plain text.
func sanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})

	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(trimmed)))
}
