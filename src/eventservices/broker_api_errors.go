package eventservices

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jiaming2012/broker-client/src/models"
)

// classifyResponse maps a non-200 response onto the error taxonomy.
func classifyResponse(path string, status int, body []byte) *models.ClientError {
	err := fmt.Errorf("%s: unexpected status %d", path, status)

	switch {
	case status == http.StatusUnprocessableEntity:
		return models.NewClientError(models.ErrorKindValidation, status, firstValidationMessage(body), err)
	case status == http.StatusBadRequest && path == LoginPath:
		return models.NewClientError(models.ErrorKindAuthentication, status, errorMessage(body), err)
	case status == http.StatusBadRequest:
		return models.NewClientError(models.ErrorKindValidation, status, errorMessage(body), err)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return models.NewClientError(models.ErrorKindAuthentication, status, errorMessage(body), err)
	case status >= 500:
		return models.NewClientError(models.ErrorKindServer, status, errorMessage(body), err)
	default:
		return models.NewClientError(models.ErrorKindUnknown, status, "", err)
	}
}

// firstValidationMessage reads the msg of the first entry of a 422 body.
// Both a bare list and the {"level", "message": [...]} envelope are accepted.
func firstValidationMessage(body []byte) string {
	var list []models.ErrorDTO
	if err := json.Unmarshal(body, &list); err == nil {
		if len(list) > 0 {
			return list[0].Msg
		}
		return ""
	}

	var envelope struct {
		Message []models.ErrorDTO `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Message) > 0 {
		return envelope.Message[0].Msg
	}

	return errorMessage(body)
}

// errorMessage reads body.message when it is a string.
func errorMessage(body []byte) string {
	var resp models.ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}

	if msg, ok := resp.Message.(string); ok {
		return msg
	}

	return ""
}
