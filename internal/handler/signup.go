package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/rainwise/web-go/internal/api"
	"github.com/rainwise/web-go/internal/signup"
)

type Submitter interface {
	Submit(ctx context.Context, f signup.Form) (*signup.Result, error)
}

type SignupHandler struct {
	submitter Submitter
}

func NewSignupHandler(submitter Submitter) *SignupHandler {
	return &SignupHandler{submitter: submitter}
}

func (h *SignupHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if request.HTTPMethod != "" && request.HTTPMethod != http.MethodPost {
		return api.Error("Method not allowed", http.StatusMethodNotAllowed)
	}

	var form signup.Form
	if err := json.Unmarshal([]byte(request.Body), &form); err != nil {
		return api.Error("Invalid request body", http.StatusBadRequest)
	}

	result, err := h.submitter.Submit(ctx, form)
	if err != nil {
		status, body := api.SignupFailure(err)
		return api.Status(body, status)
	}

	return api.Success(api.NewSignupResponse(result))
}
