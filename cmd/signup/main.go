package main

import (
	"context"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/rainwise/web-go/internal/api"
	"github.com/rainwise/web-go/internal/config"
	"github.com/rainwise/web-go/internal/handler"
	"github.com/rainwise/web-go/internal/signup"
	"github.com/rainwise/web-go/pkg/http/client"
)

var (
	lambdaStart   = lambda.Start // Allow mocking of lambda.Start in tests
	signupHandler *handler.SignupHandler
	setupOnce     sync.Once
)

func initializeService() {
	setupOnce.Do(func() {
		cfg := config.LoadFromEnv()
		cfg.InitializeLogging()

		signupHandler = handler.NewSignupHandler(signup.NewHTTPClient(client.Options{
			BaseURL: cfg.AuthBaseURL,
			Timeout: cfg.HTTPTimeout,
		}))
	})
}

func init() {
	initializeService()
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if signupHandler == nil {
		return api.Error("Service not initialized", http.StatusInternalServerError)
	}
	return signupHandler.HandleRequest(ctx, request)
}

func main() {
	lambdaStart(handleRequest)
}
