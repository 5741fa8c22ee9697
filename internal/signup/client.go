package signup

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/rainwise/web-go/pkg/http/client"
)

const (
	SignupPath    = "/auth/signup"
	LoginRedirect = "/login"
)

type Poster interface {
	PostJSON(ctx context.Context, path string, body interface{}) (*client.Response, error)
}

// Client submits validated forms to the authentication service.
type Client struct {
	poster Poster
}

func NewClient(poster Poster) *Client {
	return &Client{poster: poster}
}

// NewHTTPClient builds a Client on the shared HTTP client. POST requests
// from it are never retried.
func NewHTTPClient(opts client.Options) *Client {
	return NewClient(client.New(opts))
}

func (c *Client) Submit(ctx context.Context, f Form) (*Result, error) {
	if errs := Validate(f); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	req := f.Request()
	resp, err := c.poster.PostJSON(ctx, SignupPath, req)
	if err != nil {
		log.Warn().Err(err).Str("username", req.Username).Msg("Auth service unreachable")
		return nil, &UnreachableError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		detail := rejectionDetail(resp.Body)
		log.Info().
			Int("status", resp.StatusCode).
			Str("username", req.Username).
			Str("detail", detail).
			Msg("Signup rejected")
		return nil, &RejectedError{Status: resp.StatusCode, Detail: detail}
	}

	var user User
	if err := json.Unmarshal(resp.Body, &user); err != nil {
		// The account exists at this point; the redirect still applies.
		log.Warn().Err(err).Msg("Error decoding signup response")
		return &Result{Redirect: LoginRedirect}, nil
	}

	log.Info().Str("username", user.Username).Int("userId", user.ID).Msg("Signup succeeded")
	return &Result{Redirect: LoginRedirect, User: &user}, nil
}

func rejectionDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return GenericFailureMessage
	}

	// Schema errors carry a list here rather than a message.
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil || detail == "" {
		return GenericFailureMessage
	}
	return detail
}
