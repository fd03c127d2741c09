package dairy

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/dairydesk/internal/session"
)

const defaultTimeout = 15 * time.Second

// Client talks to the farm backend's JSON API on behalf of one session.
// It is deliberately dumb: no caching, no automatic retries. Every failed
// call surfaces as a *Error and retrying is the caller's decision.
type Client struct {
	httpClient *resty.Client
	sess       session.Session
}

// New builds a client bound to the given session. The bearer token is
// attached per request rather than on the shared resty client so an empty
// token can short-circuit locally instead of hitting the network.
func New(baseURL string, sess session.Session) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(defaultTimeout)

	return &Client{
		httpClient: restyClient,
		sess:       sess,
	}
}

// Session returns the session this client acts for.
func (c *Client) Session() session.Session {
	return c.sess
}

// request prepares an authenticated request, failing locally when the
// session carries no token (no network call is made in that case).
func (c *Client) request(ctx context.Context) (*resty.Request, error) {
	if !c.sess.Authenticated() {
		return nil, notAuthenticatedError()
	}

	return c.httpClient.R().
		SetContext(ctx).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", c.sess.Token)), nil
}

// loginResponse mirrors the token endpoint's success payload.
type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID       int          `json:"id"`
		Username string       `json:"username"`
		Role     session.Role `json:"role"`
	} `json:"user"`
}

// Login exchanges credentials for a session. It is the one operation that
// runs without a token.
func Login(ctx context.Context, baseURL, username, password string) (session.Session, error) {
	httpClient := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(defaultTimeout)

	result := new(loginResponse)
	apiErr := map[string]any{}

	resp, err := httpClient.R().
		SetContext(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(result).
		SetError(&apiErr).
		Post("/api/auth/login/")
	if err != nil {
		return session.Session{}, &Error{Kind: KindTransport, Message: fmt.Sprintf("login request failed: %v", err)}
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized, resp.StatusCode() == http.StatusBadRequest:
		return session.Session{}, &Error{Kind: KindAuth, Status: resp.StatusCode(), Message: "invalid username or password"}
	case resp.StatusCode() >= http.StatusBadRequest:
		return session.Session{}, &Error{Kind: KindTransport, Status: resp.StatusCode(), Message: fmt.Sprintf("login failed with status %d", resp.StatusCode())}
	}

	return session.Session{
		UserID:   result.User.ID,
		Username: result.User.Username,
		Role:     result.User.Role,
		Token:    result.Token,
	}, nil
}
