// Package client is a Go client for the CareerConnect API. It keeps the
// signed-in user's token in a Session and can follow the status of the
// user's applications with a Tracker.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/careerconnect/careerconnect/database/model"
	"github.com/careerconnect/careerconnect/web/service"

	"github.com/goccy/go-json"
)

// ErrNotLoggedIn is returned by calls that need a token when the session
// has none. No request is sent.
var ErrNotLoggedIn = errors.New("user not authenticated")

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

type Client struct {
	baseURL    string
	session    *Session
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the API at baseURL, e.g. http://localhost:5000.
func New(baseURL string, session *Session, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		session:    session,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) do(ctx context.Context, method, path string, authed bool, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	if authed {
		h := c.session.AuthHeader()
		if h == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set("Authorization", h)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var msg struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &msg) != nil || msg.Message == "" {
			msg.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg.Message}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid response from server: %w", err)
	}
	return nil
}

// Register creates an account. It does not sign in.
func (c *Client) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	var out struct {
		User model.User `json:"user"`
	}
	in := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/users/register", false, in, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Login signs in and stores the token in the session.
func (c *Client) Login(ctx context.Context, email, password string) (*SessionUser, error) {
	var out struct {
		Token string      `json:"token"`
		User  SessionUser `json:"user"`
	}
	in := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/users/login", false, in, &out); err != nil {
		return nil, err
	}
	if err := c.session.Set(out.Token, &out.User); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Logout tells the server and clears the session. The session is cleared
// even when the server cannot be reached.
func (c *Client) Logout(ctx context.Context) error {
	var err error
	if c.session.LoggedIn() {
		err = c.do(ctx, http.MethodPost, "/api/users/logout", true, nil, nil)
	}
	return errors.Join(err, c.session.Clear())
}

func (c *Client) Profile(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, "/api/users/profile", true, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateProfile(ctx context.Context, patch service.UserPatch) (*model.User, error) {
	var out struct {
		User model.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/users/update", true, patch, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// DeleteAccount removes the signed-in user and clears the session.
func (c *Client) DeleteAccount(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/api/users/delete", true, nil, nil); err != nil {
		return err
	}
	return c.session.Clear()
}

func (c *Client) Recommendations(ctx context.Context) (*service.Recommendations, error) {
	var r service.Recommendations
	if err := c.do(ctx, http.MethodGet, "/api/users/recommendations", true, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ForgotPassword requests a reset token for email and returns it.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var out struct {
		ResetToken string `json:"resetToken"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/users/forgot-password", false, map[string]string{"email": email}, &out); err != nil {
		return "", err
	}
	return out.ResetToken, nil
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	path := "/api/users/reset-password/" + url.PathEscape(token)
	return c.do(ctx, http.MethodPost, path, false, map[string]string{"newPassword": newPassword}, nil)
}

func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/api/users/all", true, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) Jobs(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	if err := c.do(ctx, http.MethodGet, "/api/jobs", false, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) Job(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	if err := c.do(ctx, http.MethodGet, "/api/jobs/"+url.PathEscape(id), false, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *Client) CreateJob(ctx context.Context, in service.JobInput) (*model.Job, error) {
	var out struct {
		Job model.Job `json:"job"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/jobs", true, in, &out); err != nil {
		return nil, err
	}
	return &out.Job, nil
}

func (c *Client) UpdateJob(ctx context.Context, id string, patch service.JobPatch) (*model.Job, error) {
	var out struct {
		Job model.Job `json:"job"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/jobs/"+url.PathEscape(id), true, patch, &out); err != nil {
		return nil, err
	}
	return &out.Job, nil
}

func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/jobs/"+url.PathEscape(id), true, nil, nil)
}

func (c *Client) Apply(ctx context.Context, jobID string, in service.ApplyInput) (*model.Application, error) {
	var out struct {
		Application model.Application `json:"application"`
	}
	path := "/api/applications/apply/" + url.PathEscape(jobID)
	if err := c.do(ctx, http.MethodPost, path, true, in, &out); err != nil {
		return nil, err
	}
	return &out.Application, nil
}

// ApplyWithProfile applies using the caller's stored profile as the resume.
func (c *Client) ApplyWithProfile(ctx context.Context, jobID, coverLetter string) (*model.Application, error) {
	user, err := c.Profile(ctx)
	if err != nil {
		return nil, err
	}
	resume, err := json.Marshal(user.Profile)
	if err != nil {
		return nil, err
	}
	return c.Apply(ctx, jobID, service.ApplyInput{Resume: string(resume), CoverLetter: coverLetter})
}

func (c *Client) MyApplications(ctx context.Context) ([]model.Application, error) {
	var out struct {
		Applications []model.Application `json:"applications"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/applications/my", true, nil, &out); err != nil {
		return nil, err
	}
	return out.Applications, nil
}

func (c *Client) AllApplications(ctx context.Context) ([]model.Application, error) {
	var out struct {
		Applications []model.Application `json:"applications"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/applications/admin/all", true, nil, &out); err != nil {
		return nil, err
	}
	return out.Applications, nil
}

func (c *Client) SetApplicationStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.Application, error) {
	var out struct {
		Application model.Application `json:"application"`
	}
	path := "/api/applications/admin/status/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, path, true, map[string]string{"status": string(status)}, &out); err != nil {
		return nil, err
	}
	return &out.Application, nil
}

func (c *Client) DeleteApplication(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/applications/admin/delete/"+url.PathEscape(id), true, nil, nil)
}
