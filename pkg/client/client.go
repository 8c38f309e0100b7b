// Package client is a Go client for the penman HTTP API.
//
//	c := client.New("http://localhost:5000")
//	token, err := c.Login(ctx, "alice", "secret")
//	c = c.WithToken(token)
//	me, err := c.Me(ctx)
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/penman/pkg/buildinfo"
	"github.com/matzehuels/penman/pkg/httputil"
	"github.com/matzehuels/penman/pkg/languages"
	"github.com/matzehuels/penman/pkg/styles"
	"github.com/matzehuels/penman/pkg/translate"
)

const httpTimeout = 30 * time.Second

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
	Details    string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s (status %d: %s)", e.Message, e.StatusCode, e.Details)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// Client talks to one penman server.
type Client struct {
	baseURL string
	http    *http.Client
	headers map[string]string
	policy  httputil.Policy
}

// New creates a Client for the server at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: httpTimeout},
		headers: map[string]string{"User-Agent": buildinfo.UserAgent()},
		policy:  httputil.Policy{Attempts: 1},
	}
}

// BaseURL returns the server address.
func (c *Client) BaseURL() string { return c.baseURL }

// WithToken returns a copy of c that sends token as a bearer credential.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.headers = make(map[string]string, len(c.headers)+1)
	for k, v := range c.headers {
		cp.headers[k] = v
	}
	cp.headers["Authorization"] = "Bearer " + token
	return &cp
}

// WithRetry returns a copy of c that retries network failures and 5xx
// answers for idempotent requests under p.
func (c *Client) WithRetry(p httputil.Policy) *Client {
	cp := *c
	cp.policy = p
	return &cp
}

// WithHTTPClient returns a copy of c using hc.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	cp := *c
	cp.http = hc
	return &cp
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.postJSON(ctx, "/api/register", credentials{username, password}, nil)
}

// Login returns a bearer token for the credentials.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.postJSON(ctx, "/api/login", credentials{username, password}, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Me describes the authenticated user.
type Me struct {
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Me returns the identity behind the client's token.
func (c *Client) Me(ctx context.Context) (*Me, error) {
	var me Me
	if err := c.getJSON(ctx, "/api/me", &me); err != nil {
		return nil, err
	}
	return &me, nil
}

// Translate translates req on the server.
func (c *Client) Translate(ctx context.Context, req translate.Request) (*translate.Result, error) {
	var res translate.Result
	if err := c.postJSON(ctx, "/api/translate", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Styles lists the server's handwriting styles.
func (c *Client) Styles(ctx context.Context) ([]styles.Descriptor, error) {
	var out []styles.Descriptor
	return out, c.getJSON(ctx, "/api/styles", &out)
}

// Languages lists the server's offered languages.
func (c *Client) Languages(ctx context.Context) ([]languages.Language, error) {
	var out []languages.Language
	return out, c.getJSON(ctx, "/api/languages", &out)
}

// Health is the server's liveness answer.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.getJSON(ctx, "/healthz", &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// RenderRequest is a server-side render job.
type RenderRequest struct {
	Text     string
	Font     []byte // optional TTF/OTF data; the server's configured font is used if empty
	FontName string
	Format   string  // "png" or "pdf"
	Width    int     // optional canvas width
	Size     float64 // optional font size in pixels
}

// Render renders text on the server and returns the encoded document.
// A nil slice with a nil error means there was nothing to render.
func (c *Client) Render(ctx context.Context, r RenderRequest) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("text", r.Text)
	mw.WriteField("format", r.Format)
	if r.Width > 0 {
		mw.WriteField("width", strconv.Itoa(r.Width))
	}
	if r.Size > 0 {
		mw.WriteField("size", strconv.FormatFloat(r.Size, 'f', -1, 64))
	}
	if len(r.Font) > 0 {
		name := r.FontName
		if name == "" {
			name = "font.ttf"
		}
		fw, err := mw.CreateFormFile("font", name)
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write(r.Font); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/render", mw.FormDataContentType(), body.Bytes())
	if err != nil {
		return nil, unwrap(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	return io.ReadAll(resp.Body)
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	var resp *http.Response
	err := c.policy.Do(ctx, func(int) error {
		var err error
		resp, err = c.do(ctx, http.MethodGet, path, "", nil)
		return err
	})
	if err != nil {
		return unwrap(err)
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(v)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, http.MethodPost, path, "application/json", data)
	if err != nil {
		return unwrap(err)
	}
	defer resp.Body.Close()
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, httputil.Retryable(fmt.Errorf("%s %s: %w", method, path, err))
	}
	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	if resp.StatusCode >= 500 {
		return httputil.Retryable(apiErr)
	}
	return apiErr
}

func unwrap(err error) error {
	if re, ok := err.(*httputil.RetryableError); ok {
		return re.Err
	}
	return err
}
