package translate

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/penman/pkg/buildinfo"
	"github.com/matzehuels/penman/pkg/errors"
	"github.com/matzehuels/penman/pkg/observability"
)

// DefaultMyMemoryURL is the public MyMemory endpoint.
const DefaultMyMemoryURL = "https://api.mymemory.translated.net/get"

const defaultTimeout = 10 * time.Second

// maxBody bounds how much of a provider response is read.
const maxBody = 1 << 20

// MyMemoryConfig configures [MyMemory].
type MyMemoryConfig struct {
	BaseURL string        // defaults to DefaultMyMemoryURL
	Timeout time.Duration // per-request client timeout, defaults to 10s
	Email   string        // optional "de" parameter for a higher daily quota
}

// MyMemory is a [Provider] backed by the MyMemory translation API.
type MyMemory struct {
	baseURL string
	email   string
	http    *http.Client
}

// NewMyMemory creates a MyMemory provider.
func NewMyMemory(cfg MyMemoryConfig) *MyMemory {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultMyMemoryURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &MyMemory{
		baseURL: cfg.BaseURL,
		email:   cfg.Email,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// Name implements Provider.
func (m *MyMemory) Name() string { return "mymemory" }

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string  `json:"translatedText"`
		Match          float64 `json:"match"`
	} `json:"responseData"`
	ResponseStatus  int    `json:"responseStatus"`
	ResponseDetails string `json:"responseDetails"`
}

// Translate implements Provider.
func (m *MyMemory) Translate(ctx context.Context, text, source, target string) (string, error) {
	u, err := url.Parse(m.baseURL)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "invalid provider url")
	}
	q := u.Query()
	q.Set("q", text)
	q.Set("langpair", source+"|"+target)
	if m.email != "" {
		q.Set("de", m.email)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "build provider request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, u.Host, u.Path)
	start := time.Now()

	resp, err := m.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		if isTimeout(err) {
			return "", &errors.ProviderError{Timeout: true, Err: err}
		}
		return "", &errors.ProviderError{Err: err}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return "", &errors.ProviderError{StatusCode: resp.StatusCode, Detail: http.StatusText(resp.StatusCode)}
	}

	var body myMemoryResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&body); err != nil {
		if isTimeout(err) {
			return "", &errors.ProviderError{Timeout: true, Err: err}
		}
		return "", &errors.ProviderError{Detail: "malformed response", Err: err}
	}

	switch body.ResponseStatus {
	case http.StatusOK:
		return body.ResponseData.TranslatedText, nil
	case http.StatusTooManyRequests:
		return "", &errors.ProviderError{StatusCode: http.StatusTooManyRequests, Detail: body.ResponseDetails}
	default:
		return "", &errors.ProviderError{Detail: body.ResponseDetails}
	}
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return stderrors.As(err, &ne) && ne.Timeout()
}
