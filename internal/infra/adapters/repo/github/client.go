package repogithub

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/fabien-marty/github-push-release/internal/app/repo"
	gh "github.com/google/go-github/v70/github"
	"github.com/m-mizutani/goerr/v2"
)

const (
	jsonContentType   = "application/json"
	binaryContentType = "application/octet-stream"
)

// BodyBuilder can modify the request (body, content type, content length...) before it is sent.
type BodyBuilder func(req *http.Request) error

// Response is a forge response. Body is the decoded json body if the response
// is a json one (and not a 204), the raw text otherwise.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       any
	Raw        []byte
	isJSON     bool
}

// IsJSON returns true if the response body was decoded as json.
func (r *Response) IsJSON() bool {
	return r.isJSON
}

// Decode decodes the (json) body into v.
func (r *Response) Decode(v any) error {
	if !r.IsJSON() {
		return goerr.New("not a json response", goerr.V("status", r.StatusCode), goerr.V("body", r.Body))
	}
	if err := json.Unmarshal(r.Raw, v); err != nil {
		return goerr.Wrap(err, "can't decode the json response")
	}
	return nil
}

type ClientOptions struct {
	Token      string       // sent as a bearer token on every request
	UserAgent  string       // user-agent header (the calling account)
	BaseURL    string       // api root (default: https://api.github.com/)
	HTTPClient *http.Client // default: http.DefaultClient
}

// Client performs authenticated requests against the forge REST API.
type Client struct {
	gh     *gh.Client
	logger *slog.Logger
}

func NewClient(opts ClientOptions) (*Client, error) {
	client := gh.NewClient(opts.HTTPClient)
	if opts.Token != "" {
		client = client.WithAuthToken(opts.Token)
	}
	if opts.UserAgent != "" {
		client.UserAgent = opts.UserAgent
	}
	if opts.BaseURL != "" {
		baseURL, err := url.Parse(opts.BaseURL)
		if err != nil {
			return nil, goerr.Wrap(err, "bad api base url", goerr.V("url", opts.BaseURL))
		}
		if !strings.HasSuffix(baseURL.Path, "/") {
			baseURL.Path += "/"
		}
		client.BaseURL = baseURL
	}
	return &Client{
		gh:     client,
		logger: slog.With("name", "githubClient"),
	}, nil
}

func setBody(req *http.Request, data []byte, contentType string) {
	req.ContentLength = int64(len(data))
	req.Header.Set("Content-Type", contentType)
	if len(data) == 0 {
		req.Body = http.NoBody
		req.GetBody = func() (io.ReadCloser, error) { return http.NoBody, nil }
		return
	}
	req.Body = io.NopCloser(bytes.NewReader(data))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
}

// JSONBody returns a BodyBuilder setting v (encoded as json) as the request body.
func JSONBody(v any) BodyBuilder {
	return func(req *http.Request) error {
		data, err := json.Marshal(v)
		if err != nil {
			return goerr.Wrap(err, "can't encode the json payload")
		}
		setBody(req, data, jsonContentType)
		return nil
	}
}

// BinaryBody returns a BodyBuilder setting data as the (octet-stream) request body.
func BinaryBody(data []byte) BodyBuilder {
	return func(req *http.Request) error {
		setBody(req, data, binaryContentType)
		return nil
	}
}

func isJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == jsonContentType
}

// Request sends a request to the given url (absolute or relative to the api root).
// A response with a status code >= 400 is returned with a *repo.APIError.
// There is no retry, whatever the status code.
func (c *Client) Request(ctx context.Context, method string, urlStr string, build BodyBuilder) (*Response, error) {
	req, err := c.gh.NewRequest(method, urlStr, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "can't build the request", goerr.V("method", method), goerr.V("url", urlStr))
	}
	req = req.WithContext(ctx)
	if build != nil {
		if err := build(req); err != nil {
			return nil, err
		}
	}
	logger := c.logger.With(slog.String("method", method), slog.String("url", req.URL.String()))
	logger.Debug("sending request...")
	httpResp, err := c.gh.Client().Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "can't send the request", goerr.V("method", method), goerr.V("url", req.URL.String()))
	}
	defer httpResp.Body.Close()
	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "can't read the response body", goerr.V("method", method), goerr.V("url", req.URL.String()))
	}
	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       string(raw),
		Raw:        raw,
	}
	if resp.StatusCode != http.StatusNoContent && isJSONContentType(httpResp.Header.Get("Content-Type")) {
		var body any
		err := json.Unmarshal(raw, &body)
		if err != nil && resp.StatusCode < 400 {
			return nil, goerr.Wrap(err, "can't decode the json response", goerr.V("method", method), goerr.V("url", req.URL.String()))
		}
		if err == nil {
			resp.Body = body
			resp.isJSON = true
		}
	}
	logger.Debug("response received", slog.Int("status", resp.StatusCode))
	if resp.StatusCode >= 400 {
		return resp, &repo.APIError{
			Method:     method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
			Raw:        string(raw),
		}
	}
	return resp, nil
}
