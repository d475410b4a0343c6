package targrep

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/Jeffail/gabs"

	"github.com/sb25/REST-Web-Services-interaction/models"
	e "github.com/sb25/REST-Web-Services-interaction/models/errors"
)

type (
	// Client issues authenticated JSON requests against the
	// targeting repository's web services.
	Client struct {
		baseUrl    string
		username   string
		password   string
		httpClient *http.Client
	}
)

func NewClient(cfg *models.Config) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.Repository.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		baseUrl:  strings.TrimRight(cfg.Repository.Url, "/"),
		username: cfg.Repository.Username,
		password: cfg.Repository.Password,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Repository.Timeout,
		},
	}
}

func (c *Client) BaseUrl() string {
	return c.baseUrl
}

func (c *Client) Get(ctx context.Context, path string, params url.Values) (*gabs.Container, error) {
	return c.Request(ctx, http.MethodGet, path, params, nil)
}

func (c *Client) Post(ctx context.Context, path string, payload interface{}) (*gabs.Container, error) {
	return c.Request(ctx, http.MethodPost, path, nil, payload)
}

func (c *Client) Put(ctx context.Context, path string, payload interface{}) (*gabs.Container, error) {
	return c.Request(ctx, http.MethodPut, path, nil, payload)
}

func (c *Client) Delete(ctx context.Context, path string) (*gabs.Container, error) {
	return c.Request(ctx, http.MethodDelete, path, nil, nil)
}

// Request performs a single call against the repository and parses the
// JSON response. Params are only sent for GET, payloads only for POST and
// PUT. An empty success body yields a nil container.
func (c *Client) Request(ctx context.Context, method string, path string, params url.Values, payload interface{}) (*gabs.Container, error) {
	method = strings.ToUpper(method)
	requestUrl := c.requestUrl(method, path, params)

	var body io.Reader
	switch method {
	case http.MethodGet:
	case http.MethodPost, http.MethodPut:
		data, marshallErr := json.Marshal(payload)
		if marshallErr != nil {
			return nil, communicationError(method, requestUrl, 0, marshallErr)
		}
		body = bytes.NewReader(data)
	case http.MethodDelete:
	default:
		return nil, fmt.Errorf("unsupported repository method %q", method)
	}

	r, reqErr := http.NewRequestWithContext(ctx, method, requestUrl, body)
	if reqErr != nil {
		return nil, communicationError(method, requestUrl, 0, reqErr)
	}

	if c.username != "" && c.password != "" {
		r.SetBasicAuth(c.username, c.password)
	}
	r.Header.Add("Accept", "application/json")
	if body != nil {
		r.Header.Add("Content-Type", "application/json")
	}

	slog.Debug("repository request", "method", method, "url", requestUrl)

	// perform request
	resp, respErr := c.httpClient.Do(r)
	if respErr != nil {
		return nil, communicationError(method, requestUrl, 0, respErr)
	}
	defer resp.Body.Close()

	responseBody, bodyErr := io.ReadAll(resp.Body)
	if bodyErr != nil {
		return nil, communicationError(method, requestUrl, resp.StatusCode, bodyErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := strings.TrimSpace(string(responseBody))
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return nil, &e.RepositoryCommunicationError{
			Method:     method,
			Url:        requestUrl,
			StatusCode: resp.StatusCode,
			Message:    message,
		}
	}

	slog.Debug("repository response", "method", method, "url", requestUrl, "status", resp.StatusCode)

	if len(bytes.TrimSpace(responseBody)) == 0 {
		return nil, nil
	}

	jsonParsed, parseErr := gabs.ParseJSON(responseBody)
	if parseErr != nil {
		return nil, communicationError(method, requestUrl, resp.StatusCode, parseErr)
	}

	return jsonParsed, nil
}

// requestUrl joins path onto the base url. Params only apply to GET.
func (c *Client) requestUrl(method string, path string, params url.Values) string {
	requestUrl := fmt.Sprintf("%s/%s", c.baseUrl, strings.TrimLeft(path, "/"))
	if strings.EqualFold(method, http.MethodGet) && len(params) > 0 {
		requestUrl = fmt.Sprintf("%s?%s", requestUrl, params.Encode())
	}
	return requestUrl
}

func communicationError(method string, requestUrl string, statusCode int, err error) error {
	return &e.RepositoryCommunicationError{
		Method:     method,
		Url:        requestUrl,
		StatusCode: statusCode,
		Message:    err.Error(),
		Err:        err,
	}
}
