package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/casualjim/apacai/pkg/jsonx"
	"github.com/casualjim/apacai/pkg/slogx"
	"github.com/casualjim/apacai/pkg/uuidx"
	"github.com/fogfish/opts"
	"github.com/go-openapi/swag"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	headerOrganization = "APACAI-Organization"
	headerVersion      = "APACAI-Version"
	headerProcessingMS = "APACAI-Processing-Ms"
	headerRequestID    = "X-Request-Id"
	userAgent          = "apacai-go"
)

var _ Requestor = (*HTTPRequestor)(nil)

// HTTPRequestor talks to the API over HTTP. Connection handling, retries and
// timeouts are delegated to the openai-go client.
type HTTPRequestor struct {
	cfg        Config
	apiKey     string
	client     *openai.Client
	logger     *slog.Logger
	httpClient *http.Client
	extra      []option.RequestOption
}

var (
	// WithHTTPClient sets the *http.Client used for requests.
	WithHTTPClient = opts.ForName[HTTPRequestor, *http.Client]("httpClient")

	// WithLogger overrides the logger derived from the configuration.
	WithLogger = opts.ForName[HTTPRequestor, *slog.Logger]("logger")
)

// WithRequestOptions appends raw openai-go request options to every request.
func WithRequestOptions(options ...option.RequestOption) opts.Option[HTTPRequestor] {
	return opts.Type[HTTPRequestor](func(r *HTTPRequestor) error {
		r.extra = append(r.extra, options...)
		return nil
	})
}

// NewHTTP creates an HTTP requestor for cfg. It fails when no API key can be resolved.
func NewHTTP(cfg Config, options ...opts.Option[HTTPRequestor]) (*HTTPRequestor, error) {
	cfg = cfg.WithDefaults()
	key, err := cfg.ResolveAPIKey()
	if err != nil {
		return nil, err
	}

	r := &HTTPRequestor{cfg: cfg, apiKey: key}
	if err := opts.Apply(r, options); err != nil {
		return nil, err
	}
	if r.logger == nil {
		r.logger = cfg.Logger()
	}

	base := cfg.APIBase
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	authName, authValue := cfg.APIType.AuthHeader(key)
	clientOpts := []option.RequestOption{
		option.WithBaseURL(base),
		option.WithMaxRetries(cfg.MaxRetries),
		option.WithHeader("User-Agent", userAgent),
	}
	if authName != "Authorization" {
		clientOpts = append(clientOpts, option.WithHeaderDel("Authorization"))
	}
	clientOpts = append(clientOpts, option.WithHeader(authName, authValue))
	if cfg.Organization != "" {
		clientOpts = append(clientOpts, option.WithHeader(headerOrganization, cfg.Organization))
	}
	if cfg.APIVersion != "" {
		if cfg.APIType.IsAzure() {
			clientOpts = append(clientOpts, option.WithQuery("api-version", cfg.APIVersion))
		} else {
			clientOpts = append(clientOpts, option.WithHeader(headerVersion, cfg.APIVersion))
		}
	}
	if cfg.Timeout > 0 {
		clientOpts = append(clientOpts, option.WithRequestTimeout(cfg.Timeout))
	}
	if r.httpClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(r.httpClient))
	}
	clientOpts = append(clientOpts, r.extra...)

	r.client = openai.NewClient(clientOpts...)
	return r, nil
}

// HTTPFactory returns a Factory that builds HTTP requestors with the given options.
func HTTPFactory(options ...opts.Option[HTTPRequestor]) Factory {
	return func(cfg Config) (Requestor, error) {
		return NewHTTP(cfg, options...)
	}
}

// Request performs call. Streaming calls return before the body is read.
func (r *HTTPRequestor) Request(ctx context.Context, call Call) (Result, error) {
	method := strings.ToUpper(call.Method)
	if method == "" {
		method = http.MethodGet
	}
	requestID := call.RequestID
	if requestID == "" {
		requestID = uuidx.NewRequestID()
	}

	reqOpts, err := r.callOptions(method, requestID, call)
	if err != nil {
		return Result{}, err
	}

	logger := r.logger.With(slogx.RequestID(requestID))
	logger.DebugContext(ctx, "request to apacai api", slog.String("method", method), slog.String("path", call.Path), slog.Bool("stream", call.Stream), slogx.Stringer("api_type", r.cfg.APIType))

	var raw *http.Response
	reqOpts = append(reqOpts, option.WithResponseInto(&raw))
	path := strings.TrimPrefix(call.Path, "/")
	if err := r.client.Execute(ctx, method, path, nil, &raw, reqOpts...); err != nil {
		return Result{}, wrapError(err, requestID)
	}
	if raw == nil {
		return Result{}, &APIError{Message: "empty response", RequestID: requestID}
	}

	envelope := Response{
		Organization: raw.Header.Get(headerOrganization),
		ResponseMS:   processingMS(raw.Header),
		RequestID:    requestID,
	}

	if call.Stream && strings.HasPrefix(raw.Header.Get("Content-Type"), "text/event-stream") {
		logger.DebugContext(ctx, "apacai api stream opened", slog.Int("status", raw.StatusCode))
		return Result{Chunks: DecodeStream(raw, envelope), Stream: true, APIKey: r.apiKey}, nil
	}

	defer raw.Body.Close()
	body, err := io.ReadAll(raw.Body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read response body: %w", err)
	}
	logger.DebugContext(ctx, "apacai api response", slog.Int("status", raw.StatusCode), slogx.ByteString("body", body))

	if len(strings.TrimSpace(string(body))) > 0 {
		data, err := jsonx.Decode(body)
		if err != nil {
			return Result{}, &APIError{StatusCode: raw.StatusCode, Message: "invalid response body", RequestID: requestID, Err: err}
		}
		envelope.Data = data
	}
	return Result{Response: &envelope, APIKey: r.apiKey}, nil
}

func (r *HTTPRequestor) callOptions(method, requestID string, call Call) ([]option.RequestOption, error) {
	reqOpts := []option.RequestOption{option.WithHeader(headerRequestID, requestID)}
	for k, v := range call.Headers {
		reqOpts = append(reqOpts, option.WithHeader(k, v))
	}
	if call.Stream {
		reqOpts = append(reqOpts, option.WithHeader("Accept", "text/event-stream"))
	}
	if call.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(call.Timeout))
	}
	if call.Params == nil {
		return reqOpts, nil
	}

	switch method {
	case http.MethodGet, http.MethodDelete:
		for pair := call.Params.Oldest(); pair != nil; pair = pair.Next() {
			if pair.Value == nil {
				continue
			}
			reqOpts = append(reqOpts, option.WithQuery(pair.Key, fmt.Sprint(pair.Value)))
		}
	default:
		body, err := jsonx.Encode(call.Params)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request params: %w", err)
		}
		reqOpts = append(reqOpts, option.WithRequestBody("application/json", body))
	}
	return reqOpts, nil
}

func processingMS(h http.Header) *int {
	v := h.Get(headerProcessingMS)
	if v == "" {
		return nil
	}
	ms, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil
	}
	return swag.Int(ms)
}

func wrapError(err error, requestID string) error {
	var oaiErr *openai.Error
	if errors.As(err, &oaiErr) {
		return &APIError{
			StatusCode: oaiErr.StatusCode,
			Message:    oaiErr.Message,
			RequestID:  requestID,
			Err:        err,
		}
	}
	return &APIError{RequestID: requestID, Err: err}
}
