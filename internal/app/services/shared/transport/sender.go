// Package transport moves requests to the records backend. The HTTP sender
// does one attempt; retry behavior is layered on top so it can be exercised
// without a network.
package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"medirec-service/internal/pkg/constvars"
	"medirec-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type Request struct {
	Method string
	URL    string
	Body   []byte
	Header map[string]string
}

type Response struct {
	StatusCode int
	Body       []byte
}

// Sender delivers a single request attempt.
type Sender interface {
	Send(ctx context.Context, request *Request) (*Response, error)
}

type HTTPSender struct {
	Client *http.Client
	Logger *zap.Logger
}

func NewHTTPSender(logger *zap.Logger, timeout time.Duration) *HTTPSender {
	return &HTTPSender{
		Client: &http.Client{Timeout: timeout},
		Logger: logger,
	}
}

func (s *HTTPSender) Send(ctx context.Context, request *Request) (*Response, error) {
	var bodyReader io.Reader
	if len(request.Body) > 0 {
		bodyReader = bytes.NewReader(request.Body)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, request.Method, request.URL, bodyReader)
	if err != nil {
		s.Logger.Error("transport.HTTPSender.Send failed to build request",
			zap.String(constvars.LoggingBackendURLKey, request.URL),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	httpRequest.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	for key, value := range request.Header {
		httpRequest.Header.Set(key, value)
	}

	httpResponse, err := s.Client.Do(httpRequest)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer httpResponse.Body.Close()

	responseBody, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}

	return &Response{
		StatusCode: httpResponse.StatusCode,
		Body:       responseBody,
	}, nil
}
