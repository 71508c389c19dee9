package common

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

var statusMessages = map[int]string{
	http.StatusOK:                  "OK",
	http.StatusBadRequest:          "Bad request",
	http.StatusUnauthorized:        "Unauthorized",
	http.StatusForbidden:           "Forbidden",
	http.StatusNotFound:            "Data not found",
	http.StatusMethodNotAllowed:    "Method not allowed",
	http.StatusTooManyRequests:     "Rate limit exceeded",
	http.StatusInternalServerError: "Internal server error",
	http.StatusBadGateway:          "Bad gateway",
	http.StatusServiceUnavailable:  "Service unavailable",
	http.StatusGatewayTimeout:      "Gateway timeout",
}

// Proxy performs GET requests against an external API.
// Every request carries a timeout so an unresponsive provider
// cannot stall the caller indefinitely
type Proxy struct {
	client http.Client
}

func NewProxy(timeout time.Duration) Proxy {
	return Proxy{client: http.Client{Timeout: timeout}}
}

// Get requests the provided url and returns the status code together
// with the response body. A non-nil error means the request never
// produced a response at all
func (proxy *Proxy) Get(ctx context.Context, url string) (int, []byte, error) {

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("could not create request: %w", err)
	}

	res, err := proxy.client.Do(request)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()

	if message, ok := statusMessages[res.StatusCode]; ok {
		log.Debug().Msg(fmt.Sprintf("%d %s", res.StatusCode, message))
	} else {
		log.Debug().Msg(fmt.Sprintf("Status code of request (%d) is not understood", res.StatusCode))
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, fmt.Errorf("could not read response body: %w", err)
	}

	return res.StatusCode, body, nil
}
