// Package clients talks to the sibling microservices over HTTP.
package clients

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// client is the shared transport of the service clients.
type client struct {
	name    string
	baseURL string
	timeout time.Duration
	log     *logrus.Logger
}

func newClient(name, baseURL string, timeout time.Duration, log *logrus.Logger) client {
	return client{name: name, baseURL: baseURL, timeout: timeout, log: log}
}

func (c client) get(path string, query url.Values, headers map[string]string) ([]byte, error) {
	return c.do(fiber.MethodGet, path, query, headers)
}

func (c client) patch(path string, query url.Values) ([]byte, error) {
	return c.do(fiber.MethodPatch, path, query, nil)
}

// do sends the request and fails on transport errors and non-2xx answers.
func (c client) do(method, path string, query url.Values, headers map[string]string) ([]byte, error) {
	if c.baseURL == "" {
		return nil, errors.Errorf("%s service address not configured", c.name)
	}

	var a *fiber.Agent
	if method == fiber.MethodPatch {
		a = fiber.Patch(c.baseURL + path)
	} else {
		a = fiber.Get(c.baseURL + path)
	}
	if len(query) > 0 {
		a.QueryString(query.Encode())
	}
	for k, v := range headers {
		if v != "" {
			a.Set(k, v)
		}
	}
	if c.timeout > 0 {
		a.Timeout(c.timeout)
	}

	start := time.Now()
	status, body, errs := a.Bytes()
	entry := c.log.WithFields(logrus.Fields{
		"service": c.name,
		"path":    path,
		"status":  status,
		"latency": time.Since(start),
	})
	if len(errs) > 0 {
		entry.WithError(errs[0]).Error("outbound request failed")
		return nil, errors.Wrapf(errs[0], "%s %s", c.name, path)
	}
	entry.Debug("outbound request")
	if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
		return nil, errors.Errorf("%s %s: unexpected status %d", c.name, path, status)
	}
	return body, nil
}
