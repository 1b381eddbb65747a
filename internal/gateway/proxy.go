package gateway

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"shareit/internal/pkg/response"
)

// Proxy forwards validated requests to the backend service, relaying the
// method, path, query string, body and identity header unchanged.
type Proxy struct {
	serverURL *url.URL
	client    *http.Client
	log       zerolog.Logger
}

func NewProxy(serverURL string, log zerolog.Logger) (*Proxy, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, err
	}
	return &Proxy{
		serverURL: u,
		client:    &http.Client{Timeout: 30 * time.Second},
		log:       log,
	}, nil
}

func (p *Proxy) Forward(c *gin.Context) {
	target := *p.serverURL
	target.Path = strings.TrimRight(target.Path, "/") + c.Request.URL.Path
	target.RawQuery = c.Request.URL.RawQuery

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, target.String(), c.Request.Body)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}
	req.Header = c.Request.Header.Clone()
	req.Header.Del("Connection")

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("backend unavailable")
		response.Error(c, http.StatusBadGateway, "BACKEND_UNAVAILABLE", "Backend service unavailable")
		return
	}
	defer resp.Body.Close()

	for key, values := range resp.Header {
		for _, v := range values {
			c.Writer.Header().Add(key, v)
		}
	}
	c.Status(resp.StatusCode)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		p.log.Warn().Err(err).Msg("copying backend response interrupted")
	}
}
