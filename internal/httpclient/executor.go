package httpclient

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptrace"
	"net/url"
	"strings"
	"time"

	"github.com/unkn0wn-root/restpad/internal/errdef"
	"github.com/unkn0wn-root/restpad/internal/nettrace"
	"github.com/unkn0wn-root/restpad/internal/request"
)

type Options struct {
	// Timeout caps the whole exchange. Zero means wait indefinitely.
	Timeout            time.Duration
	FollowRedirects    bool
	InsecureSkipVerify bool
	ProxyURL           string
}

type Client struct {
	jar http.CookieJar
}

func NewClient() *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{jar: jar}
}

// Response is the frozen outcome of one exchange. Duration brackets the
// transport call only; reading the body is timed separately on the
// timeline's transfer phase.
type Response struct {
	Status       string
	StatusCode   int
	Proto        string
	Headers      http.Header
	Body         []byte
	Duration     time.Duration
	EffectiveURL string
	Plan         request.Plan
	Timeline     *nettrace.Timeline
}

// ElapsedMS reports the headline duration rounded to the nearest whole
// millisecond.
func (r *Response) ElapsedMS() int64 {
	return r.Duration.Round(time.Millisecond).Milliseconds()
}

// Execute performs the planned request. On transport or read errors the
// returned response still carries the duration and timeline so the failure
// view can show how long the attempt took.
func (c *Client) Execute(ctx context.Context, plan request.Plan, opts Options) (*Response, error) {
	var bodyReader io.Reader
	if plan.HasBody() {
		bodyReader = strings.NewReader(plan.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, plan.Method, plan.URL, bodyReader)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeHTTP, err, "build request")
	}

	for name, values := range plan.Headers {
		for _, value := range values {
			httpReq.Header.Add(name, value)
		}
	}

	trace := nettrace.NewCollector()
	httpReq = httpReq.WithContext(httptrace.WithClientTrace(httpReq.Context(), trace.ClientTrace()))

	client, err := c.buildHTTPClient(opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := client.Do(httpReq)
	duration := time.Since(start)
	if err != nil {
		trace.Complete(time.Now())
		return &Response{Plan: plan, Duration: duration, Timeline: trace.Timeline()},
			errdef.Wrap(errdef.CodeHTTP, err, "perform request")
	}
	defer resp.Body.Close()

	trace.Begin(nettrace.PhaseTransfer, time.Now())
	body, err := io.ReadAll(resp.Body)
	trace.End(nettrace.PhaseTransfer, time.Now(), err)
	trace.Complete(time.Now())
	if err != nil {
		return &Response{Plan: plan, Duration: duration, Timeline: trace.Timeline()},
			errdef.Wrap(errdef.CodeHTTP, err, "read response body")
	}

	response := &Response{
		Status:       resp.Status,
		StatusCode:   resp.StatusCode,
		Proto:        resp.Proto,
		Headers:      resp.Header.Clone(),
		Body:         body,
		Duration:     duration,
		EffectiveURL: resp.Request.URL.String(),
		Plan:         plan,
		Timeline:     trace.Timeline(),
	}

	return response, nil
}

func (c *Client) buildHTTPClient(opts Options) (*http.Client, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	if opts.ProxyURL != "" {
		proxyURL, err := url.Parse(opts.ProxyURL)
		if err != nil {
			return nil, errdef.Wrap(errdef.CodeHTTP, err, "parse proxy url")
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	if opts.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // nolint:gosec
	}

	client := &http.Client{Transport: transport, Jar: c.jar}
	if opts.Timeout > 0 {
		client.Timeout = opts.Timeout
	}
	if !opts.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return client, nil
}
