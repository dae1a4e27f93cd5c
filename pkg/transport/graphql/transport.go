package graphql

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/saturnines/graphql-client/pkg/errors"
)

// transport is the resolved form of a StreamContext
type transport struct {
	method       string
	body         []byte
	headers      []HeaderField
	timeout      time.Duration
	userAgent    string
	ignoreErrors bool
	proxy        *url.URL
	noRedirects  bool
	tls          *tls.Config
}

// needsClient reports whether options require a dedicated *http.Client
func (t *transport) needsClient() bool {
	return t.proxy != nil || t.tls != nil || t.noRedirects
}

// newTransport reads the options this package understands; unknown keys are ignored.
func newTransport(desc StreamContext) (*transport, error) {
	t := &transport{method: http.MethodGet}

	if opts, ok := desc["http"]; ok {
		if err := t.readHTTP(opts); err != nil {
			return nil, err
		}
	}
	if opts, ok := desc["ssl"]; ok {
		if err := t.readSSL(opts); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (t *transport) readHTTP(opts map[string]interface{}) error {
	if v, ok := opts["method"]; ok {
		method, err := optString("http.method", v)
		if err != nil {
			return err
		}
		t.method = strings.ToUpper(method)
	}

	switch content := opts["content"].(type) {
	case nil:
	case string:
		t.body = []byte(content)
	case []byte:
		t.body = content
	default:
		return optError("http.content", content)
	}

	headers, err := parseHeaderOption(opts["header"])
	if err != nil {
		return err
	}
	t.headers = headers

	if v, ok := opts["timeout"]; ok {
		timeout, err := optDuration("http.timeout", v)
		if err != nil {
			return err
		}
		t.timeout = timeout
	}

	if v, ok := opts["user_agent"]; ok {
		if t.userAgent, err = optString("http.user_agent", v); err != nil {
			return err
		}
	}

	if v, ok := opts["ignore_errors"]; ok {
		if t.ignoreErrors, err = optBool("http.ignore_errors", v); err != nil {
			return err
		}
	}

	if v, ok := opts["follow_location"]; ok {
		follow, err := optBool("http.follow_location", v)
		if err != nil {
			return err
		}
		t.noRedirects = !follow
	}

	if v, ok := opts["proxy"]; ok {
		raw, err := optString("http.proxy", v)
		if err != nil {
			return err
		}
		// tcp:// is the stream context spelling of a plain HTTP proxy
		raw = strings.Replace(raw, "tcp://", "http://", 1)
		if t.proxy, err = url.Parse(raw); err != nil {
			return errors.WrapError(err, errors.ErrValidation, "invalid http.proxy")
		}
	}

	return nil
}

func (t *transport) readSSL(opts map[string]interface{}) error {
	cfg := &tls.Config{}

	for _, key := range []string{"verify_peer", "verify_peer_name"} {
		if v, ok := opts[key]; ok {
			verify, err := optBool("ssl."+key, v)
			if err != nil {
				return err
			}
			if !verify {
				cfg.InsecureSkipVerify = true
			}
		}
	}

	if v, ok := opts["allow_self_signed"]; ok {
		allow, err := optBool("ssl.allow_self_signed", v)
		if err != nil {
			return err
		}
		if allow {
			cfg.InsecureSkipVerify = true
		}
	}

	if v, ok := opts["peer_name"]; ok {
		name, err := optString("ssl.peer_name", v)
		if err != nil {
			return err
		}
		cfg.ServerName = name
	}

	if v, ok := opts["cafile"]; ok {
		path, err := optString("ssl.cafile", v)
		if err != nil {
			return err
		}
		pem, err := os.ReadFile(path)
		if err != nil {
			return errors.WrapError(err, errors.ErrConfiguration, "read ssl.cafile")
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return errors.WrapError(fmt.Errorf("no certificates in %s", path), errors.ErrConfiguration, "read ssl.cafile")
		}
		cfg.RootCAs = pool
	}

	t.tls = cfg
	return nil
}

// request creates the *http.Request; the returned cancel func must be called
func (t *transport) request(ctx context.Context, endpoint string) (*http.Request, context.CancelFunc, error) {
	cancel := context.CancelFunc(func() {})
	if t.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
	}

	var body io.Reader
	if t.body != nil {
		body = bytes.NewReader(t.body)
	}

	req, err := http.NewRequestWithContext(ctx, t.method, endpoint, body)
	if err != nil {
		cancel()
		return nil, nil, errors.WrapError(err, errors.ErrTransport, "create request")
	}

	for _, h := range t.headers {
		// net/http ignores Host in req.Header
		if strings.EqualFold(h.Name, "Host") {
			req.Host = h.Value
			continue
		}
		req.Header.Set(h.Name, h.Value)
	}
	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	return req, cancel, nil
}

// client returns doer, or a copy of it when proxy, TLS or redirect options are set
func (t *transport) client(doer HTTPDoer) (HTTPDoer, bool) {
	if !t.needsClient() {
		return doer, true
	}

	base, ok := doer.(*http.Client)
	if !ok {
		return doer, false
	}

	c := *base
	var rt *http.Transport
	if bt, ok := base.Transport.(*http.Transport); ok && bt != nil {
		rt = bt.Clone()
	} else {
		rt = http.DefaultTransport.(*http.Transport).Clone()
	}
	if t.proxy != nil {
		rt.Proxy = http.ProxyURL(t.proxy)
	}
	if t.tls != nil {
		rt.TLSClientConfig = t.tls
	}
	c.Transport = rt

	if t.noRedirects {
		c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return &c, true
}

// parseHeaderOption accepts a list of lines or a single CRLF separated string
func parseHeaderOption(v interface{}) ([]HeaderField, error) {
	var lines []string

	switch h := v.(type) {
	case nil:
		return nil, nil
	case string:
		lines = strings.Split(strings.ReplaceAll(h, "\r\n", "\n"), "\n")
	case []string:
		lines = h
	case []interface{}:
		for _, item := range h {
			s, ok := item.(string)
			if !ok {
				return nil, optError("http.header", item)
			}
			lines = append(lines, s)
		}
	default:
		return nil, optError("http.header", v)
	}

	fields := make([]HeaderField, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, errors.WrapError(fmt.Errorf("header line %q has no colon", line), errors.ErrValidation, "invalid http.header")
		}
		fields = append(fields, HeaderField{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)})
	}
	return fields, nil
}

func optError(key string, v interface{}) error {
	return errors.WrapError(fmt.Errorf("unexpected type %T", v), errors.ErrValidation, "invalid "+key)
}

func optString(key string, v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", optError(key, v)
	}
	return s, nil
}

func optBool(key string, v interface{}) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case int:
		return b != 0, nil
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return false, errors.WrapError(err, errors.ErrValidation, "invalid "+key)
		}
		return parsed, nil
	default:
		return false, optError(key, v)
	}
}

// optDuration reads seconds as a number, or a time.Duration / duration string
func optDuration(key string, v interface{}) (time.Duration, error) {
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case int:
		return time.Duration(d) * time.Second, nil
	case int64:
		return time.Duration(d) * time.Second, nil
	case float64:
		return time.Duration(d * float64(time.Second)), nil
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return 0, errors.WrapError(err, errors.ErrValidation, "invalid "+key)
		}
		return parsed, nil
	default:
		return 0, optError(key, v)
	}
}
