// Copyright (C) Pagoda Box, Inc - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential

package gateway

import (
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/jcelliott/lumber"
)

// Upstream connection limits. A single slow backend must not be able to pin
// gateway workers indefinitely, so both the dial and the wait for response
// headers are bounded. Set these before UpdateRoutes.
var (
	DialTimeout           = 10 * time.Second
	ResponseHeaderTimeout = 30 * time.Second
	IdleConnTimeout       = 90 * time.Second
)

// newReverseProxy builds the reverse proxy for a proxy route. The outbound
// request keeps the original Host (nginx's `proxy_set_header Host $host`) and
// carries the connecting peer's address in X-Real-IP, with the standard
// X-Forwarded-* set alongside. A target with a path ("http://backend:8000/admin/")
// replaces the matched prefix, so "/admin/login" forwards to "/admin/login" on
// the upstream.
func newReverseProxy(target *url.URL, prefix string) *httputil.ReverseProxy {
	transport := &http.Transport{
		DialContext:           (&net.Dialer{Timeout: DialTimeout}).DialContext,
		ResponseHeaderTimeout: ResponseHeaderTimeout,
		IdleConnTimeout:       IdleConnTimeout,
		MaxIdleConnsPerHost:   32,
	}

	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetXForwarded()
			pr.Out.URL.Scheme = target.Scheme
			pr.Out.URL.Host = target.Host
			if target.Path != "" && target.Path != "/" {
				pr.Out.URL.Path = singleJoiningSlash(target.Path, strings.TrimPrefix(pr.In.URL.Path, prefix))
			}
			pr.Out.Host = pr.In.Host
			if ip := clientIP(pr.In); ip != "" {
				pr.Out.Header.Set("X-Real-IP", ip)
			}
		},
		Transport: transport,
		ErrorHandler: func(rw http.ResponseWriter, req *http.Request, err error) {
			lumber.Error("[GATEWAY] Proxy to '%s' failed - %s", target.Host, err.Error())
			MetricProxyErrors.Inc()
			BadGateway{}.ServeHTTP(rw, req)
		},
	}
}

// clientIP extracts the connecting peer's address without the port
func clientIP(req *http.Request) string {
	ip, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return ip
}

func singleJoiningSlash(a, b string) string {
	aslash := strings.HasSuffix(a, "/")
	bslash := strings.HasPrefix(b, "/")
	switch {
	case aslash && bslash:
		return a + b[1:]
	case !aslash && !bslash:
		return a + "/" + b
	}
	return a + b
}
