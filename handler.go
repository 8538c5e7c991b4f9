// Copyright (C) Pagoda Box, Inc - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential

package gateway

import (
	"net/http"

	"github.com/jcelliott/lumber"
)

// The handler is an HTTP Handler that takes an incoming request and compares
// it to the registered routing table. It then either serves a file from disk
// (with or without a single-page-app fallback), or it sends the request to the
// upstream backend, proxying the response back to the client.
type handler struct {
}

// ServeHTTP finds the routing rule with the longest matching prefix and
// executes its disposition. With the default table a "/" catch-all is always
// registered, so NoRoutes only fires on a hand-rolled table with no catch-all.
func (self handler) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	if ErrorHandler != nil {
		lumber.Trace("[GATEWAY] Serving ErrorHandler")
		ErrorHandler.ServeHTTP(rw, req)
		return
	}

	if limiter != nil && !limiter.Process(clientIP(req)) {
		lumber.Debug("[GATEWAY] Rate limited '%s'", clientIP(req))
		MetricRateLimited.Inc()
		TooManyRequests{}.ServeHTTP(rw, req)
		return
	}

	route := bestMatch(req.URL.Path)
	lumber.Trace("[GATEWAY] Route chosen: '%+q'", route)
	if route == nil {
		lumber.Debug("[GATEWAY] Unsure where to route!")
		NoRoutes{}.ServeHTTP(rw, req)
		return
	}

	MetricRequests.WithLabelValues(route.Prefix, route.Kind).Inc()

	switch route.Kind {
	case KindAlias:
		serveAlias(route, rw, req)
	case KindStatic:
		serveStatic(route, rw, req)
	case KindProxy:
		// an upstream already known to be down gets cut off without
		// burning the dial timeout
		if !route.Healthy() {
			lumber.Debug("[GATEWAY] Upstream '%s' unhealthy, refusing to proxy", route.Target)
			MetricProxyErrors.Inc()
			BadGateway{}.ServeHTTP(rw, req)
			return
		}
		route.proxy.ServeHTTP(rw, req)
	}
}
