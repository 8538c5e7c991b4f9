// Copyright (C) Pagoda Box, Inc - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential

package gateway

import (
	"fmt"
	"net/http/httputil"
	"net/url"
	"strings"
	"sync"

	"github.com/jcelliott/lumber"
)

// Route kinds. An alias strips the matched prefix and serves files from the
// target directory. A static route resolves the full request path under the
// target directory and falls back to a fixed file on a miss. A proxy route
// forwards the request to the target upstream.
const (
	KindAlias  = "alias"
	KindStatic = "static"
	KindProxy  = "proxy"
)

// A Route has 2 implicit parts: matching criteria and action definitions. The
// matching portion is the path prefix. The action portion is the kind plus the
// target (a directory for alias/static, an upstream url for proxy), an
// optional fallback file and index files for static routes, and optional
// health check settings for proxy routes.
type Route struct {
	Prefix   string `yaml:"prefix" json:"prefix"`
	Kind     string `yaml:"kind" json:"kind"`
	Target   string `yaml:"target" json:"target"`
	Fallback string `yaml:"fallback,omitempty" json:"fallback,omitempty"`

	// IndexFiles get tried, in order, when a static route resolves to a
	// directory.
	IndexFiles []string `yaml:"index,omitempty" json:"index,omitempty"`

	// health check settings (proxy routes only)
	Endpoint     string `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	ExpectedCode int    `yaml:"expected_code,omitempty" json:"expected_code,omitempty"`
	Timeout      int    `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	Attempts     int    `yaml:"attempts,omitempty" json:"attempts,omitempty"`

	targetURL *url.URL
	proxy     *httputil.ReverseProxy
	unhealthy int32
}

// routes stores the registered routing table
var routes = []Route{}

// routesMutex ensures updates to the routing table are atomic
var routesMutex = sync.RWMutex{}

// UpdateRoutes replaces the registered routing table with a new set. Proxy
// routes get their reverse proxy and health check defaults established here so
// the request path never pays for setup. Every proxy route forwards the
// original Host and an X-Real-IP header so the upstream can reconstruct the
// request context.
func UpdateRoutes(newRoutes []Route) error {
	for i := range newRoutes {
		route := &newRoutes[i]
		if !strings.HasPrefix(route.Prefix, "/") {
			return fmt.Errorf("Bad route prefix '%s' - must begin with '/'", route.Prefix)
		}

		switch route.Kind {
		case KindAlias, KindStatic:
			if route.Target == "" {
				return fmt.Errorf("Route '%s' missing target directory", route.Prefix)
			}
		case KindProxy:
			uri, err := url.Parse(route.Target)
			if err != nil {
				return fmt.Errorf("Failed to parse target '%s' - %s", route.Target, err.Error())
			}
			if uri.Scheme == "" || uri.Host == "" {
				return fmt.Errorf("Bad proxy target '%s' - must be an absolute url", route.Target)
			}
			route.targetURL = uri
			route.proxy = newReverseProxy(uri, route.Prefix)
			if route.ExpectedCode == 0 {
				route.ExpectedCode = 200
			}
			if route.Timeout == 0 {
				route.Timeout = 3000
			}
			if route.Attempts == 0 {
				route.Attempts = 3
			}
		default:
			return fmt.Errorf("Unknown route kind '%s' for prefix '%s'", route.Kind, route.Prefix)
		}
	}

	routesMutex.Lock()
	routes = newRoutes
	routesMutex.Unlock()
	lumber.Debug("[GATEWAY] Routes updated")
	return nil
}

// Routes returns the registered routing table
func Routes() []Route {
	routesMutex.RLock()
	defer routesMutex.RUnlock()
	rtn := make([]Route, len(routes))
	copy(rtn, routes)
	return rtn
}

// bestMatch is the route matching system. Matches are scored so the route
// with the longest matching prefix is chosen (a request to "/api/docs/spec"
// matches "/api/docs/" over "/api/" and "/"). With a "/" catch-all registered
// every request matches something.
func bestMatch(path string) (route *Route) {
	routesMutex.RLock()
	defer routesMutex.RUnlock()

	matchScore := -1
	for i := range routes {
		lumber.Trace("[GATEWAY] Checking Route: '%v'", routes[i].Prefix)
		if prefixMatch(path, routes[i].Prefix) && matchScore < len(routes[i].Prefix) {
			route = &routes[i]
			matchScore = len(routes[i].Prefix)
			lumber.Trace("[GATEWAY] Matchscore: '%v'", matchScore)
		}
	}
	return route
}

// prefixMatch checks if the request path falls under the route's prefix
func prefixMatch(requestPath, prefix string) bool {
	if prefix == "" {
		return true
	}
	match := false
	switch prefix[len(prefix)-1] {
	case '/':
		// check for parent dir match
		match = strings.HasPrefix(requestPath, prefix)
	default:
		// check for exact match or exact match + "/"
		match = (prefix == requestPath) || strings.HasPrefix(requestPath, prefix+"/")
	}
	lumber.Trace("[GATEWAY] Path match: '%t'", match)
	return match
}
