// Copyright (C) Pagoda Box, Inc - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential

package gateway

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jcelliott/lumber"
)

// serveAlias resolves the request path under the route's target directory with
// the matched prefix stripped ("/media/photo.jpg" -> "<target>/photo.jpg").
// There is no fallback on an alias route - a missing file is a 404.
func serveAlias(route *Route, rw http.ResponseWriter, req *http.Request) {
	name := resolveUnder(route.Target, strings.TrimPrefix(req.URL.Path, route.Prefix))

	info, err := os.Stat(name)
	if err != nil || info.IsDir() {
		lumber.Trace("[GATEWAY] Alias miss '%s'", name)
		NotFound{}.ServeHTTP(rw, req)
		return
	}
	http.ServeFile(rw, req, name)
}

// serveStatic resolves the full request path under the route's target
// directory ("/api/docs/spec" -> "<target>/api/docs/spec"). Directory hits get
// the route's index files tried in order. A miss serves the route's fallback
// file with status 200, which is what lets a client-side-routed single page
// app handle arbitrary deep links.
func serveStatic(route *Route, rw http.ResponseWriter, req *http.Request) {
	name := resolveUnder(route.Target, req.URL.Path)

	if info, err := os.Stat(name); err == nil {
		if !info.IsDir() {
			http.ServeFile(rw, req, name)
			return
		}
		for _, index := range route.IndexFiles {
			candidate := filepath.Join(name, index)
			if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
				http.ServeFile(rw, req, candidate)
				return
			}
		}
	}

	if route.Fallback == "" {
		NotFound{}.ServeHTTP(rw, req)
		return
	}

	// the fallback lives under the route's prefix within the target root
	fallback := resolveUnder(route.Target, path.Join(route.Prefix, route.Fallback))
	if fi, err := os.Stat(fallback); err != nil || fi.IsDir() {
		lumber.Error("[GATEWAY] Fallback '%s' missing for route '%s'", fallback, route.Prefix)
		NotFound{}.ServeHTTP(rw, req)
		return
	}

	lumber.Trace("[GATEWAY] Serving fallback '%s' for '%s'", fallback, req.URL.Path)
	MetricFallbackHits.Inc()
	http.ServeFile(rw, req, fallback)
}

// resolveUnder joins a request-supplied path to a directory. The rooted Clean
// keeps ".." segments from escaping the directory.
func resolveUnder(dir, name string) string {
	return filepath.Join(dir, filepath.FromSlash(path.Clean("/"+name)))
}
