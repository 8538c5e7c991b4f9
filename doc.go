// Copyright (C) Pagoda Box, Inc - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential

// Package gateway is the HTTP edge for the foodgram application. It owns a
// single routing table mapping request path prefixes to one of three
// dispositions: serve a file from a directory with the prefix stripped
// (alias), serve a file resolved under a root directory with a fixed fallback
// file on a miss (static), or forward the request to the backend and relay
// its response (proxy).
//
// Routes
//
// Routes have 2 implicit parts: matching criteria and action definitions.
// The matching portion is the path prefix; the route with the longest
// matching prefix wins, so registering a "/" catch-all guarantees every
// request is routed. The action portion is the kind, the target, and for
// static routes an optional fallback file and index files.
//
// Start routing as follows:
//
//  UpdateRoutes(DefaultRoutes())
//  StartHTTP("0.0.0.0:80")
//
// Get the registered table as follows:
//
//  routes := Routes()
//
// Matching Scenarios
//
// With the default foodgram table:
//
//  REQUEST                    DISPOSITION
//  /api/recipes/1/            proxied to backend:8000/api/recipes/1/
//  /api/docs/                 /usr/share/nginx/html/api/docs/ (redoc.html on miss)
//  /admin/login               proxied to backend:8000/admin/login
//  /media/photo.jpg           /var/html/media/photo.jpg (404 on miss)
//  /recipes/42                /usr/share/nginx/html/index.html (spa fallback)
//
// Proxied requests keep the original Host header and carry the client's
// address in X-Real-IP so the backend can reconstruct the request context.
// An unreachable backend answers 502; the gateway never retries.
//
// Fallbacks
//
// A static route miss is not an error: the route's fallback file is served
// with status 200 so a client-side-routed single page app can handle
// arbitrary deep links. Alias routes have no fallback and 404 on a miss.
//
// Logging
//
// In order to view logs embedded within the gateway, you must:
//  import "github.com/jcelliott/lumber"
// and set the level of logging desired (see lumber docs for more info)
//  lumber.Level(lumber.LvlInt("INFO"))
//
package gateway // import "github.com/MirOrlov/foodgram"
