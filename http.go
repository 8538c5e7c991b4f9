// Copyright (C) Pagoda Box, Inc - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential

package gateway

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// the default address to listen on for http connections
var httpAddress = "0.0.0.0:80"

// httpListener allows restarting on a new address
var httpListener net.Listener

// httpServer allows a graceful stop
var httpServer *http.Server

// StartHTTP starts the http listener. Serving happens on a goroutine per
// connection, and the routing table is read-only per request, so no further
// coordination is needed between requests.
func StartHTTP(address string) error {
	var err error
	if httpListener != nil {
		httpListener.Close()
	}

	if address != "" {
		httpAddress = address
	}
	if httpAddress == "" {
		return fmt.Errorf("HTTP address not defined")
	}

	httpListener, err = net.Listen("tcp", httpAddress)
	if err != nil {
		return err
	}

	httpServer = &http.Server{
		Handler:           &handler{},
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go httpServer.Serve(httpListener)

	return nil
}

// StopHTTP gracefully shuts the listener down, waiting for in-flight requests
// up to the context deadline.
func StopHTTP(ctx context.Context) error {
	if httpServer == nil {
		return nil
	}
	return httpServer.Shutdown(ctx)
}
