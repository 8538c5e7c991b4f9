// Copyright (C) Pagoda Box, Inc - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential

package gateway

import (
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jcelliott/lumber"
)

// StartHealth starts health checking for all registered proxy routes. Only
// routes with 'Endpoint' defined get checked. 'pulse' is the delay (in
// seconds) between health checks.
func StartHealth(pulse int) {
	if pulse == 0 {
		pulse = 60
	}
	for true {

		routesMutex.RLock()
		for i := range routes {
			if routes[i].Kind == KindProxy && routes[i].Endpoint != "" {
				go checkPulse(&routes[i]) // todo: what if this gets replaced after being sent off
			}
		}
		routesMutex.RUnlock()

		time.Sleep(time.Duration(pulse) * time.Second)
	}
}

// checkPulse hits the upstream's health endpoint up to route.Attempts times
// and flips the route's health flag accordingly. The handler consults the
// flag before proxying so a dead backend answers 502 immediately.
func checkPulse(route *Route) {
	uri := strings.TrimSuffix(route.targetURL.Scheme+"://"+route.targetURL.Host, "/") + "/" + strings.TrimPrefix(route.Endpoint, "/")

	failcount := 0
	for ; failcount < route.Attempts; failcount++ {
		res, err := pulse(uri, route.Timeout)
		if err != nil {
			lumber.Trace("[GATEWAY] Failed to check pulse - %s", err.Error())
			continue
		}
		res.Body.Close()

		if res.StatusCode == route.ExpectedCode {
			lumber.Trace("[GATEWAY] Expected code match")
			break
		}
		lumber.Trace("[GATEWAY] Endpoint reached, but checks failed - %d", res.StatusCode)
	}

	if failcount >= route.Attempts {
		atomic.StoreInt32(&route.unhealthy, 1)
		lumber.Debug("[GATEWAY] Upstream '%s' marked unhealthy", route.Target)
	} else {
		atomic.StoreInt32(&route.unhealthy, 0)
		lumber.Trace("[GATEWAY] Upstream '%s' healthy", route.Target)
	}
}

// Healthy reports whether the route's upstream passed its last pulse check.
// Routes without an endpoint are always healthy.
func (r *Route) Healthy() bool {
	return atomic.LoadInt32(&r.unhealthy) == 0
}

// pulse does a single bounded GET against the health endpoint. timeout is in
// milliseconds.
func pulse(uri string, timeout int) (*http.Response, error) {
	client := &http.Client{
		Timeout: time.Duration(timeout) * time.Millisecond,
	}

	req, err := http.NewRequest("GET", uri, nil)
	if err != nil {
		return nil, fmt.Errorf("Failed to create request - %s", err.Error())
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Failed to do request - %s", err.Error())
	}

	return res, nil
}
