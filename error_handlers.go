package gateway

import "net/http"

// allows defining an error and how its handled
var ErrorHandler http.Handler

type NoRoutes struct {
}

func (self NoRoutes) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	rw.WriteHeader(502)
	rw.Write([]byte("NoRoutes\n"))
}

type NotFound struct {
}

func (self NotFound) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	rw.WriteHeader(404)
	rw.Write([]byte("File Not Found\n"))
}

type BadGateway struct {
}

func (self BadGateway) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	rw.WriteHeader(502)
	rw.Write([]byte("Bad Gateway\n"))
}

type TooManyRequests struct {
}

func (self TooManyRequests) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	rw.WriteHeader(429)
	rw.Write([]byte("Too Many Requests\n"))
}
