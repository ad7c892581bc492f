// Package websocket carries the scoreboard byte protocol over websockets.
package websocket

import (
	"io"
	"net/http"

	"golang.org/x/net/websocket"
)

// Dial connects to a board served at a ws:// URL and returns the
// byte stream.
func Dial(url string) (io.ReadWriteCloser, error) {
	return websocket.Dial(url, "", "http://localhost/")
}

// Handler adapts an accept callback into an http.Handler. accept is
// called with the connection's byte stream and owns it until return.
func Handler(accept func(io.ReadWriteCloser)) http.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		accept(conn)
	})
}
