// If you are AI: This file implements StreamURL parsing for ws[s]:// URLs.
// Grounded on the original websocket_parse_url in websocket.c, rewritten
// all-or-nothing so a partial failure never leaves a half-populated result.

package urlcfg

import (
	"strconv"
	"strings"
)

// Scheme is the WebSocket URL scheme.
type Scheme string

const (
	SchemeWS  Scheme = "ws"
	SchemeWSS Scheme = "wss"
)

// defaultPort mirrors the original library's port defaults: 80 for ws,
// 443 for wss.
func (s Scheme) defaultPort() uint16 {
	if s == SchemeWSS {
		return 443
	}
	return 80
}

// StreamURL is a decomposed ws[s]://host[:port]/path URL.
type StreamURL struct {
	Scheme Scheme
	Host   string
	Port   uint16
	Path   string
}

// Parse decomposes rawURL into a StreamURL. Unlike the original
// websocket_parse_url (which wrote partial output pointers even on
// failure, risking a double free at the call site), Parse is
// all-or-nothing: on any error it returns a zero StreamURL and ok=false,
// with nothing left half-populated for the caller to clean up.
func Parse(rawURL string) (StreamURL, bool) {
	scheme, rest, ok := splitScheme(rawURL)
	if !ok {
		return StreamURL{}, false
	}

	hostPort, path := splitPath(rest)
	if path == "" || path[0] != '/' {
		return StreamURL{}, false
	}

	host, port, ok := splitHostPort(hostPort, scheme)
	if !ok || host == "" {
		return StreamURL{}, false
	}

	return StreamURL{Scheme: scheme, Host: host, Port: port, Path: path}, true
}

// splitScheme finds "scheme://" at the start of rawURL and returns the
// recognised scheme plus everything after "://".
func splitScheme(rawURL string) (Scheme, string, bool) {
	const marker = "://"
	idx := strings.Index(rawURL, marker)
	if idx <= 0 {
		return "", "", false
	}
	schemeStr := rawURL[:idx]
	rest := rawURL[idx+len(marker):]

	switch Scheme(schemeStr) {
	case SchemeWS:
		return SchemeWS, rest, true
	case SchemeWSS:
		return SchemeWSS, rest, true
	default:
		return "", "", false
	}
}

// splitPath returns the host[:port] portion and the path portion
// (starting at the first '/' after the host). If there is no '/' at all,
// path is returned empty, which Parse treats as invalid. A bare host
// with no path is never a valid stream URL.
func splitPath(rest string) (hostPort string, path string) {
	idx := strings.IndexByte(rest, '/')
	if idx < 0 {
		return rest, ""
	}
	return rest[:idx], rest[idx:]
}

// splitHostPort parses "host" or "host:port" and defaults the port from
// scheme when no explicit port is present.
func splitHostPort(hostPort string, scheme Scheme) (string, uint16, bool) {
	idx := strings.IndexByte(hostPort, ':')
	if idx < 0 {
		return hostPort, scheme.defaultPort(), true
	}

	host := hostPort[:idx]
	portStr := hostPort[idx+1:]
	if portStr == "" {
		return "", 0, false
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil || port == 0 {
		return "", 0, false
	}

	return host, uint16(port), true
}

// String reassembles the StreamURL into its canonical ws[s]:// form.
func (u StreamURL) String() string {
	var b strings.Builder
	b.WriteString(string(u.Scheme))
	b.WriteString("://")
	b.WriteString(u.Host)
	if u.Port != u.Scheme.defaultPort() {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(int(u.Port)))
	}
	b.WriteString(u.Path)
	return b.String()
}
