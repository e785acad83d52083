package accesslog

import (
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrymomot/srvkit/pkg/httpserver"
)

// Diagnostic prefixes the line sent to Sink.Error when a handler fails.
const Diagnostic = "unable to produce log line for API request"

const noStatus = "---"

// Sink receives rendered lines.
type Sink interface {
	Info(msg string)
	Error(msg string)
}

// Subscriber is the event surface Bind attaches to.
type Subscriber interface {
	OnLog(func(httpserver.LogEvent))
	OnRequestError(func(*httpserver.Request, error))
	OnResponse(func(*httpserver.Request))
}

type lineKind uint8

const (
	lineDefault lineKind = iota
	lineText
	lineSuppress
)

// Line is a formatter verdict. The zero value falls back to the request line.
type Line struct {
	kind lineKind
	text string
}

// Text logs s verbatim.
func Text(s string) Line { return Line{kind: lineText, text: s} }

// Suppress logs nothing.
func Suppress() Line { return Line{kind: lineSuppress} }

// Formatter renders a custom line for a successful response.
type Formatter func(r *httpserver.Request) Line

// Formatters maps exact request paths to formatters.
type Formatters map[string]Formatter

// Bind wires logging for h and returns h. A nil sink disables logging: nothing
// is subscribed and Bind returns nil. The formatter table is copied, so later
// changes to formatters have no effect.
func Bind[S Subscriber](h S, sink Sink, formatters Formatters) S {
	if sink == nil {
		var zero S
		return zero
	}

	b := &binder{sink: sink, formatters: maps.Clone(formatters)}
	h.OnLog(b.onLog)
	h.OnRequestError(b.onRequestError)
	h.OnResponse(b.onResponse)
	return h
}

type binder struct {
	sink       Sink
	formatters Formatters
}

func (b *binder) onLog(ev httpserver.LogEvent) {
	defer b.contain()
	b.sink.Info(fmt.Sprint(ev.Data))
}

func (b *binder) onRequestError(r *httpserver.Request, err error) {
	defer b.contain()
	msg := "<nil>"
	if err != nil {
		msg = err.Error()
	}
	b.sink.Error(StandardLine(r) + " " + msg)
}

func (b *binder) onResponse(r *httpserver.Request) {
	defer b.contain()

	if r.Response == nil || r.Response.StatusCode >= http.StatusBadRequest {
		b.sink.Error(StandardLine(r))
		return
	}

	line := Line{}
	if f := b.formatters[r.Path]; f != nil {
		line = f(r)
	}

	switch line.kind {
	case lineSuppress:
	case lineText:
		b.sink.Info(line.text)
	default:
		b.sink.Info(StandardLine(r))
	}
}

// contain turns a panic in a handler into a diagnostic line. A panicking
// sink gets no second chance.
func (b *binder) contain() {
	v := recover()
	if v == nil {
		return
	}

	defer func() { _ = recover() }()
	b.sink.Error(Diagnostic + ": " + panicMessage(v))
}

func panicMessage(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(v)
}

// StandardLine renders "< METHOD PATH[?QUERY] STATUS" for r.
func StandardLine(r *httpserver.Request) string {
	var sb strings.Builder
	sb.WriteString("< ")
	sb.WriteString(strings.ToUpper(r.Method))
	sb.WriteByte(' ')
	sb.WriteString(r.Path)

	if q := readableQuery(r.Query); q != "" {
		sb.WriteByte('?')
		sb.WriteString(q)
	}

	sb.WriteByte(' ')
	if r.Response != nil {
		sb.WriteString(strconv.Itoa(r.Response.StatusCode))
	} else {
		sb.WriteString(noStatus)
	}
	return sb.String()
}

// readableQuery encodes q and decodes the escapes back for a human-readable,
// not URL-safe, rendering. Keys come out sorted.
func readableQuery(q url.Values) string {
	encoded := q.Encode()
	if decoded, err := url.QueryUnescape(encoded); err == nil {
		return decoded
	}
	return encoded
}
