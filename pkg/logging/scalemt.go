package logging

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// TimestampLayout is the millisecond timestamp used in scale-mt lines.
const TimestampLayout = "2006-01-02T15:04:05.000"

const null = "null"

// TranslationInfo identifies the client of a translation request.
type TranslationInfo struct {
	LangPair string
	Key      string
	IP       string
	Referer  string
}

// NewTranslationInfo extracts request identity from r. The client address is
// taken from X-Real-IP when a proxy set it.
func NewTranslationInfo(r *http.Request) TranslationInfo {
	info := TranslationInfo{
		LangPair: r.FormValue("langpair"),
		Key:      r.FormValue("key"),
		IP:       r.Header.Get("X-Real-IP"),
		Referer:  r.Header.Get("Referer"),
	}
	if info.Key == "" {
		info.Key = null
	}
	if info.IP == "" {
		info.IP = r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			info.IP = host
		}
	}
	if info.Referer == "" {
		info.Referer = null
	}
	return info
}

// ScaleMT writes one line per translation request for usage accounting.
type ScaleMT struct {
	log *slog.Logger
	now func() time.Time
}

// NewScaleMT creates a ScaleMT logging through logger.
func NewScaleMT(logger *slog.Logger) *ScaleMT {
	return &ScaleMT{log: logger.With("logger", "scale-mt"), now: time.Now}
}

// Line formats a request the way the accounting scripts parse it.
func Line(ts time.Time, elapsed time.Duration, info TranslationInfo, status, length int) string {
	return fmt.Sprintf("%s %d %s html %s %s %s %d %d %s",
		ts.Format(TimestampLayout),
		elapsed.Milliseconds(),
		info.LangPair,
		info.Key,
		info.IP,
		info.Referer,
		status,
		length,
		null,
	)
}

// Log records one request. Records are written at error level so they pass
// any level filter.
func (s *ScaleMT) Log(ctx context.Context, status int, elapsed time.Duration, info TranslationInfo, length int) {
	s.log.LogAttrs(ctx, slog.LevelError, Line(s.now(), elapsed, info, status, length),
		slog.Int64("elapsed_ms", elapsed.Milliseconds()),
		slog.String("langpair", info.LangPair),
		slog.String("key", info.Key),
		slog.String("ip", info.IP),
		slog.String("referer", info.Referer),
		slog.Int("status", status),
		slog.Int("length", length),
	)
}
