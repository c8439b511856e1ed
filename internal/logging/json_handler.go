package logging

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var secretParam = regexp.MustCompile(`(?i)(api_key|password)=[^&\s"]+`)

// ScrubSecrets masks credential query parameters (TMDB's api_key, DSN
// passwords) that URL-bearing transport errors would otherwise carry into logs.
func ScrubSecrets(s string) string {
	return secretParam.ReplaceAllString(s, "$1=****")
}

// newJSONHandler emits one object per line with ts, level and msg first.
// Durations render as Go duration strings and error values are scrubbed.
func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:     lvl,
		AddSource: addSource,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
				}
				return attr
			case slog.LevelKey:
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
				return attr
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
				return attr
			}
			switch attr.Value.Kind() {
			case slog.KindDuration:
				attr.Value = slog.StringValue(attr.Value.Duration().String())
			case slog.KindAny:
				if err, ok := attr.Value.Any().(error); ok {
					attr.Value = slog.StringValue(ScrubSecrets(err.Error()))
				}
			}
			return attr
		},
	}
	return slog.NewJSONHandler(w, &opts)
}
