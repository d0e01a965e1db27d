// Package logs builds the structured logger shared by the command-line tools.
package logs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Level is the process-wide log level; flags adjust it before New is called.
var Level = new(slog.LevelVar)

// Options selects the sinks of a logger.
type Options struct {
	// Writer receives text records. Nil means stderr.
	Writer io.Writer
	// Journal also sends records to the systemd journal when available.
	Journal bool
}

// New returns a logger fanning out to a text handler and, when running as a
// systemd service or asked to, the journal.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	var handlers []slog.Handler

	service := isSystemdService()
	var terminalHandler slog.Handler
	if !service {
		terminalHandler = slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: Level,
		})
		handlers = append(handlers, terminalHandler)
	}

	if service || opts.Journal {
		journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{
			Level: Level,
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			if terminalHandler != nil {
				record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
				record.Add("error", err)
				_ = terminalHandler.Handle(context.Background(), record)
			}
		} else {
			handlers = append(handlers, journalHandler)
		}
	}

	return slog.New(&Handler{
		Handler: slogmulti.Fanout(handlers...),
	})
}

// ParseLevel maps debug/info/warn/error onto Level.
func ParseLevel(s string) bool {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return false
	}
	Level.Set(l)
	return true
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	str = strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
	return str
}

func isSystemdService() bool {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}
	parts := strings.Split(strings.TrimSpace(string(content)), ":")
	if len(parts) < 3 {
		return false
	}
	return strings.HasSuffix(path.Dir(parts[2]), ".service")
}
