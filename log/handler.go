// Copyright 2017 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"reflect"
	"sync"
	"time"

	"github.com/holiman/uint256"
)

// Format selects the encoding of log records.
type Format int

const (
	FormatTerminal Format = iota
	FormatJSON
	FormatLogfmt
)

// Options configures NewHandler.
type Options struct {
	Format   Format
	Level    *slog.LevelVar
	UseColor bool // terminal only
}

// NewHandler returns a handler writing records in the configured format.
// A nil Level logs everything.
func NewHandler(wr io.Writer, opts Options) slog.Handler {
	lvl := opts.Level
	if lvl == nil {
		lvl = new(slog.LevelVar)
		lvl.Set(levelMaxVerbosity)
	}
	switch opts.Format {
	case FormatJSON:
		return slog.NewJSONHandler(wr, &slog.HandlerOptions{
			ReplaceAttr: builtinReplaceJSON,
			Level:       lvl,
		})
	case FormatLogfmt:
		return slog.NewTextHandler(wr, &slog.HandlerOptions{
			ReplaceAttr: builtinReplaceLogfmt,
			Level:       lvl,
		})
	default:
		return NewTerminalHandlerWithLevel(wr, lvl, opts.UseColor)
	}
}

// DiscardHandler returns a handler that drops every record.
func DiscardHandler() slog.Handler {
	return slog.DiscardHandler
}

// TerminalHandler writes human readable records, one per line:
//
//	LEVEL[01-02|15:04:05.000] message key=value key=value
//
// Values of the same key are padded to a common width so consecutive
// lines line up.
type TerminalHandler struct {
	mu       sync.Mutex
	wr       io.Writer
	lvl      *slog.LevelVar
	useColor bool
	attrs    []slog.Attr
	// widest value seen per key
	fieldPadding map[string]int

	buf []byte
}

// NewTerminalHandlerWithLevel returns a terminal handler emitting records at or above lvl.
func NewTerminalHandlerWithLevel(wr io.Writer, lvl *slog.LevelVar, useColor bool) *TerminalHandler {
	return &TerminalHandler{
		wr:           wr,
		lvl:          lvl,
		useColor:     useColor,
		fieldPadding: make(map[string]int),
	}
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf = h.format(h.buf[:0], r, h.useColor)
	_, err := h.wr.Write(h.buf)
	return err
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

// WithGroup is not supported; grouped attributes are written flat.
func (h *TerminalHandler) WithGroup(_ string) slog.Handler {
	return h
}

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TerminalHandler{
		wr:           h.wr,
		lvl:          h.lvl,
		useColor:     h.useColor,
		attrs:        append(append([]slog.Attr{}, h.attrs...), attrs...),
		fieldPadding: make(map[string]int),
	}
}

var (
	builtinReplaceLogfmt = replaceAttr(true)
	builtinReplaceJSON   = replaceAttr(false)
)

// replaceAttr shortens the time and level keys and renders numbers and
// stringers as strings. With logfmt, times are formatted as on the terminal.
func replaceAttr(logfmt bool) func([]string, slog.Attr) slog.Attr {
	return func(_ []string, attr slog.Attr) slog.Attr {
		switch attr.Key {
		case slog.TimeKey:
			if attr.Value.Kind() != slog.KindTime {
				break
			}
			if logfmt {
				return slog.String("t", attr.Value.Time().Format(timeFormat))
			}
			return slog.Attr{Key: "t", Value: attr.Value}
		case slog.LevelKey:
			if l, ok := attr.Value.Any().(slog.Level); ok {
				return slog.String("lvl", LevelString(l))
			}
		}

		switch v := attr.Value.Any().(type) {
		case time.Time:
			if logfmt {
				return slog.String(attr.Key, v.Format(timeFormat))
			}
		case *big.Int:
			return slog.String(attr.Key, nilOr(v == nil, v.String))
		case *uint256.Int:
			return slog.String(attr.Key, nilOr(v == nil, v.Dec))
		case fmt.Stringer:
			return slog.String(attr.Key, nilOr(isNil(v), v.String))
		}
		return attr
	}
}

func nilOr(null bool, str func() string) string {
	if null {
		return "<nil>"
	}
	return str()
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
