package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Options はロガーの出力先とレベルです。
type Options struct {
	Level    string
	FilePath string
	// Format は "json" または "console" です。
	Format string
	// Stdout が nil の場合は標準出力へは書き込みません。
	Stdout io.Writer
}

var (
	mu           sync.RWMutex
	globalLogger = zerolog.Nop()
)

// New は Options から zerolog.Logger を構築します。返される io.Closer はログファイルを閉じます。
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	var (
		writers []io.Writer
		closer  io.Closer = nopCloser{}
	)

	if opts.Stdout != nil {
		if strings.EqualFold(opts.Format, "console") {
			writers = append(writers, zerolog.ConsoleWriter{Out: opts.Stdout, TimeFormat: "15:04:05"})
		} else {
			writers = append(writers, opts.Stdout)
		}
	}

	if opts.FilePath != "" {
		file, err := os.OpenFile(opts.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o664)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("logger: open %s: %w", opts.FilePath, err)
		}
		writers = append(writers, file)
		closer = file
	}

	if len(writers) == 0 {
		return zerolog.Nop(), closer, nil
	}

	l := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()
	return l, closer, nil
}

// Init はグローバルロガーを差し替えます。
func Init(opts Options) (io.Closer, error) {
	l, closer, err := New(opts)
	if err != nil {
		return closer, err
	}
	SetGlobal(l)
	return closer, nil
}

// SetGlobal はグローバルロガーを設定します。
func SetGlobal(l zerolog.Logger) {
	mu.Lock()
	globalLogger = l
	mu.Unlock()
}

// Global はグローバルロガーを返します。
func Global() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// WithFields はフィールドを付与したロガーをコンテキストに格納します。
func WithFields(ctx context.Context, fields map[string]any) context.Context {
	l := FromContext(ctx).With().Fields(fields).Logger()
	return l.WithContext(ctx)
}

// FromContext はコンテキストのロガーを返し、無ければグローバルロガーを返します。
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
			return l
		}
	}
	l := Global()
	return &l
}

func Debug(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Debug().Msgf(msg, args...)
}

func Info(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Info().Msgf(msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn().Msgf(msg, args...)
}

// Error は err を構造化フィールドとして出力します。
func Error(ctx context.Context, err error, msg string, args ...any) {
	FromContext(ctx).Error().Err(err).Msgf(msg, args...)
}

func parseLevel(raw string) (zerolog.Level, error) {
	if strings.TrimSpace(raw) == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("logger: invalid level %q: %w", raw, err)
	}
	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
