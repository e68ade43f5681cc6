// Package logger 提供统一的日志工具
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Level 日志级别
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case DEBUG:
		return zerolog.DebugLevel
	case WARN:
		return zerolog.WarnLevel
	case ERROR:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ParseLevel 解析日志级别字符串
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// Logger 日志记录器。
// Component 返回的子 logger 只带 component 字段，级别与输出始终取自根 logger，
// 对子 logger 调用 Set* 或 Close 作用于根 logger。
type Logger struct {
	mu       sync.Mutex
	level    Level
	enabled  bool
	console  bool
	pretty   bool
	file     bool
	filePath string
	out      io.Writer
	fileOut  *os.File
	zl       zerolog.Logger

	root      *Logger
	component string
}

// 全局默认 logger
var defaultLogger = New()

// New 创建新的 Logger 实例
func New() *Logger {
	l := &Logger{
		level:   INFO,
		enabled: true,
		console: true,
		pretty:  true,
		out:     os.Stdout,
	}
	l.updateOutput()
	return l
}

// Default 获取默认 logger
func Default() *Logger {
	return defaultLogger
}

// base 持有级别与输出的根 logger
func (l *Logger) base() *Logger {
	if l.root != nil {
		return l.root
	}
	return l
}

// SetLevel 设置日志级别
func (l *Logger) SetLevel(level Level) {
	r := l.base()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.level = level
	r.zl = r.zl.Level(level.zerolog())
}

// SetEnabled 设置是否启用日志
func (l *Logger) SetEnabled(enabled bool) {
	r := l.base()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = enabled
}

// SetConsole 设置是否输出到控制台
func (l *Logger) SetConsole(enabled bool) {
	r := l.base()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.console = enabled
	r.updateOutput()
}

// SetOutput 替换控制台输出目标，pretty 为 false 时输出 JSON 行
func (l *Logger) SetOutput(w io.Writer, pretty bool) {
	r := l.base()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.out = w
	r.pretty = pretty
	r.updateOutput()
}

// SetFile 设置是否输出到文件（文件中为 JSON 行）
func (l *Logger) SetFile(enabled bool, path string) error {
	r := l.base()
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fileOut != nil {
		r.fileOut.Close()
		r.fileOut = nil
	}

	r.file = enabled
	r.filePath = path

	if enabled && path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			r.updateOutput()
			return fmt.Errorf("无法打开日志文件: %w", err)
		}
		r.fileOut = f
	}

	r.updateOutput()
	return nil
}

func (l *Logger) updateOutput() {
	var writers []io.Writer

	if l.console && l.out != nil {
		if l.pretty {
			writers = append(writers, zerolog.ConsoleWriter{Out: l.out, TimeFormat: "15:04:05"})
		} else {
			writers = append(writers, l.out)
		}
	}
	if l.file && l.fileOut != nil {
		writers = append(writers, l.fileOut)
	}

	var w io.Writer
	switch len(writers) {
	case 0:
		w = io.Discard
	case 1:
		w = writers[0]
	default:
		w = zerolog.MultiLevelWriter(writers...)
	}

	l.zl = zerolog.New(w).With().Timestamp().Logger().Level(l.level.zerolog())
}

// Component 返回带 component 字段的子 logger
func (l *Logger) Component(name string) *Logger {
	return &Logger{root: l.base(), component: name}
}

// event 在根 logger 锁内创建事件，级别被过滤时不输出
func (l *Logger) event(level Level, emit func(e *zerolog.Event)) {
	r := l.base()
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.enabled || level < r.level {
		return
	}
	e := r.zl.WithLevel(level.zerolog())
	if l.component != "" {
		e = e.Str("component", l.component)
	}
	emit(e)
}

// log 内部日志方法
func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.event(level, func(e *zerolog.Event) {
		e.Msgf(format, args...)
	})
}

// Debug 输出 DEBUG 级别日志
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

// Info 输出 INFO 级别日志
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

// Warn 输出 WARN 级别日志
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

// Error 输出 ERROR 级别日志
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

// LogEvent 记录带分类的事件日志
func (l *Logger) LogEvent(category string, ok bool, elapsedMs float64, detail string) {
	level := INFO
	status := "OK"
	if !ok {
		level = ERROR
		status = "NG"
	}

	l.event(level, func(e *zerolog.Event) {
		e.Str("category", category).
			Str("status", status).
			Float64("elapsed_ms", elapsedMs).
			Msg(detail)
	})
}

// Close 关闭 logger，释放资源
func (l *Logger) Close() error {
	r := l.base()
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fileOut != nil {
		err := r.fileOut.Close()
		r.fileOut = nil
		r.updateOutput()
		return err
	}
	return nil
}

// 包级别便捷函数
func Debug(format string, args ...interface{}) { defaultLogger.Debug(format, args...) }
func Info(format string, args ...interface{})  { defaultLogger.Info(format, args...) }
func Warn(format string, args ...interface{})  { defaultLogger.Warn(format, args...) }
func Error(format string, args ...interface{}) { defaultLogger.Error(format, args...) }
func LogEvent(category string, ok bool, elapsedMs float64, detail string) {
	defaultLogger.LogEvent(category, ok, elapsedMs, detail)
}
