package core

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"

	"github.com/jcelliott/lumber"
)

var log = lumber.NewConsoleLogger(lumber.DEBUG)

func init() {
	configure(log)
}

func configure(l *lumber.ConsoleLogger) {
	l.TimeFormat("2006-01-02 15:04:05.000")
	l.Prefix("GoBotExt")
}

// SetLogOutput sends log lines to out, keeping the current level. Not safe to
// call while other goroutines are logging.
func SetLogOutput(out io.WriteCloser) {
	l := lumber.NewBasicLogger(out, log.GetLevel())
	configure(l)
	log = l
}

// SetLogLevel changes the minimum level written to the console, i.e lumber.INFO.
func SetLogLevel(lvl int) {
	log.Level(lvl)
}

func IsLogDebug() bool {
	return log.IsDebug()
}

func IsLogInfo() bool {
	return log.IsInfo()
}

func LogDebugF(format string, v ...interface{}) {
	if log.IsDebug() {
		logAt(log.Debug, fmt.Sprintf(format, v...))
	}
}

func LogInfoF(format string, v ...interface{}) {
	if log.IsInfo() {
		logAt(log.Info, fmt.Sprintf(format, v...))
	}
}

func LogWarnF(format string, v ...interface{}) {
	if log.IsWarn() {
		logAt(log.Warn, fmt.Sprintf(format, v...))
	}
}

func LogErrorF(format string, v ...interface{}) {
	if log.IsError() {
		logAt(log.Error, fmt.Sprintf(format, v...))
	}
}

func LogFatalF(format string, v ...interface{}) {
	logAt(log.Fatal, fmt.Sprintf(format, v...))
	os.Exit(2)
}

func LogDebug(v ...interface{}) {
	if log.IsDebug() {
		logAt(log.Debug, fmt.Sprint(v...))
	}
}

func LogInfo(v ...interface{}) {
	if log.IsInfo() {
		logAt(log.Info, fmt.Sprint(v...))
	}
}

func LogWarn(v ...interface{}) {
	if log.IsWarn() {
		logAt(log.Warn, fmt.Sprint(v...))
	}
}

func LogError(v ...interface{}) {
	if log.IsError() {
		logAt(log.Error, fmt.Sprint(v...))
	}
}

func LogFatal(v ...interface{}) {
	logAt(log.Fatal, fmt.Sprint(v...))
	os.Exit(2)
}

// logAt prefixes the message with the file and line of the caller of the
// exported Log function, two frames up.
func logAt(logger func(format string, v ...interface{}), msg string) {
	_, fn, line, _ := runtime.Caller(2)
	logger("%s:%d | %s", path.Base(fn), line, msg)
}
