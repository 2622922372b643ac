package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/go-home-io/minerhub/plugins/common"
)

// Default console logger.
type consoleLogger struct {
	sync.Mutex
	out  io.Writer
	exit func(int)
}

// Debug prints debug level message.
func (p *consoleLogger) Debug(msg string, fields ...string) {
	p.output(msg, withFields(fields...), color.FgCyan)
}

// Info prints info level message.
func (p *consoleLogger) Info(msg string, fields ...string) {
	p.output(msg, withFields(fields...), color.FgGreen)
}

// Warn prints warning level message.
func (p *consoleLogger) Warn(msg string, fields ...string) {
	p.output(msg, withFields(fields...), color.FgYellow)
}

// Error prints error level message.
func (p *consoleLogger) Error(msg string, err error, fields ...string) {
	p.output(msg, withFields(withError(err, fields)...), color.FgRed)
}

// Fatal prints fatal level message and exits.
func (p *consoleLogger) Fatal(msg string, err error, fields ...string) {
	p.output(msg, withFields(withError(err, fields)...), color.FgRed)
	p.exit(1)
}

// NewConsoleLogger constructs a new console logger.
func NewConsoleLogger() common.ILoggerProvider {
	return newConsoleLogger(color.Output, os.Exit)
}

// Constructs console logger with custom output.
func newConsoleLogger(out io.Writer, exit func(int)) *consoleLogger {
	return &consoleLogger{
		out:  out,
		exit: exit,
	}
}

// Appends error description.
func withError(err error, fields []string) []string {
	if nil == err {
		return fields
	}

	return append(fields, common.LogErrorToken, err.Error())
}

// Helper method to pair generic fields for the output.
// Odd trailing field is dropped.
func withFields(fields ...string) [][2]string {
	fLen := len(fields)
	result := make([][2]string, 0, fLen/2)
	for ii := 0; ii+1 < fLen; ii += 2 {
		result = append(result, [2]string{fields[ii], fields[ii+1]})
	}

	return result
}

// Prepares final string and prints it.
func (p *consoleLogger) output(msg string, fields [][2]string, c color.Attribute) {
	newM := fmt.Sprintf("%s   %s", time.Now().Local().Format(time.StampMilli), msg)

	for _, v := range fields {
		newM = fmt.Sprintf("%s\n          %s: %s", newM, v[0], v[1])
	}

	p.Lock()
	defer p.Unlock()
	//noinspection GoUnhandledErrorResult
	color.New(c).Fprintln(p.out, newM) // nolint: gosec
}
