package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
)

var (
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
	DebugLogger *log.Logger
)

func Init() {
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	DebugLogger = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
}

// format renders a message followed by key=value pairs.
func format(msg string, kv []interface{}) string {
	if len(kv) == 0 {
		return msg
	}
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
	}
	if len(kv)%2 != 0 {
		fmt.Fprintf(&b, " %v", kv[len(kv)-1])
	}
	return b.String()
}

func Info(msg string, kv ...interface{}) {
	InfoLogger.Output(2, format(msg, kv))
}

func Infof(f string, v ...interface{}) {
	InfoLogger.Output(2, fmt.Sprintf(f, v...))
}

func Error(msg string, kv ...interface{}) {
	ErrorLogger.Output(2, format(msg, kv))
}

func Errorf(f string, v ...interface{}) {
	ErrorLogger.Output(2, fmt.Sprintf(f, v...))
}

func Debug(msg string, kv ...interface{}) {
	DebugLogger.Output(2, format(msg, kv))
}

func Debugf(f string, v ...interface{}) {
	DebugLogger.Output(2, fmt.Sprintf(f, v...))
}

func Fatal(msg string, kv ...interface{}) {
	ErrorLogger.Output(2, format(msg, kv))
	os.Exit(1)
}

func Fatalf(f string, v ...interface{}) {
	ErrorLogger.Fatalf(f, v...)
}
