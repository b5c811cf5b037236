package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Setup configures the global logrus logger.
// JSON output in prod, human readable text otherwise.
func Setup(level string, json bool) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	if json {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(lvl)
}

// SetOutput redirects log output, the console front-end sends logs to stderr
// so they do not interleave with menus
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}
