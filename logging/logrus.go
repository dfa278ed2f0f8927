package logging

import "github.com/sirupsen/logrus"

type logrusLogger struct {
	logg logrus.FieldLogger
}

// Logrus adapts a logrus.FieldLogger to the Logger interface.
func Logrus(logg logrus.FieldLogger) Logger {
	return &logrusLogger{logg: logg}
}

func (l *logrusLogger) WithError(err error) Logger {
	return &logrusLogger{logg: l.logg.WithError(err)}
}

func (l *logrusLogger) WithField(key string, value interface{}) Logger {
	return &logrusLogger{logg: l.logg.WithField(key, value)}
}

func (l *logrusLogger) WithFields(fields map[string]interface{}) Logger {
	return &logrusLogger{logg: l.logg.WithFields(logrus.Fields(fields))}
}

func (l *logrusLogger) Error(args interface{}) { l.logg.Error(args) }
func (l *logrusLogger) Debug(args interface{}) { l.logg.Debug(args) }
func (l *logrusLogger) Info(args interface{})  { l.logg.Info(args) }
