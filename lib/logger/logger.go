package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Settings 描述日志输出的位置和级别
type Settings struct {
	Level      string
	Path       string
	Name       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
}

var std = newStd(os.Stdout)

func newStd(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// Setup 根据 settings 重新配置全局 logger，Path 为空时只输出到标准输出
func Setup(settings *Settings) error {
	if settings == nil {
		return nil
	}
	if settings.Level != "" {
		level, err := logrus.ParseLevel(settings.Level)
		if err != nil {
			return fmt.Errorf("parse log level: %w", err)
		}
		std.SetLevel(level)
	}
	if settings.Path == "" {
		return nil
	}
	if err := os.MkdirAll(settings.Path, 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	name := settings.Name
	if name == "" {
		name = "chaindis.log"
	}
	rotated := &lumberjack.Logger{
		Filename:   filepath.Join(settings.Path, name),
		MaxSize:    settings.MaxSize,
		MaxBackups: settings.MaxBackups,
		MaxAge:     settings.MaxAge,
	}
	std.SetOutput(io.MultiWriter(os.Stdout, rotated))
	return nil
}

// SetOutput 仅供测试使用
func SetOutput(out io.Writer) {
	std.SetOutput(out)
}

func Debug(v ...any) {
	std.Debug(v...)
}

func Debugf(format string, v ...any) {
	std.Debugf(format, v...)
}

func Info(v ...any) {
	std.Info(v...)
}

func Infof(format string, v ...any) {
	std.Infof(format, v...)
}

func Warn(v ...any) {
	std.Warn(v...)
}

func Warnf(format string, v ...any) {
	std.Warnf(format, v...)
}

func Error(v ...any) {
	std.Error(v...)
}

func Errorf(format string, v ...any) {
	std.Errorf(format, v...)
}

func Fatal(v ...any) {
	std.Fatal(v...)
}
