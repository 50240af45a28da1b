package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ILogger is the logging contract used across services. Every call carries
// the originating module name and a free-form details map.
type ILogger interface {
	Debug(module, message string, details map[string]interface{})
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
	Sync() error
}

type ZapLogger struct {
	logger   *zap.Logger
	filePath string
}

func fileCore(logFilePath string) zapcore.Core {
	rotator := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.MessageKey = "message"
	cfg.LevelKey = "level"
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	return zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.AddSync(rotator), zap.InfoLevel)
}

// NewZapLogger writes JSON to a rotating file and mirrors to stdout.
// Outside production the console copy uses the human-readable encoder.
func NewZapLogger(logFilePath string, isProd bool) *ZapLogger {
	var consoleEncoder zapcore.Encoder
	if isProd {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		consoleEncoder = zapcore.NewJSONEncoder(cfg)
	} else {
		consoleEncoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	consoleCore := zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), zap.DebugLevel)

	core := zapcore.NewTee(fileCore(logFilePath), consoleCore)

	// CallerSkip points the caller field at the code calling the wrapper.
	return &ZapLogger{
		logger:   zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2)),
		filePath: logFilePath,
	}
}

// NewIsolatedLogger writes to the file only. Used for high-volume feeds
// such as the websocket hub so the main log stays readable.
func NewIsolatedLogger(logFilePath string) *ZapLogger {
	return &ZapLogger{
		logger:   zap.New(fileCore(logFilePath), zap.AddCaller(), zap.AddCallerSkip(2)),
		filePath: logFilePath,
	}
}

func (l *ZapLogger) write(level zapcore.Level, module, message string, details map[string]interface{}) {
	if details == nil {
		details = map[string]interface{}{}
	}
	if ce := l.logger.Check(level, message); ce != nil {
		ce.Write(zap.String("module", module), zap.Any("details", details))
	}
}

func (l *ZapLogger) Debug(module, message string, details map[string]interface{}) {
	l.write(zap.DebugLevel, module, message, details)
}

func (l *ZapLogger) Info(module, message string, details map[string]interface{}) {
	l.write(zap.InfoLevel, module, message, details)
}

func (l *ZapLogger) Warn(module, message string, details map[string]interface{}) {
	l.write(zap.WarnLevel, module, message, details)
}

func (l *ZapLogger) Error(module, message string, details map[string]interface{}) {
	l.write(zap.ErrorLevel, module, message, details)
}

func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}
