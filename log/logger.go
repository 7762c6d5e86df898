package log

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	rootLogger Logger
	mutex      = &sync.Mutex{}
)

// Logger is the leveled, named logger handed to every engine component.
type Logger interface {
	Named(name string) Logger
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}

type logger struct {
	*zap.SugaredLogger
}

func (l *logger) Named(name string) Logger {
	return &logger{l.SugaredLogger.Named(name)}
}

// Global returns the root logger, setting it up with default options first
// if Setup was never called.
func Global() Logger {
	mutex.Lock()
	defer mutex.Unlock()
	if rootLogger == nil {
		rootLogger = build(DefaultOptions())
	}
	return rootLogger
}

func Setup(options *Options) {
	mutex.Lock()
	defer mutex.Unlock()
	if rootLogger != nil {
		rootLogger.Warn("can't re setup root logger")
		return
	}
	rootLogger = build(options)
}

func build(options *Options) Logger {
	var (
		opts          []zap.Option
		encoderConfig = zap.NewProductionEncoderConfig()
	)

	if options.callerEncoder != nil {
		opts = append(opts, zap.AddCaller())
		encoderConfig.EncodeCaller = zapcore.CallerEncoder(options.callerEncoder)
	}

	encoderConfig.EncodeLevel = zapcore.LevelEncoder(options.levelEncoder)
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(options.timeLayout)
	encoderConfig.ConsoleSeparator = " "
	cores := []zapcore.Core{zapcore.NewCore(
		options.outPutEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.Level(options.level) && lvl < zapcore.WarnLevel
		}),
	), zapcore.NewCore(
		options.outPutEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.Level(options.level) && lvl >= zapcore.WarnLevel
		}),
	)}

	if options.stacktrace {
		opts = append(opts, zap.AddStacktrace(zapcore.WarnLevel))
	}
	zapSugarLogger := zap.New(zapcore.NewTee(cores...), opts...).Sugar()
	if options.name != "" {
		zapSugarLogger = zapSugarLogger.Named(options.name)
	}
	return &logger{zapSugarLogger}
}

// Nop returns a logger that discards everything, for tests and for callers
// that opt out of diagnostics.
func Nop() Logger {
	return &logger{zap.NewNop().Sugar()}
}
