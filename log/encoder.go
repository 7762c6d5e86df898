package log

import (
	"go.uber.org/zap/zapcore"
)

type Level int8

// Level values mirror zapcore's numbering so options cast straight through.
const (
	DebugLevel Level = iota - 1
	InfoLevel
	WarnLevel
	ErrorLevel
	dpanicLevel
	PanicLevel
	FatalLevel
)

type (
	LevelEncoder  func(zapcore.Level, zapcore.PrimitiveArrayEncoder)
	CallerEncoder func(zapcore.EntryCaller, zapcore.PrimitiveArrayEncoder)
	OutputEncoder func(zapcore.EncoderConfig) zapcore.Encoder
)

func BracketLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + l.CapitalString() + "]")
}

func CapitalLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	zapcore.CapitalLevelEncoder(l, enc)
}

func ShortCallerEncoder(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
	zapcore.ShortCallerEncoder(caller, enc)
}

func JsonOutputEncoder(config zapcore.EncoderConfig) zapcore.Encoder {
	return zapcore.NewJSONEncoder(config)
}

func ConsoleOutputEncoder(config zapcore.EncoderConfig) zapcore.Encoder {
	return zapcore.NewConsoleEncoder(config)
}
