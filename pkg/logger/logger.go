package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Log *zap.Logger

// InitLogger 初始化日志，同时输出到控制台与滚动文件
func InitLogger(mode string) {
	writeSyncer := getLogWriter()
	encoder := getEncoder(mode)

	level := zapcore.InfoLevel
	if mode == "debug" {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level),
		zapcore.NewCore(encoder, writeSyncer, level),
	)

	Log = zap.New(core, zap.AddCaller())
	zap.ReplaceGlobals(Log)
}

func getEncoder(mode string) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if mode == "debug" {
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
	return zapcore.NewJSONEncoder(encoderConfig)
}

func getLogWriter() zapcore.WriteSyncer {
	lumberJackLogger := &lumberjack.Logger{
		Filename:   "./logs/classhub.log",
		MaxSize:    50, // MB
		MaxBackups: 10,
		MaxAge:     30, // days
		Compress:   true,
	}
	return zapcore.AddSync(lumberJackLogger)
}

func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
