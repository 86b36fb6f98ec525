package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	AccessLogger *zap.Logger
	DBLogger     *zap.Logger
)

func InitLoggers() error {
	accessConfig := zap.NewProductionConfig()
	accessConfig.OutputPaths = []string{"stdout"}
	accessConfig.EncoderConfig.TimeKey = "timestamp"
	accessConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	AccessLogger, err = accessConfig.Build()
	if err != nil {
		return err
	}

	dbConfig := zap.NewProductionConfig()
	dbConfig.OutputPaths = []string{"stdout"}
	dbConfig.EncoderConfig.TimeKey = "timestamp"
	dbConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	DBLogger, err = dbConfig.Build()
	if err != nil {
		return err
	}

	return nil
}

func SyncLoggers() error {
	if err := AccessLogger.Sync(); err != nil {
		return err
	}
	return DBLogger.Sync()
}
