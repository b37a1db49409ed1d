package logger_test

import (
	"testing"

	"nowpad/src/logger"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLogUsableBeforeInit(t *testing.T) {
	// 初期化前でもパッケージレベルのLogは使える
	// （ミドルウェアがリクエストごとに参照するため、nilだとパニックする）
	assert.NotNil(t, logger.Log)
	assert.NotPanics(t, func() {
		logger.WithFields(logrus.Fields{"key": "value"}).Debug("before init")
		logger.WithField("key", "value").Debug("before init")
	})
}

func TestInitLogger(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, logger.InitLogger("debug", dir))
	defer logger.CloseLogger()

	assert.Equal(t, logrus.DebugLevel, logger.Log.GetLevel())
	assert.NotEmpty(t, logger.GetCurrentLogFile())
}

func TestInitLogger_InvalidLevelFallsBack(t *testing.T) {
	dir := t.TempDir()

	// 解釈できないレベルはInfoにフォールバックする
	assert.NoError(t, logger.InitLogger("verbose", dir))
	defer logger.CloseLogger()

	assert.Equal(t, logrus.InfoLevel, logger.Log.GetLevel())
}
