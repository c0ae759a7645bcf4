package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samueldk12/trainer/internal/config"
	"github.com/samueldk12/trainer/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, logging.GetLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, logging.GetLevel("warning"))
	assert.Equal(t, logrus.ErrorLevel, logging.GetLevel(" error "))
	assert.Equal(t, logrus.InfoLevel, logging.GetLevel(""))
	assert.Equal(t, logrus.InfoLevel, logging.GetLevel("verbose"))
}

func TestSetup_WritesToRotatingFile(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
	})

	file := filepath.Join(t.TempDir(), "trainer")
	closer := logging.Setup(config.LogConfig{Level: "info", JSON: true, File: file, MaxSizeMB: 1})
	logrus.WithField("workout", "w1").Info("saved")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(file + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"workout":"w1"`)
	assert.Contains(t, string(data), `"msg":"saved"`)
}
