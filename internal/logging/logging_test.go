package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/sousie/backend/config"
)

func TestNew(t *testing.T) {
	t.Run("should log JSON in production", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(&buf, "debug", config.Production)
		log.WithField("conversation_id", "abc").Info("Menu derived from reply")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "Menu derived from reply", entry["msg"])
		assert.Equal(t, "abc", entry["conversation_id"])
		assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	})

	t.Run("should log text in development", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(&buf, "info", config.Development)
		log.Info("hello")

		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("should fall back to info for unknown levels", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(&buf, "chatty", config.Development)

		assert.Equal(t, logrus.InfoLevel, log.GetLevel())
		assert.Contains(t, buf.String(), "Unknown log level")
	})
}
