package common

import (
	"bytes"
	"log"
	"testing"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevels(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		levels, err := ParseLogLevels("")
		require.NoError(t, err)
		assert.Equal(t, DefaultLogLevels(), levels)
		assert.Equal(t, logger.ERROR, levels[LoggerContainer])
		assert.Equal(t, logger.INFO, levels[LoggerCLI])
	})

	t.Run("Global", func(t *testing.T) {
		levels, err := ParseLogLevels("debug")
		require.NoError(t, err)
		for name, level := range levels {
			assert.Equal(t, logger.DEBUG, level, name)
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		levels, err := ParseLogLevels("queue=debug, error ,cli=info")
		require.NoError(t, err)
		assert.Equal(t, logger.DEBUG, levels[LoggerQueue], "override wins over a later global level")
		assert.Equal(t, logger.INFO, levels[LoggerCLI])
		assert.Equal(t, logger.ERROR, levels[LoggerGrouper])
		assert.Equal(t, logger.ERROR, levels[LoggerContainer])
	})

	for _, setting := range []string{"verbose", "queue=loud", "raft=debug", "=debug"} {
		t.Run("Invalid/"+setting, func(t *testing.T) {
			_, err := ParseLogLevels(setting)
			assert.True(t, HasCode(err, RetCInvalidConfiguration), "got %v", err)
		})
	}
}

func TestDefaultLogLevelsIsCopy(t *testing.T) {
	levels := DefaultLogLevels()
	levels[LoggerGrouper] = logger.DEBUG
	assert.Equal(t, logger.WARNING, DefaultLogLevels()[LoggerGrouper])
}

func TestLoggerFormatAndLevel(t *testing.T) {
	l := CreateLogger(LoggerQueue).(*xgroupLogger)
	assert.Equal(t, logger.WARNING, l.level)

	var buf bytes.Buffer
	l.logger = log.New(&buf, "", 0)

	l.Infof("hidden %d", 1)
	assert.Empty(t, buf.String())

	l.Warningf("spill file %s kept", "x.q")
	assert.Equal(t, "WARN  | queue      | spill file x.q kept\n", buf.String())

	l.SetLevel(logger.DEBUG)
	buf.Reset()
	l.Debugf("sweep")
	assert.Contains(t, buf.String(), "DEBUG | queue")
}
