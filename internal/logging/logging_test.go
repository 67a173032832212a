package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cserrors "github.com/toyz/cskit/pkg/errors"
)

func TestNew_Levels(t *testing.T) {
	testCases := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{name: "quiet", verbose: false, wantDebug: false},
		{name: "verbose", verbose: true, wantDebug: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := New(tc.verbose, FormatConsole, &buf)
			require.NoError(t, err)

			logger.Debug("debug line")
			logger.Warn("warn line")

			assert.Equal(t, tc.wantDebug, strings.Contains(buf.String(), "debug line"))
			assert.Contains(t, buf.String(), "warn line")
			assert.Contains(t, buf.String(), "WARN")
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(false, FormatJSON, &buf)
	require.NoError(t, err)

	logger.Warn("emitted", zap.String("type", "Demo.Calc"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "emitted", entry["msg"])
	assert.Equal(t, "Demo.Calc", entry["type"])
	assert.Equal(t, "cskit", entry["logger"])
}

func TestNew_UnknownFormat(t *testing.T) {
	logger, err := New(false, "xml", &bytes.Buffer{})
	require.Error(t, err)
	assert.Nil(t, logger)
	assert.Equal(t, cserrors.ConfigurationErrorCode, cserrors.CodeOf(err))
}
