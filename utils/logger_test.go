/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLogLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, ParseLogLevel(" warning "))
	assert.Equal(t, logrus.InfoLevel, ParseLogLevel(""))
	assert.Equal(t, logrus.InfoLevel, ParseLogLevel("bogus"))
}

func TestNewLoggerIsRegistered(t *testing.T) {
	a := NewLogger("TEST_REG")
	b := NewLogger("TEST_REG")
	assert.Same(t, a, b)

	assert.True(t, SetLoggerLevel("TEST_REG", "error"))
	assert.Equal(t, logrus.ErrorLevel, a.GetLevel())
	assert.False(t, SetLoggerLevel("NO_SUCH_LOGGER", "error"))
}

func TestJSONLogFormatter(t *testing.T) {
	f := &JSONLogFormatter{LoggerName: "HTTP"}
	entry := &logrus.Entry{
		Time:    time.Date(2025, 1, 27, 12, 0, 0, 0, time.UTC),
		Level:   logrus.InfoLevel,
		Message: "HTTP request",
		Data: logrus.Fields{
			"method":     "GET",
			"path":       "/api/resources",
			"status":     200,
			"request_id": "abc",
			"bytes":      12,
		},
	}
	out, err := f.Format(entry)
	require.NoError(t, err)

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &rec))
	assert.Equal(t, "info", rec["level"])
	assert.Equal(t, "HTTP", rec["logger"])
	assert.Equal(t, "GET", rec["method"])
	assert.Equal(t, "/api/resources", rec["path"])
	assert.Equal(t, float64(200), rec["status"])
	assert.Equal(t, "abc", rec["request_id"])
	assert.Equal(t, map[string]interface{}{"bytes": float64(12)}, rec["fields"])
}

func TestLog4jColorFormatterIncludesFields(t *testing.T) {
	f := &Log4jColorFormatter{LoggerName: "DATABASE", NameWidth: 10}
	out, err := f.Format(&logrus.Entry{
		Time:    time.Now(),
		Level:   logrus.WarnLevel,
		Message: "slow query",
		Data:    logrus.Fields{"duration": "3s"},
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "slow query")
	assert.Contains(t, string(out), "duration=3s")
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("UTILS_TEST_BOOL", "true")
	t.Setenv("UTILS_TEST_DURATION", "2s")
	t.Setenv("UTILS_TEST_BAD", "nope")
	assert.True(t, EnvDefaultBool("UTILS_TEST_BOOL", false))
	assert.False(t, EnvDefaultBool("UTILS_TEST_BAD", false))
	assert.Equal(t, 2*time.Second, EnvDefaultDuration("UTILS_TEST_DURATION", time.Second))
	assert.Equal(t, "fallback", EnvDefaultString("UTILS_TEST_UNSET", "fallback"))
}
