package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  server:
    cors: "http://a.test, http://b.test,"
jwt:
  secret: from-file
  ttl_minutes: 60
otp:
  ttl_minutes: 5
hash:
  hmac:
    secret: c2VjcmV0
labels: "env:dev, team:esign"
timeouts:
  read_seconds: 15
`

func TestViperFromBytes(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.GetArray("app.server.cors"))
	assert.Equal(t, time.Hour, cfg.GetMinute("jwt.ttl_minutes"))
	assert.Equal(t, 5*time.Minute, cfg.GetMinute("otp.ttl_minutes"))
	assert.Equal(t, 15*time.Second, cfg.GetSecond("timeouts.read_seconds"))
	assert.Equal(t, []byte("secret"), cfg.GetBinary("hash.hmac.secret"))
	assert.Equal(t, map[string]string{"env": "dev", "team": "esign"}, cfg.GetMap("labels"))
	assert.Empty(t, cfg.GetArray("missing"))
	assert.NoError(t, cfg.Close())
}

func TestViperEnvOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.GetString("jwt.secret"))
}

func TestViperFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := NewViper(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.GetString("jwt.secret"))

	_, err = NewViper(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestViperRequiresType(t *testing.T) {
	_, err := NewViperFromBytes(" ", nil)
	assert.ErrorIs(t, err, ErrConfigType)
}
