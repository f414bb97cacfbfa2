package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vigil/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 115200, cfg.Serial.BaudRate)
	assert.False(t, cfg.Serial.Simulate)
	assert.Equal(t, "ollama", cfg.Providers.Default)
	assert.Equal(t, "http://127.0.0.1:11434", cfg.Providers.Ollama.BaseURL)
	assert.Equal(t, "deepseek-r1:8b", cfg.Providers.Ollama.Model)
	assert.Equal(t, "gemini-2.5-flash", cfg.Providers.Gemini.Model)
	assert.Equal(t, ":8090", cfg.Server.Addr)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	yaml := `
serial:
  port: /dev/ttyUSB0
  baud_rate: 9600
  simulate: true
providers:
  default: gemini
server:
  addr: ":9000"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vigil.yaml"), []byte(yaml), 0o644))
	t.Chdir(dir)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB0", cfg.Serial.Port)
	assert.Equal(t, 9600, cfg.Serial.BaudRate)
	assert.True(t, cfg.Serial.Simulate)
	assert.Equal(t, "gemini", cfg.Providers.Default)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	// Untouched keys keep their defaults.
	assert.Equal(t, "deepseek-r1:8b", cfg.Providers.Ollama.Model)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("VIGIL_SERIAL_PORT", "/dev/ttyACM1")
	t.Setenv("VIGIL_PROVIDERS_OLLAMA_MODEL", "qwen3:4b")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyACM1", cfg.Serial.Port)
	assert.Equal(t, "qwen3:4b", cfg.Providers.Ollama.Model)
}

func TestSerial_PortConfig(t *testing.T) {
	s := config.Serial{Port: "COM3", BaudRate: 115200}
	pc := s.PortConfig()
	assert.Equal(t, "COM3", pc.PortName)
	assert.Equal(t, 115200, pc.BaudRate)
}
