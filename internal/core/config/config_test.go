package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testYAML = `app:
  name: wineo-back
  env: test
  http:
    host: 127.0.0.1
    port: 9090
log:
  level: info
  json: true
  rotate:
    enable: true
    filename: /var/log/wineo.log
    maxsizemb: 64
    maxbackups: 3
    maxagedays: 14
    compress: true
jwt:
  secret: s
  issuer: wineo-test
db:
  driver: postgres
  dsn: host=x
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	c := Load(path)

	if c.App.HTTP.Port != 9090 {
		t.Fatalf("port = %d", c.App.HTTP.Port)
	}
	if !c.Log.JSON || c.Log.Level != "info" {
		t.Fatalf("log section = %+v", c.Log)
	}
	rot := c.Log.Rotate
	if !rot.Enable || rot.Filename != "/var/log/wineo.log" || rot.MaxSizeMB != 64 ||
		rot.MaxBackups != 3 || rot.MaxAgeDays != 14 || !rot.Compress {
		t.Fatalf("rotate section = %+v", rot)
	}
	// Missing accessttldays falls back to the default.
	if c.JWT.AccessTTLDays != 7 {
		t.Fatalf("token ttl days = %d, want 7", c.JWT.AccessTTLDays)
	}
}
