package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	serverFlags := []string{"-a", "-d", "-r"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{"separate value", []string{"-a", ":50051", "-x", "1"}, serverFlags, []string{"-a", ":50051"}},
		{"equals form", []string{"-d=file:air.db", "-c", "conf.json"}, serverFlags, []string{"-d=file:air.db"}},
		{"order preserved", []string{"-r", "localhost:6379", "-a", ":9000"}, serverFlags, []string{"-r", "localhost:6379", "-a", ":9000"}},
		{"unknown ignored", []string{"-x", "1", "--y=2", "positional"}, serverFlags, []string{}},
		{"trailing flag without value", []string{"-a"}, serverFlags, []string{"-a"}},
		{"dash token is not a value", []string{"-a", "-d", "air.db"}, serverFlags, []string{"-a", "-d", "air.db"}},
		{"equals value may start with dash", []string{"--config=--odd.json"}, []string{"--config"}, []string{"--config=--odd.json"}},
		{"repeated flag kept", []string{"-a", ":1", "-a", ":2"}, serverFlags, []string{"-a", ":1", "-a", ":2"}},
		{"empty", []string{}, serverFlags, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFile(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"-c", "/etc/air/short.json"}, "/etc/air/short.json"},
		{"long", []string{"-config", "/etc/air/long.json"}, "/etc/air/long.json"},
		{"equals", []string{"-a", ":50051", "-config=/etc/air/eq.json"}, "/etc/air/eq.json"},
		{"last wins", []string{"-c", "/one.json", "-config", "/two.json"}, "/two.json"},
		{"absent", []string{"-a", ":50051", "-d", "air.db"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigFile(tt.args))
		})
	}
}

func TestJsonConfigFlags_ReadsProcessArgs(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"airctl", "-f", "session.db", "-c", "/home/pilot/airctl.json"}
	assert.Equal(t, "/home/pilot/airctl.json", JsonConfigFlags())
}
