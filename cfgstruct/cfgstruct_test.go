package cfgstruct

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nested struct {
	Address string        `help:"监听地址" default:"0.0.0.0:8989"`
	Timeout time.Duration `help:"超时" default:"3s"`
}

type driver string

type testConfig struct {
	Driver   driver   `help:"驱动" default:"local"`
	Dir      string   `help:"目录" default:"$ROOT/exports"`
	MaxRows  int      `help:"最大行数" default:"1000"`
	Enabled  bool     `help:"启用" default:"true" releaseDefault:"false"`
	Ratio    float64  `help:"比例" default:"0.5"`
	Tags     []string `help:"标签" default:"a,b"`
	LockTTL  time.Duration
	S3Config nested
	internal string
	Skip     string `internal:"true"`
}

func TestBind(t *testing.T) {
	var conf testConfig
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Bind(flags, &conf, RootDir("/srv/report"), UseDevDefaults())

	assert.Equal(t, driver("local"), conf.Driver)
	assert.Equal(t, "/srv/report/exports", conf.Dir)
	assert.Equal(t, 1000, conf.MaxRows)
	assert.True(t, conf.Enabled)
	assert.Equal(t, 0.5, conf.Ratio)
	assert.Equal(t, []string{"a", "b"}, conf.Tags)
	assert.Equal(t, "0.0.0.0:8989", conf.S3Config.Address)
	assert.Equal(t, 3*time.Second, conf.S3Config.Timeout)

	for _, name := range []string{"dir", "max-rows", "enabled", "ratio", "tags", "lock-ttl", "s3-config.address", "s3-config.timeout"} {
		assert.NotNil(t, flags.Lookup(name), name)
	}
	assert.Nil(t, flags.Lookup("skip"))
	assert.Nil(t, flags.Lookup("internal"))

	require.NoError(t, flags.Parse([]string{"--max-rows=10", "--s3-config.address=:80", "--lock-ttl=1m", "--driver=s3"}))
	assert.Equal(t, driver("s3"), conf.Driver)
	assert.Equal(t, 10, conf.MaxRows)
	assert.Equal(t, ":80", conf.S3Config.Address)
	assert.Equal(t, time.Minute, conf.LockTTL)
}

func TestBindReleaseDefaults(t *testing.T) {
	var conf testConfig
	Bind(pflag.NewFlagSet("test", pflag.ContinueOnError), &conf, UseReleaseDefaults())
	assert.False(t, conf.Enabled)
	assert.Equal(t, "$ROOT/exports", conf.Dir)
}

func TestBindNotPointer(t *testing.T) {
	assert.Panics(t, func() {
		Bind(pflag.NewFlagSet("test", pflag.ContinueOnError), testConfig{})
	})
}

func TestSnakeCase(t *testing.T) {
	for in, want := range map[string]string{
		"MaxIdleConn": "max_idle_conn",
		"Dsn":         "dsn",
		"LockTTL":     "lock_ttl",
		"S3Config":    "s3_config",
		"HTTPServer":  "http_server",
	} {
		assert.Equal(t, want, snakeCase(in), in)
	}
}
