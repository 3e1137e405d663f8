package redis

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zeebo/errs"
)

var Error = errs.Class("redis")

// DefaultPingTimeout 启动时检查连接的超时
const DefaultPingTimeout = 3 * time.Second

type Config struct {
	Enabled         bool          `help:"是否使用redis锁，多实例部署时开启" default:"false"`
	Host            string        `help:"redis主机" default:"127.0.0.1"`
	Port            int           `help:"redis端口" default:"6379"`
	Password        string        `help:"redis密码" default:""`
	Db              int           `help:"redis数据库" default:"0"`
	Prefix          string        `help:"导出锁key前缀" default:"reportx:"`
	MaxIdleConn     int           `help:"连接池中空闲连接的最大数量" default:"0"`
	MaxActiveConns  int           `help:"最大的活动连接数量" default:"0"`
	ConnMaxLifetime time.Duration `help:"连接可复用的最大时间" default:"0"`
	ConnMaxIdleTime time.Duration `help:"连接可以空闲的最长时间" default:"0"`
	DialTimeout     time.Duration `help:"建立连接超时" default:"0"`
	ReadTimeout     time.Duration `help:"读超时" default:"0"`
	WriteTimeout    time.Duration `help:"写超时" default:"0"`
}

// Options 转为go-redis的连接参数，0值使用go-redis的默认值
func (conf Config) Options() *redis.Options {
	opts := &redis.Options{
		Addr:     net.JoinHostPort(conf.Host, strconv.Itoa(conf.Port)),
		Password: conf.Password,
		DB:       conf.Db,
	}
	setPositive(&opts.MaxActiveConns, conf.MaxActiveConns)
	setPositive(&opts.MaxIdleConns, conf.MaxIdleConn)
	setPositive(&opts.ConnMaxLifetime, conf.ConnMaxLifetime)
	setPositive(&opts.ConnMaxIdleTime, conf.ConnMaxIdleTime)
	setPositive(&opts.DialTimeout, conf.DialTimeout)
	setPositive(&opts.ReadTimeout, conf.ReadTimeout)
	setPositive(&opts.WriteTimeout, conf.WriteTimeout)
	return opts
}

// NewRedis 创建客户端并检查连接，连不上时返回错误
func NewRedis(conf Config) (*redis.Client, error) {
	client := redis.NewClient(conf.Options())

	timeout := DefaultPingTimeout
	if conf.DialTimeout > timeout {
		timeout = conf.DialTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, Error.New("init redis connection error: %v", err)
	}
	return client, nil
}

func setPositive[T int | time.Duration](dst *T, v T) {
	if v > 0 {
		*dst = v
	}
}
