package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/opdss/report/api"
	"github.com/opdss/report/cfgstruct"
	"github.com/opdss/report/db"
	"github.com/opdss/report/export"
	"github.com/opdss/report/jwt"
	"github.com/opdss/report/log"
	"github.com/opdss/report/metrics"
	"github.com/opdss/report/process"
	"github.com/opdss/report/redis"
	"github.com/opdss/report/server/grpc"
	"github.com/opdss/report/server/http"
	"github.com/opdss/report/storage"
	"github.com/opdss/report/workbook"
)

// Config reportx的全部配置
type Config struct {
	Log      log.Config
	Export   export.ServiceConfig
	Workbook workbook.Config
	Metrics  metrics.Config
	Storage  storage.Config
	Redis    redis.Config
	Db       db.Config
	Jwt      jwt.Config
	Api      api.Config
	Http     http.Config
	Grpc     grpc.Config
}

var (
	rootCmd = &cobra.Command{
		Use:   "reportx",
		Short: "把表格数据导出为word、打印页面、excel和csv",
	}
	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "按请求文件导出一个报表",
		RunE:  cmdExport,
	}
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "启动导出http服务",
		RunE:  cmdServe,
	}
	setupCmd = &cobra.Command{
		Use:         "setup",
		Short:       "在配置目录生成默认配置文件",
		RunE:        cmdSetup,
		Annotations: map[string]string{"type": "setup"},
	}

	conf      Config
	exportCfg exportArgs
	confDir   string
)

func main() {
	defaultDir := defaultConfDir()
	rootCmd.PersistentFlags().StringVar(&confDir, "config-dir", defaultDir, "配置目录")

	rootCmd.AddCommand(exportCmd, serveCmd, setupCmd)
	for _, cmd := range []*cobra.Command{exportCmd, serveCmd, setupCmd} {
		process.Bind(cmd, &conf, cfgstruct.ConfDir(defaultDir), cfgstruct.RootDir(defaultDir))
	}
	process.Bind(exportCmd, &exportCfg)

	process.ExecWithOptions(rootCmd, process.ExecOptions{
		LoadConfig:    process.LoadConfig,
		LoggerFactory: log.Factory(&conf.Log),
	})
}

func defaultConfDir() string {
	if dir := os.Getenv("REPORTX_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".reportx"
	}
	return filepath.Join(home, ".reportx")
}

func cmdSetup(cmd *cobra.Command, args []string) error {
	path, err := process.SaveConfig(cmd, confDir, nil)
	if err != nil {
		return err
	}
	cmd.Println("config saved:", path)
	return nil
}
