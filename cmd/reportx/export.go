package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/opdss/report/db"
	"github.com/opdss/report/delivery"
	"github.com/opdss/report/export"
	"github.com/opdss/report/process"
	"github.com/opdss/report/workbook"
)

type exportArgs struct {
	Format  string `help:"导出格式[word|print|spreadsheet|csv]" default:"word"`
	Request string `help:"导出请求文件，yaml或json" default:""`
	Out     string `help:"输出目录" default:"."`
	Sql     string `help:"从数据库查询数据行，替换请求文件里的rows" default:""`
	Preview bool   `help:"print格式导出后打开打印预览" default:"true"`
}

func cmdExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := process.Ctx(cmd)
	defer cancel()

	var previewer *delivery.Previewer
	if exportCfg.Preview {
		previewer = delivery.NewPreviewer(nil, cmd.ErrOrStderr(), zap.L())
	}
	path, err := runExport(ctx, conf, exportCfg, previewer, zap.L())
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// runExport 导出到输出目录，返回文件路径
func runExport(ctx context.Context, conf Config, args exportArgs, previewer *delivery.Previewer, log *zap.Logger) (string, error) {
	format, err := export.ParseFormat(args.Format)
	if err != nil {
		return "", err
	}
	req, err := loadRequest(args.Request)
	if err != nil {
		return "", err
	}

	if args.Sql != "" {
		gdb, err := db.NewDB(log, conf.Db)
		if err != nil {
			return "", err
		}
		defer func() { _ = db.Close(gdb) }()

		rows, err := export.Collect(export.NewSqlDataProvider(gdb.WithContext(ctx), args.Sql), conf.Export.MaxRows)
		if err != nil {
			return "", err
		}
		req.Rows = rows
	}

	loader := workbook.NewLoaderFromConfig(conf.Workbook, log)
	svc := export.NewService(conf.Export, nil, nil, log, export.WithLoader(loader))
	res, err := svc.Run(ctx, "cli", format, req)
	if err != nil {
		return "", err
	}
	path, err := delivery.SaveFile(args.Out, res.FileName, res.Data)
	if err != nil {
		return "", err
	}

	if format == export.FormatPrint && previewer != nil {
		if _, err := previewer.Preview(ctx, req.FileName, string(res.Data)); err != nil {
			log.Warn("print preview failed", zap.Error(err))
		}
	}
	return path, nil
}

// loadRequest 读取yaml或json格式的导出请求
func loadRequest(path string) (*export.Request, error) {
	if path == "" {
		return nil, export.ErrInvalidRequest.New("request file is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, export.Error.Wrap(err)
	}
	var req export.Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, export.ErrInvalidRequest.Wrap(err)
	}
	return &req, nil
}
