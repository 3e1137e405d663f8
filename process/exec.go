package process

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/zeebo/errs"
	"gopkg.in/yaml.v2"

	"github.com/opdss/report/delivery"
)

func init() {
	cobra.MousetrapHelpText = "This is a command line tool.\n\n" +
		"This needs to be run from a Command Prompt.\n"

	exe, err := os.Executable()
	if err == nil {
		cobra.MousetrapHelpText += fmt.Sprintf(
			"Try running \"%s help\" for more information\n", exe)
	}
}

// fileExists 检查文件是否存在，其它错误视为存在交给后续读取报错
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

// SaveConfig 把命令的flag当前值写成嵌套的yaml配置文件，overrides优先
func SaveConfig(cmd *cobra.Command, dir string, overrides map[string]interface{}) (string, error) {
	values := map[string]interface{}{}
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "config-dir" || f.Name == "help" {
			return
		}
		values[f.Name] = flagValue(f)
	})
	for k, v := range overrides {
		values[k] = v
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tree := yaml.MapSlice{}
	for _, k := range keys {
		tree = insert(tree, strings.Split(k, "."), values[k])
	}
	data, err := yaml.Marshal(tree)
	if err != nil {
		return "", errs.Wrap(err)
	}
	return delivery.SaveFile(dir, DefaultCfgFilename, data)
}

func flagValue(f *pflag.Flag) interface{} {
	switch f.Value.Type() {
	case "bool":
		return cast.ToBool(f.Value.String())
	case "int", "int64", "uint", "uint64":
		return cast.ToInt64(f.Value.String())
	case "float64":
		return cast.ToFloat64(f.Value.String())
	case "stringSlice":
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			return sv.GetSlice()
		}
	}
	return f.Value.String()
}

func insert(tree yaml.MapSlice, path []string, val interface{}) yaml.MapSlice {
	if len(path) == 1 {
		return append(tree, yaml.MapItem{Key: path[0], Value: val})
	}
	for i, item := range tree {
		if item.Key == path[0] {
			if sub, ok := item.Value.(yaml.MapSlice); ok {
				tree[i].Value = insert(sub, path[1:], val)
				return tree
			}
		}
	}
	return append(tree, yaml.MapItem{Key: path[0], Value: insert(nil, path[1:], val)})
}
