package cfgstruct

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
)

// BindOpt is an option for the Bind method
type BindOpt struct {
	isDev *bool
	vars  map[string]string
}

// ConfDir sets variables for default options called $CONFDIR and $CONFNAME.
func ConfDir(path string) BindOpt {
	val := filepath.Clean(os.ExpandEnv(path))
	return BindOpt{vars: map[string]string{
		"CONFDIR":  val,
		"CONFNAME": filepath.Base(val),
	}}
}

// RootDir sets the $ROOT variable used when expanding default values.
func RootDir(path string) BindOpt {
	return ConfigVar("ROOT", filepath.Clean(os.ExpandEnv(path)))
}

// ConfigVar allows other configuration variables that can be used in a default value.
func ConfigVar(name, val string) BindOpt {
	return BindOpt{vars: map[string]string{strings.ToUpper(name): val}}
}

// UseDevDefaults forces the bind call to use development defaults.
func UseDevDefaults() BindOpt {
	dev := true
	return BindOpt{isDev: &dev}
}

// UseReleaseDefaults forces the bind call to use release defaults.
func UseReleaseDefaults() BindOpt {
	dev := false
	return BindOpt{isDev: &dev}
}

// Bind sets flags on a FlagSet that match the configuration struct
// 'config'. This works by traversing the config struct using the 'reflect'
// package.
func Bind(flags *pflag.FlagSet, config interface{}, opts ...BindOpt) {
	isDev := false
	vars := map[string]string{}
	for _, opt := range opts {
		if opt.isDev != nil {
			isDev = *opt.isDev
		}
		for k, v := range opt.vars {
			vars[k] = v
		}
	}

	ptrtype := reflect.TypeOf(config)
	if ptrtype.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("invalid config type: %#v. Expecting pointer to struct.", config))
	}
	bindConfig(flags, "", reflect.ValueOf(config).Elem(), vars, isDev)
}

func bindConfig(flags *pflag.FlagSet, prefix string, val reflect.Value, vars map[string]string, isDev bool) {
	if val.Kind() != reflect.Struct {
		panic(fmt.Sprintf("invalid config type: %#v. Expecting struct.", val.Interface()))
	}
	typ := val.Type()

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		fieldval := val.Field(i)
		if !field.IsExported() || field.Tag.Get("internal") == "true" {
			continue
		}

		flagname := prefix + hyphenate(snakeCase(field.Name))
		if field.Anonymous {
			flagname = strings.TrimSuffix(prefix, ".")
		}

		if field.Type.Kind() == reflect.Struct && field.Type != reflect.TypeOf(time.Time{}) {
			next := flagname + "."
			if field.Anonymous {
				next = prefix
			}
			bindConfig(flags, next, fieldval, vars, isDev)
			continue
		}

		help := field.Tag.Get("help")
		def := getDefault(field.Tag, isDev)
		def = expand(vars, def)

		fieldaddr := fieldval.Addr().Interface()
		switch field.Type {
		case reflect.TypeOf(time.Duration(0)):
			flags.DurationVar(fieldaddr.(*time.Duration), flagname, cast.ToDuration(def), help)
		case reflect.TypeOf([]string(nil)):
			var defs []string
			if def != "" {
				defs = strings.Split(def, ",")
			}
			flags.StringSliceVar(fieldaddr.(*[]string), flagname, defs, help)
		default:
			base, ok := basicTypes[field.Type.Kind()]
			if !ok {
				panic(fmt.Sprintf("invalid field type: %s", field.Type.String()))
			}
			// 命名类型(如 type Driver string)按底层类型绑定
			switch ptr := fieldval.Addr().Convert(reflect.PointerTo(base)).Interface().(type) {
			case *string:
				flags.StringVar(ptr, flagname, def, help)
			case *bool:
				flags.BoolVar(ptr, flagname, mustParseBool(def, flagname), help)
			case *int:
				flags.IntVar(ptr, flagname, int(mustParseInt(def, 0, flagname)), help)
			case *int64:
				flags.Int64Var(ptr, flagname, mustParseInt(def, 64, flagname), help)
			case *uint:
				flags.UintVar(ptr, flagname, uint(mustParseUint(def, 0, flagname)), help)
			case *uint64:
				flags.Uint64Var(ptr, flagname, mustParseUint(def, 64, flagname), help)
			case *float64:
				flags.Float64Var(ptr, flagname, mustParseFloat(def, flagname), help)
			}
		}
		if field.Tag.Get("hidden") == "true" {
			_ = flags.MarkHidden(flagname)
		}
	}
}

var basicTypes = map[reflect.Kind]reflect.Type{
	reflect.String:  reflect.TypeOf(""),
	reflect.Bool:    reflect.TypeOf(false),
	reflect.Int:     reflect.TypeOf(int(0)),
	reflect.Int64:   reflect.TypeOf(int64(0)),
	reflect.Uint:    reflect.TypeOf(uint(0)),
	reflect.Uint64:  reflect.TypeOf(uint64(0)),
	reflect.Float64: reflect.TypeOf(float64(0)),
}

func getDefault(tag reflect.StructTag, isDev bool) string {
	if !isDev {
		if def, ok := tag.Lookup("releaseDefault"); ok {
			return def
		}
	} else if def, ok := tag.Lookup("devDefault"); ok {
		return def
	}
	return tag.Get("default")
}

func expand(vars map[string]string, val string) string {
	return os.Expand(val, func(key string) string {
		if v, ok := vars[key]; ok {
			return v
		}
		return "$" + key
	})
}

func mustParseBool(def, name string) bool {
	if def == "" {
		return false
	}
	v, err := strconv.ParseBool(def)
	if err != nil {
		panic(fmt.Sprintf("invalid default for %q: %v", name, err))
	}
	return v
}

func mustParseInt(def string, bits int, name string) int64 {
	if def == "" {
		return 0
	}
	v, err := strconv.ParseInt(def, 0, bits)
	if err != nil {
		panic(fmt.Sprintf("invalid default for %q: %v", name, err))
	}
	return v
}

func mustParseUint(def string, bits int, name string) uint64 {
	if def == "" {
		return 0
	}
	v, err := strconv.ParseUint(def, 0, bits)
	if err != nil {
		panic(fmt.Sprintf("invalid default for %q: %v", name, err))
	}
	return v
}

func mustParseFloat(def, name string) float64 {
	if def == "" {
		return 0
	}
	v, err := strconv.ParseFloat(def, 64)
	if err != nil {
		panic(fmt.Sprintf("invalid default for %q: %v", name, err))
	}
	return v
}

func hyphenate(val string) string {
	return strings.ReplaceAll(val, "_", "-")
}

// snakeCase MaxIdleConn -> max_idle_conn, DSN -> dsn, S3Config -> s3_config
func snakeCase(val string) string {
	runes := []rune(val)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
