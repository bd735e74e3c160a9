package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"strings"
	"syscall"
	"time"

	"modelhub/config"
	"modelhub/internal/command"
	"modelhub/internal/core"
	"modelhub/internal/log"
	"modelhub/utils/path"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	_ "modelhub/cmd/docs"
)

const (
	defaultPort     = 3000
	shutdownTimeout = 10 * time.Second
)

var (
	rootPath = path.RootPath()
	// Version 由 -ldflags "-X main.Version=..." 注入
	Version  string
	envPath  string
	yamlPath string
	conf     *config.Configuration
)

func init() {
	pflag.StringVarP(&envPath, "env", "e", "", "Environment file, e.g. --env .env")
	pflag.StringVarP(&yamlPath, "config", "c", "", "YAML config file under conf/, e.g. --config config.yaml")
}

// @title        modelhub API
// @version      1.0
// @description  LLM provider model catalog
// @host         localhost:3000
// @basePath     /
func main() {
	rootCmd := &cobra.Command{
		Use:          "app",
		Short:        "LLM provider model catalog service",
		SilenceUsage: true,
		// 子指令沒有自己的 PersistentPreRunE 時沿用這個
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig()
			if err != nil {
				return err
			}
			conf = c
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
	rootCmd.PersistentFlags().AddFlagSet(pflag.CommandLine)

	command.Register(rootCmd, func() (*command.Command, func(), error) {
		logger, err := log.NewLogger(conf)
		if err != nil {
			return nil, nil, err
		}
		cmd, cleanup, err := wireCommand(conf, logger)
		if err != nil {
			return nil, nil, err
		}
		return cmd, func() {
			cleanup()
			_ = logger.Sync()
		}, nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// serve 啟動 HTTP 與排程，收到訊號後在 shutdownTimeout 內收尾
func serve(ctx context.Context) error {
	logger, err := log.NewLogger(conf)
	if err != nil {
		return fmt.Errorf("init logger failed: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	app, cleanup, err := wireApp(conf, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("start app ...", zap.String("env", conf.App.Env), zap.Uint32("port", conf.App.Port))
	if err := app.Run(); err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info("shutdown app ...")
	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return app.Stop(stopCtx)
}

// loadConfig 設定檔優先順序 --env > --config > 純環境變數；環境變數一律可覆寫檔案內容
func loadConfig() (*config.Configuration, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter("__"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()

	file, kind := "", ""
	switch {
	case envPath != "":
		if yamlPath != "" {
			fmt.Println("both --env and --config given, using --env")
		}
		file, kind = resolve(envPath, rootPath), "env"
	case yamlPath != "":
		file, kind = resolve(yamlPath, filepath.Join(rootPath, "conf")), "yaml"
	}

	if file != "" {
		fmt.Printf("load %s config: %s\n", kind, file)
		v.SetConfigFile(file)
		v.SetConfigType(kind)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config failed: %w", err)
		}
		v.WatchConfig()
		// 已建立的 client / registry 不會重建
		v.OnConfigChange(func(in fsnotify.Event) {
			fmt.Println("config file changed, restart to apply:", in.Name)
		})
	} else {
		fmt.Println("no config file specified, using environment variables only")
	}

	bindEnvs(v, reflect.TypeOf(config.Configuration{}))

	var c config.Configuration
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}
	if c.App.Version == "" {
		c.App.Version = Version
	}
	if c.App.Port == 0 {
		c.App.Port = defaultPort
	}
	return &c, nil
}

func resolve(p, base string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// bindEnvs viper 的 AutomaticEnv 不會對 Unmarshal 生效，需逐一 BindEnv
func bindEnvs(v *viper.Viper, t reflect.Type, prefix ...string) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		key := field.Tag.Get("mapstructure")
		if key == "" || key == "-" {
			key = field.Name
		}
		keyPath := append(append([]string{}, prefix...), key)
		ft := field.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		switch {
		case ft.Kind() == reflect.Struct:
			bindEnvs(v, ft, keyPath...)
		case ft.Kind() == reflect.Map && ft.Key().Kind() == reflect.String && ft.Elem().Kind() == reflect.Struct:
			// map 的 key 依已知 provider 展開，例如 CATALOG__PROVIDERS__OPENAI__API_KEY
			for _, p := range core.Providers {
				bindEnvs(v, ft.Elem(), append(keyPath, strings.ToUpper(string(p.Name)))...)
			}
		default:
			_ = v.BindEnv(strings.Join(keyPath, "__"))
		}
	}
}
