// Package cli は directory コマンドのコマンドツリーです。
package cli

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/ogurasousui/employee-directory/internal/adapters/export"
	grpcclient "github.com/ogurasousui/employee-directory/internal/adapters/grpc/client"
	"github.com/ogurasousui/employee-directory/internal/adapters/tui"
	"github.com/ogurasousui/employee-directory/internal/core/directory"
	"github.com/ogurasousui/employee-directory/internal/platform/config"
	"github.com/ogurasousui/employee-directory/internal/platform/logger"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "assets/local.yaml"

// ServiceFactory は設定から RecordService を生成します。返される関数で接続を閉じます。
type ServiceFactory func(cfg *config.Config) (directory.RecordService, func() error, error)

// App はコマンド間で共有する状態です。
type App struct {
	ConfigPath string
	ServerAddr string

	cfg        *config.Config
	newService ServiceFactory
	logCloser  io.Closer
}

// DialService は設定のサーバーへ gRPC で接続します。
func DialService(cfg *config.Config) (directory.RecordService, func() error, error) {
	svc, err := grpcclient.Dial(cfg.Client.ServerAddr, grpcclient.Options{
		Timeout:  cfg.Client.Timeout,
		PageSize: cfg.Client.PageSize,
	})
	if err != nil {
		return nil, nil, err
	}
	return svc, svc.Close, nil
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{newService: DialService})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "directory",
		Short:        "Employee directory client",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive directory
  directory

  # Scriptable commands
  directory list --department Sales --sort department
  directory add --name "Ann Lee" --email ann@example.com --phone 555-123-4567 --position Manager
  directory export --format xlsx --out employees.xlsx
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// サブコマンドなしは対話 TUI
			if len(args) == 0 {
				return app.runTUI()
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("CONFIG_PATH", defaultConfigPath), "path to the YAML config file")
	cmd.PersistentFlags().StringVar(&app.ServerAddr, "server", "", "record service address (overrides config)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.logCloser != nil {
			return app.logCloser.Close()
		}
		return nil
	}

	cmd.AddCommand(
		newListCmd(app),
		newShowCmd(app),
		newAddCmd(app),
		newEditCmd(app),
		newDeleteCmd(app),
		newExportCmd(app),
	)
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (a *App) setup() error {
	cfg, err := config.LoadClient(a.ConfigPath)
	if err != nil {
		return err
	}
	if a.ServerAddr != "" {
		cfg.Client.ServerAddr = a.ServerAddr
	}
	a.cfg = cfg

	// 端末出力はコマンドが使うため、ログは設定されたファイルにだけ書く。
	closer, err := logger.Init(logger.Options{
		Level:    cfg.Log.Level,
		FilePath: cfg.Log.FilePath,
		Format:   cfg.Log.Format,
	})
	if err != nil {
		return err
	}
	a.logCloser = closer
	return nil
}

// session は 1 コマンド分の Orchestrator と接続です。
type session struct {
	orch  *directory.Orchestrator
	close func() error
}

func (a *App) open(nav directory.Navigator, onChange func()) (*session, error) {
	if a.cfg == nil {
		return nil, errors.New("cli: configuration not loaded")
	}
	svc, closeFn, err := a.newService(a.cfg)
	if err != nil {
		return nil, err
	}
	orch := directory.NewOrchestrator(svc, nav, directory.Options{OnChange: onChange})
	return &session{
		orch: orch,
		close: func() error {
			orch.Close()
			if closeFn == nil {
				return nil
			}
			return closeFn()
		},
	}, nil
}

func (a *App) runTUI() error {
	nav := tui.NewNavigator()
	s, err := a.open(nav, nav.Changed)
	if err != nil {
		return err
	}
	defer s.close()

	return tui.Run(s.orch, nav, tui.Options{
		ExportPath: "employees.csv",
		Exporter:   export.CSV{},
	})
}
