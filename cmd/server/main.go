package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	grpchandler "github.com/ogurasousui/employee-directory/internal/adapters/grpc/handler"
	httphandler "github.com/ogurasousui/employee-directory/internal/adapters/http/handler"
	"github.com/ogurasousui/employee-directory/internal/adapters/repository/postgres"
	"github.com/ogurasousui/employee-directory/internal/adapters/repository/sqlite"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
	"github.com/ogurasousui/employee-directory/internal/platform/config"
	pg "github.com/ogurasousui/employee-directory/internal/platform/db/postgres"
	sqlitedb "github.com/ogurasousui/employee-directory/internal/platform/db/sqlite"
	"github.com/ogurasousui/employee-directory/internal/platform/logger"
	"github.com/ogurasousui/employee-directory/internal/platform/metrics"
	"github.com/ogurasousui/employee-directory/internal/platform/server"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Error(ctx, err, "server stopped with error")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		// ロガーはまだ設定されていない
		_, _ = io.WriteString(os.Stderr, "failed to load config: "+err.Error()+"\n")
		return err
	}

	logCloser, err := logger.Init(logger.Options{
		Level:    cfg.Log.Level,
		FilePath: cfg.Log.FilePath,
		Format:   cfg.Log.Format,
		Stdout:   os.Stdout,
	})
	if err != nil {
		return err
	}
	defer logCloser.Close()

	repo, tx, closeDB, err := openStorage(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer closeDB()

	employeeSvc := employee.NewService(repo, nil, tx)
	m := metrics.New()

	grpcServer := server.New(cfg.Server.ListenAddr, grpchandler.NewEmployeeGrpcHandler(employeeSvc),
		grpc.ChainUnaryInterceptor(server.AccessLogInterceptor(), m.UnaryServerInterceptor()),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info(gctx, "gRPC server listening on %s", cfg.Server.ListenAddr)
		return grpcServer.Run(gctx)
	})

	if cfg.Server.HTTPListenAddr != "" {
		router := httphandler.NewRouter(employeeSvc, httphandler.RouterOptions{
			AllowOrigins: cfg.Server.CORSAllowOrigins,
			Metrics:      m,
		})
		gateway := server.NewHTTP(cfg.Server.HTTPListenAddr, router, cfg.Server.ShutdownTimeout)
		g.Go(func() error {
			logger.Info(gctx, "REST gateway listening on %s", cfg.Server.HTTPListenAddr)
			return gateway.Run(gctx)
		})
	}

	return g.Wait()
}

func openStorage(ctx context.Context, cfg config.DatabaseConfig) (employee.Repository, employee.TransactionManager, func(), error) {
	if cfg.Driver == config.DriverSQLite {
		db, err := sqlitedb.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return sqlite.NewEmployeeRepository(db), sqlitedb.NewTransactionManager(db), func() { _ = db.Close() }, nil
	}

	pool, err := pg.NewPool(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return postgres.NewEmployeeRepository(pool), pg.NewTransactionManager(pool), pool.Close, nil
}
