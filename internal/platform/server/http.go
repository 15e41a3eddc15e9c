package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HTTPServer は REST ゲートウェイのライフサイクルを管理します。
type HTTPServer struct {
	listenAddr      string
	echo            *echo.Echo
	shutdownTimeout time.Duration
}

// NewHTTP は e を listenAddr で公開する HTTPServer を返します。
func NewHTTP(listenAddr string, e *echo.Echo, shutdownTimeout time.Duration) *HTTPServer {
	e.HideBanner = true
	e.HidePort = true
	return &HTTPServer{listenAddr: listenAddr, echo: e, shutdownTimeout: shutdownTimeout}
}

// Run はゲートウェイを起動し、コンテキストがキャンセルされると Shutdown します。
func (s *HTTPServer) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は与えられたリスナーで待ち受けます。
func (s *HTTPServer) Serve(ctx context.Context, lis net.Listener) error {
	s.echo.Listener = lis

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start("")
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve HTTP: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown HTTP: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve HTTP: %w", err)
	}
	return nil
}
