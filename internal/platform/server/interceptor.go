package server

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ogurasousui/employee-directory/internal/platform/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AccessLogInterceptor はリクエスト ID をコンテキストのロガーに付与し、1 リクエスト 1 行のアクセスログを出力します。
func AccessLogInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx = logger.WithFields(ctx, map[string]any{
			"request_id": uuid.NewString(),
			"method":     info.FullMethod,
		})

		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		l := logger.FromContext(ctx)
		event := l.Info()
		switch code {
		case codes.OK, codes.NotFound, codes.InvalidArgument:
		default:
			event = l.Error().Err(err)
		}
		event.
			Str("code", code.String()).
			Dur("duration", time.Since(start)).
			Msg("grpc request")

		return resp, err
	}
}
