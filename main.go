// Code generated by hertz generator.

package main

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/hertz-contrib/cors"
	prometheus "github.com/hertz-contrib/monitor-prometheus"
	"github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/xh-polaris/recruit-core-api/pkg/errorx"
	"github.com/xh-polaris/recruit-core-api/pkg/logs"
	"github.com/xh-polaris/recruit-core-api/pkg/safego"
	"github.com/xh-polaris/recruit-core-api/provider"
)

func main() {
	provider.Init()
	p := provider.Get()
	c := p.Config
	logs.SetLevel(c.Log.Level)

	tracer, cfg := tracing.NewServerTracer()
	h := server.New(
		server.WithHostPorts(c.ListenOn),
		server.WithTracer(prometheus.NewServerTracer(c.Metrics.Addr, c.Metrics.Path)),
		tracer,
	)
	h.Use(tracing.ServerMiddleware(cfg), cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-B3-TraceId"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 跨实例推送的订阅随服务关闭退出
	ctx, cancel := context.WithCancel(context.Background())
	safego.Go(ctx, func() {
		if err := p.Presence.Run(ctx); err != nil {
			logs.Errorf("[main] realtime presence stopped: %s", errorx.ErrorWithoutStack(err))
		}
	})
	h.OnShutdown = append(h.OnShutdown, func(context.Context) { cancel() })

	register(h)
	h.Spin()
}
