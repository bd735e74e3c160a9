package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"modelhub/config"
	"modelhub/internal/cron"
	"modelhub/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RuntimeInfo struct {
	Env       string        `json:"env"`
	Name      string        `json:"name"`
	Version   string        `json:"version"`
	GoVersion string        `json:"go_version"`
	StartAt   time.Time     `json:"start_at"`
	Uptime    time.Duration `json:"uptime"`
}

type App struct {
	conf          *config.Configuration
	logger        *zap.Logger
	cronSrv       *cron.Cron
	Router        *gin.Engine
	httpSrv       *http.Server
	healthService *service.HealthService

	startAt time.Time   // 程式啟動時間（非環境變數）
	appInfo RuntimeInfo // 版本/環境快照（來源 = conf.App）
}

func newHttpServer(
	conf *config.Configuration,
	router *gin.Engine,
) *http.Server {
	return &http.Server{
		Addr:              ":" + strconv.FormatUint(uint64(conf.App.Port), 10),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// newHttpClient 呼叫供應商 list API 用；逾時由每個 provider 的 ctx 控制
func newHttpClient() *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          50,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	return &http.Client{Transport: transport}
}

func newApp(
	conf *config.Configuration,
	logger *zap.Logger,
	router *gin.Engine,
	httpSrv *http.Server,
	healthService *service.HealthService,
	cronSrv *cron.Cron,
) *App {
	startAt := time.Now()
	return &App{
		conf:          conf,
		logger:        logger,
		Router:        router,
		httpSrv:       httpSrv,
		healthService: healthService,
		cronSrv:       cronSrv,
		startAt:       startAt,
		appInfo: RuntimeInfo{
			Env:       conf.App.Env,
			Name:      conf.App.Name,
			Version:   conf.App.Version,
			GoVersion: runtime.Version(),
			StartAt:   startAt,
		},
	}
}

func (a *App) Run() error {
	// 1) 啟動時寫入版本/環境資訊
	info := a.appInfo
	a.logger.Info("app runtime info",
		zap.String("env", info.Env),
		zap.String("name", info.Name),
		zap.String("version", info.Version),
		zap.String("go_version", info.GoVersion),
		zap.Time("start_at", info.StartAt),
	)

	// 2) /version：回傳 JSON（含 uptime）；X-App-Version 標頭由 router 統一加上
	if a.Router != nil {
		a.Router.GET("/version", func(c *gin.Context) {
			resp := a.appInfo
			resp.Uptime = time.Since(a.startAt)
			c.JSON(http.StatusOK, resp)
		})
	}

	// 3) 啟動 cron（含 prewarm）
	if err := a.cronSrv.Run(); err != nil {
		return err
	}
	a.logger.Info("cron server started")

	// 4) 啟動 http server
	if a.httpSrv != nil {
		ln, err := net.Listen("tcp", a.httpSrv.Addr)
		if err != nil {
			return err
		}
		go func() {
			if err := a.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("http server stopped", zap.Error(err))
			}
		}()
		a.logger.Info("http server started", zap.String("addr", a.httpSrv.Addr))
	}

	if a.healthService != nil {
		a.healthService.SetReady(true)
	}
	return nil
}

func (a *App) Close(ctx context.Context) error {
	if a.healthService != nil {
		a.healthService.SetReady(false)
	}

	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(ctx); err != nil {
			return err
		}
		a.logger.Info("http server has been stop")
	}

	if a.cronSrv == nil {
		return nil
	}

	if err := a.cronSrv.Stop(ctx); err != nil {
		return err
	}
	a.logger.Info("cron server has been stop")

	return nil
}

func (a *App) Stop(ctx context.Context) error {
	return a.Close(ctx)
}
