package cron

import (
	"context"
	"sync"

	"modelhub/config"

	"github.com/google/wire"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewCron, NewPrewarmJob)

type Cron struct {
	logger     *zap.Logger
	conf       *config.Configuration
	server     *cron.Cron
	prewarmJob *PrewarmJob
	startup    sync.WaitGroup
}

// NewCron .
func NewCron(logger *zap.Logger, conf *config.Configuration, prewarmJob *PrewarmJob) *Cron {
	cronLogger := zapCronLogger{logger: logger}
	server := cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cronLogger),
		// 上一輪還沒跑完就跳過，避免同時多輪 prewarm
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	return &Cron{
		logger:     logger,
		conf:       conf,
		server:     server,
		prewarmJob: prewarmJob,
	}
}

func (c *Cron) Run() error {
	if spec := c.conf.Catalog.PrewarmCron; spec != "" {
		if _, err := c.server.AddJob(spec, c.prewarmJob); err != nil {
			return err
		}
		c.logger.Info("[Cron] catalog prewarm scheduled", zap.String("spec", spec))
		// 啟動時先跑一次
		c.startup.Add(1)
		go func() {
			defer c.startup.Done()
			c.prewarmJob.Run()
		}()
	}

	c.server.Start()
	return nil
}

// Stop 等待執行中的 job（含啟動時那一輪）結束，或 ctx 逾時
func (c *Cron) Stop(ctx context.Context) error {
	stopped := c.server.Stop()
	done := make(chan struct{})
	go func() {
		<-stopped.Done()
		c.startup.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// zapCronLogger 讓 robfig/cron 的內部 log 走 zap
type zapCronLogger struct {
	logger *zap.Logger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("[Cron] "+msg, zap.Any("kv", keysAndValues))
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("[Cron] "+msg, zap.Error(err), zap.Any("kv", keysAndValues))
}
