package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"modelhub/internal/core"
	client "modelhub/internal/database/client"
	"modelhub/internal/telemetry"

	"github.com/redis/go-redis/v9"
)

// RefreshLimitRepository 以固定視窗倒數計數，限制同一個 client 對同一個 provider 的強制刷新次數
type RefreshLimitRepository struct {
	trace  *telemetry.Trace
	client *redis.Client
}

func NewRefreshLimitRepository(trace *telemetry.Trace, client *client.RedisClient) *RefreshLimitRepository {
	return &RefreshLimitRepository{trace: trace, client: client.Client()}
}

var (
	ErrRefreshLimitExceeded = errors.New("refresh limit exceeded")
	ErrRedisDisabled        = errors.New("redis disabled")
)

// Enabled Redis 未設定時整個節流關閉
func (repository *RefreshLimitRepository) Enabled() bool {
	return repository != nil && repository.client != nil
}

// Consume 消耗一次配額；自動處理新週期初始化與剩餘 TTL。
// 回傳：remaining（剩餘次數）、ttlSec（剩餘秒數）、err（若超限為 ErrRefreshLimitExceeded）
func (repository *RefreshLimitRepository) Consume(
	ctx context.Context,
	clientKey string,
	provider core.ProviderName,
	limitCount int,
	windowSeconds int64,
) (remainingCount int, timeToLiveSeconds int64, returnedError error) {
	if !repository.Enabled() {
		return 0, 0, ErrRedisDisabled
	}

	ctx, span, endSpan := repository.trace.WithSpan(ctx)
	defer func() {
		// 超限是正常結果，不標記為 span error
		if errors.Is(returnedError, ErrRefreshLimitExceeded) {
			endSpan(nil)
			return
		}
		endSpan(returnedError)
	}()

	traceMetadata := core.TraceRateLimitMeta{
		ClientKey: clientKey,
		Provider:  string(provider),
		Limit:     limitCount,
		WindowSec: windowSeconds,
		Op:        "consume",
	}
	repository.trace.ApplyTraceAttributes(span, traceMetadata)

	redisKey := repository.buildKey(clientKey, provider)
	expirationDuration := time.Duration(windowSeconds) * time.Second

	// 嘗試初始化：SETNX key value EX expiration
	wasSet, setError := repository.client.SetNX(
		ctx,
		redisKey,
		limitCount-1, // 本次消耗一次，所以初始值 = 總額-1
		expirationDuration,
	).Result()
	if setError != nil {
		returnedError = setError
		return 0, 0, returnedError
	}
	if wasSet {
		remainingCount = limitCount - 1
		if remainingCount < 0 {
			remainingCount = 0
			returnedError = ErrRefreshLimitExceeded
		}
		timeToLiveSeconds = windowSeconds
		traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
		repository.trace.ApplyTraceAttributes(span, traceMetadata)
		return remainingCount, timeToLiveSeconds, returnedError
	}

	// Key 已存在 → DECR 扣一次，順便查 TTL
	pipeline := repository.client.TxPipeline()
	decrCommand := pipeline.Decr(ctx, redisKey)
	ttlCommand := pipeline.TTL(ctx, redisKey)
	if _, execError := pipeline.Exec(ctx); execError != nil {
		returnedError = execError
		return 0, 0, returnedError
	}
	newValue := decrCommand.Val()
	if ttlDuration := ttlCommand.Val(); ttlDuration > 0 {
		timeToLiveSeconds = int64(ttlDuration.Seconds())
	}

	if newValue < 0 {
		remainingCount = 0
		traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
		repository.trace.ApplyTraceAttributes(span, traceMetadata)
		returnedError = ErrRefreshLimitExceeded
		return remainingCount, timeToLiveSeconds, returnedError
	}

	remainingCount = int(newValue)
	traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
	repository.trace.ApplyTraceAttributes(span, traceMetadata)
	return remainingCount, timeToLiveSeconds, nil
}

// GetCurrent 查詢目前「剩餘次數」與剩餘 TTL（秒）。尚無紀錄時回傳 limitCount, 0
func (repository *RefreshLimitRepository) GetCurrent(
	ctx context.Context,
	clientKey string,
	provider core.ProviderName,
	limitCount int,
) (remainingCount int, timeToLiveSeconds int64, returnedError error) {
	if !repository.Enabled() {
		return 0, 0, ErrRedisDisabled
	}

	ctx, span, endSpan := repository.trace.WithSpan(ctx)
	defer func() { endSpan(returnedError) }()

	traceMetadata := core.TraceRateLimitMeta{
		ClientKey: clientKey,
		Provider:  string(provider),
		Limit:     limitCount,
		Op:        "get",
	}
	repository.trace.ApplyTraceAttributes(span, traceMetadata)

	redisKey := repository.buildKey(clientKey, provider)

	// 用 pipeline 併發 GET + TTL 減少往返
	pipeline := repository.client.Pipeline()
	getCommand := pipeline.Get(ctx, redisKey)
	ttlCommand := pipeline.TTL(ctx, redisKey)
	if _, execError := pipeline.Exec(ctx); execError != nil && !errors.Is(execError, redis.Nil) {
		returnedError = execError
		return 0, 0, returnedError
	}

	value, getError := getCommand.Int()
	if errors.Is(getError, redis.Nil) {
		traceMetadata.Remaining = limitCount
		repository.trace.ApplyTraceAttributes(span, traceMetadata)
		return limitCount, 0, nil
	}
	if getError != nil {
		returnedError = getError
		return 0, 0, returnedError
	}

	if ttlDuration := ttlCommand.Val(); ttlDuration > 0 {
		timeToLiveSeconds = int64(ttlDuration.Seconds())
	}

	remainingCount = value // value 就是剩餘（倒數語意）
	if remainingCount < 0 {
		remainingCount = 0
	}

	traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
	repository.trace.ApplyTraceAttributes(span, traceMetadata)
	return remainingCount, timeToLiveSeconds, nil
}

// Reset 刪除配額 key（管理用）
func (repository *RefreshLimitRepository) Reset(
	ctx context.Context,
	clientKey string,
	provider core.ProviderName,
) (returnedError error) {
	if !repository.Enabled() {
		return ErrRedisDisabled
	}

	ctx, span, endSpan := repository.trace.WithSpan(ctx)
	defer func() { endSpan(returnedError) }()

	repository.trace.ApplyTraceAttributes(span, core.TraceRateLimitMeta{
		ClientKey: clientKey,
		Provider:  string(provider),
		Op:        "reset",
	})

	returnedError = repository.client.Del(ctx, repository.buildKey(clientKey, provider)).Err()
	return returnedError
}

// buildKey modelhub:catalog_refresh:<clientKey>:<provider>
func (repository *RefreshLimitRepository) buildKey(clientKey string, provider core.ProviderName) string {
	return fmt.Sprintf("%s:%s:%s:%s", core.RedisKeyServerName, core.RedisKeyRefreshLimit, clientKey, provider)
}
