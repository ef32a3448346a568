package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/brandonlacoste9-tech/Koloni/application/ports/outbound"
	"github.com/brandonlacoste9-tech/Koloni/domain"
	"github.com/redis/go-redis/v9"
)

const (
	jobKeyPrefix = "job:"
	pendingKey   = "video:planning"

	// updateRetries bounds the optimistic-lock retry loop. A job is only
	// ever written by its own pipeline runner, so contention is rare.
	updateRetries = 5
)

type redisJobStore struct {
	logger outbound.LoggerPort
	rdb    *redis.Client
}

// NewRedisJobStore persists each job as a flat hash under job:<id> and the
// pending dispatch queue as the video:planning list.
func NewRedisJobStore(logger outbound.LoggerPort, rdb *redis.Client) outbound.JobStorePort {
	return &redisJobStore{
		logger: logger,
		rdb:    rdb,
	}
}

func jobKey(id string) string {
	return jobKeyPrefix + id
}

func (s *redisJobStore) Create(ctx context.Context, job domain.Job) error {
	created, err := s.rdb.HSetNX(ctx, jobKey(job.ID), "id", job.ID).Result()
	if err != nil {
		return fmt.Errorf("redis create: %w", err)
	}
	if !created {
		return domain.ErrJobExists
	}

	fields, err := jobToFields(job)
	if err != nil {
		return err
	}
	if err := s.rdb.HSet(ctx, jobKey(job.ID), fields).Err(); err != nil {
		return fmt.Errorf("redis create: %w", err)
	}
	return nil
}

func (s *redisJobStore) Get(ctx context.Context, id string) (domain.Job, error) {
	raw, err := s.rdb.HGetAll(ctx, jobKey(id)).Result()
	if err != nil {
		return domain.Job{}, fmt.Errorf("redis get: %w", err)
	}
	if len(raw) == 0 {
		return domain.Job{}, domain.ErrJobNotFound
	}
	return jobFromFields(raw)
}

// Update loads the record, merges through domain.Job.Apply and writes it
// back under WATCH, so a partial merge is atomic and backward moves are
// rejected centrally.
func (s *redisJobStore) Update(ctx context.Context, id string, update domain.JobUpdate) error {
	key := jobKey(id)

	txn := func(tx *redis.Tx) error {
		raw, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return err
		}
		if len(raw) == 0 {
			return domain.ErrJobNotFound
		}

		job, err := jobFromFields(raw)
		if err != nil {
			return err
		}
		if err := job.Apply(update); err != nil {
			return err
		}

		fields, err := jobToFields(job)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, fields)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < updateRetries; attempt++ {
		err := s.rdb.Watch(ctx, txn, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("redis update: too much contention on job %s", id)
}

func (s *redisJobStore) Enqueue(ctx context.Context, id string) error {
	if err := s.rdb.LPush(ctx, pendingKey, id).Err(); err != nil {
		return fmt.Errorf("redis enqueue: %w", err)
	}
	return nil
}

func (s *redisJobStore) Dequeue(ctx context.Context) (string, error) {
	res, err := s.rdb.BRPop(ctx, 0, pendingKey).Result()
	if err != nil {
		return "", err
	}
	if len(res) != 2 {
		return "", fmt.Errorf("redis dequeue: unexpected reply %v", res)
	}
	return res[1], nil
}

func (s *redisJobStore) QueueLength(ctx context.Context) (int64, error) {
	length, err := s.rdb.LLen(ctx, pendingKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis queue length: %w", err)
	}
	return length, nil
}

func jobToFields(job domain.Job) (map[string]interface{}, error) {
	fields := map[string]interface{}{
		"id":                  job.ID,
		"owner_id":            job.OwnerID,
		"prompt":              job.Prompt,
		"campaign_id":         job.CampaignID,
		"duration_seconds":    strconv.Itoa(job.DurationSeconds),
		"style":               job.Style,
		"brand_guidelines_id": job.BrandGuidelinesID,
		"status":              string(job.Status),
		"current_stage":       string(job.Stage),
		"progress":            strconv.Itoa(job.Progress),
		"engine_job_id":       job.EngineJobID,
		"video_url":           job.VideoURL,
		"error":               job.Error,
		"error_stage":         string(job.ErrorStage),
		"created_at":          formatTime(job.CreatedAt),
		"completed_at":        formatTime(job.CompletedAt),
	}

	jsonFields := map[string]any{
		"voice_settings":       job.Voice,
		"editing_instructions": job.EditingInstructions,
		"scene_plan":           job.ScenePlan,
		"workflow_plan":        job.WorkflowPlan,
		"audio_urls":           job.AudioURLs,
		"warnings":             job.Warnings,
	}
	for name, value := range jsonFields {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		fields[name] = string(encoded)
	}

	return fields, nil
}

func jobFromFields(raw map[string]string) (domain.Job, error) {
	job := domain.Job{
		ID:                raw["id"],
		OwnerID:           raw["owner_id"],
		Prompt:            raw["prompt"],
		CampaignID:        raw["campaign_id"],
		Style:             raw["style"],
		BrandGuidelinesID: raw["brand_guidelines_id"],
		Status:            domain.JobStatus(raw["status"]),
		Stage:             domain.JobStage(raw["current_stage"]),
		EngineJobID:       raw["engine_job_id"],
		VideoURL:          raw["video_url"],
		Error:             raw["error"],
		ErrorStage:        domain.JobStage(raw["error_stage"]),
	}

	if v := raw["duration_seconds"]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return domain.Job{}, fmt.Errorf("decode duration_seconds: %w", err)
		}
		job.DurationSeconds = n
	}
	if v := raw["progress"]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return domain.Job{}, fmt.Errorf("decode progress: %w", err)
		}
		job.Progress = n
	}

	job.CreatedAt = parseTime(raw["created_at"])
	job.CompletedAt = parseTime(raw["completed_at"])

	jsonFields := map[string]any{
		"voice_settings":       &job.Voice,
		"editing_instructions": &job.EditingInstructions,
		"scene_plan":           &job.ScenePlan,
		"workflow_plan":        &job.WorkflowPlan,
		"audio_urls":           &job.AudioURLs,
		"warnings":             &job.Warnings,
	}
	for name, target := range jsonFields {
		encoded := raw[name]
		if encoded == "" || encoded == "null" {
			continue
		}
		if err := json.Unmarshal([]byte(encoded), target); err != nil {
			return domain.Job{}, fmt.Errorf("decode %s: %w", name, err)
		}
	}

	return job, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
