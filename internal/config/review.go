package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvReviewChunkSize   = "REDLINE_REVIEW_CHUNK_SIZE"
	EnvReviewWorkerCount = "REDLINE_REVIEW_WORKER_COUNT"
	EnvReviewTaskTimeout = "REDLINE_REVIEW_TASK_TIMEOUT"
)

// ReviewConfig holds document review pipeline parameters.
type ReviewConfig struct {
	// ChunkSize is the number of paragraphs reviewed per chunk.
	ChunkSize int `toml:"chunk_size"`
	// WorkerCount caps concurrent review tasks per chunk. Zero means
	// one worker per CPU.
	WorkerCount int `toml:"worker_count"`
	// TaskTimeout bounds a single model call.
	TaskTimeout string `toml:"task_timeout"`
	// Agent configures the model used for review tasks.
	Agent gaconfig.AgentConfig `toml:"agent"`
}

// TaskTimeoutDuration returns TaskTimeout as a time.Duration.
func (c *ReviewConfig) TaskTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.TaskTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation
// for the review config and its nested agent config.
func (c *ReviewConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := FinalizeAgent(&c.Agent); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *ReviewConfig) Merge(overlay *ReviewConfig) {
	if overlay.ChunkSize != 0 {
		c.ChunkSize = overlay.ChunkSize
	}
	if overlay.WorkerCount != 0 {
		c.WorkerCount = overlay.WorkerCount
	}
	if overlay.TaskTimeout != "" {
		c.TaskTimeout = overlay.TaskTimeout
	}
	c.Agent.Merge(&overlay.Agent)
}

func (c *ReviewConfig) loadDefaults() {
	if c.ChunkSize == 0 {
		c.ChunkSize = 64
	}
	if c.TaskTimeout == "" {
		c.TaskTimeout = "5m"
	}
	if c.Agent.Name == "" {
		c.Agent.Name = "redline-review"
	}
}

func (c *ReviewConfig) loadEnv() {
	if v := os.Getenv(EnvReviewChunkSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.ChunkSize = n
		}
	}
	if v := os.Getenv(EnvReviewWorkerCount); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.WorkerCount = n
		}
	}
	if v := os.Getenv(EnvReviewTaskTimeout); v != "" {
		c.TaskTimeout = v
	}
}

func (c *ReviewConfig) validate() error {
	if c.ChunkSize < 1 {
		return fmt.Errorf("chunk_size must be positive")
	}
	if c.WorkerCount < 0 {
		return fmt.Errorf("worker_count must not be negative")
	}
	if _, err := time.ParseDuration(c.TaskTimeout); err != nil {
		return fmt.Errorf("invalid task_timeout: %w", err)
	}
	return nil
}
