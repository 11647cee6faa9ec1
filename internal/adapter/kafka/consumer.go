package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/simaogato/healthflow-backend/internal/usecase/ingest"
)

const (
	defaultPollTimeout  = 5 * time.Second
	defaultRetryBackoff = time.Second
	maxRetryBackoff     = 30 * time.Second
)

// ConsumerConfig holds the connection settings for the device sample topic
type ConsumerConfig struct {
	Brokers      []string
	Topic        string
	GroupID      string
	PollTimeout  time.Duration
	// RetryBackoff is the first wait before retrying a failed import; it doubles up to 30s.
	RetryBackoff time.Duration
}

// SampleImporter is the part of the ingest service the consumer needs
type SampleImporter interface {
	ImportSamples(ctx context.Context, userID uuid.UUID, raws []ingest.RawSample) (*ingest.ImportResult, error)
}

// messageReader is satisfied by *kafka.Reader.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// SampleConsumer reads sample envelopes pushed by devices and stores them
// through the ingest service. Undecodable messages are logged and committed so
// a poison message never blocks the partition. A message whose import fails is
// retried with backoff and stays uncommitted until it is stored.
type SampleConsumer struct {
	cfg      ConsumerConfig
	reader   messageReader
	importer SampleImporter
	logger   *zap.Logger
	poll     time.Duration
	backoff  time.Duration
}

// NewSampleConsumer builds a consumer group reader for the configured topic
func NewSampleConsumer(cfg ConsumerConfig, importer SampleImporter, logger *zap.Logger) (*SampleConsumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, errors.New("sample topic must not be empty")
	}
	if strings.TrimSpace(cfg.GroupID) == "" {
		return nil, errors.New("consumer group must not be empty")
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       cfg.Topic,
		StartOffset: kafkago.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
	})

	return newSampleConsumer(cfg, reader, importer, logger), nil
}

func newSampleConsumer(cfg ConsumerConfig, reader messageReader, importer SampleImporter, logger *zap.Logger) *SampleConsumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	poll := cfg.PollTimeout
	if poll <= 0 {
		poll = defaultPollTimeout
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	return &SampleConsumer{cfg: cfg, reader: reader, importer: importer, logger: logger, poll: poll, backoff: backoff}
}

// Close shuts down the underlying reader
func (c *SampleConsumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Run consumes messages until the context is cancelled or the reader is closed
func (c *SampleConsumer) Run(ctx context.Context) error {
	c.logger.Info("sample consumer started",
		zap.String("topic", c.cfg.Topic),
		zap.String("group", c.cfg.GroupID),
		zap.Strings("brokers", c.cfg.Brokers),
		zap.Duration("poll_timeout", c.poll),
	)
	defer c.logger.Info("sample consumer stopped")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		fetchCtx, cancel := context.WithTimeout(ctx, c.poll)
		msg, err := c.reader.FetchMessage(fetchCtx)
		cancel()
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			if errors.Is(err, context.Canceled) {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				continue
			}
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, kafkago.ErrGroupClosed) {
				return nil
			}
			c.logger.Error("failed to fetch message", zap.Error(err))
			continue
		}

		if err := c.handleWithRetry(ctx, msg); err != nil {
			// Shutting down; the uncommitted message is redelivered to the group
			return err
		}

		commitCtx, commitCancel := context.WithTimeout(ctx, c.poll)
		if err := c.reader.CommitMessages(commitCtx, msg); err != nil {
			if !(errors.Is(err, context.Canceled) && ctx.Err() != nil) {
				c.logger.Error("failed to commit message", zap.Int64("offset", msg.Offset), zap.Error(err))
			}
		}
		commitCancel()
	}
}

// handleWithRetry calls handle until the message is done or ctx is cancelled
func (c *SampleConsumer) handleWithRetry(ctx context.Context, msg kafkago.Message) error {
	wait := c.backoff
	for !c.handle(ctx, msg) {
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait = min(wait*2, maxRetryBackoff)
	}
	return nil
}

// handle decodes and imports one message. It reports whether the message is
// done and may be committed: false means the import failed and must be retried.
func (c *SampleConsumer) handle(ctx context.Context, msg kafkago.Message) bool {
	userID, raws, err := decodeSampleMessage(msg.Value)
	if err != nil {
		c.logger.Warn("dropping undecodable message",
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return true
	}

	result, err := c.importer.ImportSamples(ctx, userID, raws)
	if err != nil {
		c.logger.Error("failed to import samples, will retry",
			zap.String("user_id", userID.String()),
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return false
	}

	fields := []zap.Field{
		zap.String("user_id", userID.String()),
		zap.Int("accepted", result.Accepted),
		zap.Int("skipped", result.Skipped),
		zap.Int64("offset", msg.Offset),
	}
	if len(result.Errors) > 0 {
		fields = append(fields, zap.Strings("errors", result.Errors))
	}
	c.logger.Debug("samples imported", fields...)
	return true
}

// sampleEnvelope is the payload devices publish. A message carries either a
// single sample inline or a batch under "samples".
type sampleEnvelope struct {
	UserID  string          `json:"userId"`
	Source  string          `json:"source"`
	Metric  string          `json:"metric"`
	Date    string          `json:"date"`
	Value   json.RawMessage `json:"value"`
	Samples []sampleRecord  `json:"samples"`
}

type sampleRecord struct {
	Metric string          `json:"metric"`
	Date   string          `json:"date"`
	Value  json.RawMessage `json:"value"`
	Source string          `json:"source"`
}

// decodeSampleMessage extracts the user and raw samples from a message value.
// Values may be JSON numbers or strings; the ingest service parses them.
func decodeSampleMessage(raw []byte) (uuid.UUID, []ingest.RawSample, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var env sampleEnvelope
	if err := dec.Decode(&env); err != nil {
		return uuid.Nil, nil, fmt.Errorf("decode sample payload: %w", err)
	}

	userID, err := uuid.Parse(strings.TrimSpace(env.UserID))
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("invalid userId: %w", err)
	}

	records := env.Samples
	if len(records) == 0 {
		if env.Metric == "" {
			return uuid.Nil, nil, errors.New("message carries no samples")
		}
		records = []sampleRecord{{Metric: env.Metric, Date: env.Date, Value: env.Value}}
	}

	raws := make([]ingest.RawSample, 0, len(records))
	for _, rec := range records {
		source := rec.Source
		if source == "" {
			source = env.Source
		}
		raws = append(raws, ingest.RawSample{
			Metric: rec.Metric,
			Date:   rec.Date,
			Value:  rawValue(rec.Value),
			Source: source,
		})
	}

	return userID, raws, nil
}

func rawValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
