// Package bedrock implements embed.Embedder against AWS Bedrock's
// Titan Embeddings model, grounded in
// pkg/ai/bedrock.Provider: same config shape (region, model, daily
// budget limits) and same invoke-then-parse flow, narrowed to the
// single embeddings call this capability needs.
package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/kadegen/granolasync/internal/apperr"
)

// Config configures the Bedrock embedder.
type Config struct {
	Region             string
	EmbeddingModel     string // e.g. "amazon.titan-embed-text-v2:0"
	Dimensions         int
	MaxRequestsPerDay  int
	DailyBudgetDollars float64
}

// DefaultConfig returns sane defaults for the Titan v2 embeddings model.
func DefaultConfig() Config {
	return Config{
		Region:            "us-east-1",
		EmbeddingModel:    "amazon.titan-embed-text-v2:0",
		Dimensions:        1024,
		MaxRequestsPerDay: 10000,
	}
}

// Embedder calls Bedrock's InvokeModel for Titan embeddings.
type Embedder struct {
	cfg    Config
	client *bedrockruntime.Client

	mu            sync.Mutex
	dailyRequests int
	lastReset     time.Time
}

// New builds a Bedrock embedder, loading AWS configuration from the
// ambient default credential chain for cfg.Region.
func New(ctx context.Context, cfg Config) (*Embedder, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindEmbedding, "load AWS config for bedrock", err)
	}
	return &Embedder{
		cfg:       cfg,
		client:    bedrockruntime.NewFromConfig(awsCfg),
		lastReset: time.Now().UTC(),
	}, nil
}

func (e *Embedder) Dim() int { return e.cfg.Dimensions }

func (e *Embedder) EmbedPassage(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text)
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text)
}

type titanEmbedRequest struct {
	InputText string `json:"inputText"`
	Dimensions int   `json:"dimensions"`
	Normalize  bool  `json:"normalize"`
}

type titanEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
}

func (e *Embedder) embed(ctx context.Context, text string) ([]float32, error) {
	if err := e.checkAndRecordUsage(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(titanEmbedRequest{InputText: text, Dimensions: e.cfg.Dimensions, Normalize: true})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindEmbedding, "marshal titan embed request", err)
	}

	out, err := e.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(e.cfg.EmbeddingModel),
		Body:        payload,
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindEmbedding, "invoke bedrock titan embeddings model", err)
	}

	var parsed titanEmbedResponse
	if err := json.Unmarshal(out.Body, &parsed); err != nil {
		return nil, apperr.Wrap(apperr.KindEmbedding, "parse titan embed response", err)
	}
	if len(parsed.Embedding) != e.cfg.Dimensions {
		return nil, apperr.New(apperr.KindEmbedding, fmt.Sprintf("bedrock returned dimension %d, expected %d", len(parsed.Embedding), e.cfg.Dimensions))
	}

	return parsed.Embedding, nil
}

// checkAndRecordUsage enforces the daily request cap, resetting the
// counter at each new UTC day boundary.
func (e *Embedder) checkAndRecordUsage() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now().UTC()
	if now.YearDay() != e.lastReset.YearDay() || now.Year() != e.lastReset.Year() {
		e.dailyRequests = 0
		e.lastReset = now
	}

	if e.cfg.MaxRequestsPerDay > 0 && e.dailyRequests >= e.cfg.MaxRequestsPerDay {
		return apperr.New(apperr.KindEmbedding, "daily bedrock request budget exhausted")
	}
	e.dailyRequests++
	return nil
}
