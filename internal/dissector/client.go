package dissector

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	"github.com/mir-sim/backend/internal/models"
)

// LLMClient is the interface both dissector implementations satisfy.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// Dissector wraps an LLMClient and classifies exam questions one at a
// time.
type Dissector struct {
	llm   LLMClient
	model string
}

func NewDissector() *Dissector {
	var llm LLMClient
	model := "mock"

	if os.Getenv("MOCK_DISSECTOR") == "true" {
		llm = NewMockClient()
		log.Println("Dissector using mock data")
	} else {
		model = os.Getenv("ANTHROPIC_MODEL")
		if model == "" {
			model = "claude-opus-4-5-20251101"
		}
		llm = NewAPIClient(model)
		log.Println("Dissector using Anthropic API:", model)
	}

	return &Dissector{llm: llm, model: model}
}

func (d *Dissector) ModelName() string {
	return d.model
}

// Classify tags one exam question with the full dissection taxonomy.
func (d *Dissector) Classify(ctx context.Context, year int, q models.Question) (*models.DissectionQuestion, *LLMResponse, error) {
	systemPrompt := ClassifySystemPrompt()
	userPrompt := BuildClassifyUserPrompt(q)

	resp, err := d.llm.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, nil, fmt.Errorf("classify question %d: %w", q.Number, err)
	}

	result, err := ParseClassification(resp.Content)
	if err != nil {
		return nil, resp, fmt.Errorf("parse classification for question %d: %w", q.Number, err)
	}

	return buildDissectionQuestion(year, q, result), resp, nil
}

// buildDissectionQuestion merges the source question with the model's
// classification into a dissection record.
func buildDissectionQuestion(year int, q models.Question, c *Classification) *models.DissectionQuestion {
	answers := make([]models.DissectionAnswer, len(q.Answers))
	for i, a := range q.Answers {
		answers[i] = models.DissectionAnswer{
			Order:     a.Order,
			Text:      a.Text,
			IsCorrect: a.IsCorrect,
		}
		if i < len(c.DistractorAnalysis) && c.DistractorAnalysis[i] != "" {
			analysis := c.DistractorAnalysis[i]
			answers[i].DistractorAnalysis = &analysis
		}
	}

	dq := &models.DissectionQuestion{
		Year:               year,
		Number:             q.Number,
		Source:             models.SourceMIROficial,
		Text:               q.Text,
		TextHTML:           q.TextHTML,
		TextSummary:        c.TextSummary,
		Images:             q.Images,
		Answers:            answers,
		CorrectAnswerIndex: q.CorrectAnswerIndex,
		Specialty:          c.Specialty,
		Subspecialty:       c.Subspecialty,
		Topic:              c.Topic,
		QuestionType:       c.QuestionType,
		StemStyle:          c.StemStyle,
		Setting:            c.Setting,
		Population:         c.Population,
		ClinicalTask:       c.ClinicalTask,
		CognitiveLevel:     c.CognitiveLevel,
		ReasoningType:      c.ReasoningType,
		MirTipologia:       c.MirTipologia,
		Snomed:             c.Snomed,
		ICD10:              c.ICD10,
		ATC:                c.ATC,
		IsActive:           true,
	}
	if c.Explanation != "" {
		explanation := c.Explanation
		dq.Explanation = &explanation
	}
	if c.ImageType != nil {
		dq.ImageType = c.ImageType
	}
	return dq
}

// ── APIClient — Anthropic SDK (Production) ─────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
}

func NewAPIClient(model string) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &APIClient{client: &client, model: model}
}

func (c *APIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   4096,
		Temperature: param.NewOpt(0.2),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("Retrying Anthropic API call in %v (attempt %d)", sleepDuration, attempt+1)
			time.Sleep(sleepDuration)
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("Anthropic API attempt %d failed: %v", attempt+1, err)
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── MockClient — Local Development ─────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	return &LLMResponse{
		Content:      mockClassificationJSON,
		PromptTokens: 900,
		OutputTokens: 400,
	}, nil
}

const mockClassificationJSON = `{
  "specialty": "Cardiología",
  "subspecialty": "Cardiopatía isquémica",
  "topic": "Síndrome coronario agudo",
  "textSummary": "[Mock] Paciente con dolor torácico y elevación del ST.",
  "explanation": "[Mock] La elevación del ST obliga a reperfusión urgente.",
  "questionType": "caso_clinico",
  "stemStyle": "siguiente_paso",
  "imageType": null,
  "setting": "urgencias",
  "population": "adulto",
  "clinicalTask": "manejo_inicial",
  "cognitiveLevel": "aplicacion",
  "reasoningType": "algoritmo",
  "mirTipologia": "urgencia",
  "snomed": {
    "clinicalFocus": [{"code": "57054005", "display": "Infarto agudo de miocardio"}],
    "context": [],
    "findings": [{"code": "76388001", "display": "Elevación del segmento ST"}],
    "procedures": [{"code": "415070008", "display": "Angioplastia coronaria percutánea"}],
    "pharmaceuticals": [],
    "anatomy": [{"code": "80891009", "display": "Corazón"}]
  },
  "icd10": ["I21.0"],
  "atc": [],
  "distractorAnalysis": [
    "[Mock] Retrasa la reperfusión sin beneficio.",
    "",
    "[Mock] Indicado solo si no hay hemodinámica disponible.",
    "[Mock] Contraindicado en este contexto."
  ]
}`
