package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// maxExtractedSymptoms bounds how many keywords a model reply may contribute
const maxExtractedSymptoms = 8

// JSONCompleter asks a language model for a JSON answer
type JSONCompleter interface {
	CompleteJSON(ctx context.Context, system, user string) (string, error)
}

// ExtractedSymptoms is the structured answer expected from the model
type ExtractedSymptoms struct {
	Symptoms     []string `json:"symptoms"`
	DurationDays *int     `json:"duration_days,omitempty"`
}

// SymptomExtractor turns a free-text description into plain symptom keywords using Azure OpenAI
type SymptomExtractor struct {
	client JSONCompleter
	logger *zap.Logger
}

// NewSymptomExtractor creates a new SymptomExtractor
func NewSymptomExtractor(client JSONCompleter, logger *zap.Logger) *SymptomExtractor {
	return &SymptomExtractor{
		client: client,
		logger: logger,
	}
}

// ExtractSymptoms returns lower-cased symptom keywords found in message
func (e *SymptomExtractor) ExtractSymptoms(ctx context.Context, message string) (*ExtractedSymptoms, error) {
	response, err := e.client.CompleteJSON(ctx, extractionPrompt, message)
	if err != nil {
		e.logger.Error("symptom extraction failed", zap.Error(err))
		return nil, fmt.Errorf("symptom extraction failed: %w", err)
	}

	extracted, err := parseExtractedSymptoms(response)
	if err != nil {
		e.logger.Error("failed to parse extraction response",
			zap.Error(err),
			zap.String("response", response),
		)
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}

	e.logger.Debug("symptoms extracted", zap.Strings("symptoms", extracted.Symptoms))
	return extracted, nil
}

// Rephrase renders extracted symptoms as a message the rule matcher understands
func (x *ExtractedSymptoms) Rephrase() string {
	if x == nil || len(x.Symptoms) == 0 {
		return ""
	}
	text := "I have " + strings.Join(x.Symptoms, ", ")
	if x.DurationDays != nil && *x.DurationDays > 0 {
		text += fmt.Sprintf(" for %d days", *x.DurationDays)
	}
	return text
}

const extractionPrompt = `You extract symptoms from a patient's description of how they feel.

Return valid JSON of the form:
{
  "symptoms": ["short lower-case symptom names, e.g. fever, cough, headache, sore throat"],
  "duration_days": number of days the symptoms have lasted, or null if not mentioned
}

Rules:
- Use common medical symptom names, not the patient's wording
- Never guess a diagnosis
- Return an empty list when no symptom is described
- Return ONLY valid JSON, no additional text`

func parseExtractedSymptoms(response string) (*ExtractedSymptoms, error) {
	// models sometimes wrap JSON in a markdown fence
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	var data ExtractedSymptoms
	if err := json.Unmarshal([]byte(response), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	symptoms := make([]string, 0, len(data.Symptoms))
	for _, s := range uniqueTrimmed(data.Symptoms) {
		symptoms = append(symptoms, strings.ToLower(s))
		if len(symptoms) == maxExtractedSymptoms {
			break
		}
	}
	data.Symptoms = symptoms

	if data.DurationDays != nil && *data.DurationDays < 0 {
		data.DurationDays = nil
	}

	return &data, nil
}
