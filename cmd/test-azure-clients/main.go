// Command test-azure-clients checks the Azure OpenAI and Blob Storage credentials against the live services.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/vcscsvcscs/healthguide/internal/analytics"
	"github.com/vcscsvcscs/healthguide/internal/azure"
	"github.com/vcscsvcscs/healthguide/internal/pdf"
	"github.com/vcscsvcscs/healthguide/internal/scoring"
	"github.com/vcscsvcscs/healthguide/internal/service"
	"github.com/vcscsvcscs/healthguide/pkg/model"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	_ = godotenv.Load()

	openaiEndpoint := os.Getenv("AZURE_OPENAI_ENDPOINT")
	openaiKey := os.Getenv("AZURE_OPENAI_API_KEY")
	openaiDeployment := os.Getenv("AZURE_OPENAI_DEPLOYMENT")

	storageAccountName := os.Getenv("AZURE_STORAGE_ACCOUNT_NAME")
	storageAccountKey := os.Getenv("AZURE_STORAGE_ACCOUNT_KEY")
	storageEndpoint := os.Getenv("AZURE_STORAGE_BLOB_ENDPOINT")
	reportContainer := os.Getenv("AZURE_STORAGE_REPORT_CONTAINER")
	if reportContainer == "" {
		reportContainer = "health-reports"
	}

	if openaiEndpoint == "" || openaiKey == "" || openaiDeployment == "" {
		logger.Fatal("Missing Azure OpenAI credentials. Set AZURE_OPENAI_ENDPOINT, AZURE_OPENAI_API_KEY, and AZURE_OPENAI_DEPLOYMENT")
	}

	if storageAccountName == "" || storageAccountKey == "" {
		logger.Fatal("Missing Azure Storage credentials. Set AZURE_STORAGE_ACCOUNT_NAME and AZURE_STORAGE_ACCOUNT_KEY")
	}

	ctx := context.Background()
	failed := false

	logger.Info("=== Testing symptom extraction ===")
	if err := testSymptomExtraction(ctx, openaiEndpoint, openaiKey, openaiDeployment, logger); err != nil {
		logger.Error("Symptom extraction test failed", zap.Error(err))
		failed = true
	} else {
		logger.Info("Symptom extraction test passed")
	}

	logger.Info("=== Testing report storage ===")
	if err := testReportStorage(ctx, storageAccountName, storageAccountKey, storageEndpoint, reportContainer, logger); err != nil {
		logger.Error("Report storage test failed", zap.Error(err))
		failed = true
	} else {
		logger.Info("Report storage test passed")
	}

	if failed {
		os.Exit(1)
	}
	logger.Info("=== All tests completed ===")
}

func testSymptomExtraction(ctx context.Context, endpoint, apiKey, deployment string, logger *zap.Logger) error {
	client, err := azure.NewOpenAIClient(endpoint, apiKey, deployment, logger)
	if err != nil {
		return fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	extractor := service.NewSymptomExtractor(client, logger)

	messages := []string{
		"my head is pounding and I feel hot for 3 days",
		"I keep sneezing and my nose is runny",
	}

	for _, message := range messages {
		extracted, err := extractor.ExtractSymptoms(ctx, message)
		if err != nil {
			return err
		}
		if len(extracted.Symptoms) == 0 {
			return fmt.Errorf("no symptoms extracted from %q", message)
		}

		fields := []zap.Field{zap.String("message", message), zap.Strings("symptoms", extracted.Symptoms)}
		if extracted.DurationDays != nil {
			fields = append(fields, zap.Int("duration_days", *extracted.DurationDays))
		}
		logger.Info("Symptoms extracted", fields...)
	}

	return nil
}

func testReportStorage(ctx context.Context, accountName, accountKey, endpoint, container string, logger *zap.Logger) error {
	client, err := azure.NewBlobStorageClient(accountName, accountKey, endpoint, container, logger)
	if err != nil {
		return fmt.Errorf("failed to create Blob Storage client: %w", err)
	}

	report := sampleReport(time.Now().UTC())
	data, err := pdf.NewPDFGenerator(logger).Generate(report, "Storage Check")
	if err != nil {
		return fmt.Errorf("failed to render sample report: %w", err)
	}

	userID, reportID := uuid.NewString(), uuid.NewString()
	logger.Info("Testing report upload", zap.String("report_id", reportID), zap.Int("size_bytes", len(data)))

	blobName, err := client.UploadReport(ctx, userID, reportID, data)
	if err != nil {
		return fmt.Errorf("report upload failed: %w", err)
	}
	logger.Info("Report uploaded successfully", zap.String("blob_name", blobName))

	downloaded, err := client.DownloadReport(ctx, blobName)
	if err != nil {
		return fmt.Errorf("report download failed: %w", err)
	}
	if !bytes.Equal(downloaded, data) {
		return fmt.Errorf("downloaded report doesn't match uploaded report")
	}
	logger.Info("Report downloaded and verified successfully", zap.Int("size_bytes", len(downloaded)))

	if err := client.DeleteReport(ctx, blobName); err != nil {
		return fmt.Errorf("report delete failed: %w", err)
	}
	logger.Info("Report deleted", zap.String("blob_name", blobName))

	return nil
}

// sampleReport builds a week of synthetic entries ending today
func sampleReport(now time.Time) model.Report {
	today := now.Format(model.DateLayout)
	entries := make(map[string]model.HealthEntry)
	for i := 0; i < 7; i++ {
		date := analytics.AddDays(today, -i)
		metrics := model.DailyMetrics{
			SleepHours:   6.5 + float64(i%3),
			Exercise:     model.Exercise{Minutes: 10 * i, Type: model.ExerciseCardio},
			Steps:        4000 + 1000*i,
			WaterGlasses: 4 + i%5,
			Meals:        model.Meals{Breakfast: i%2 == 0, Lunch: true, Dinner: true},
		}
		entries[date] = model.HealthEntry{Date: date, Metrics: metrics, Score: scoring.ComputeScore(metrics)}
	}
	return analytics.GenerateReport(entries, analytics.AddDays(today, -6), today, now)
}
