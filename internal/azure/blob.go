package azure

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"go.uber.org/zap"
)

const reportPrefix = "reports"

// ReportStorage archives rendered report PDFs
type ReportStorage interface {
	UploadReport(ctx context.Context, userID, reportID string, data []byte) (string, error)
	DownloadReport(ctx context.Context, blobName string) ([]byte, error)
	DeleteReport(ctx context.Context, blobName string) error
}

var _ ReportStorage = (*BlobStorageClient)(nil)

// ReportBlobName is the blob path of an archived report
func ReportBlobName(userID, reportID string) string {
	return fmt.Sprintf("%s/%s/%s.pdf", reportPrefix, userID, reportID)
}

// BlobStorageClient stores report PDFs in an Azure Blob Storage container
type BlobStorageClient struct {
	client        *azblob.Client
	containerName string
	logger        *zap.Logger
}

// NewBlobStorageClient creates a new Azure Blob Storage client. An empty endpoint
// selects the public account URL; a custom one points at Azurite or a private endpoint.
func NewBlobStorageClient(accountName, accountKey, endpoint, containerName string, logger *zap.Logger) (*BlobStorageClient, error) {
	if accountName == "" || accountKey == "" || containerName == "" {
		return nil, fmt.Errorf("accountName, accountKey, and containerName are required")
	}

	serviceURL := endpoint
	if serviceURL == "" {
		serviceURL = fmt.Sprintf("https://%s.blob.core.windows.net/", accountName)
	}
	if !strings.HasSuffix(serviceURL, "/") {
		serviceURL += "/"
	}

	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create shared key credential: %w", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	return &BlobStorageClient{
		client:        client,
		containerName: containerName,
		logger:        logger,
	}, nil
}

// UploadReport uploads a report PDF and returns its blob name
func (c *BlobStorageClient) UploadReport(ctx context.Context, userID, reportID string, data []byte) (string, error) {
	blobName := ReportBlobName(userID, reportID)

	_, err := c.client.UploadBuffer(ctx, c.containerName, blobName, data, &azblob.UploadBufferOptions{
		Metadata: map[string]*string{
			"contenttype": toPtr("application/pdf"),
			"userid":      toPtr(userID),
		},
	})
	if err != nil {
		c.logger.Error("failed to upload report",
			zap.String("blob_name", blobName),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to upload report: %w", err)
	}

	c.logger.Info("report uploaded",
		zap.String("blob_name", blobName),
		zap.Int("size_bytes", len(data)),
	)

	return blobName, nil
}

// DownloadReport downloads an archived report PDF
func (c *BlobStorageClient) DownloadReport(ctx context.Context, blobName string) ([]byte, error) {
	resp, err := c.client.DownloadStream(ctx, c.containerName, blobName, nil)
	if err != nil {
		c.logger.Error("failed to download report",
			zap.String("blob_name", blobName),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to download report: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read report data: %w", err)
	}

	return data, nil
}

// DeleteReport removes an archived report
func (c *BlobStorageClient) DeleteReport(ctx context.Context, blobName string) error {
	if _, err := c.client.DeleteBlob(ctx, c.containerName, blobName, nil); err != nil {
		c.logger.Error("failed to delete report",
			zap.String("blob_name", blobName),
			zap.Error(err),
		)
		return fmt.Errorf("failed to delete report: %w", err)
	}
	return nil
}

func toPtr(s string) *string {
	return &s
}
