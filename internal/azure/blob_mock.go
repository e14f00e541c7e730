package azure

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// MemoryReportStorage keeps reports in memory. It backs local runs without
// Azure credentials and the tests.
type MemoryReportStorage struct {
	mu     sync.RWMutex
	blobs  map[string][]byte
	logger *zap.Logger
}

var _ ReportStorage = (*MemoryReportStorage)(nil)

// NewMemoryReportStorage creates an empty in-memory store
func NewMemoryReportStorage(logger *zap.Logger) *MemoryReportStorage {
	return &MemoryReportStorage{
		blobs:  make(map[string][]byte),
		logger: logger,
	}
}

// UploadReport stores a copy of data
func (s *MemoryReportStorage) UploadReport(_ context.Context, userID, reportID string, data []byte) (string, error) {
	blobName := ReportBlobName(userID, reportID)

	s.mu.Lock()
	s.blobs[blobName] = bytes.Clone(data)
	s.mu.Unlock()

	s.logger.Debug("report stored in memory",
		zap.String("blob_name", blobName),
		zap.Int("size_bytes", len(data)),
	)

	return blobName, nil
}

// DownloadReport returns a copy of the stored report
func (s *MemoryReportStorage) DownloadReport(_ context.Context, blobName string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[blobName]
	if !ok {
		return nil, fmt.Errorf("blob not found: %s", blobName)
	}
	return bytes.Clone(data), nil
}

// DeleteReport removes a stored report
func (s *MemoryReportStorage) DeleteReport(_ context.Context, blobName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blobs[blobName]; !ok {
		return fmt.Errorf("blob not found: %s", blobName)
	}
	delete(s.blobs, blobName)
	return nil
}

// List returns the stored blob names in order
func (s *MemoryReportStorage) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.blobs))
	for name := range s.blobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
