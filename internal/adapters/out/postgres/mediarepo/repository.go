// Package mediarepo persists stage attachment records: the uploaded
// evidence that gates media-required transitions.
package mediarepo

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttachmentDTO represents one uploaded attachment row, tagged with the
// lifecycle edge it documents.
type AttachmentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index:idx_attachments_order_edge"`
	Edge        string    `gorm:"index:idx_attachments_order_edge"`
	FileName    string
	ContentType string
	URL         string
	CreatedAt   time.Time
}

// TableName specifies the database table name for attachments.
func (AttachmentDTO) TableName() string {
	return "stage_attachments"
}

// GormMediaStore implements MediaStore using GORM.
type GormMediaStore struct {
	db *gorm.DB
}

// NewGormMediaStore creates a new GORM media store.
func NewGormMediaStore(db *gorm.DB) *GormMediaStore {
	return &GormMediaStore{db: db}
}

// HasAttachmentsForStage reports whether at least one attachment exists for
// the given order and lifecycle edge.
func (s *GormMediaStore) HasAttachmentsForStage(ctx context.Context, orderID kernel.UUID, edge order.Edge) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&AttachmentDTO{}).
		Where("order_id = ? AND edge = ?", orderID.Bytes(), string(edge)).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// AddAttachment records an uploaded attachment.
func (s *GormMediaStore) AddAttachment(
	ctx context.Context, orderID kernel.UUID, edge order.Edge, fileName, contentType, url string,
) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	dto := AttachmentDTO{
		ID:          uuid.New(),
		OrderID:     orderID.Bytes(),
		Edge:        string(edge),
		FileName:    fileName,
		ContentType: contentType,
		URL:         url,
		CreatedAt:   time.Now().UTC(),
	}
	return s.db.WithContext(ctx).Create(&dto).Error
}
