package issuerepo

import (
	"context"

	"fulfillment/internal/core/domain/model/issue"
	"fulfillment/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormIssueRepository implements IssueRepository using GORM.
type GormIssueRepository struct {
	db *gorm.DB
}

// NewGormIssueRepository creates a new GORM ledger repository.
func NewGormIssueRepository(db *gorm.DB) *GormIssueRepository {
	return &GormIssueRepository{db: db}
}

// Add appends a new ledger entry.
func (r *GormIssueRepository) Add(ctx context.Context, message *issue.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := fromDomain(message)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetThread retrieves all ledger entries of an order, oldest first.
func (r *GormIssueRepository) GetThread(ctx context.Context, orderID kernel.UUID) (issue.Thread, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Order("created_at, id").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	messages := make([]*issue.Message, 0, len(dtos))
	for _, dto := range dtos {
		msg, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		messages = append(messages, msg)
	}

	return issue.NewThread(messages), nil
}
