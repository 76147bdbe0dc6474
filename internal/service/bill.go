package service

import (
	"context"
	"fmt"

	"table-orders/internal/broker"
	"table-orders/internal/common/logger"
	"table-orders/internal/domain"
	"table-orders/internal/repository"
)

type BillServiceInterface interface {
	ClearBill(ctx context.Context, tableID string) error
}

type BillService struct {
	ledger repository.Ledger
	topics broker.TopicBroker
	lg     *logger.Logger
}

func NewBillService(ledger repository.Ledger, topics broker.TopicBroker, lg *logger.Logger) BillServiceInterface {
	return &BillService{ledger: ledger, topics: topics, lg: lg}
}

// ClearBill marks every unpaid order of the table as paid in one bulk update.
// Orders are never deleted; paid is the archive. Clearing a table with no
// unpaid orders is a harmless no-op.
func (s *BillService) ClearBill(ctx context.Context, tableID string) error {
	if err := s.ledger.MarkTablePaid(ctx, tableID); err != nil {
		return fmt.Errorf("clear bill for table %s: %w", tableID, err)
	}
	s.lg.Info("bill_cleared", map[string]any{"table_id": tableID})

	s.topics.Publish(broker.TopicAdmin, domain.TableCleared{TableID: tableID})
	// The table-side consumer resets all local cart/bill/status state on this.
	s.topics.Publish(broker.TableTopic(tableID), domain.BillCleared{})
	return nil
}
