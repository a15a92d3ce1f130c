package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	txdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/transaction/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func NewService(p ServiceParam) txdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("transaction.service"),
		genID: p.GenID,
	}
}

func (s *Service) Merge(ctx context.Context, txns []txdomain.Transaction) (txdomain.MergeResult, error) {
	var result txdomain.MergeResult
	if len(txns) == 0 {
		return result, txdomain.ErrEmptyBatch
	}

	orderIDs := make([]string, 0, len(txns))
	for _, txn := range txns {
		orderIDs = append(orderIDs, txn.OrderID)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []string
		if err := tx.Model(&txdomain.Transaction{}).
			Where("order_id IN ?", orderIDs).
			Pluck("order_id", &existing).Error; err != nil {
			return err
		}
		seen := make(map[string]struct{}, len(existing))
		for _, id := range existing {
			seen[id] = struct{}{}
		}

		fresh := make([]txdomain.Transaction, 0, len(txns))
		for _, txn := range txns {
			if _, dup := seen[txn.OrderID]; dup {
				result.Duplicates++
				continue
			}
			txn.ID = s.genID.Generate()
			fresh = append(fresh, txn)
			// Guards against duplicates inside the batch itself.
			seen[txn.OrderID] = struct{}{}
		}

		if len(fresh) == 0 {
			return nil
		}
		if err := tx.Create(&fresh).Error; err != nil {
			return err
		}
		result.Inserted = len(fresh)
		return nil
	})
	if err != nil {
		return txdomain.MergeResult{}, err
	}

	s.log.Info("merged ingestion batch",
		zap.Int("inserted", result.Inserted),
		zap.Int("duplicates", result.Duplicates),
	)
	return result, nil
}

func (s *Service) List(ctx context.Context) ([]txdomain.Transaction, error) {
	var txns []txdomain.Transaction
	if err := s.db.WithContext(ctx).
		Order("order_date ASC, order_id ASC").
		Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&txdomain.Transaction{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Service) DeleteAll(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&txdomain.Transaction{})
	if res.Error != nil {
		return 0, res.Error
	}
	s.log.Warn("deleted entire transaction store", zap.Int64("rows", res.RowsAffected))
	return res.RowsAffected, nil
}
