// Package seed populates a demo dataset for local development, so a
// fresh checkout renders a non-empty dashboard without an export file.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/classify"
	txdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/transaction/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type demoRow struct {
	orderID  string
	daysAgo  int
	email    string
	amount   string
	location string
	program  classify.ProgramCategory
}

var demoRows = []demoRow{
	{"DEMO-1001", 80, "ava@example.com", "325.00", classify.LocationMamaroneck, classify.ProgramCamps},
	{"DEMO-1002", 74, "ava@example.com", "89.00", classify.LocationMamaroneck, classify.ProgramWorkshops},
	{"DEMO-1003", 61, "ben@example.com", "450.00", classify.LocationNYC, classify.ProgramParties},
	{"DEMO-1004", 55, "cora@example.com", "610.00", classify.LocationNYC, classify.ProgramSemester},
	{"DEMO-1005", 41, "dan@example.com", "120.00", classify.LocationChappaqua, classify.ProgramWorkshops},
	{"DEMO-1006", 33, "cora@example.com", "275.00", classify.LocationChappaqua, classify.ProgramCamps},
	{"DEMO-1007", 20, "eli@example.com", "199.00", classify.LocationPartner, classify.ProgramPrivate},
	{"DEMO-1008", 12, "ben@example.com", "540.00", classify.LocationNYC, classify.ProgramSemester},
	{"DEMO-1009", 4, "fay@example.com", "95.00", classify.LocationMamaroneck, classify.ProgramWorkshops},
}

// EnsureDemoData inserts the demo transactions when the store is empty.
// A store with any rows at all is left untouched.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&txdomain.Transaction{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		txns := make([]txdomain.Transaction, 0, len(demoRows))
		for _, row := range demoRows {
			amount, err := decimal.NewFromString(row.amount)
			if err != nil {
				return err
			}
			txns = append(txns, txdomain.Transaction{
				ID:              node.Generate(),
				OrderID:         row.orderID,
				OrderDate:       now.AddDate(0, 0, -row.daysAgo),
				CustomerEmail:   row.email,
				NetAmount:       amount,
				PaymentStatus:   txdomain.PaymentStatusSucceeded,
				Location:        row.location,
				ProgramCategory: row.program,
			})
		}
		return tx.Create(&txns).Error
	})
}
