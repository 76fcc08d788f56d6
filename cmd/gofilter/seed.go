package main

import (
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Alp4ka/gofilter/gormstore"
)

// seed writes a small fixed dataset. Re-running is a no-op.
func seed(db *gorm.DB) error {
	teams := []gormstore.Team{
		{ID: 1, Name: "teamA"},
		{ID: 2, Name: "teamB"},
	}

	members := make([]gormstore.Member, 0, 20)
	for i := 1; i <= 20; i++ {
		var teamID *int64
		switch i % 3 {
		case 1:
			teamID = lo.ToPtr(int64(1))
		case 2:
			teamID = lo.ToPtr(int64(2))
		}

		members = append(members, gormstore.Member{
			ID:       int64(i),
			Username: fmt.Sprintf("member%d", i%5),
			Age:      10 + i,
			TeamID:   teamID,
		})
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&teams).Error; err != nil {
			return err
		}

		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&members).Error
	})
}
