package gormstore

import (
	"fmt"

	"github.com/Alp4ka/gofilter"
	"github.com/samber/lo"
)

// Team is a group of members.
type Team struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:255;not null;index"`
}

func (Team) TableName() string { return "teams" }

// Member references its team through an explicit foreign key. There is no
// association field: team data is only read through an explicit join.
type Member struct {
	ID       int64  `gorm:"primaryKey"`
	Username string `gorm:"size:255;not null;index"`
	Age      int    `gorm:"not null;index"`
	TeamID   *int64 `gorm:"index"`
}

func (Member) TableName() string { return "members" }

// Schema describes where record fields live. Records are read from Table
// joined with GroupTable on GroupKey = Columns[gofilter.FieldGroupID].
type Schema struct {
	Table      string
	GroupTable string
	GroupKey   string
	Columns    gofilter.ColumnMapping
}

// DefaultSchema maps records onto the members/teams tables.
func DefaultSchema() Schema {
	return Schema{
		Table:      "members",
		GroupTable: "teams",
		GroupKey:   "teams.id",
		Columns: gofilter.ColumnMapping{
			gofilter.FieldID:        "members.id",
			gofilter.FieldName:      "members.username",
			gofilter.FieldValue:     "members.age",
			gofilter.FieldGroupID:   "members.team_id",
			gofilter.FieldGroupName: "teams.name",
		},
	}
}

var _availableIdentifierSymbols = append([]rune("_.`\""), lo.AlphanumericCharset...)

func (s Schema) validate() error {
	identifiers := []string{s.Table, s.GroupTable, s.GroupKey}
	for _, f := range []gofilter.Field{
		gofilter.FieldID,
		gofilter.FieldName,
		gofilter.FieldValue,
		gofilter.FieldGroupID,
		gofilter.FieldGroupName,
	} {
		column := s.Columns[f]
		if column == "" {
			return fmt.Errorf("no column mapped for field '%s'", f)
		}
		identifiers = append(identifiers, column)
	}

	// Identifiers are spliced into SQL verbatim, so only plain names pass.
	for _, ident := range identifiers {
		if ident == "" {
			return fmt.Errorf("empty schema identifier")
		}
		if !lo.Every(_availableIdentifierSymbols, []rune(ident)) {
			return fmt.Errorf("schema identifier contains forbidden symbols '%s'", ident)
		}
	}

	return nil
}

func (s Schema) projection() string {
	return fmt.Sprintf(
		"%s AS id, %s AS name, %s AS value, %s AS group_id, %s AS group_name",
		s.Columns[gofilter.FieldID],
		s.Columns[gofilter.FieldName],
		s.Columns[gofilter.FieldValue],
		s.Columns[gofilter.FieldGroupID],
		s.Columns[gofilter.FieldGroupName],
	)
}

func (s Schema) join(kind string) string {
	return fmt.Sprintf("%s JOIN %s ON %s = %s", kind, s.GroupTable, s.GroupKey, s.Columns[gofilter.FieldGroupID])
}
