package gormstore

import (
	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGORMMySQLMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "mysql", db.Debug(), mock, nil
}

func newGORMPostgresMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := postgres.New(postgres.Config{
		Conn: mockDB,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "postgres", db.Debug(), mock, nil
}

var sqlMockFnList = []func() (string, *gorm.DB, sqlmock.Sqlmock, error){
	newGORMMySQLMock,
	newGORMPostgresMock,
}

const (
	_selectProjection = "^SELECT members\\.id AS id, members\\.username AS name, members\\.age AS value, " +
		"members\\.team_id AS group_id, teams\\.name AS group_name "
	_fromLeftJoin  = "FROM [`'\"]members[`'\"] LEFT JOIN teams ON teams\\.id = members\\.team_id"
	_fromInnerJoin = "FROM [`'\"]members[`'\"] INNER JOIN teams ON teams\\.id = members\\.team_id"
	_placeholder   = "(?:\\$\\d|\\?)"
)
