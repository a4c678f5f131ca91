package main

import (
	"github.com/darasahq/darasa/storage/database"
)

var migrateRunFunc = database.RunMigrationCommand // mockable

func (cli *commandLine) migrate(args []string) error {
	db, err := cli.openDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}
	return migrateRunFunc(db.DB, args[0], rest...)
}
