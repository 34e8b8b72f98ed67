package main

import (
	"github.com/classquest/classquest/storage/database"
)

var runMigrationFunc = database.RunMigration // mockable

func (cli *commandLine) migrate(command string, version ...int64) error {
	return runMigrationFunc(cli.db.DB, cli.conf.Database.Engine, command, version...)
}
