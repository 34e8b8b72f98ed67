package appfs

import "embed"

// FS holds the files shipped inside the binaries.
//
//go:embed migrations
var FS embed.FS

// MigrationsDir returns the directory of FS holding the migrations of a database engine.
func MigrationsDir(engine string) string {
	return "migrations/" + engine
}
