package main

import (
	"context"
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/classquest/classquest/core"
	"github.com/classquest/classquest/core/question"
	"github.com/classquest/classquest/storage/database"
	"github.com/classquest/classquest/storage/database/sqlboiler"
	"github.com/classquest/classquest/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig()

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	errAndDie(database.Ping(context.Background(), db))

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	question.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		conf:         conf,
		db:           db,
		usrRepo:      boiledrepos.NewUserRepository(db),
		questionRepo: sqlxrepos.NewQuestionRepository(db),
		validate:     validate,
		out:          os.Stdout,
	}
	err = cli.run(os.Args)
	_ = db.Close()
	if err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
