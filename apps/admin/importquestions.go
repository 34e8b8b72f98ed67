package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/classquest/classquest/core/question"
)

// questionBank is the YAML drop format of the question authoring process.
type questionBank struct {
	Questions []question.NewQuestion `yaml:"questions"`
}

func (cli *commandLine) importQuestions(path string, approve bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var bank questionBank
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(&bank); err != nil {
		return errors.Wrapf(err, "decoding %s", path)
	}
	if len(bank.Questions) == 0 {
		return fmt.Errorf("%s: no questions found", path)
	}

	if approve {
		for i := range bank.Questions {
			if bank.Questions[i].Status == "" {
				bank.Questions[i].Status = question.StatusApproved
			}
		}
	}

	imported, err := question.Import(context.Background(), cli.questionRepo, cli.validate, bank.Questions...)
	if err != nil {
		return err
	}

	approved := 0
	for _, q := range imported {
		if q.IsApproved() {
			approved++
		}
	}
	fmt.Fprintf(cli.out, "imported %d questions (%d approved)\n", len(imported), approved)
	return nil
}
