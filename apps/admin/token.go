package main

import (
	"context"
	"fmt"

	echoapi "github.com/classquest/classquest/apps/api/echo"
)

func (cli *commandLine) token(userID string) error {
	usr, err := cli.usrRepo.GetUser(context.Background(), userID)
	if err != nil {
		return err
	}
	token, err := echoapi.GenerateToken(echoapi.GetUserClaims(usr, cli.conf), cli.conf)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, token)
	return nil
}
