package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/classquest/classquest/core/leaderboard"
	"github.com/classquest/classquest/core/user"
)

func (cli *commandLine) leaderboard(classroomID string) error {
	svc := leaderboard.NewService(user.NewService(cli.usrRepo))
	entries, err := svc.Leaderboard(context.Background(), classroomID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tNAME\tROLE\tHIGHEST\tCURRENT\tACTIVE DAYS")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\n", e.Rank, e.Name, e.Role, e.HighestStreak, e.CurrentStreak, e.TotalActiveDays)
	}
	return w.Flush()
}
