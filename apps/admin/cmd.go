package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/classquest/classquest/core"
	"github.com/classquest/classquest/core/question"
	"github.com/classquest/classquest/core/user"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf         *core.Config
	db           *sqlx.DB
	usrRepo      user.Repository
	questionRepo question.Repository
	validate     *validator.Validate
	out          io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate up|up-by-one|up-to VERSION|down|down-to VERSION|redo - run database migrations")
	fmt.Fprintln(cli.out, "  adduser -first NAME [-last NAME] -email EMAIL -role student|course_rep - create a user")
	fmt.Fprintln(cli.out, "  addclassroom -id ID -rep USER_ID - create a classroom led by a course rep")
	fmt.Fprintln(cli.out, "  enroll -classroom ID -student USER_ID - enroll a student in a classroom")
	fmt.Fprintln(cli.out, "  importquestions -file BANK.yaml [-approve] - import a question bank")
	fmt.Fprintln(cli.out, "  leaderboard -classroom ID - print the streak leaderboard of a classroom")
	fmt.Fprintln(cli.out, "  token -user USER_ID - print a bearer token for a user")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserFirst := addUserCmd.String("first", "", "The user's first name.")
	addUserLast := addUserCmd.String("last", "", "The user's last name.")
	addUserEmail := addUserCmd.String("email", "", "The user's email.")
	addUserRole := addUserCmd.String("role", user.RoleStudent, "The user's role: student or course_rep.")

	addClassroomCmd := flag.NewFlagSet("addclassroom", flag.ExitOnError)
	addClassroomID := addClassroomCmd.String("id", "", "The classroom ID.")
	addClassroomRep := addClassroomCmd.String("rep", "", "The course rep's user ID.")

	enrollCmd := flag.NewFlagSet("enroll", flag.ExitOnError)
	enrollClassroom := enrollCmd.String("classroom", "", "The classroom ID.")
	enrollStudent := enrollCmd.String("student", "", "The student's user ID.")

	importCmd := flag.NewFlagSet("importquestions", flag.ExitOnError)
	importFile := importCmd.String("file", "", "The YAML question bank to import.")
	importApprove := importCmd.Bool("approve", false, "Approve the questions that have no status.")

	leaderboardCmd := flag.NewFlagSet("leaderboard", flag.ExitOnError)
	leaderboardClassroom := leaderboardCmd.String("classroom", "", "The classroom ID.")

	tokenCmd := flag.NewFlagSet("token", flag.ExitOnError)
	tokenUser := tokenCmd.String("user", "", "The user ID.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		var version []int64
		if len(args) > 3 {
			v, err := strconv.ParseInt(args[3], 10, 64)
			if err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[3])
			}
			version = append(version, v)
		}
		return cli.migrate(args[2], version...)
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserFirst == "" || *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(user.NewUser{FirstName: *addUserFirst, LastName: *addUserLast, Email: *addUserEmail, Role: *addUserRole})
	case "addclassroom":
		if err := addClassroomCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addClassroomID == "" || *addClassroomRep == "" {
			addClassroomCmd.Usage()
			return errHelp
		}
		return cli.addClassroom(*addClassroomID, *addClassroomRep)
	case "enroll":
		if err := enrollCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *enrollClassroom == "" || *enrollStudent == "" {
			enrollCmd.Usage()
			return errHelp
		}
		return cli.enroll(*enrollClassroom, *enrollStudent)
	case "importquestions":
		if err := importCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *importFile == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importQuestions(*importFile, *importApprove)
	case "leaderboard":
		if err := leaderboardCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *leaderboardClassroom == "" {
			leaderboardCmd.Usage()
			return errHelp
		}
		return cli.leaderboard(*leaderboardClassroom)
	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *tokenUser == "" {
			tokenCmd.Usage()
			return errHelp
		}
		return cli.token(*tokenUser)
	default:
		cli.printUsage()
		return errHelp
	}
}
