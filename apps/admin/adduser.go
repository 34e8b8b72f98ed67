package main

import (
	"context"
	"fmt"

	"github.com/classquest/classquest/core/user"
)

func (cli *commandLine) addUser(nu user.NewUser) error {
	if err := nu.Validate(cli.validate); err != nil {
		return err
	}
	usr, err := cli.usrRepo.CreateUser(context.Background(), nu.User())
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "created %s %s <%s>: %s\n", usr.Role, usr.Name(), usr.Email, usr.ID)
	return nil
}

func (cli *commandLine) addClassroom(classroomID, courseRepID string) error {
	ctx := context.Background()
	rep, err := cli.usrRepo.GetUser(ctx, courseRepID)
	if err != nil {
		return err
	}
	if !rep.IsCourseRep() {
		return fmt.Errorf("user %s is not a course rep", rep.ID)
	}
	if err = cli.usrRepo.CreateClassroom(ctx, classroomID, rep.ID); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "created classroom %s led by %s\n", classroomID, rep.Name())
	return nil
}

func (cli *commandLine) enroll(classroomID, studentID string) error {
	ctx := context.Background()
	student, err := cli.usrRepo.GetUser(ctx, studentID)
	if err != nil {
		return err
	}
	if !student.IsStudent() {
		return fmt.Errorf("user %s is not a student", student.ID)
	}
	if err = cli.usrRepo.EnrollStudent(ctx, classroomID, student.ID); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "enrolled %s in %s\n", student.Name(), classroomID)
	return nil
}
