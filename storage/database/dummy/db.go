package dummydb

import (
	"sync"

	"github.com/classquest/classquest/core/assessment"
	"github.com/classquest/classquest/core/question"
	"github.com/classquest/classquest/core/quest"
	"github.com/classquest/classquest/core/user"
)

type (
	// DB is an in-memory database, safe for concurrent use. Meant for tests and local runs.
	DB struct {
		user     *userTable
		question *questionTable
		attempt  *attemptTable
		quest    *questTable
	}

	classroom struct {
		courseRepID string
		studentIDs  []string // enrollment order
	}

	userTable struct {
		sync.RWMutex
		table      map[string]*user.User
		classrooms map[string]*classroom
	}

	questionTable struct {
		sync.RWMutex
		rows []question.Question // insertion order
	}

	attemptTable struct {
		sync.RWMutex
		rows []assessment.Attempt // insertion order
	}

	questTable struct {
		sync.RWMutex
		rows []quest.Quest
	}
)

func Open() (*DB, error) {
	db := &DB{
		user: &userTable{
			table:      make(map[string]*user.User),
			classrooms: make(map[string]*classroom),
		},
		question: &questionTable{},
		attempt:  &attemptTable{},
		quest:    &questTable{},
	}
	return db, nil
}
