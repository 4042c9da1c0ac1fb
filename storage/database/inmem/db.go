package inmemdb

import (
	"sync"

	"github.com/muhammadsami84343/ecampus/core/attendance"
	"github.com/muhammadsami84343/ecampus/core/leave"
)

type (
	DB struct {
		attendance *attendanceTable
		leave      *leaveTable
	}

	attendanceTable struct {
		sync.RWMutex
		order []string // student ids, insertion order
		table map[string]*attendance.Record
	}

	leaveTable struct {
		sync.RWMutex
		order []string // request ids, insertion order
		table map[string]*leave.Request
	}
)

func Open() *DB {
	return &DB{
		attendance: &attendanceTable{table: make(map[string]*attendance.Record)},
		leave:      &leaveTable{table: make(map[string]*leave.Request)},
	}
}
