package inmemdb

import (
	"context"

	"github.com/pkg/errors"

	"github.com/muhammadsami84343/ecampus/core/leave"
)

type leaveRepository struct {
	db *leaveTable
}

func NewLeaveRepository(db *DB) leave.Repository {
	return &leaveRepository{db: db.leave}
}

func (repo *leaveRepository) CreateRequest(_ context.Context, req leave.Request) (leave.Request, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[req.ID]; ok {
		return leave.Request{}, errors.Errorf("leave request %s already exists", req.ID)
	}
	repo.db.order = append(repo.db.order, req.ID)
	repo.db.table[req.ID] = &req
	return req, nil
}

func (repo *leaveRepository) GetRequest(_ context.Context, id string) (leave.Request, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if req, ok := repo.db.table[id]; ok {
		return *req, nil
	}
	return leave.Request{}, leave.ErrNotFound
}

func (repo *leaveRepository) QueryRequests(_ context.Context) ([]leave.Request, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	requests := make([]leave.Request, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		requests = append(requests, *repo.db.table[id])
	}
	return requests, nil
}

func (repo *leaveRepository) UpdateRequest(_ context.Context, id string, fn func(req *leave.Request) error) (leave.Request, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[id]
	if !ok {
		return leave.Request{}, leave.ErrNotFound
	}
	req := *orig
	if err := fn(&req); err != nil {
		return leave.Request{}, err
	}
	repo.db.table[id] = &req
	return req, nil
}
