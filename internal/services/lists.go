package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/notewell/notewell/internal/model"
	"github.com/notewell/notewell/internal/store"
)

// ListService orchestrates list use cases. Lists are replaced wholesale;
// there is no partial-update path.
type ListService struct {
	store store.Store
}

func NewListService(s store.Store) *ListService {
	return &ListService{store: s}
}

func (s *ListService) GetLists(ctx context.Context, req model.GetListsRequest) (*model.GetListsResponse, error) {
	lists, err := s.store.Lists().ListByOwner(ctx, req.Owner)
	if err != nil {
		return nil, err
	}
	return &model.GetListsResponse{Lists: lists}, nil
}

func (s *ListService) GetFullList(ctx context.Context, req model.GetFullListRequest) (*model.GetFullListResponse, error) {
	fl, err := s.store.Lists().GetFull(ctx, req.ListID)
	if err != nil {
		return nil, err
	}
	return &model.GetFullListResponse{FullList: fl}, nil
}

func (s *ListService) StoreList(ctx context.Context, req model.StoreListRequest) (*model.StoreListResponse, error) {
	if req.List == nil {
		return nil, fmt.Errorf("%w: list is required", model.ErrValidation)
	}
	l := req.List.Clone()
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if err := s.store.Lists().Put(ctx, l); err != nil {
		return nil, fmt.Errorf("storing list %s: %w", l.ID, err)
	}
	return &model.StoreListResponse{ListID: l.ID}, nil
}
