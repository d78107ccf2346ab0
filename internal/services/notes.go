// Package services holds the business layer between transports and the
// store. Handlers of any transport (HTTP, CLI, SDK) call these methods
// with plain request/response records.
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/notewell/notewell/internal/model"
	"github.com/notewell/notewell/internal/store"
)

// NoteService orchestrates note use cases: id assignment, timestamping,
// and tag defaulting at creation. Merge semantics and the archive guard
// live in the store so every backend behaves identically.
type NoteService struct {
	store store.Store
}

func NewNoteService(s store.Store) *NoteService {
	return &NoteService{store: s}
}

func (s *NoteService) CreateNote(ctx context.Context, req model.CreateNoteRequest) (*model.CreateNoteResponse, error) {
	if err := model.ValidateTagSet(req.Tags); err != nil {
		return nil, fmt.Errorf("creating note: %w", err)
	}

	now := model.Now()
	n := &model.Note{
		ID:             uuid.New().String(),
		Title:          req.Title,
		Owner:          req.Owner,
		Description:    req.Description,
		Tags:           req.Tags,
		CreateTime:     now,
		LastUpdateTime: now,
	}
	if n.Tags == nil {
		n.Tags = []model.Tag{}
	}

	// UUID collisions are not expected, but a store rejection still
	// surfaces as an error rather than a panic.
	if err := s.store.Notes().Create(ctx, n); err != nil {
		return nil, fmt.Errorf("storing note %s: %w", n.ID, err)
	}
	return &model.CreateNoteResponse{NoteID: n.ID}, nil
}

func (s *NoteService) GetNote(ctx context.Context, req model.GetNoteRequest) (*model.GetNoteResponse, error) {
	n, err := s.store.Notes().Get(ctx, req.NoteID)
	if err != nil {
		return nil, err
	}
	return &model.GetNoteResponse{Note: n}, nil
}

func (s *NoteService) GetNotes(ctx context.Context, req model.GetNotesRequest) (*model.GetNotesResponse, error) {
	notes, err := s.store.Notes().ListByOwner(ctx, req.Owner)
	if err != nil {
		return nil, err
	}
	return &model.GetNotesResponse{Notes: notes}, nil
}

func (s *NoteService) UpdateNote(ctx context.Context, req model.UpdateNoteRequest) (*model.UpdateNoteResponse, error) {
	if err := s.store.Notes().Update(ctx, req); err != nil {
		return nil, err
	}
	return &model.UpdateNoteResponse{}, nil
}

func (s *NoteService) ArchiveNote(ctx context.Context, req model.ArchiveNoteRequest) (*model.ArchiveNoteResponse, error) {
	if err := s.store.Notes().Archive(ctx, req); err != nil {
		return nil, err
	}
	return &model.ArchiveNoteResponse{}, nil
}
