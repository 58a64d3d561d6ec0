package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/rdboard/rd-tracker-backend/internal/events"
	"github.com/rdboard/rd-tracker-backend/internal/logger"
	"github.com/rdboard/rd-tracker-backend/internal/metrics"
	"github.com/rdboard/rd-tracker-backend/internal/requirements/domain"
	"github.com/rdboard/rd-tracker-backend/internal/requirements/export"
)

type RequirementStore interface {
	Create(ctx context.Context, in domain.CreateRequirementInput) (*domain.Requirement, error)
	List(ctx context.Context, order domain.ListOrder) ([]domain.Requirement, error)
	GetByID(ctx context.Context, id string) (*domain.Requirement, error)
	// UpdateDetails returns the updated row and the stage it held just
	// before this write.
	UpdateDetails(ctx context.Context, id string, in domain.UpdateDetailsInput) (*domain.Requirement, domain.Stage, error)
}

type HistoryStore interface {
	Append(ctx context.Context, requirementID string, stage domain.Stage) (*domain.StageHistoryEntry, error)
	ListByRequirement(ctx context.Context, requirementID string) ([]domain.StageHistoryEntry, error)
}

type CommentStore interface {
	Create(ctx context.Context, in domain.CreateCommentInput) (*domain.Comment, error)
	ListByRequirement(ctx context.Context, requirementID string) ([]domain.Comment, error)
}

// MemberLookup resolves a typed name to the directory's canonical spelling.
type MemberLookup interface {
	CanonicalName(ctx context.Context, name string) (string, bool, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, ev events.Event) error
}

// RequirementService handles requirement business logic
type RequirementService struct {
	reqs     RequirementStore
	history  HistoryStore
	comments CommentStore
	members  MemberLookup
	events   EventPublisher
	log      *zap.Logger
}

// NewRequirementService creates a new requirement service. members and
// publisher may be nil: comments are then accepted from any author and no
// change events are sent.
func NewRequirementService(
	reqs RequirementStore,
	history HistoryStore,
	comments CommentStore,
	members MemberLookup,
	publisher EventPublisher,
	log *zap.Logger,
) *RequirementService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RequirementService{
		reqs:     reqs,
		history:  history,
		comments: comments,
		members:  members,
		events:   publisher,
		log:      log,
	}
}

// Create stores a new requirement. The initial stage is not a transition and
// is never written to history.
func (s *RequirementService) Create(ctx context.Context, in domain.CreateRequirementInput) (*domain.Requirement, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	req, err := s.reqs.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create requirement: %w", err)
	}

	s.publish(ctx, events.Event{Type: events.RequirementCreated, RequirementID: req.ID, Stage: string(req.Stage)})
	return req, nil
}

// List returns requirements newest first by order, narrowed to the filter's
// stage when the filter is active.
func (s *RequirementService) List(ctx context.Context, order domain.ListOrder, filter domain.StageFilter) ([]domain.Requirement, error) {
	reqs, err := s.reqs.List(ctx, order)
	if err != nil {
		return nil, err
	}
	return filter.Apply(reqs), nil
}

func (s *RequirementService) Get(ctx context.Context, id string) (*domain.Requirement, error) {
	return s.reqs.GetByID(ctx, id)
}

// UpdateDetails applies the detail edit form. The submitted stage is compared
// with the stage the row held at the moment of the write; when they differ a
// history entry with the new stage is appended after the update. A failed
// append is logged and counted but the update still succeeds.
func (s *RequirementService) UpdateDetails(ctx context.Context, id string, in domain.UpdateDetailsInput) (*domain.UpdateResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	updated, prev, err := s.reqs.UpdateDetails(ctx, id, in)
	if err != nil {
		return nil, err
	}
	stageChanged := prev != in.Stage

	result := &domain.UpdateResult{Requirement: updated, StageChanged: stageChanged}
	if !stageChanged {
		s.publish(ctx, events.Event{Type: events.RequirementUpdated, RequirementID: id, Stage: string(updated.Stage)})
		return result, nil
	}

	metrics.IncrementStageTransition(string(in.Stage))
	entry, err := s.history.Append(ctx, id, in.Stage)
	if err != nil {
		metrics.IncrementHistoryAppendFailure()
		logger.FromContext(ctx, s.log).Error("stage history append failed",
			zap.String("requirement_id", id),
			zap.String("from", string(prev)),
			zap.String("to", string(in.Stage)),
			zap.Error(err),
		)
	} else {
		result.HistoryEntry = entry
	}

	s.publish(ctx, events.Event{Type: events.StageChanged, RequirementID: id, Stage: string(updated.Stage)})
	return result, nil
}

// History returns the stage transitions of a requirement, oldest first.
func (s *RequirementService) History(ctx context.Context, id string) ([]domain.StageHistoryEntry, error) {
	if _, err := s.reqs.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.history.ListByRequirement(ctx, id)
}

func (s *RequirementService) Comments(ctx context.Context, id string) ([]domain.Comment, error) {
	if _, err := s.reqs.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.comments.ListByRequirement(ctx, id)
}

// AddComment appends a comment by a known member. The author is stored with
// the directory's spelling of the name.
func (s *RequirementService) AddComment(ctx context.Context, in domain.CreateCommentInput) (*domain.Comment, error) {
	in.AuthorName = strings.TrimSpace(in.AuthorName)
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.reqs.GetByID(ctx, in.RequirementID); err != nil {
		return nil, err
	}

	if s.members != nil {
		name, ok, err := s.members.CanonicalName(ctx, in.AuthorName)
		if err != nil {
			return nil, fmt.Errorf("member lookup: %w", err)
		}
		if !ok {
			return nil, domain.ErrUnknownMember
		}
		in.AuthorName = name
	}

	c, err := s.comments.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.publish(ctx, events.Event{Type: events.CommentAdded, RequirementID: in.RequirementID})
	return c, nil
}

func (s *RequirementService) Stats(ctx context.Context) (domain.Stats, error) {
	reqs, err := s.reqs.List(ctx, domain.OrderCreatedDesc)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.ComputeStats(reqs), nil
}

func (s *RequirementService) Chart(ctx context.Context) ([]domain.ChartSlice, error) {
	reqs, err := s.reqs.List(ctx, domain.OrderCreatedDesc)
	if err != nil {
		return nil, err
	}
	return domain.StageChart(reqs), nil
}

// Export writes every requirement, newest first, as an xlsx workbook.
func (s *RequirementService) Export(ctx context.Context, w io.Writer) error {
	reqs, err := s.reqs.List(ctx, domain.OrderCreatedDesc)
	if err != nil {
		return err
	}
	return export.WriteWorkbook(w, reqs)
}

func (s *RequirementService) publish(ctx context.Context, ev events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		metrics.IncrementEventPublishFailure()
		logger.FromContext(ctx, s.log).Warn("event publish failed",
			zap.String("type", string(ev.Type)),
			zap.String("requirement_id", ev.RequirementID),
			zap.Error(err),
		)
	}
}
