package service

import (
	"context"

	"github.com/rdboard/rd-tracker-backend/internal/members/domain"
)

// Store is the persistence the member service depends on.
type Store interface {
	List(ctx context.Context) ([]domain.Member, error)
	Create(ctx context.Context, in domain.MemberInput) (*domain.Member, error)
	Update(ctx context.Context, id string, in domain.MemberInput) (*domain.Member, error)
	Delete(ctx context.Context, id string) error
}

// MemberService handles member directory business logic
type MemberService struct {
	store Store
}

// NewMemberService creates a new member service
func NewMemberService(store Store) *MemberService {
	return &MemberService{store: store}
}

// Directory loads the current member list as a Directory.
func (s *MemberService) Directory(ctx context.Context) (*domain.Directory, error) {
	members, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewDirectory(members), nil
}

func (s *MemberService) List(ctx context.Context) ([]domain.Member, error) {
	return s.store.List(ctx)
}

// Match returns autocomplete candidates for input.
func (s *MemberService) Match(ctx context.Context, input string) ([]domain.Member, error) {
	dir, err := s.Directory(ctx)
	if err != nil {
		return nil, err
	}
	return dir.Match(input), nil
}

// Lookup returns the member whose name equals name ignoring case.
func (s *MemberService) Lookup(ctx context.Context, name string) (domain.Member, bool, error) {
	dir, err := s.Directory(ctx)
	if err != nil {
		return domain.Member{}, false, err
	}
	m, ok := dir.Lookup(name)
	return m, ok, nil
}

// CanonicalName returns the directory's spelling of name.
func (s *MemberService) CanonicalName(ctx context.Context, name string) (string, bool, error) {
	m, ok, err := s.Lookup(ctx, name)
	return m.Name, ok, err
}

// IsValidMember reports whether name is exactly a member's name, ignoring case.
func (s *MemberService) IsValidMember(ctx context.Context, name string) (bool, error) {
	dir, err := s.Directory(ctx)
	if err != nil {
		return false, err
	}
	return dir.IsValidMember(name), nil
}

func (s *MemberService) Create(ctx context.Context, in domain.MemberInput) (*domain.Member, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.store.Create(ctx, in)
}

func (s *MemberService) Update(ctx context.Context, id string, in domain.MemberInput) (*domain.Member, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.store.Update(ctx, id, in)
}

func (s *MemberService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
