package team

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// Service gates team-scoped actions by membership role. Pure rule
// functions (CanChangeRole and friends) stay free functions; the service
// adds the membership lookups handlers would otherwise repeat.
type Service struct {
	repo Repository
}

// NewService creates a team authorization service over the given
// membership repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// notFoundDecision is deliberately generic: "not found" and "not a member"
// must look identical to the caller.
func notFoundDecision() Decision {
	return deny(http.StatusNotFound, "team or member not found")
}

// CheckPermission decides whether the user may perform the permission in
// the team. Storage failures are returned as errors; business denials come
// back as a Decision.
func (s *Service) CheckPermission(ctx context.Context, userID, teamID uuid.UUID, permission Permission) (Decision, error) {
	member, err := s.repo.GetMember(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return notFoundDecision(), nil
		}
		return Decision{}, err
	}

	if !HasPermission(member.Role, permission) {
		return deny(http.StatusForbidden, "your role does not allow this action"), nil
	}
	return allow(), nil
}

// AuthorizeRoleChange loads both memberships and applies CanChangeRole.
func (s *Service) AuthorizeRoleChange(ctx context.Context, actorID, targetID, teamID uuid.UUID, newRole Role) (Decision, error) {
	actor, err := s.repo.GetMember(ctx, teamID, actorID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return notFoundDecision(), nil
		}
		return Decision{}, err
	}

	target, err := s.repo.GetMember(ctx, teamID, targetID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return notFoundDecision(), nil
		}
		return Decision{}, err
	}

	return CanChangeRole(actor.Role, target.Role, newRole), nil
}

// AuthorizeRemoval loads both memberships and applies CanRemoveMember.
func (s *Service) AuthorizeRemoval(ctx context.Context, actorID, targetID, teamID uuid.UUID) (Decision, error) {
	actor, err := s.repo.GetMember(ctx, teamID, actorID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return notFoundDecision(), nil
		}
		return Decision{}, err
	}

	target, err := s.repo.GetMember(ctx, teamID, targetID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return notFoundDecision(), nil
		}
		return Decision{}, err
	}

	return CanRemoveMember(actor.Role, target.Role, actorID == targetID), nil
}

// TransferOwnership reassigns team ownership to an existing member. The
// repository applies all three writes atomically.
func (s *Service) TransferOwnership(ctx context.Context, teamID, currentOwnerID, newOwnerID uuid.UUID) error {
	if currentOwnerID == newOwnerID {
		return ErrSameUser
	}
	return s.repo.TransferOwnership(ctx, teamID, currentOwnerID, newOwnerID)
}
