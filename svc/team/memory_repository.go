package team

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type membershipKey struct {
	teamID uuid.UUID
	userID uuid.UUID
}

// memoryRepository implements Repository with in-process maps. The single
// mutex makes TransferOwnership atomic the same way the Postgres
// repository's transaction does.
type memoryRepository struct {
	mu      sync.RWMutex
	members map[membershipKey]Member
	owners  map[uuid.UUID]uuid.UUID // teamID -> owner userID
}

// NewMemoryRepository returns an in-memory Repository seeded with the given
// members. The member holding RoleOwner becomes the team's owner pointer.
func NewMemoryRepository(members ...Member) Repository {
	repo := &memoryRepository{
		members: make(map[membershipKey]Member, len(members)),
		owners:  make(map[uuid.UUID]uuid.UUID),
	}
	for _, m := range members {
		repo.members[membershipKey{m.TeamID, m.UserID}] = m
		if m.Role == RoleOwner {
			repo.owners[m.TeamID] = m.UserID
		}
	}
	return repo
}

func (r *memoryRepository) GetMember(ctx context.Context, teamID, userID uuid.UUID) (Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	member, ok := r.members[membershipKey{teamID, userID}]
	if !ok {
		return Member{}, ErrMemberNotFound
	}
	return member, nil
}

func (r *memoryRepository) TransferOwnership(ctx context.Context, teamID, fromUserID, toUserID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	from, ok := r.members[membershipKey{teamID, fromUserID}]
	if !ok || from.Role != RoleOwner || r.owners[teamID] != fromUserID {
		return ErrNotTeamOwner
	}

	to, ok := r.members[membershipKey{teamID, toUserID}]
	if !ok {
		return ErrMemberNotFound
	}

	now := time.Now().UTC()
	to.Role = RoleOwner
	to.UpdatedAt = now
	from.Role = RoleAdmin
	from.UpdatedAt = now

	r.members[membershipKey{teamID, toUserID}] = to
	r.members[membershipKey{teamID, fromUserID}] = from
	r.owners[teamID] = toUserID
	return nil
}
