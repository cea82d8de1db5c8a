// Package freeze derives which of a user's saved policies are frozen after
// a plan downgrade left them over their active-policy limit.
//
// Freeze status is computed, never stored: policies are ranked by
// (updated_at DESC, id ASC), the first limit entries stay active, and
// everything past the limit is frozen. Frozen policies are excluded from
// execution and editing but stay visible. The id tiebreak keeps the ranking
// deterministic when updated_at collides.
//
// BatchStatus exists for team views where each shared policy may have a
// different owner: it resolves every owner's plan in one grouped fetch and
// ranks all limited owners' policies from a single query, avoiding the
// query-per-owner N+1 pattern.
package freeze
