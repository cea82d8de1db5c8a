// Package team gates team-scoped actions with a static role-permission
// matrix and explicit transition rules.
//
// Four roles are totally ordered by privilege: viewer < member < admin <
// owner. The permission table is authored explicitly per role rather than
// computed from the order, so exception rules stay expressible. Three of
// them exist today: self-elevation (non-owners may only grant roles
// strictly below their own), owner protection (ownership moves only through
// TransferOwnership), and peer-admin protection (an admin cannot change or
// remove another admin, though they may remove themself).
//
// Rule functions are pure and return a Decision rather than an error: a
// denial carries its reason and an HTTP-style status. The Service layers
// membership lookups on top, with "not found" and "not a member" made
// indistinguishable so responses never leak who belongs to a team.
//
// TransferOwnership is the one compound mutation: it promotes the new
// owner, demotes the old one to admin, and repoints the team's owner
// reference in a single atomic unit, keeping exactly one owner per team.
package team
