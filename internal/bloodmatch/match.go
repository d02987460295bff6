// Package bloodmatch holds the transfusion-compatibility rules and the
// pure filters built on top of them. Nothing in this package performs
// I/O; callers fetch donor and request collections first and pass them
// in as snapshots.
package bloodmatch

import (
	"github.com/arogyacare/blood-api/internal/model"
)

// GroupSet is a set of blood groups.
type GroupSet map[model.BloodGroup]struct{}

// Contains reports whether g is a member of the set.
func (s GroupSet) Contains(g model.BloodGroup) bool {
	_, ok := s[g]
	return ok
}

// compatibility maps a recipient group to the groups that may donate to
// it, per the standard transfusion chart. Process-wide constant.
var compatibility = map[model.BloodGroup]GroupSet{
	model.BloodGroupAPos:  newGroupSet(model.BloodGroupAPos, model.BloodGroupANeg, model.BloodGroupOPos, model.BloodGroupONeg),
	model.BloodGroupANeg:  newGroupSet(model.BloodGroupANeg, model.BloodGroupONeg),
	model.BloodGroupBPos:  newGroupSet(model.BloodGroupBPos, model.BloodGroupBNeg, model.BloodGroupOPos, model.BloodGroupONeg),
	model.BloodGroupBNeg:  newGroupSet(model.BloodGroupBNeg, model.BloodGroupONeg),
	model.BloodGroupABPos: newGroupSet(model.BloodGroupAPos, model.BloodGroupANeg, model.BloodGroupBPos, model.BloodGroupBNeg, model.BloodGroupABPos, model.BloodGroupABNeg, model.BloodGroupOPos, model.BloodGroupONeg),
	model.BloodGroupABNeg: newGroupSet(model.BloodGroupANeg, model.BloodGroupBNeg, model.BloodGroupABNeg, model.BloodGroupONeg),
	model.BloodGroupOPos:  newGroupSet(model.BloodGroupOPos, model.BloodGroupONeg),
	model.BloodGroupONeg:  newGroupSet(model.BloodGroupONeg),
}

func newGroupSet(groups ...model.BloodGroup) GroupSet {
	s := make(GroupSet, len(groups))
	for _, g := range groups {
		s[g] = struct{}{}
	}
	return s
}

// CompatibleDonors returns the set of groups that may donate to the
// given recipient group. Unknown recipients get an empty set: offering
// no match is safer than guessing.
func CompatibleDonors(recipient model.BloodGroup) GroupSet {
	s, ok := compatibility[recipient]
	if !ok {
		return GroupSet{}
	}
	out := make(GroupSet, len(s))
	for g := range s {
		out[g] = struct{}{}
	}
	return out
}

// FindCompatibleDonors filters donors down to those that could donate
// to the recipient group. A nil recipient means "no target yet" and
// returns the input unchanged. Availability and consent are re-checked
// here even though the read path is expected to pre-filter them; the
// upstream query is not trusted to have done so.
// The input order is preserved.
func FindCompatibleDonors(recipient *model.BloodGroup, donors []*model.DonorRecord) []*model.DonorRecord {
	if recipient == nil {
		return donors
	}

	allowed := CompatibleDonors(*recipient)
	matched := make([]*model.DonorRecord, 0, len(donors))
	for _, d := range donors {
		if !d.IsAvailable || !d.ConsentGiven {
			continue
		}
		if !allowed.Contains(d.BloodGroup) {
			continue
		}
		matched = append(matched, d)
	}
	return matched
}

// ActiveRequests filters requests down to those still active, keeping
// the order they arrived in.
func ActiveRequests(requests []*model.BloodRequest) []*model.BloodRequest {
	active := make([]*model.BloodRequest, 0, len(requests))
	for _, r := range requests {
		if r.Status != model.RequestStatusActive {
			continue
		}
		active = append(active, r)
	}
	return active
}
