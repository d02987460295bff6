package model

// BloodGroup is one of the eight canonical ABO/Rh groups.
type BloodGroup string

const (
	BloodGroupAPos  BloodGroup = "A+"
	BloodGroupANeg  BloodGroup = "A-"
	BloodGroupBPos  BloodGroup = "B+"
	BloodGroupBNeg  BloodGroup = "B-"
	BloodGroupABPos BloodGroup = "AB+"
	BloodGroupABNeg BloodGroup = "AB-"
	BloodGroupOPos  BloodGroup = "O+"
	BloodGroupONeg  BloodGroup = "O-"
)

// BloodGroups lists every canonical group. The order matches the
// transfusion chart the clinical team signs off on.
var BloodGroups = []BloodGroup{
	BloodGroupAPos, BloodGroupANeg,
	BloodGroupBPos, BloodGroupBNeg,
	BloodGroupABPos, BloodGroupABNeg,
	BloodGroupOPos, BloodGroupONeg,
}

// IsValid reports whether g is one of the eight canonical groups.
func (g BloodGroup) IsValid() bool {
	switch g {
	case BloodGroupAPos, BloodGroupANeg,
		BloodGroupBPos, BloodGroupBNeg,
		BloodGroupABPos, BloodGroupABNeg,
		BloodGroupOPos, BloodGroupONeg:
		return true
	}
	return false
}

func (g BloodGroup) String() string {
	return string(g)
}
