package school

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bookiown/backend/core"
)

type Student struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName           string             `bson:"firstName" json:"firstName"`
	LastInitial         string             `bson:"lastInitial" json:"lastInitial"`
	ReadingLevel        string             `bson:"readingLevel" json:"readingLevel"`
	AssignedBookLink    string             `bson:"assignedBookLink" json:"assignedBookLink"`
	StudentLetterLink   string             `bson:"studentLetterLink" json:"studentLetterLink"`
	VolunteerLetterLink string             `bson:"volunteerLetterLink" json:"volunteerLetterLink"`
	// MatchedVolunteer is nil while the student is unmatched.
	MatchedVolunteer *primitive.ObjectID `bson:"matchedVolunteer,omitempty" json:"matchedVolunteer,omitempty"`
}

type Class struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name              string               `bson:"name" json:"name"`
	TeacherID         *primitive.ObjectID  `bson:"teacherId,omitempty" json:"teacherId,omitempty"`
	Students          []primitive.ObjectID `bson:"students" json:"students"`
	EstimatedDelivery string               `bson:"estimatedDelivery" json:"estimatedDelivery"`
}

// NewStudent doubles as the update payload: student updates are full
// replacements, unlike every other entity.
type NewStudent struct {
	FirstName           string `json:"firstName" validate:"required"`
	LastInitial         string `json:"lastInitial" validate:"required"`
	ReadingLevel        string `json:"readingLevel" validate:"required"`
	AssignedBookLink    string `json:"assignedBookLink"`
	StudentLetterLink   string `json:"studentLetterLink"`
	VolunteerLetterLink string `json:"volunteerLetterLink"`
	MatchedVolunteer    string `json:"matchedVolunteer" validate:"omitempty,len=24,hexadecimal"`
	ClassID             string `json:"classId" validate:"omitempty,len=24,hexadecimal"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastInitial = core.CleanString(ns.LastInitial)
	ns.ReadingLevel = core.CleanString(ns.ReadingLevel)
	return validate.Struct(ns)
}

type NewClass struct {
	Name              string   `json:"name" validate:"required"`
	TeacherID         string   `json:"teacherId" validate:"omitempty,len=24,hexadecimal"`
	Students          []string `json:"students" validate:"omitempty,dive,len=24,hexadecimal"`
	EstimatedDelivery string   `json:"estimatedDelivery"`
}

func (nc *NewClass) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	return validate.Struct(nc)
}
