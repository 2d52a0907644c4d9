package core

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Kind tags an entity type with its key schema in Schemas.
type Kind string

const (
	KindAdmin     Kind = "admin"
	KindStudent   Kind = "student"
	KindClass     Kind = "class"
	KindTeacher   Kind = "teacher"
	KindVolunteer Kind = "volunteer"
	KindInvite    Kind = "invite"
	KindMatch     Kind = "match"
	KindUnmatch   Kind = "unmatch"
	KindAccount   Kind = "account"
)

// KeySchema describes the acceptable key set of a proposed record:
// every key in Required must be present, and no key outside Allowed may
// appear. Required is always a subset of Allowed.
type KeySchema struct {
	Required []string
	Allowed  []string
}

// Schemas holds the static key schema per entity kind.
var Schemas = map[Kind]KeySchema{
	KindAdmin: {
		Required: []string{"firstName", "lastName", "email", "approvalStatus"},
		Allowed:  []string{"firstName", "lastName", "email", "approvalStatus"},
	},
	KindStudent: {
		Required: []string{"firstName", "lastInitial", "readingLevel"},
		Allowed: []string{
			"firstName", "lastInitial", "readingLevel", "assignedBookLink",
			"studentLetterLink", "volunteerLetterLink", "matchedVolunteer", "classId",
		},
	},
	KindClass: {
		Required: []string{"name"},
		Allowed:  []string{"name", "teacherId", "students", "estimatedDelivery"},
	},
	KindTeacher: {
		Required: []string{"firstName", "lastName", "email", "approvalStatus"},
		Allowed:  []string{"firstName", "lastName", "email", "approvalStatus"},
	},
	KindVolunteer: {
		Required: []string{"firstName", "lastName", "email", "approvalStatus"},
		Allowed:  []string{"firstName", "lastName", "email", "approvalStatus", "matchedStudents"},
	},
	KindInvite: {
		Required: []string{"email", "role"},
		Allowed:  []string{"email", "sender", "role", "status"},
	},
	KindMatch: {
		Required: []string{"volunteerId", "studentIdArray"},
		Allowed:  []string{"volunteerId", "studentIdArray"},
	},
	KindUnmatch: {
		Required: []string{"volunteerId", "studentId"},
		Allowed:  []string{"volunteerId", "studentId"},
	},
	KindAccount: {
		Required: []string{"firstName", "lastName", "email"},
		Allowed:  []string{"firstName", "lastName", "email", "approvalStatus"},
	},
}

type undefined struct{}

// Undefined marks a key as present but carrying no value. VerifyKeys treats
// it exactly like an absent key, unlike empty strings or zeroes which count
// as defined values.
var Undefined = undefined{}

// Record is a proposed entity record: a field-name to value mapping that
// remembers the order in which keys were set. Key order matters because
// extraneous keys are reported in the record's own order.
type Record struct {
	keys   []string
	values map[string]interface{}
}

func NewRecord() *Record {
	return &Record{values: make(map[string]interface{})}
}

// Set adds or replaces a field. First insertion fixes the key's position.
func (r *Record) Set(key string, value interface{}) *Record {
	if r.values == nil {
		r.values = make(map[string]interface{})
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
	return r
}

func (r *Record) Get(key string) (interface{}, bool) {
	v, ok := r.values[key]
	return v, ok
}

func (r *Record) Len() int { return len(r.keys) }

func (r *Record) Keys() []string { return r.keys }

// UnmarshalJSON decodes a JSON object into the Record, preserving the
// object's own top-level key order. Anything but an object is rejected.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("record must be a JSON object")
	}

	r.keys = nil
	r.values = make(map[string]interface{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string) // object keys are always strings
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return err
		}
		r.Set(key, value)
	}
	_, err = dec.Token() // consume closing '}'
	return err
}

// DecodeRecord reads a single JSON object off r.
func DecodeRecord(rd io.Reader) (*Record, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	rec := NewRecord()
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// VerifyKeys checks a proposed record against a key schema and returns a
// human-readable diagnostic: "" when the record is acceptable, otherwise
// "Missing keys: a, b. " (in schema order) and/or "Extra keys: c." (in the
// record's own order), concatenated.
func VerifyKeys(rec *Record, schema KeySchema) string {
	var missing []string
	for _, key := range schema.Required {
		if v, ok := rec.values[key]; !ok || v == Undefined {
			missing = append(missing, key)
		}
	}

	allowed := make(map[string]struct{}, len(schema.Allowed))
	for _, key := range schema.Allowed {
		allowed[key] = struct{}{}
	}
	var extra []string
	for _, key := range rec.keys {
		if _, ok := allowed[key]; !ok {
			extra = append(extra, key)
		}
	}

	var b strings.Builder
	if len(missing) > 0 {
		b.WriteString("Missing keys: ")
		b.WriteString(strings.Join(missing, ", "))
		b.WriteString(". ")
	}
	if len(extra) > 0 {
		b.WriteString("Extra keys: ")
		b.WriteString(strings.Join(extra, ", "))
		b.WriteString(".")
	}
	return b.String()
}
