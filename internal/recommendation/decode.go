// internal/recommendation/decode.go
package recommendation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"career-workers/internal/common/validation"
)

var (
	ErrInvalidStudent = errors.New("invalid student record")
	ErrInvalidCareer  = errors.New("invalid career record")
)

// DecodeStudent checks raw against the student record schema and binds it.
// Grade symbols are not checked here; see Engine.Validate.
func DecodeStudent(raw []byte) (StudentRecord, error) {
	var student StudentRecord
	if err := decodeValidated(raw, validation.ValidateStudentRecord, &student); err != nil {
		return StudentRecord{}, fmt.Errorf("%w: %v", ErrInvalidStudent, err)
	}
	return student, nil
}

// DecodeCareer checks raw against the career schema and binds it.
func DecodeCareer(raw []byte) (Career, error) {
	var career Career
	if err := decodeValidated(raw, validation.ValidateCareer, &career); err != nil {
		return Career{}, fmt.Errorf("%w: %v", ErrInvalidCareer, err)
	}
	return career, nil
}

func decodeValidated(raw []byte, check func(interface{}) (*validation.ValidationResult, error), dst interface{}) error {
	if len(raw) == 0 {
		return errors.New("payload is empty")
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	result, err := check(doc)
	if err != nil {
		return err
	}
	if !result.Valid {
		return errors.New(strings.Join(result.GetErrorMessages(), "; "))
	}
	return json.Unmarshal(raw, dst)
}
