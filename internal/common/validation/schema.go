// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// StudentRecordSchema describes the student payload accepted by the career
// workers. Unknown grade symbols pass here and are handled by the scorer.
const StudentRecordSchema = `{
  "type": "object",
  "required": ["meanGrade", "subjects"],
  "properties": {
    "year": {"type": "integer", "minimum": 1989},
    "meanGrade": {"type": "string", "minLength": 1},
    "meanPoints": {"type": "number", "minimum": 0, "maximum": 12},
    "subjects": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["subject", "grade"],
        "properties": {
          "subject": {"type": "string", "minLength": 1},
          "grade": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

// CareerSchema describes an inline career record.
const CareerSchema = `{
  "type": "object",
  "required": ["id", "minimumMeanGrade"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "title": {"type": "string"},
    "minimumMeanGrade": {"type": "string", "minLength": 1},
    "keySubjects": {"type": "array", "items": {"type": "string"}},
    "requiredGrades": {"type": "object", "additionalProperties": {"type": "string"}},
    "marketDemand": {"type": "string"}
  }
}`

var (
	studentSchema = mustCompile(StudentRecordSchema)
	careerSchema  = mustCompile(CareerSchema)

	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)
	namePattern  = regexp.MustCompile(`^[a-z]+\.[a-z]+\.[a-z]+$`)
)

func mustCompile(schema string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("invalid schema: %v", err))
	}
	return s
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func ValidateStudentRecord(doc interface{}) (*ValidationResult, error) {
	return validate(studentSchema, doc)
}

func ValidateCareer(doc interface{}) (*ValidationResult, error) {
	return validate(careerSchema, doc)
}

func validate(schema *gojsonschema.Schema, doc interface{}) (*ValidationResult, error) {
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out, nil
}

func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") {
			return true
		}
	}
	return false
}

// ValidateActivityNaming enforces domain.subdomain.action activity ids.
func ValidateActivityNaming(activityID string) error {
	if !namePattern.MatchString(activityID) {
		return fmt.Errorf("activity ID must follow format: domain.subdomain.action (e.g., career.match.calculate)")
	}
	return nil
}

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
