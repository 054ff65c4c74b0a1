// internal/inquiries/schemas.go
package inquiries

import "portfolio-backend/internal/common/validation"

var projectInitiationSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["name", "email", "business_type", "requirements"],
	"properties": {
		"name":          {"type": "string", "minLength": 1, "pattern": "\\S", "maxLength": 200},
		"email":         {"type": "string", "minLength": 3, "maxLength": 320},
		"business_type": {"type": "string", "minLength": 1, "pattern": "\\S", "maxLength": 200},
		"website":       {"type": "string", "maxLength": 500},
		"requirements":  {"type": "string", "minLength": 1, "pattern": "\\S", "maxLength": 5000}
	}
}`)

var meetingSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["email", "date", "time", "goals"],
	"properties": {
		"email": {"type": "string", "minLength": 3, "maxLength": 320},
		"date":  {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
		"time":  {"type": "string", "minLength": 1, "pattern": "\\S", "maxLength": 50},
		"goals": {"type": "string", "minLength": 1, "pattern": "\\S", "maxLength": 5000}
	}
}`)
