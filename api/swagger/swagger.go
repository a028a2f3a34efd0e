package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "UAI Planning API",
        "description": "Academic planning, schedule conflict detection and hour compliance",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Authentication"},
        {"name": "Offerings", "description": "Class offerings per semester"},
        {"name": "Groups", "description": "Theory/practice/lab groups"},
        {"name": "Meetings", "description": "Weekly meeting slots"},
        {"name": "Teachers", "description": "Teacher assignments"},
        {"name": "Requirements", "description": "Course section hour requirements"},
        {"name": "Conflicts", "description": "Schedule conflict detection"},
        {"name": "Hours", "description": "Hour compliance validation"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and obtain an access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/planning/class-offerings": {
            "get": {
                "tags": ["Offerings"],
                "summary": "List class offerings",
                "parameters": [
                    {"name": "semesterId", "in": "query", "type": "string"},
                    {"name": "courseSectionId", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Offerings"],
                "summary": "Create class offering",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClassOfferingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planning/class-offerings/{id}": {
            "get": {
                "tags": ["Offerings"],
                "summary": "Get class offering",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found"}
                }
            },
            "patch": {
                "tags": ["Offerings"],
                "summary": "Update class offering",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Offerings"],
                "summary": "Delete class offering",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/planning/semesters/{semesterId}/offerings": {
            "delete": {
                "tags": ["Offerings"],
                "summary": "Purge a semester's offerings and dependents",
                "parameters": [
                    {"name": "semesterId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planning/schedule-conflicts": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "List stored conflicts for a semester",
                "parameters": [
                    {"name": "semesterId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planning/schedule-conflicts/detect/{semesterId}": {
            "post": {
                "tags": ["Conflicts"],
                "summary": "Run conflict detection for a semester",
                "parameters": [
                    {"name": "semesterId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planning/schedule-conflicts/export": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "Export a semester's conflicts as CSV or PDF",
                "parameters": [
                    {"name": "semesterId", "in": "query", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/planning/hours-validation/{classOfferingId}": {
            "get": {
                "tags": ["Hours"],
                "summary": "Validate planned hours for a class offering",
                "parameters": [
                    {"name": "classOfferingId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Offering or requirement not found"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "CreateClassOfferingRequest": {
            "type": "object",
            "properties": {
                "semester_id": {"type": "string"},
                "study_plan_id": {"type": "string"},
                "academic_program_id": {"type": "string"},
                "course_id": {"type": "string"},
                "course_section_id": {"type": "string"},
                "campus_id": {"type": "string"},
                "delivery_modality_id": {"type": "string"},
                "shift_id": {"type": "string"},
                "projected_vacancies": {"type": "integer"},
                "status": {"type": "boolean"}
            },
            "required": ["semester_id", "study_plan_id", "academic_program_id", "course_id", "course_section_id", "campus_id", "delivery_modality_id", "shift_id"]
        },
        "ScheduleConflict": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "semester_id": {"type": "string"},
                "conflict_type": {"type": "string", "enum": ["TEACHER_OVERLAP", "CLASSROOM_OVERLAP", "GROUP_OVERLAP", "SECTION_OVERLAP"]},
                "severity": {"type": "string", "enum": ["INFO", "WARNING", "CRITICAL"]},
                "teacher_id": {"type": "string"},
                "classroom_id": {"type": "string"},
                "class_group_id": {"type": "string"},
                "class_offering_id": {"type": "string"},
                "meeting_a_id": {"type": "string"},
                "meeting_b_id": {"type": "string"},
                "overlap_minutes": {"type": "integer"},
                "detail": {"type": "object"},
                "detected_at": {"type": "string"}
            }
        },
        "HourComplianceReport": {
            "type": "object",
            "properties": {
                "class_offering_id": {"type": "string"},
                "course_section_id": {"type": "string"},
                "course_format": {"type": "string"},
                "expected": {"$ref": "#/definitions/HourBreakdown"},
                "planned": {"$ref": "#/definitions/HourBreakdown"},
                "diff": {"$ref": "#/definitions/HourBreakdown"},
                "compliant": {"type": "boolean"},
                "computed_at": {"type": "string"}
            }
        },
        "HourBreakdown": {
            "type": "object",
            "properties": {
                "theory": {"type": "integer"},
                "practice": {"type": "integer"},
                "lab": {"type": "integer"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
