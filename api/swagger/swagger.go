package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Planner API",
        "description": "Course catalog browsing and conflict-checked schedule planning",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Sessions", "description": "Planning session lifecycle"},
        {"name": "Schedule", "description": "Per-session schedule mutations and views"},
        {"name": "Checks", "description": "Conflict checks and addability screening"},
        {"name": "Exports", "description": "Background export rendering"},
        {"name": "Catalog", "description": "Read-only course catalog"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/sessions": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Start a planning session",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{sessionId}": {
            "delete": {
                "tags": ["Sessions"],
                "summary": "End a planning session and drop its persisted schedule",
                "parameters": [
                    {"name": "sessionId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Ended"},
                    "404": {"description": "Unknown session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{sessionId}/schedule": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Current schedule of a session",
                "parameters": [
                    {"name": "sessionId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Schedule"],
                "summary": "Remove every selection of a session",
                "parameters": [
                    {"name": "sessionId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Cleared"}
                }
            }
        },
        "/sessions/{sessionId}/schedule/export": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Download the schedule as PDF or iCalendar",
                "produces": ["application/pdf", "text/calendar"],
                "parameters": [
                    {"name": "sessionId", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["pdf", "ics"], "default": "pdf"}
                ],
                "responses": {
                    "200": {"description": "Rendered document"}
                }
            }
        },
        "/sessions/{sessionId}/selections": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Add a course selection to the schedule",
                "parameters": [
                    {"name": "sessionId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddSelectionRequest"}}
                ],
                "responses": {
                    "200": {"description": "Rejected by conflict check", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "201": {"description": "Added", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate course or ambiguous code", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{sessionId}/selections/{courseCode}": {
            "delete": {
                "tags": ["Schedule"],
                "summary": "Remove a course from the schedule",
                "parameters": [
                    {"name": "sessionId", "in": "path", "required": true, "type": "string"},
                    {"name": "courseCode", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not in schedule", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{sessionId}/checks/sections": {
            "post": {
                "tags": ["Checks"],
                "summary": "Dry-run conflict check for a candidate selection",
                "parameters": [
                    {"name": "sessionId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddSelectionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{sessionId}/checks/courses/{courseCode}": {
            "get": {
                "tags": ["Checks"],
                "summary": "Screen a whole course against the schedule",
                "parameters": [
                    {"name": "sessionId", "in": "path", "required": true, "type": "string"},
                    {"name": "courseCode", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{sessionId}/browse": {
            "get": {
                "tags": ["Checks"],
                "summary": "Search the catalog, partitioned by addability",
                "parameters": [
                    {"name": "sessionId", "in": "path", "required": true, "type": "string"},
                    {"name": "q", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{sessionId}/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Request a background export render",
                "parameters": [
                    {"name": "sessionId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EnqueueExportRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/{jobId}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Poll an export render job",
                "parameters": [
                    {"name": "jobId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown job", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/{jobId}/download": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a rendered export via its signed token",
                "produces": ["application/pdf", "text/calendar"],
                "parameters": [
                    {"name": "jobId", "in": "path", "required": true, "type": "string"},
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Rendered document"},
                    "400": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Search courses by keywords",
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{courseCode}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Course detail by code or unique prefix",
                "parameters": [
                    {"name": "courseCode", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No match", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Ambiguous prefix", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "EnqueueExportRequest": {
            "type": "object",
            "properties": {
                "format": {"type": "string", "enum": ["pdf", "ics"], "default": "pdf"}
            }
        },
        "AddSelectionRequest": {
            "type": "object",
            "required": ["course_code"],
            "properties": {
                "course_code": {"type": "string"},
                "section_ids": {"type": "array", "items": {"type": "string"}},
                "ignore_capacity": {"type": "boolean"}
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
                "meta": {"type": "object"}
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
