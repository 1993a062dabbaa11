package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Trainer Console API",
        "description": "Course authoring console over the trainer REST API with a Postgres fallback",
        "version": "1.0.0"
    },
    "basePath": "/api/console",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Courses", "description": "Course authoring and publication"},
        {"name": "Units", "description": "Course builder units and their content"},
        {"name": "Workspace", "description": "Per-session working copy of a course"},
        {"name": "Quizzes", "description": "Quiz question editor"},
        {"name": "Enrollments", "description": "Learner assignment"},
        {"name": "Leaderboard", "description": "Course rankings"},
        {"name": "Reports", "description": "Course and learner reports"},
        {"name": "Dashboard", "description": "Trainer counters"},
        {"name": "Media", "description": "Media bucket"},
        {"name": "Session", "description": "Stored trainer credential"}
    ],
    "paths": {
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Create a course",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Permission denied", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get a course with its units",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Courses"],
                "summary": "Update a course",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseInput"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Courses"],
                "summary": "Delete a course",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/courses/{id}/publish": {
            "post": {
                "tags": ["Courses"],
                "summary": "Publish a course",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Published"}}
            }
        },
        "/courses/{id}/duplicate": {
            "post": {
                "tags": ["Courses"],
                "summary": "Duplicate a course and its units",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/courses/{id}/assignable-learners": {
            "get": {
                "tags": ["Courses"],
                "summary": "List learners that can be assigned to a course",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/courses/{id}/units": {
            "get": {
                "tags": ["Units"],
                "summary": "List the units of a course in order",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Units"],
                "summary": "Append a unit to a course",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UnitInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Unsupported unit type", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Units"],
                "summary": "Rewrite unit order",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/IDList"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/courses/{id}/units/{unitId}": {
            "patch": {
                "tags": ["Units"],
                "summary": "Update a unit",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "unitId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UnitUpdate"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Units"],
                "summary": "Delete a unit",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "unitId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/courses/{id}/units/{unitId}/content": {
            "get": {
                "tags": ["Units"],
                "summary": "Get the content detail of a unit",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "unitId", "in": "path", "required": true, "type": "string"},
                    {"name": "type", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Unsupported unit type", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Units"],
                "summary": "Save the content detail of a unit",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "unitId", "in": "path", "required": true, "type": "string"},
                    {"name": "type", "in": "query", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/courses/{id}/workspace": {
            "get": {
                "tags": ["Workspace"],
                "summary": "Get the open workspace of a course",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Workspace"],
                "summary": "Close a course workspace",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Closed"}}
            }
        },
        "/courses/{id}/workspace/selection": {
            "put": {
                "tags": ["Workspace"],
                "summary": "Select the unit being edited",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"unit_id": {"type": "string"}}}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/quizzes/{quizId}/questions": {
            "get": {
                "tags": ["Quizzes"],
                "summary": "List the questions of a quiz in order",
                "parameters": [{"name": "quizId", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Quizzes"],
                "summary": "Append a question to a quiz",
                "parameters": [
                    {"name": "quizId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/QuestionInput"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Quizzes"],
                "summary": "Rewrite question order",
                "parameters": [
                    {"name": "quizId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"question_ids": {"type": "array", "items": {"type": "string"}}}}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/questions/{id}": {
            "put": {
                "tags": ["Quizzes"],
                "summary": "Update a question",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/QuestionInput"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Quizzes"],
                "summary": "Delete a question",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/courses/{id}/enrollments": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List enrollments of a course",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Enrollments"],
                "summary": "Enroll learners in bulk",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/courses/{id}/assign": {
            "post": {
                "tags": ["Enrollments"],
                "summary": "Assign a course to learners",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/enrollments/{id}": {
            "delete": {
                "tags": ["Enrollments"],
                "summary": "Remove an enrollment",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/courses/{id}/leaderboard": {
            "get": {
                "tags": ["Leaderboard"],
                "summary": "Course leaderboard",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/courses/{id}/leaderboard/refresh": {
            "post": {
                "tags": ["Leaderboard"],
                "summary": "Recompute one learner's points",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"user_id": {"type": "string"}}}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/leaderboard": {
            "get": {
                "tags": ["Leaderboard"],
                "summary": "Leaderboard across every course",
                "parameters": [{"name": "limit", "in": "query", "type": "integer"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/leaderboard/rerank": {
            "post": {
                "tags": ["Leaderboard"],
                "summary": "Re-rank every course now",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/reports/courses/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Course completion report",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/reports/courses/{id}/export": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download a course report",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {"200": {"description": "Report file"}}
            }
        },
        "/reports/learners/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Learner progress report",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Trainer dashboard counters",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/media": {
            "post": {
                "tags": ["Media"],
                "summary": "Upload a media file",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "folder", "in": "formData", "required": true, "type": "string", "enum": ["videos", "audio", "presentations", "scorm", "thumbnails", "assignments"]},
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Media"],
                "summary": "Delete a media file",
                "parameters": [{"name": "path", "in": "query", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/media/link": {
            "get": {
                "tags": ["Media"],
                "summary": "Create a temporary signed link to a media file",
                "parameters": [{"name": "path", "in": "query", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Unknown path"}}
            }
        },
        "/media/files/{path}": {
            "get": {
                "tags": ["Media"],
                "summary": "Stream a stored media file",
                "parameters": [{"name": "path", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "File"}, "404": {"description": "Not found"}}
            }
        },
        "/media/links/{token}": {
            "get": {
                "tags": ["Media"],
                "summary": "Stream a media file by signed token",
                "parameters": [{"name": "token", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "File"}, "403": {"description": "Invalid or expired link"}}
            }
        },
        "/session": {
            "get": {
                "tags": ["Session"],
                "summary": "Describe the current session",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/session/token": {
            "put": {
                "tags": ["Session"],
                "summary": "Store the trainer API token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"token": {"type": "string"}}}}
                ],
                "responses": {"204": {"description": "Stored"}}
            },
            "delete": {
                "tags": ["Session"],
                "summary": "Forget the stored trainer API token",
                "responses": {"204": {"description": "Cleared"}}
            }
        }
    },
    "definitions": {
        "CourseInput": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string"},
                "language": {"type": "string"},
                "thumbnail_url": {"type": "string"},
                "status": {"type": "string", "enum": ["draft", "published"]},
                "visibility": {"type": "string", "enum": ["private", "public", "restricted"]},
                "sequential_access": {"type": "boolean"},
                "completion_rule": {"type": "string", "enum": ["all_units", "required_units"]},
                "certificate_enabled": {"type": "boolean"}
            },
            "required": ["title"]
        },
        "UnitInput": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["text", "video", "audio", "presentation", "scorm", "xapi", "quiz", "test", "assignment", "survey", "page"]},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "is_required": {"type": "boolean"}
            },
            "required": ["type", "title"]
        },
        "UnitUpdate": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "is_required": {"type": "boolean"}
            }
        },
        "IDList": {
            "type": "object",
            "properties": {
                "unit_ids": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["unit_ids"]
        },
        "QuestionInput": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["multiple_choice", "multiple_answer", "true_false", "fill_blank", "matching", "ordering", "free_text"]},
                "text": {"type": "string"},
                "options": {"type": "array", "items": {}},
                "correct_answer": {},
                "points": {"type": "integer"}
            },
            "required": ["type", "text"]
        },
        "AssignRequest": {
            "type": "object",
            "properties": {
                "user_ids": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["user_ids"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "kind": {"type": "string", "enum": ["auth", "not_found", "validation", "network", "unknown", "unsupported"]},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "actionable": {"type": "boolean"}
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
