// Package docs holds the OpenAPI document served at /swagger. It follows the
// handler annotations; regenerate with `swag init -g cmd/api/main.go -o cmd/api/docs`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "Reports that the service is up",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/dto.HealthResponse"}
                    }
                }
            }
        },
        "/generate_quiz": {
            "post": {
                "description": "Scrapes a Wikipedia article, generates a quiz with the configured model and stores it",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Generate a quiz from a Wikipedia article",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Wikipedia article URL",
                        "name": "url",
                        "in": "query"
                    },
                    {
                        "description": "Article URL, when not sent as a query parameter",
                        "name": "request",
                        "in": "body",
                        "schema": {"$ref": "#/definitions/dto.GenerateQuizRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/domain.QuizDocument"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}
                    }
                }
            }
        },
        "/history": {
            "get": {
                "description": "Lists every stored quiz, newest first",
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "List generated quizzes",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/dto.HistoryItemResponse"}
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}
                    }
                }
            }
        },
        "/quiz/{id}": {
            "get": {
                "description": "Returns a stored quiz with the document as it was persisted",
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Get a stored quiz",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Quiz ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/dto.QuizDetailResponse"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.KeyEntities": {
            "type": "object",
            "properties": {
                "locations": {"type": "array", "items": {"type": "string"}},
                "organizations": {"type": "array", "items": {"type": "string"}},
                "people": {"type": "array", "items": {"type": "string"}}
            }
        },
        "domain.QuizDocument": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "key_entities": {"$ref": "#/definitions/domain.KeyEntities"},
                "quiz": {"type": "array", "items": {"$ref": "#/definitions/domain.QuizQuestion"}},
                "related_topics": {"type": "array", "items": {"type": "string"}},
                "sections": {"type": "array", "items": {"type": "string"}},
                "summary": {"type": "string"},
                "title": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "domain.QuizQuestion": {
            "type": "object",
            "properties": {
                "answer": {"type": "string"},
                "difficulty": {"type": "string", "enum": ["easy", "medium", "hard"]},
                "explanation": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}},
                "question": {"type": "string"}
            }
        },
        "domain.ValidationError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"},
                "value": {}
            }
        },
        "dto.GenerateQuizRequest": {
            "type": "object",
            "properties": {
                "url": {"type": "string"}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "dto.HistoryItemResponse": {
            "type": "object",
            "properties": {
                "date_generated": {"type": "string"},
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "dto.QuizDetailResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "quiz_data": {"$ref": "#/definitions/domain.QuizDocument"},
                "title": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "middleware.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "middleware.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/domain.ValidationError"}},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Wiki Quiz API",
	Description:      "Turns Wikipedia articles into multiple-choice quizzes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
