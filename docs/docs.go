package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "Daybook API Documentation",
        "title": "Daybook API",
        "version": "1.0"
    },
    "host": "localhost:5001",
    "basePath": "/",
    "schemes": ["http"],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "description": "Check if server is running",
                "responses": {
                    "200": {
                        "description": "Server is healthy"
                    }
                }
            }
        },
        "/api/tasks": {
            "get": {
                "tags": ["Tasks"],
                "summary": "List tasks",
                "description": "List all tasks ascending by scheduled time",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "Array of tasks"
                    }
                }
            },
            "post": {
                "tags": ["Tasks"],
                "summary": "Create task",
                "description": "Create a task from a multipart form with an optional file attachment",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "formData", "name": "title", "type": "string", "required": true},
                    {"in": "formData", "name": "description", "type": "string"},
                    {"in": "formData", "name": "status", "type": "string", "enum": ["Pending", "In Progress", "Done"]},
                    {"in": "formData", "name": "dateTime", "type": "string", "format": "date-time"},
                    {"in": "formData", "name": "file", "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created task"},
                    "400": {"description": "Missing title"}
                }
            }
        },
        "/api/tasks/{id}": {
            "put": {
                "tags": ["Tasks"],
                "summary": "Update task",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Updated task"},
                    "500": {"description": "Update failed"}
                }
            },
            "delete": {
                "tags": ["Tasks"],
                "summary": "Delete task",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Task deleted"}
                }
            }
        },
        "/api/notes": {
            "get": {
                "tags": ["Notes"],
                "summary": "List notes",
                "description": "List all notes, newest first",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Array of notes"}
                }
            },
            "post": {
                "tags": ["Notes"],
                "summary": "Create note",
                "description": "Create a note from JSON or a multipart form",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created note"}
                }
            }
        },
        "/api/notes/{id}": {
            "put": {
                "tags": ["Notes"],
                "summary": "Update note",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Updated note"},
                    "500": {"description": "Update failed"}
                }
            },
            "delete": {
                "tags": ["Notes"],
                "summary": "Delete note",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Note deleted"}
                }
            }
        },
        "/api/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "User with token pair"},
                    "409": {"description": "Duplicate email or username"}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "User with token pair"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Refresh token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Rotated token pair"},
                    "401": {"description": "Invalid refresh token"}
                }
            }
        },
        "/api/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Logout",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Logged out"}
                }
            }
        },
        "/api/users/me": {
            "get": {
                "tags": ["Users"],
                "summary": "Current user",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "User information"},
                    "401": {"description": "Unauthorized"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and JWT token"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5001",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Daybook API",
	Description:      "Daybook API Documentation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
