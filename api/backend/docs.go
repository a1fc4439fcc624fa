// Package backend holds the OpenAPI document served under /swagger/.
// Regenerate with:
//
//	swag init -g internal/backend/http/router.go -o api/backend --outputTypes go
package backend

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "ZeroHunger Team"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/test": {
            "get": {
                "description": "Lets the mobile client check that it can reach the API.",
                "produces": ["application/json"],
                "tags": ["API"],
                "summary": "Connectivity test",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/apisdk.TestResponse"}}
                }
            }
        },
        "/api/create-user": {
            "post": {
                "description": "Creates an account identified by email. The domain part of the email is lower-cased.\nStaff and superuser flags cannot be set here.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Create user",
                "parameters": [
                    {
                        "description": "New account",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/apisdk.CreateUserRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/apisdk.UserResponse"}},
                    "400": {"description": "Missing or malformed fields", "schema": {"$ref": "#/definitions/apisdk.ValidationErrorResponse"}},
                    "409": {"description": "Email already registered", "schema": {"$ref": "#/definitions/apisdk.ErrorResponse"}},
                    "429": {"description": "Rate limit exceeded", "schema": {"$ref": "#/definitions/apisdk.ErrorResponse"}}
                }
            }
        },
        "/api/get-user": {
            "get": {
                "description": "Looks an account up by id, or by email when no id is given.",
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Get user",
                "parameters": [
                    {"type": "string", "description": "User id (ULID)", "name": "id", "in": "query"},
                    {"type": "string", "description": "Email address", "name": "email", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/apisdk.UserResponse"}},
                    "400": {"description": "Neither id nor email given", "schema": {"$ref": "#/definitions/apisdk.ValidationErrorResponse"}},
                    "404": {"description": "No such user", "schema": {"$ref": "#/definitions/apisdk.ErrorResponse"}}
                }
            }
        },
        "/admin/login/": {
            "post": {
                "description": "Checks the credentials of an active staff account and sets the session cookie.",
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Admin console login",
                "parameters": [
                    {"type": "string", "description": "Email", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/apisdk.AdminLoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apisdk.ValidationErrorResponse"}},
                    "401": {"description": "Wrong credentials or not a staff account", "schema": {"$ref": "#/definitions/apisdk.ErrorResponse"}},
                    "429": {"description": "Rate limit exceeded", "schema": {"$ref": "#/definitions/apisdk.ErrorResponse"}}
                }
            }
        },
        "/admin/logout/": {
            "post": {
                "tags": ["Admin"],
                "summary": "Admin console logout",
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apisdk.ErrorResponse"}}
                }
            }
        },
        "/admin/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Admin site index",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/apisdk.AdminIndexResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apisdk.ErrorResponse"}}
                }
            }
        },
        "/admin/users/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "List users",
                "parameters": [
                    {"type": "integer", "description": "Page size (1-100, default 25)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/apisdk.UserListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apisdk.ValidationErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apisdk.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Like /api/create-user but the flags can be set. Setting is_staff or is_superuser needs a superuser session.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Create user from the console",
                "parameters": [
                    {
                        "description": "New account",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/apisdk.AdminCreateUserRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/apisdk.UserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apisdk.ValidationErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apisdk.ErrorResponse"}},
                    "403": {"description": "Only superusers may grant staff or superuser", "schema": {"$ref": "#/definitions/apisdk.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/apisdk.ErrorResponse"}}
                }
            }
        },
        "/admin/users/{id}/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "User detail",
                "parameters": [
                    {"type": "string", "description": "User id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/apisdk.UserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apisdk.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apisdk.ErrorResponse"}}
                }
            }
        },
        "/livez": {
            "get": {
                "description": "Liveness probe. Always 200 while the process is serving.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/apisdk.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Readiness probe. Reports 503 while the database cannot be reached.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/apisdk.HealthResponse"}},
                    "503": {"description": "service not ready", "schema": {"$ref": "#/definitions/apisdk.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "apisdk.AdminCreateUserRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "username": {"type": "string"},
                "password": {"type": "string"},
                "is_staff": {"type": "boolean"},
                "is_superuser": {"type": "boolean"},
                "is_active": {"type": "boolean"}
            }
        },
        "apisdk.AdminIndexResponse": {
            "type": "object",
            "properties": {
                "site_name": {"type": "string"},
                "models": {"type": "array", "items": {"$ref": "#/definitions/apisdk.AdminModel"}},
                "user": {"$ref": "#/definitions/apisdk.UserResponse"}
            }
        },
        "apisdk.AdminLoginResponse": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/apisdk.UserResponse"},
                "expires_at": {"type": "string"}
            }
        },
        "apisdk.AdminModel": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "apisdk.CreateUserRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "apisdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "error_description": {"type": "string"}
            }
        },
        "apisdk.HealthChecks": {
            "type": "object",
            "properties": {
                "database": {"type": "string"}
            }
        },
        "apisdk.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"},
                "checks": {"$ref": "#/definitions/apisdk.HealthChecks"}
            }
        },
        "apisdk.TestResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "apisdk.UserListResponse": {
            "type": "object",
            "properties": {
                "users": {"type": "array", "items": {"$ref": "#/definitions/apisdk.UserResponse"}},
                "total": {"type": "integer"},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"}
            }
        },
        "apisdk.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "username": {"type": "string"},
                "is_staff": {"type": "boolean"},
                "is_superuser": {"type": "boolean"},
                "is_active": {"type": "boolean"},
                "date_joined": {"type": "string"},
                "last_login": {"type": "string"}
            }
        },
        "apisdk.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "ZeroHunger API",
	Description:      "Backend for the ZeroHunger food donation platform: account management and the staff console.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
