// Package users holds the OpenAPI document served under /swagger/.
// Regenerate with: swag init -g internal/users/http/router.go -o api/users --parseDependency
package users

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
        "/api/roles": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns the role vocabulary. Requires the Admin role.",
                "produces": ["application/json"],
                "tags": ["Roles"],
                "summary": "List all roles",
                "responses": {
                    "200": {"description": "role names", "schema": {"$ref": "#/definitions/usersdk.ListRolesResponse"}},
                    "401": {"description": "missing or invalid token", "schema": {"$ref": "#/definitions/usersdk.ErrorResponse"}},
                    "403": {"description": "Admin role required", "schema": {"$ref": "#/definitions/usersdk.ErrorResponse"}}
                }
            }
        },
        "/api/users/all-sponsors": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns every account holding the Sponsor role together with its sponsor's name. Requires the Admin role.",
                "produces": ["application/json"],
                "tags": ["Directory"],
                "summary": "List sponsor users",
                "responses": {
                    "200": {"description": "sponsor accounts", "schema": {"type": "array", "items": {"$ref": "#/definitions/usersdk.AccountSummary"}}},
                    "401": {"description": "missing or invalid token", "schema": {"$ref": "#/definitions/usersdk.ErrorResponse"}},
                    "403": {"description": "Admin role required", "schema": {"$ref": "#/definitions/usersdk.ErrorResponse"}},
                    "503": {"description": "store unavailable", "schema": {"$ref": "#/definitions/usersdk.ErrorResponse"}}
                }
            }
        },
        "/api/users/all-users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns every account. Requires the Admin role.",
                "produces": ["application/json"],
                "tags": ["Directory"],
                "summary": "List all users",
                "responses": {
                    "200": {"description": "accounts", "schema": {"type": "array", "items": {"$ref": "#/definitions/usersdk.AccountSummary"}}},
                    "401": {"description": "missing or invalid token", "schema": {"$ref": "#/definitions/usersdk.ErrorResponse"}},
                    "403": {"description": "Admin role required", "schema": {"$ref": "#/definitions/usersdk.ErrorResponse"}},
                    "503": {"description": "store unavailable", "schema": {"$ref": "#/definitions/usersdk.ErrorResponse"}}
                }
            }
        },
        "/api/users/create-sponsor-user": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Creates an account bound to an existing sponsor with the Sponsor, Sponsor Read and Sponsor Write roles. Requires the Admin role.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Accounts"],
                "summary": "Create a sponsor user",
                "parameters": [
                    {"description": "Account details including sponsorId", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/usersdk.RegisterRequest"}}
                ],
                "responses": {
                    "200": {"description": "succeeded, user", "schema": {"$ref": "#/definitions/usersdk.RegisterResponse"}},
                    "400": {"description": "validation failure, unknown sponsor or duplicate username", "schema": {"$ref": "#/definitions/usersdk.ErrorResponse"}},
                    "401": {"description": "missing or invalid token", "schema": {"$ref": "#/definitions/usersdk.ErrorResponse"}},
                    "403": {"description": "Admin role required", "schema": {"$ref": "#/definitions/usersdk.ErrorResponse"}}
                }
            }
        },
        "/api/users/login": {
            "post": {
                "description": "Exchanges a username and password for a signed JWT. Every failure yields the same 400 body.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Accounts"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/usersdk.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "token", "schema": {"$ref": "#/definitions/usersdk.LoginResponse"}},
                    "400": {"description": "Username or password is incorrect.", "schema": {"$ref": "#/definitions/usersdk.ErrorResponse"}},
                    "503": {"description": "store unavailable", "schema": {"$ref": "#/definitions/usersdk.ErrorResponse"}}
                }
            }
        },
        "/api/users/register": {
            "post": {
                "description": "Creates an account and grants the self-service roles. The roles field of the body is ignored.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Accounts"],
                "summary": "Register an account",
                "parameters": [
                    {"description": "Account details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/usersdk.RegisterRequest"}}
                ],
                "responses": {
                    "200": {"description": "succeeded, user", "schema": {"$ref": "#/definitions/usersdk.RegisterResponse"}},
                    "400": {"description": "validation failure or duplicate username", "schema": {"$ref": "#/definitions/usersdk.ErrorResponse"}},
                    "503": {"description": "store unavailable", "schema": {"$ref": "#/definitions/usersdk.ErrorResponse"}}
                }
            }
        },
        "/api/users/{username}/roles": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Adds roles to an existing account. Roles already held are kept. Requires the Admin role.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Roles"],
                "summary": "Assign roles to a user",
                "parameters": [
                    {"type": "string", "description": "Username, case-insensitive", "name": "username", "in": "path", "required": true},
                    {"description": "Roles to add", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/usersdk.AssignRolesRequest"}}
                ],
                "responses": {
                    "200": {"description": "updated account", "schema": {"$ref": "#/definitions/usersdk.AccountSummary"}},
                    "400": {"description": "unknown or empty roles", "schema": {"$ref": "#/definitions/usersdk.ErrorResponse"}},
                    "401": {"description": "missing or invalid token", "schema": {"$ref": "#/definitions/usersdk.ErrorResponse"}},
                    "403": {"description": "Admin role required", "schema": {"$ref": "#/definitions/usersdk.ErrorResponse"}},
                    "404": {"description": "account not found", "schema": {"$ref": "#/definitions/usersdk.ErrorResponse"}}
                }
            }
        },
        "/livez": {
            "get": {
                "description": "Always 200 while the process is serving",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/usersdk.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Reports whether the account store is reachable. Failure detail is logged, not returned.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/usersdk.HealthResponse"}},
                    "503": {"description": "store unreachable", "schema": {"$ref": "#/definitions/usersdk.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "usersdk.AccountSummary": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "firstName": {"type": "string"},
                "id": {"type": "string"},
                "lastName": {"type": "string"},
                "roles": {"type": "array", "items": {"type": "string"}},
                "sponsorId": {"type": "integer"},
                "sponsorName": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "usersdk.AssignRolesRequest": {
            "type": "object",
            "properties": {
                "roles": {"type": "array", "items": {"type": "string"}}
            }
        },
        "usersdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}},
                "message": {"type": "string"}
            }
        },
        "usersdk.HealthResponse": {
            "type": "object",
            "properties": {
                "checks": {"type": "object", "additionalProperties": {"type": "string"}},
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "usersdk.ListRolesResponse": {
            "type": "object",
            "properties": {
                "roles": {"type": "array", "items": {"type": "string"}}
            }
        },
        "usersdk.LoginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "usersdk.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"}
            }
        },
        "usersdk.RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "password": {"type": "string"},
                "roles": {"type": "array", "items": {"type": "string"}},
                "sponsorId": {"type": "integer"},
                "username": {"type": "string"}
            }
        },
        "usersdk.RegisterResponse": {
            "type": "object",
            "properties": {
                "succeeded": {"type": "boolean"},
                "user": {"$ref": "#/definitions/usersdk.AccountSummary"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT access token. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Integra Users API",
	Description:      "Account registration, login and role-gated user directory for Integra Admin.\n\nLogin issues an HS256 JWT carrying the account id and its roles.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
