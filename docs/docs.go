// Package docs holds the OpenAPI document served under /swagger.
// It mirrors the swag annotations on the handlers; `swag init -g cmd/server/main.go` regenerates it.
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
        "/contact_info": {
            "get": {
                "produces": ["application/json"],
                "tags": ["contacts"],
                "summary": "List contactable witnesses and admins",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ContactListResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/email-verification": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Confirm an email address",
                "parameters": [
                    {"description": "Verification token", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.EmailVerificationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/forget-password": {
            "post": {
                "description": "Always answers ok so registered addresses cannot be discovered.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Request a password reset link",
                "parameters": [
                    {"description": "Account email", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ForgetPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/guest-info": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["guests"],
                "summary": "List the guests of the current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.GuestListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Names and roles cannot be changed. The request is applied atomically.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["guests"],
                "summary": "Update attendance and preferences of the current user's guests",
                "parameters": [
                    {"description": "Guest updates", "name": "request", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.GuestInfoItem"}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.GuestUpdateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [
                    {"description": "Login credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/ping": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}}
                }
            }
        },
        "/reset-password": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Set a new password with a reset token",
                "parameters": [
                    {"description": "Reset token and new password", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ResetPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/send_message": {
            "post": {
                "description": "The receiver's email address is never disclosed.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["contacts"],
                "summary": "Relay a message to a contact",
                "parameters": [
                    {"description": "Message", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.SendMessageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/user-register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register with an invitation token",
                "parameters": [
                    {"description": "Registration data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RegisterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.RegisterResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "error": {"type": "string"}}
        },
        "handler.ContactListResponse": {
            "type": "object",
            "properties": {"contacts": {"type": "array", "items": {"$ref": "#/definitions/service.ContactView"}}}
        },
        "handler.EmailVerificationRequest": {
            "type": "object",
            "required": ["token"],
            "properties": {"token": {"type": "string"}}
        },
        "handler.ForgetPasswordRequest": {
            "type": "object",
            "required": ["email"],
            "properties": {"email": {"type": "string"}}
        },
        "handler.GuestInfoItem": {
            "type": "object",
            "required": ["id"],
            "properties": {
                "allergies": {"type": "string", "maxLength": 1000},
                "dessert_option": {"type": "integer"},
                "favorite_fairy_tale_character": {"type": "string", "maxLength": 255},
                "favorite_tool": {"type": "string", "maxLength": 255},
                "food_option": {"type": "integer"},
                "id": {"type": "integer"},
                "joins": {"type": "boolean"}
            }
        },
        "handler.GuestListResponse": {
            "type": "object",
            "properties": {"guests": {"type": "array", "items": {"$ref": "#/definitions/service.GuestView"}}}
        },
        "handler.GuestUpdateResponse": {
            "type": "object",
            "properties": {"count": {"type": "integer"}}
        },
        "handler.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.LoginResponse": {
            "type": "object",
            "properties": {"access_token": {"type": "string"}, "token_type": {"type": "string"}}
        },
        "handler.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handler.RegisterRequest": {
            "type": "object",
            "required": ["email", "invitation_token", "password"],
            "properties": {"email": {"type": "string"}, "invitation_token": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.RegisterResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "status": {"type": "string"}}
        },
        "handler.ResetPasswordRequest": {
            "type": "object",
            "required": ["password", "token"],
            "properties": {"password": {"type": "string"}, "token": {"type": "string"}}
        },
        "handler.SendMessageRequest": {
            "type": "object",
            "required": ["message", "receiver_id", "sender_email"],
            "properties": {
                "message": {"type": "string", "maxLength": 5000},
                "receiver_id": {"type": "integer"},
                "sender_email": {"type": "string"},
                "sender_phone": {"type": "string", "maxLength": 32},
                "subject": {"type": "string", "maxLength": 200}
            }
        },
        "model.DessertOption": {
            "type": "integer",
            "enum": [0, 1, 2],
            "x-enum-varnames": ["DessertOptionUndefined", "DessertOptionCake", "DessertOptionFruit"]
        },
        "model.FoodOption": {
            "type": "integer",
            "enum": [0, 1, 2],
            "x-enum-varnames": ["FoodOptionUndefined", "FoodOptionVegetarian", "FoodOptionOmnivore"]
        },
        "model.RoleName": {
            "type": "integer",
            "enum": [1, 2, 3],
            "x-enum-comments": {"RoleWitness": "Witnesses can be contacted"},
            "x-enum-varnames": ["RoleGuest", "RoleWitness", "RoleAdmin"]
        },
        "service.ContactView": {
            "type": "object",
            "properties": {"first_name": {"type": "string"}, "id": {"type": "integer"}, "last_name": {"type": "string"}}
        },
        "service.GuestView": {
            "type": "object",
            "properties": {
                "allergies": {"type": "string"},
                "dessert_option": {"$ref": "#/definitions/model.DessertOption"},
                "favorite_fairy_tale_character": {"type": "string"},
                "favorite_tool": {"type": "string"},
                "first_name": {"type": "string"},
                "food_option": {"$ref": "#/definitions/model.FoodOption"},
                "id": {"type": "integer"},
                "joins": {"type": "boolean"},
                "last_name": {"type": "string"},
                "roles": {"type": "array", "items": {"$ref": "#/definitions/model.RoleName"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Wedding RSVP API",
	Description:      "Invitation-gated registration, guest preferences and contact relay.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
