// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BasicAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/account": {
            "post": {"tags": ["account"], "summary": "Register a new account", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}},
            "put": {"tags": ["account"], "summary": "Edit own profile", "security": [{"BasicAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/account/login": {
            "post": {"tags": ["account"], "summary": "Login", "security": [{"BasicAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/account/password": {
            "put": {"tags": ["account"], "summary": "Change own password", "security": [{"BasicAuth": []}], "responses": {"204": {"description": "No Content"}}}
        },
        "/account/{login}": {
            "delete": {"tags": ["account"], "summary": "Remove an account", "security": [{"BasicAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}
        },
        "/account/{login}/role/{role}": {
            "put": {"tags": ["account"], "summary": "Grant a role", "security": [{"BasicAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["account"], "summary": "Revoke a role", "security": [{"BasicAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/forum/post": {
            "post": {"tags": ["forum"], "summary": "Create a post", "responses": {"201": {"description": "Created"}}}
        },
        "/forum/post/{id}": {
            "get": {"tags": ["forum"], "summary": "Get a post", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["forum"], "summary": "Update post content", "security": [{"BasicAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["forum"], "summary": "Delete a post", "security": [{"BasicAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/forum/post/{id}/like": {
            "put": {"tags": ["forum"], "summary": "Like a post", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/forum/post/{id}/comment": {
            "put": {"tags": ["forum"], "summary": "Comment on a post", "responses": {"200": {"description": "OK"}}}
        },
        "/forum/posts/tags": {
            "post": {"tags": ["forum"], "summary": "Find posts by tags", "responses": {"200": {"description": "OK"}}}
        },
        "/forum/posts/author/{author}": {
            "get": {"tags": ["forum"], "summary": "Find posts by author", "responses": {"200": {"description": "OK"}}}
        },
        "/forum/posts/period": {
            "post": {"tags": ["forum"], "summary": "Find posts created in a date range", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Forum API",
	Description:      "Accounts, posts and role-based moderation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
