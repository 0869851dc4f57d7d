// Package docs documento OpenAPI de la API (formato swag).
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
		"/v1/users": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "Listar usuarios",
				"parameters": [
					{
						"type": "string",
						"description": "Filtro exacto por email",
						"name": "email",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Filtro por fecha de creación (RFC3339 o YYYY-MM-DD)",
						"name": "created",
						"in": "query"
					},
					{
						"type": "string",
						"description": "campo:asc|desc separados por coma",
						"name": "sortBy",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Resultados por página",
						"name": "limit",
						"in": "query",
						"default": 10
					},
					{
						"type": "integer",
						"description": "Página (desde 1)",
						"name": "page",
						"in": "query",
						"default": 1
					},
					{
						"type": "string",
						"description": "campo,-otro",
						"name": "projectBy",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.ListResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"security": [
					{
						"Bearer": []
					}
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "Crear usuario",
				"parameters": [
					{
						"description": "Datos del usuario",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CreateUserRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/dto.UserResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/v1/users/{userId}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "Obtener usuario por ID",
				"parameters": [
					{
						"type": "string",
						"description": "ID del usuario",
						"name": "userId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.UserResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"patch": {
				"security": [
					{
						"Bearer": []
					}
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"users"
				],
				"summary": "Actualizar usuario (parcial)",
				"parameters": [
					{
						"type": "string",
						"description": "ID del usuario",
						"name": "userId",
						"in": "path",
						"required": true
					},
					{
						"description": "Campos a actualizar (al menos uno)",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.UpdateUserRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.UserResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"security": [
					{
						"Bearer": []
					}
				],
				"tags": [
					"users"
				],
				"summary": "Eliminar usuario",
				"parameters": [
					{
						"type": "string",
						"description": "ID del usuario",
						"name": "userId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/v1/projects": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"projects"
				],
				"summary": "Listar proyectos",
				"parameters": [
					{
						"type": "string",
						"description": "Filtro por ID del dueño",
						"name": "owner",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Filtro exacto por nombre",
						"name": "name",
						"in": "query"
					},
					{
						"type": "string",
						"description": "campo:asc|desc separados por coma",
						"name": "sortBy",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Resultados por página",
						"name": "limit",
						"in": "query",
						"default": 10
					},
					{
						"type": "integer",
						"description": "Página (desde 1)",
						"name": "page",
						"in": "query",
						"default": 1
					},
					{
						"type": "string",
						"description": "campo,-otro",
						"name": "projectBy",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Relaciones a poblar (owner)",
						"name": "populate",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.ListResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"security": [
					{
						"Bearer": []
					}
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"projects"
				],
				"summary": "Crear proyecto",
				"parameters": [
					{
						"description": "Datos del proyecto",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CreateProjectRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/dto.ProjectResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/v1/projects/{projectId}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"projects"
				],
				"summary": "Obtener proyecto por ID",
				"parameters": [
					{
						"type": "string",
						"description": "ID del proyecto",
						"name": "projectId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.ProjectResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"dto.CreateUserRequest": {
			"type": "object",
			"required": [
				"age",
				"email",
				"firstName",
				"lastName"
			],
			"properties": {
				"firstName": {
					"type": "string",
					"maxLength": 100
				},
				"lastName": {
					"type": "string",
					"maxLength": 100
				},
				"email": {
					"type": "string"
				},
				"age": {
					"type": "integer",
					"minimum": 15,
					"maximum": 100
				},
				"created": {
					"type": "string"
				}
			}
		},
		"dto.UpdateUserRequest": {
			"type": "object",
			"properties": {
				"firstName": {
					"type": "string",
					"maxLength": 100,
					"minLength": 1
				},
				"lastName": {
					"type": "string",
					"maxLength": 100,
					"minLength": 1
				},
				"email": {
					"type": "string"
				},
				"age": {
					"type": "integer",
					"minimum": 15,
					"maximum": 100
				}
			}
		},
		"dto.UserResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"firstName": {
					"type": "string"
				},
				"lastName": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"age": {
					"type": "integer"
				},
				"created": {
					"type": "string"
				},
				"createdAt": {
					"type": "string"
				},
				"updatedAt": {
					"type": "string"
				}
			}
		},
		"dto.CreateProjectRequest": {
			"type": "object",
			"required": [
				"name",
				"owner"
			],
			"properties": {
				"name": {
					"type": "string",
					"maxLength": 200
				},
				"milestones": {
					"type": "integer",
					"minimum": 1
				},
				"owner": {
					"type": "string"
				}
			}
		},
		"dto.ProjectResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"milestones": {
					"type": "integer"
				},
				"owner": {
					"type": "string"
				},
				"createdAt": {
					"type": "string"
				},
				"updatedAt": {
					"type": "string"
				}
			}
		},
		"dto.ListResponse": {
			"type": "object",
			"properties": {
				"results": {
					"type": "array",
					"items": {
						"type": "object",
						"additionalProperties": true
					}
				},
				"page": {
					"type": "integer"
				},
				"limit": {
					"type": "integer"
				},
				"totalPages": {
					"type": "integer"
				},
				"totalResults": {
					"type": "integer"
				}
			}
		},
		"dto.ErrorResponse": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string"
				},
				"message": {
					"type": "string"
				},
				"details": {
					"type": "object",
					"additionalProperties": {
						"type": "string"
					}
				}
			}
		}
	},
	"securityDefinitions": {
		"Bearer": {
			"description": "Bearer <token>",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo metadatos exportados; se pueden sobrescribir al arrancar.
var SwaggerInfo = &swag.Spec{
	Version:		  "1.0",
	Host:			 "localhost:3000",
	BasePath:		 "/",
	Schemes:		  []string{},
	Title:			"Users API",
	Description:	  "API REST de usuarios y proyectos con listados paginados.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:		"{{",
	RightDelim:	   "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
