// Package docs registra el documento OpenAPI (Swagger 2.0) de birds-api en swag.
// Se sirve en /swagger/doc.json vía http-swagger.
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
        "/birds": {
            "get": {
                "description": "Returns every bird in id order. The body shape is fixed per deployment (BIRDS_ENVELOPE): a flat array of birds.birdResponse (default), or one birds.envelopeResponse object {\"birds\": [...], \"messages\": [\"Hello birds\", \"Goodbye birds\"]}. With BIRDS_RENDER=plain the body is text/plain, one line per bird.",
                "produces": [
                    "application/json",
                    "text/plain"
                ],
                "summary": "List birds",
                "responses": {
                    "200": {
                        "description": "Flat array (default). When envelope mode is on, the body is x-envelope-schema instead.",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/birds.birdResponse"
                            }
                        },
                        "x-envelope-schema": {
                            "$ref": "#/definitions/birds.envelopeResponse"
                        }
                    },
                    "500": {
                        "description": "internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "produces": [
                    "text/plain"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "ok",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "birds.birdResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "species": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "birds.envelopeResponse": {
            "type": "object",
            "properties": {
                "birds": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/birds.birdResponse"
                    }
                },
                "messages": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "birds-api",
	Description:      "Read-only listing of seeded bird records.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
