// Package docs registers the OpenAPI document served at /swagger/*.
// It mirrors the swag annotations on cmd/api and internal/http/handler; after changing them,
// rerun `go generate ./cmd/api` (swag init) and review the diff.
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
        "/api/locations": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "locations"
                ],
                "summary": "List donation points",
                "parameters": [
                    {
                        "type": "string",
                        "description": "exact autonomous community",
                        "name": "autonomousCommunity",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "exact province",
                        "name": "province",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "exact city",
                        "name": "city",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "comma separated items, any match",
                        "name": "acceptedItems",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.listResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            },
            "post": {
                "description": "Rejects submissions within 0.001 degrees of an existing point unless force=true.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "locations"
                ],
                "summary": "Submit a donation point",
                "parameters": [
                    {
                        "type": "boolean",
                        "description": "skip the duplicate check",
                        "name": "force",
                        "in": "query"
                    },
                    {
                        "description": "submission",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.DonationPoint"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.pointResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/api/locations/snapshots": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "locations"
                ],
                "summary": "Publish a GeoJSON snapshot",
                "parameters": [
                    {
                        "type": "string",
                        "description": "exact autonomous community",
                        "name": "autonomousCommunity",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "exact province",
                        "name": "province",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "exact city",
                        "name": "city",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "comma separated items, any match",
                        "name": "acceptedItems",
                        "in": "query"
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.snapshotResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {}
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/healthz": {
            "get": {
                "tags": [
                    "health"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        }
    },
    "definitions": {
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "details": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/validation.Issue"
                    }
                },
                "error": {
                    "$ref": "#/definitions/handler.errorEnvelope"
                },
                "nearbyLocation": {
                    "$ref": "#/definitions/model.DonationPoint"
                },
                "request_id": {
                    "type": "string"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "handler.listResponse": {
            "type": "object",
            "properties": {
                "locations": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.DonationPoint"
                    }
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "handler.pointResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/model.DonationPoint"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "handler.snapshotResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/service.SnapshotResult"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "model.AcceptedItem": {
            "type": "string",
            "enum": [
                "FOOD",
                "CLOTHING",
                "HYGIENE",
                "CLEANING",
                "MEDICINE",
                "TOOLS",
                "OTHER"
            ],
            "x-enum-varnames": [
                "ItemFood",
                "ItemClothing",
                "ItemHygiene",
                "ItemCleaning",
                "ItemMedicine",
                "ItemTools",
                "ItemOther"
            ]
        },
        "model.DonationPoint": {
            "type": "object",
            "properties": {
                "acceptedItems": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.AcceptedItem"
                    }
                },
                "address": {
                    "type": "string"
                },
                "autonomousCommunity": {
                    "type": "string"
                },
                "city": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "googleMapsUrl": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "isActive": {
                    "type": "boolean"
                },
                "lastVerification": {
                    "type": "string"
                },
                "latitude": {
                    "type": "number"
                },
                "longitude": {
                    "type": "number"
                },
                "name": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "postalCode": {
                    "type": "string"
                },
                "province": {
                    "type": "string"
                },
                "schedule": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                },
                "verifiedAt": {
                    "type": "string"
                },
                "website": {
                    "type": "string"
                }
            }
        },
        "service.SnapshotResult": {
            "type": "object",
            "properties": {
                "count": {
                    "type": "integer"
                },
                "expiresAt": {
                    "type": "string"
                },
                "key": {
                    "type": "string"
                },
                "url": {
                    "type": "string"
                }
            }
        },
        "validation.Issue": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "path": {
                    "type": "string"
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
	Title:            "Donation Points API",
	Description:      "Crowd-sourced registry of physical donation points.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
