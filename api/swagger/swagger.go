package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Scolarite API",
        "description": "Tuition balances, payments and enrollment records for the school portal.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "Balances", "description": "Per-student tuition reconciliation"},
        {"name": "Dashboard", "description": "Accountant finance dashboard"},
        {"name": "Payments", "description": "Payments recorded against inscriptions"},
        {"name": "Inscriptions", "description": "Enrollment records"},
        {"name": "Fees", "description": "Fee resolution and fee administration"},
        {"name": "Programs", "description": "Filières and their duration"}
    ],
    "paths": {
        "/students/{id}/balance": {
            "get": {
                "tags": ["Balances"],
                "summary": "Student tuition balance",
                "description": "Fallback values are flagged with degraded=true.",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/BalanceEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/balances": {
            "get": {
                "tags": ["Balances"],
                "summary": "List student balances",
                "parameters": [
                    {"name": "filiere_id", "in": "query", "type": "integer"},
                    {"name": "vague_id", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/finance": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Finance dashboard",
                "parameters": [
                    {"name": "filiere_id", "in": "query", "type": "integer"},
                    {"name": "vague_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/payments": {
            "get": {
                "tags": ["Payments"],
                "summary": "List payments of a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/payments": {
            "post": {
                "tags": ["Payments"],
                "summary": "Record a payment",
                "description": "Status defaults from the reference prefix (MAN- pending, APP- approved, REJ- rejected, otherwise approved).",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreatePaymentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Inscription not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/payments/{id}": {
            "get": {
                "tags": ["Payments"],
                "summary": "Get payment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/payments/{id}/status": {
            "patch": {
                "tags": ["Payments"],
                "summary": "Approve or reject a payment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {
                        "type": "object",
                        "properties": {"status": {"type": "string", "enum": ["PENDING", "APPROVED", "REJECTED"]}}
                    }}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/inscriptions": {
            "get": {
                "tags": ["Inscriptions"],
                "summary": "List inscriptions",
                "parameters": [
                    {"name": "filiere_id", "in": "query", "type": "integer"},
                    {"name": "vague_id", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["EN_ATTENTE", "VALIDEE", "REJETEE"]},
                    {"name": "unlinked", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Inscriptions"],
                "summary": "Create inscription",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateInscriptionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown filiere or vague", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/inscriptions/{id}": {
            "get": {
                "tags": ["Inscriptions"],
                "summary": "Get inscription",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/inscriptions/{id}/student": {
            "put": {
                "tags": ["Inscriptions"],
                "summary": "Link inscription to a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {
                        "type": "object",
                        "properties": {"student_id": {"type": "string"}}
                    }}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/fees/resolve": {
            "get": {
                "tags": ["Fees"],
                "summary": "Resolve applicable fees",
                "parameters": [
                    {"name": "filiere_id", "in": "query", "type": "integer"},
                    {"name": "vague_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/fees/configurations/{key}": {
            "put": {
                "tags": ["Fees"],
                "summary": "Set a flat fee",
                "parameters": [
                    {"name": "key", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {
                        "type": "object",
                        "properties": {"montant": {"type": "number"}}
                    }}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/fees/schedules": {
            "get": {
                "tags": ["Fees"],
                "summary": "List tuition schedules",
                "parameters": [
                    {"name": "filiere_id", "in": "query", "type": "integer"},
                    {"name": "vague_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Fees"],
                "summary": "Set tuition for a program/cohort pair",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {
                        "type": "object",
                        "properties": {
                            "filiere_id": {"type": "integer"},
                            "vague_id": {"type": "string"},
                            "frais_scolarite": {"type": "number"},
                            "active": {"type": "boolean"}
                        }
                    }}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/programs": {
            "get": {
                "tags": ["Programs"],
                "summary": "List programs",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Programs"],
                "summary": "Create program",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {
                        "type": "object",
                        "properties": {
                            "name": {"type": "string"},
                            "duration": {"type": "string", "example": "3 ans"}
                        }
                    }}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate program", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/programs/{id}": {
            "get": {
                "tags": ["Programs"],
                "summary": "Get program",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "BalanceSummary": {
            "type": "object",
            "properties": {
                "studentId": {"type": "string"},
                "studentName": {"type": "string"},
                "email": {"type": "string"},
                "filiere": {"type": "string"},
                "vague": {"type": "string"},
                "fraisInscription": {"type": "number"},
                "fraisScolarite": {"type": "number"},
                "fraisInscriptionSource": {"type": "string"},
                "fraisScolariteSource": {"type": "string"},
                "totalSchoolFees": {"type": "number"},
                "paidAmount": {"type": "number"},
                "montantInscriptionPaye": {"type": "number"},
                "montantScolaritePaye": {"type": "number"},
                "remainingAmount": {"type": "number"},
                "paidSemesters": {"type": "array", "items": {"type": "string"}},
                "pendingSemesters": {"type": "array", "items": {"type": "string"}},
                "currentSemester": {"type": "string"},
                "degraded": {"type": "boolean"},
                "fallbackReason": {"type": "string"}
            }
        },
        "CreatePaymentRequest": {
            "type": "object",
            "required": ["inscription_id", "montant", "mode_paiement"],
            "properties": {
                "inscription_id": {"type": "string"},
                "montant": {"type": "number"},
                "date_paiement": {"type": "string", "format": "date-time"},
                "mode_paiement": {"type": "string"},
                "reference": {"type": "string"},
                "status": {"type": "string", "enum": ["PENDING", "APPROVED", "REJECTED"]}
            }
        },
        "CreateInscriptionRequest": {
            "type": "object",
            "required": ["first_name", "last_name", "email"],
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "frais_inscription": {"type": "number"},
                "filiere_id": {"type": "integer"},
                "vague_id": {"type": "string"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "object"},
                "message": {"type": "string"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        },
        "BalanceEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"$ref": "#/definitions/BalanceSummary"},
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
