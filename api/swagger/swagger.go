package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "BIMTA API",
        "description": "Admin backend for thesis advising (bimbingan tugas akhir)",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication", "description": "Admin login and profile"},
        {"name": "Dashboard", "description": "Admin landing page counters"},
        {"name": "Users", "description": "Dosen and mahasiswa accounts"},
        {"name": "References", "description": "Past thesis library"},
        {"name": "Bimbingan", "description": "Advising sessions"},
        {"name": "Laporan", "description": "Reports and exports"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Admin login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing fields", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not an admin or inactive", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "429": {"description": "Too many attempts", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/profile": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current admin profile",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Admin dashboard",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List accounts",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "role", "in": "query", "type": "string", "enum": ["admin", "dosen", "mahasiswa"]},
                    {"name": "status", "in": "query", "type": "string", "enum": ["active", "inactive"]},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Users"],
                "summary": "Create account",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "user_id", "in": "formData", "type": "string", "required": true},
                    {"name": "nama", "in": "formData", "type": "string", "required": true},
                    {"name": "no_whatsapp", "in": "formData", "type": "string", "required": true},
                    {"name": "password", "in": "formData", "type": "string", "required": true},
                    {"name": "role", "in": "formData", "type": "string", "required": true, "enum": ["dosen", "mahasiswa"]},
                    {"name": "photo", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/{userId}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get account",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "userId", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Users"],
                "summary": "Update account",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "userId", "in": "path", "type": "string", "required": true},
                    {"name": "nama", "in": "formData", "type": "string"},
                    {"name": "no_whatsapp", "in": "formData", "type": "string"},
                    {"name": "status_user", "in": "formData", "type": "string", "enum": ["active", "inactive"]},
                    {"name": "photo", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Users"],
                "summary": "Delete account",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "userId", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/{userId}/reset-password": {
            "patch": {
                "tags": ["Users"],
                "summary": "Reset account password",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "userId", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ResetPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/referensi": {
            "get": {
                "tags": ["References"],
                "summary": "List references",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "tahun", "in": "query", "type": "integer"},
                    {"name": "topik", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["References"],
                "summary": "Create reference",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "nim_mahasiswa", "in": "formData", "type": "string", "required": true},
                    {"name": "nama_mahasiswa", "in": "formData", "type": "string", "required": true},
                    {"name": "judul", "in": "formData", "type": "string", "required": true},
                    {"name": "topik", "in": "formData", "type": "string", "required": true},
                    {"name": "tahun", "in": "formData", "type": "integer", "required": true},
                    {"name": "document", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/referensi/options": {
            "get": {
                "tags": ["References"],
                "summary": "Distinct years and topics",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/referensi/{nim}": {
            "get": {
                "tags": ["References"],
                "summary": "Get reference",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "nim", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["References"],
                "summary": "Update reference",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "nim", "in": "path", "type": "string", "required": true},
                    {"name": "nama_mahasiswa", "in": "formData", "type": "string"},
                    {"name": "judul", "in": "formData", "type": "string"},
                    {"name": "topik", "in": "formData", "type": "string"},
                    {"name": "tahun", "in": "formData", "type": "integer"},
                    {"name": "document", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["References"],
                "summary": "Delete reference",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "nim", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bimbingan": {
            "get": {
                "tags": ["Bimbingan"],
                "summary": "List advising sessions",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status_bimbingan", "in": "query", "type": "string", "enum": ["ongoing", "done", "warning", "terminated"]},
                    {"name": "dosen_id", "in": "query", "type": "string"},
                    {"name": "mahasiswa_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bimbingan/{bimbinganId}": {
            "get": {
                "tags": ["Bimbingan"],
                "summary": "Advising session with progress",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "bimbinganId", "in": "path", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/laporan/generate": {
            "get": {
                "tags": ["Laporan"],
                "summary": "Generate report",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "jenis_laporan", "in": "query", "type": "string", "required": true, "enum": ["bulanan", "semester"]},
                    {"name": "start_date", "in": "query", "type": "string", "format": "date"},
                    {"name": "end_date", "in": "query", "type": "string", "format": "date"},
                    {"name": "program_studi", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/laporan/export": {
            "get": {
                "tags": ["Laporan"],
                "summary": "Export report",
                "security": [{"BearerAuth": []}],
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
                    "text/csv",
                    "application/pdf"
                ],
                "parameters": [
                    {"name": "jenis_laporan", "in": "query", "type": "string", "required": true, "enum": ["bulanan", "semester"]},
                    {"name": "start_date", "in": "query", "type": "string", "format": "date"},
                    {"name": "end_date", "in": "query", "type": "string", "format": "date"},
                    {"name": "program_studi", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["xlsx", "csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Report file", "schema": {"type": "file"}},
                    "404": {"description": "No data", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/laporan/statistik": {
            "get": {
                "tags": ["Laporan"],
                "summary": "Report statistics",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "start_date", "in": "query", "type": "string", "format": "date"},
                    {"name": "end_date", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["user_id", "password"]
        },
        "ResetPasswordRequest": {
            "type": "object",
            "properties": {
                "new_password": {"type": "string"}
            },
            "required": ["new_password"]
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "count": {"type": "integer"},
                "data": {"type": "object"}
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
