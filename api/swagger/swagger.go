package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Actividades API",
        "description": "Gestión de actividades extracurriculares: grupos, inscripciones, asistencia y evaluaciones",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Auth", "description": "Sesiones y tokens"},
        {"name": "Usuarios", "description": "Gestión de usuarios y perfiles"},
        {"name": "Actividades", "description": "Catálogo de actividades"},
        {"name": "Grupos", "description": "Grupos programados"},
        {"name": "Inscripciones", "description": "Admisión y lista de espera"},
        {"name": "Asistencias", "description": "Registro de asistencia"},
        {"name": "Evaluaciones", "description": "Calificaciones y reportes"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Iniciar sesión",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Credenciales inválidas"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Renovar tokens",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Cerrar sesión",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/usuarios": {
            "get": {
                "tags": ["Usuarios"],
                "summary": "Listar usuarios",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "rol", "in": "query", "type": "string"},
                    {"name": "activo", "in": "query", "type": "boolean"},
                    {"name": "buscar", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            },
            "post": {
                "tags": ["Usuarios"],
                "summary": "Registrar usuario",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Creado", "schema": {"$ref": "#/definitions/Envelope"}},
                    "406": {"description": "Correo duplicado"}
                }
            }
        },
        "/usuarios/{id}": {
            "get": {
                "tags": ["Usuarios"],
                "summary": "Consultar usuario",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "No encontrado"}
                }
            },
            "put": {
                "tags": ["Usuarios"],
                "summary": "Actualizar usuario",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            },
            "delete": {
                "tags": ["Usuarios"],
                "summary": "Eliminar usuario",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/actividades": {
            "get": {
                "tags": ["Actividades"],
                "summary": "Listar actividades",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            },
            "post": {
                "tags": ["Actividades"],
                "summary": "Crear actividad",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ActivityRequest"}}
                ],
                "responses": {
                    "201": {"description": "Creada", "schema": {"$ref": "#/definitions/Envelope"}},
                    "406": {"description": "Nombre duplicado"}
                }
            }
        },
        "/grupos": {
            "get": {
                "tags": ["Grupos"],
                "summary": "Listar grupos",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            },
            "post": {
                "tags": ["Grupos"],
                "summary": "Crear grupo",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GroupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Creado", "schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"description": "Conflicto de horario o capacidad"}
                }
            }
        },
        "/inscripciones": {
            "post": {
                "tags": ["Inscripciones"],
                "summary": "Solicitar inscripción",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdmitRequest"}}
                ],
                "responses": {
                    "201": {"description": "Inscrito o en lista de espera", "schema": {"$ref": "#/definitions/Envelope"}},
                    "406": {"description": "Inscripción duplicada"}
                }
            }
        },
        "/inscripciones/{id}": {
            "delete": {
                "tags": ["Inscripciones"],
                "summary": "Eliminar inscripción y promover lista de espera",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/lista-espera": {
            "post": {
                "tags": ["Inscripciones"],
                "summary": "Unirse a la lista de espera",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/JoinWaitlistRequest"}}
                ],
                "responses": {
                    "201": {"description": "Registrado", "schema": {"$ref": "#/definitions/Envelope"}},
                    "406": {"description": "Registro duplicado"}
                }
            }
        },
        "/asistencias": {
            "post": {
                "tags": ["Asistencias"],
                "summary": "Registrar asistencia",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordAttendanceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Registrada", "schema": {"$ref": "#/definitions/Envelope"}},
                    "406": {"description": "Fecha duplicada"}
                }
            }
        },
        "/grupos/{id}/asistencias/resumen": {
            "get": {
                "tags": ["Asistencias"],
                "summary": "Resumen de asistencia por usuario",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/evaluaciones": {
            "post": {
                "tags": ["Evaluaciones"],
                "summary": "Registrar o actualizar evaluación",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EvaluationRequest"}}
                ],
                "responses": {
                    "200": {"description": "Guardada", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/grupos/{id}/evaluaciones/exportar": {
            "get": {
                "tags": ["Evaluaciones"],
                "summary": "Exportar evaluaciones como CSV o PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "formato", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Archivo generado"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "correo": {"type": "string"},
                "contrasena": {"type": "string"}
            },
            "required": ["correo", "contrasena"]
        },
        "RefreshRequest": {
            "type": "object",
            "properties": {
                "refresh_token": {"type": "string"}
            },
            "required": ["refresh_token"]
        },
        "CreateUserRequest": {
            "type": "object",
            "properties": {
                "nombre": {"type": "string"},
                "correo": {"type": "string"},
                "contrasena": {"type": "string"},
                "rol": {"type": "string", "enum": ["ESTUDIANTE", "DOCENTE", "ADMINISTRACION"]}
            },
            "required": ["nombre", "correo", "contrasena", "rol"]
        },
        "UpdateUserRequest": {
            "type": "object",
            "properties": {
                "nombre": {"type": "string"},
                "correo": {"type": "string"},
                "rol": {"type": "string"},
                "activo": {"type": "boolean"}
            },
            "required": ["nombre", "correo", "rol", "activo"]
        },
        "ActivityRequest": {
            "type": "object",
            "properties": {
                "nombre": {"type": "string"},
                "descripcion": {"type": "string"},
                "fecha_inicio": {"type": "string", "format": "date"},
                "fecha_fin": {"type": "string", "format": "date"},
                "capacidad": {"type": "integer"}
            },
            "required": ["nombre"]
        },
        "GroupRequest": {
            "type": "object",
            "properties": {
                "actividad_id": {"type": "string"},
                "responsable_id": {"type": "string"},
                "ubicacion": {"type": "string"},
                "fecha_inicio": {"type": "string", "format": "date"},
                "fecha_fin": {"type": "string", "format": "date"},
                "hora_inicio": {"type": "string", "example": "09:00:00"},
                "hora_fin": {"type": "string", "example": "10:00:00"},
                "capacidad": {"type": "integer"}
            },
            "required": ["actividad_id", "responsable_id", "ubicacion", "fecha_inicio", "fecha_fin", "hora_inicio", "hora_fin", "capacidad"]
        },
        "AdmitRequest": {
            "type": "object",
            "properties": {
                "usuario_id": {"type": "string"},
                "grupo_id": {"type": "string"}
            },
            "required": ["usuario_id", "grupo_id"]
        },
        "JoinWaitlistRequest": {
            "type": "object",
            "properties": {
                "usuario_id": {"type": "string"},
                "actividad_id": {"type": "string"}
            },
            "required": ["usuario_id", "actividad_id"]
        },
        "RecordAttendanceRequest": {
            "type": "object",
            "properties": {
                "usuario_id": {"type": "string"},
                "grupo_id": {"type": "string"},
                "fecha": {"type": "string", "format": "date"},
                "estado": {"type": "string", "enum": ["presente", "ausente"]}
            },
            "required": ["usuario_id", "grupo_id", "fecha", "estado"]
        },
        "EvaluationRequest": {
            "type": "object",
            "properties": {
                "usuario_id": {"type": "string"},
                "grupo_id": {"type": "string"},
                "calificacion": {"type": "number", "minimum": 0, "maximum": 5},
                "comentarios": {"type": "string"}
            },
            "required": ["usuario_id", "grupo_id", "calificacion"]
        },
        "Envelope": {
            "type": "object",
            "properties": {
                "estado": {"type": "boolean"},
                "mensaje": {"type": "string"},
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
