// Package docs - OpenAPI описание Grievance Service для маршрута /swagger/*.
// Файл поддерживается вручную в формате вывода swag init.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
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
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        },
        "/api/v1/grievances": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Grievances"],
                "summary": "Лента жалоб",
                "parameters": [
                    {"type": "string", "description": "pending, in_progress, resolved", "name": "status", "in": "query"},
                    {"type": "string", "description": "Категория", "name": "category", "in": "query"},
                    {"type": "integer", "description": "ID района", "name": "area_id", "in": "query"},
                    {"type": "boolean", "description": "Только свои жалобы", "name": "mine", "in": "query"},
                    {"type": "string", "description": "Точное название места", "name": "location", "in": "query"},
                    {"type": "string", "description": "Поиск по заголовку, тексту и месту", "name": "search", "in": "query"},
                    {"type": "string", "default": "-created_at", "description": "created_at, updated_at, like_count; префикс - для убывания", "name": "ordering", "in": "query"},
                    {"type": "integer", "default": 1, "description": "Страница", "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Размер страницы", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Grievances"],
                "summary": "Создание жалобы",
                "parameters": [
                    {"type": "integer", "description": "ID пользователя (шлюз аутентификации)", "name": "X-User-ID", "in": "header"},
                    {"description": "Жалоба", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateGrievanceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/grievances/nearby": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Grievances"],
                "summary": "Жалобы рядом",
                "parameters": [
                    {"type": "number", "description": "Широта", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "Долгота", "name": "lng", "in": "query", "required": true},
                    {"type": "number", "default": 5, "description": "Радиус в км", "name": "radius", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/grievances/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Grievances"],
                "summary": "Получение жалобы",
                "parameters": [
                    {"type": "string", "description": "ID жалобы (UUID)", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Пароль приватной жалобы", "name": "X-Grievance-Password", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Grievances"],
                "summary": "Правка жалобы автором",
                "parameters": [
                    {"type": "string", "description": "ID жалобы (UUID)", "name": "id", "in": "path", "required": true},
                    {"description": "Изменяемые поля", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateGrievanceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["Grievances"],
                "summary": "Удаление жалобы автором",
                "parameters": [
                    {"type": "string", "description": "ID жалобы (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/grievances/{id}/status": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Grievances"],
                "summary": "Смена статуса жалобы",
                "parameters": [
                    {"type": "string", "description": "ID жалобы (UUID)", "name": "id", "in": "path", "required": true},
                    {"description": "Новый статус", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ChangeStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/grievances/{id}/like": {
            "patch": {
                "produces": ["application/json"],
                "tags": ["Grievances"],
                "summary": "Лайк / снятие лайка",
                "parameters": [
                    {"type": "string", "description": "ID жалобы (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/areas": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Areas"],
                "summary": "Список районов",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}}
                }
            }
        },
        "/api/v1/areas/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Areas"],
                "summary": "Район по ID",
                "parameters": [
                    {"type": "integer", "description": "ID района", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/areas/match": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Areas"],
                "summary": "Диагностика сопоставления района",
                "parameters": [
                    {"description": "Имя места и координата", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.MatchAreaRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/locations/resolve": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Locations"],
                "summary": "Обратное геокодирование",
                "parameters": [
                    {"description": "Координата", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ResolveLocationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.CreateGrievanceRequest": {
            "type": "object",
            "required": ["title", "content", "latitude", "longitude"],
            "properties": {
                "title": {"type": "string", "example": "가로등 고장"},
                "content": {"type": "string", "example": "역삼역 4번 출구 앞 가로등이 꺼져 있습니다"},
                "category": {"type": "string", "example": "facility"},
                "latitude": {"type": "number", "example": 37.5013},
                "longitude": {"type": "number", "example": 127.0398},
                "visibility": {"type": "string", "example": "private"},
                "password": {"type": "string"}
            }
        },
        "dto.UpdateGrievanceRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "content": {"type": "string"},
                "category": {"type": "string"}
            }
        },
        "dto.ChangeStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "example": "resolved"},
                "completed_at": {"type": "string"}
            }
        },
        "dto.MatchAreaRequest": {
            "type": "object",
            "required": ["latitude", "longitude"],
            "properties": {
                "place_name": {"type": "string", "example": "서울특별시 강남구"},
                "latitude": {"type": "number", "example": 37.5013},
                "longitude": {"type": "number", "example": 127.0398}
            }
        },
        "dto.ResolveLocationRequest": {
            "type": "object",
            "required": ["latitude", "longitude"],
            "properties": {
                "latitude": {"type": "number", "example": 37.5013},
                "longitude": {"type": "number", "example": 127.0398}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "services": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "utils.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "meta": {"$ref": "#/definitions/utils.Meta"}
            }
        },
        "utils.Meta": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "has_next": {"type": "boolean"}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string", "example": "NOT_ACCESSIBLE"},
                        "message": {"type": "string"},
                        "details": {"type": "object"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Grievance Service API",
	Description:      "Жалобы граждан с геометкой: обратное геокодирование, назначение района, поиск рядом и правила видимости приватных жалоб.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
