// Package docs holds the OpenAPI document served at /swagger/doc.json.
// Paths are absolute and must match the @Router annotations in handlers.
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
        "/api/v1/tournaments/{tournamentID}": {
            "get": {
                "description": "Возвращает турнир вместе с зарегистрированными командами.",
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Получить турнир по ID",
                "parameters": [
                    {"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Турнир найден", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Некорректный ID", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Турнир не найден", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/tournaments/{tournamentID}/schedule": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Строит сетку или круговой турнир по формату турнира и заменяет прежний набор матчей.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["schedule"],
                "summary": "Сгенерировать расписание",
                "parameters": [
                    {"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true},
                    {"description": "Команды, дата старта и площадки", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/services.GenerateScheduleInput"}}
                ],
                "responses": {
                    "201": {"description": "Матчи созданы", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Ошибка запроса", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Неавторизован", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Турнир не найден", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "422": {"description": "Неподходящее число команд", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/tournaments/{tournamentID}/matches": {
            "get": {
                "produces": ["application/json"],
                "tags": ["schedule"],
                "summary": "Список матчей турнира",
                "parameters": [
                    {"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Матчи", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Турнир не найден", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/tournaments/{tournamentID}/standings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["standings"],
                "summary": "Турнирная таблица",
                "parameters": [
                    {"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Таблица", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Турнир не найден", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/tournaments/{tournamentID}/scorers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["standings"],
                "summary": "Лучшие бомбардиры",
                "parameters": [
                    {"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true},
                    {"type": "integer", "description": "Сколько игроков вернуть", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Бомбардиры", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Некорректный limit", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Турнир не найден", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/matches/{matchID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Получить матч по ID",
                "parameters": [
                    {"type": "integer", "description": "Match ID", "name": "matchID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Матч найден", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Матч не найден", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/matches/{matchID}/complete": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Фиксирует итоговый счёт и продвигает победителя по сетке. Повторный вызов с тем же победителем ничего не меняет.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Завершить матч",
                "parameters": [
                    {"type": "integer", "description": "Match ID", "name": "matchID", "in": "path", "required": true},
                    {"description": "Итоговый счёт", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.ScoreInput"}}
                ],
                "responses": {
                    "200": {"description": "Результат", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Некорректный счёт", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Неавторизован", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Матч не найден", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Ничья в плей-офф или другой победитель", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/matches/{matchID}/score": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Обновить счёт идущего матча",
                "parameters": [
                    {"type": "integer", "description": "Match ID", "name": "matchID", "in": "path", "required": true},
                    {"description": "Текущий счёт", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.ScoreInput"}}
                ],
                "responses": {
                    "200": {"description": "Матч обновлён", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Некорректный счёт", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Неавторизован", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Матч не найден", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Матч уже завершён", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Проверка состояния",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "services.GenerateScheduleInput": {
            "type": "object",
            "properties": {
                "team_ids": {"type": "array", "items": {"type": "integer"}},
                "start_date": {"type": "string"},
                "venues": {"type": "array", "items": {"type": "string"}}
            }
        },
        "services.ScoreInput": {
            "type": "object",
            "properties": {
                "score_a": {"type": "integer"},
                "score_b": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Tournament Engine API",
	Description:      "Scheduling, bracket progression and standings for tournaments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
