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
        "/api/v1/health": {
            "get": {"tags": ["Health"], "summary": "Проверка состояния сервиса", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/dataset": {
            "get": {"tags": ["Dataset"], "summary": "Информация о датасете", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/dataset/summary": {
            "get": {"tags": ["Dataset"], "summary": "Сводные показатели", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Dataset unavailable"}}}
        },
        "/api/v1/dataset/options": {
            "get": {"tags": ["Dataset"], "summary": "Значения фильтров", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Dataset unavailable"}}}
        },
        "/api/v1/dataset/reload": {
            "post": {"tags": ["Dataset"], "summary": "Перезагрузка датасета", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid request"}, "502": {"description": "Load failed"}}}
        },
        "/api/v1/views/overview": {
            "get": {"tags": ["Views"], "summary": "Обзор", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "top", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Dataset unavailable"}}}
        },
        "/api/v1/views/awareness": {
            "get": {"tags": ["Views"], "summary": "Кампании и переработка", "produces": ["application/json"],
                "parameters": [
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "cities", "in": "query"},
                    {"type": "number", "name": "rate_bin_width", "in": "query"},
                    {"type": "number", "name": "campaign_bin_width", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid bin width"}, "503": {"description": "Dataset unavailable"}}}
        },
        "/api/v1/views/cost": {
            "get": {"tags": ["Views"], "summary": "Стоимость", "produces": ["application/json"],
                "parameters": [
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "cities", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "waste_types", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Dataset unavailable"}}}
        },
        "/api/v1/views/efficiency": {
            "get": {"tags": ["Views"], "summary": "Эффективность", "produces": ["application/json"],
                "parameters": [
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "waste_types", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "methods", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Dataset unavailable"}}}
        },
        "/api/v1/views/landfill": {
            "get": {"tags": ["Views"], "summary": "Полигоны", "produces": ["application/json"],
                "parameters": [
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "cities", "in": "query"},
                    {"type": "boolean", "name": "show_all", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Dataset unavailable"}}}
        },
        "/api/v1/views/geographic": {
            "get": {"tags": ["Views"], "summary": "Карта", "produces": ["application/json"],
                "parameters": [
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "cities", "in": "query"},
                    {"type": "string", "default": "All", "name": "waste_type", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Dataset unavailable"}}}
        },
        "/api/v1/records": {
            "get": {"tags": ["Records"], "summary": "Таблица записей", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "cities", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "waste_types", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "methods", "in": "query"},
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 25, "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid request"}, "503": {"description": "Dataset unavailable"}}}
        },
        "/api/v1/records/export": {
            "get": {"tags": ["Records"], "summary": "Выгрузка записей в .xlsx",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "cities", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "waste_types", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "methods", "in": "query"}
                ],
                "responses": {"200": {"description": "xlsx file"}, "503": {"description": "Dataset unavailable"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Waste Analytics API",
	Description:      "Аналитика обращения с отходами: представления дашборда, таблица записей и выгрузка",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
