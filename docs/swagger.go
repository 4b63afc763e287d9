// Package docs Waste Analytics API.
//
// Сервис аналитики обращения с отходами по городам Индии.
// Загружает датасет (файл, HTTP, PostgreSQL или Redis) и отдаёт данные
// для экранов дашборда: обзор, кампании, стоимость, эффективность,
// полигоны, карта и таблица записей с выгрузкой в Excel.
//
// Спецификация регистрируется в swag из docs.go; UI доступен на /swagger/index.html.
//
//	Version: 1.0.0
//	BasePath: /
//	Produces:
//	- application/json
//	- application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//
// swagger:meta
package docs
