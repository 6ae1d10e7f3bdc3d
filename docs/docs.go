// Package docs holds the swagger document served under /swagger.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/api/v1/state": {
            "get": {
                "produces": ["application/json"],
                "tags": ["panel"],
                "summary": "Get panel display",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/view.Display"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/target/up": {
            "post": {
                "description": "Raises the target by one degree; pushed to the thermostat after a short debounce.",
                "produces": ["application/json"],
                "tags": ["panel"],
                "summary": "Raise target temperature",
                "responses": {
                    "200": {"description": "status, target, state", "schema": {"type": "object", "additionalProperties": true}},
                    "422": {"description": "error, field, state", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/v1/target/down": {
            "post": {
                "description": "Lowers the target by one degree; pushed to the thermostat after a short debounce.",
                "produces": ["application/json"],
                "tags": ["panel"],
                "summary": "Lower target temperature",
                "responses": {
                    "200": {"description": "status, target, state", "schema": {"type": "object", "additionalProperties": true}},
                    "422": {"description": "error, field, state", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/v1/interval": {
            "post": {
                "description": "Seconds between temperature polls, 5 to 60. Accepts JSON or a form field named poll_interval.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["panel"],
                "summary": "Set poll interval",
                "parameters": [
                    {
                        "description": "Interval payload",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.IntervalRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "status, poll_interval, state", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "422": {"description": "error, field, state", "schema": {"type": "object", "additionalProperties": true}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/v1/logs": {
            "get": {
                "description": "Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). A date-only 'to' covers the whole day.",
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "List panel events",
                "parameters": [
                    {"type": "string", "example": "2025-08-01", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "example": "2025-08-31", "description": "End of range. Date-only treated as end of day.", "name": "to", "in": "query"},
                    {
                        "enum": ["READING", "HEAT_STATUS", "TARGET_CHANGE", "TARGET_PUSHED", "INTERVAL_PUSHED", "REJECTED", "ERROR"],
                        "type": "string",
                        "description": "Event type",
                        "name": "type",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "count, events", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/ws": {
            "get": {
                "description": "WebSocket upgrade. Sends {\"type\":\"state\",\"data\":Display} right away, then whenever the display changes, checked every interval (?interval=2s or ?interval_ms=2000, max 10s).",
                "tags": ["panel"],
                "summary": "Stream panel display",
                "responses": {}
            }
        }
    },
    "definitions": {
        "handlers.IntervalRequest": {
            "type": "object",
            "properties": {
                "seconds": {"type": "string", "example": "15", "description": "Whole seconds, sent as a string or a number"}
            }
        },
        "view.Display": {
            "type": "object",
            "properties": {
                "body_class": {"type": "string"},
                "confirm_seq": {"type": "integer"},
                "current_temp": {"type": "string"},
                "furnace_summary": {"type": "string"},
                "heat_is_on": {"type": "boolean"},
                "heat_status_text": {"type": "string"},
                "humidity": {"type": "string"},
                "notice": {"type": "string"},
                "poll_interval": {"type": "string"},
                "table_target_temp": {"type": "string"},
                "target_temp": {"type": "string"}
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
	Title:            "Thermostat Panel API",
	Description:      "Control panel for a home thermostat: readings, target temperature and poll interval.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
