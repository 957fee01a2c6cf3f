package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Reflective Room API",
        "description": "Community poetry submissions, reflections, posters and curation",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Submissions", "description": "Poem submission and reflection"},
        {"name": "Posters", "description": "Paginated share posters"},
        {"name": "Speech", "description": "Text to speech"},
        {"name": "Stats", "description": "Author leaderboard"},
        {"name": "Prompts", "description": "Weekly writing prompt"},
        {"name": "Session", "description": "Visitor session context"},
        {"name": "Admin", "description": "Curation behind the shared password"}
    ],
    "paths": {
        "/submissions": {
            "post": {
                "tags": ["Submissions"],
                "summary": "Submit a poem",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitPoemRequest"}}
                ],
                "responses": {
                    "201": {"description": "Stored; meta.warnings lists follow-up failures", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "EMPTY_POEM or MISSING_FIELD", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "INVALID_PASSKEY", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "STORE_UNAVAILABLE", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/submissions/featured": {
            "get": {
                "tags": ["Submissions"],
                "summary": "Featured poem",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Nothing featured", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/submissions/{row}/reflection": {
            "post": {
                "tags": ["Submissions"],
                "summary": "Reflect on a stored poem",
                "parameters": [
                    {"name": "row", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown row", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "501": {"description": "FEATURE_DISABLED", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "REFLECTION_UNAVAILABLE", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/submissions/{row}/poster": {
            "get": {
                "tags": ["Posters"],
                "summary": "Poster for a stored poem",
                "produces": ["application/json", "application/pdf"],
                "parameters": [
                    {"name": "row", "in": "path", "required": true, "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["pdf"]}
                ],
                "responses": {
                    "200": {"description": "Pages or PDF", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown row", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/posters": {
            "post": {
                "tags": ["Posters"],
                "summary": "Paginate poem text",
                "produces": ["application/json", "application/pdf"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PosterRequest"}},
                    {"name": "format", "in": "query", "type": "string", "enum": ["pdf"]}
                ],
                "responses": {
                    "200": {"description": "Pages or PDF", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "EMPTY_POEM", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/speech": {
            "post": {
                "tags": ["Speech"],
                "summary": "Read text aloud",
                "produces": ["audio/wav"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SpeechRequest"}}
                ],
                "responses": {
                    "200": {"description": "WAV audio"},
                    "502": {"description": "AUDIO_UNAVAILABLE", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/stats/authors": {
            "get": {
                "tags": ["Stats"],
                "summary": "Submission counts and score sums per author",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/prompts/current": {
            "get": {
                "tags": ["Prompts"],
                "summary": "Current weekly prompt",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No prompt posted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/session": {
            "get": {
                "tags": ["Session"],
                "summary": "Current visitor session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/login": {
            "post": {
                "tags": ["Admin"],
                "summary": "Admin gate",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdminLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token issued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "INVALID_CREDENTIALS", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/submissions": {
            "get": {
                "tags": ["Admin"],
                "summary": "List submissions, newest first",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/submissions/export": {
            "get": {
                "tags": ["Admin"],
                "summary": "Export submissions as CSV",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "CSV file"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/submissions/{row}/featured": {
            "put": {
                "tags": ["Admin"],
                "summary": "Set the featured poem",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "row", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeatureRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown row", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/prompts": {
            "post": {
                "tags": ["Admin"],
                "summary": "Post a weekly prompt",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PostPromptRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Week is not newer than the last prompt", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SubmitPoemRequest": {
            "type": "object",
            "required": ["poem"],
            "properties": {
                "author": {"type": "string"},
                "handle": {"type": "string"},
                "title": {"type": "string"},
                "poem": {"type": "string"},
                "theme": {"type": "string"},
                "passphrase": {"type": "string"},
                "reflect": {"type": "boolean"}
            }
        },
        "PosterRequest": {
            "type": "object",
            "required": ["poem"],
            "properties": {
                "poem": {"type": "string"},
                "title": {"type": "string"},
                "byline": {"type": "string"}
            }
        },
        "SpeechRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {
                "text": {"type": "string"}
            }
        },
        "AdminLoginRequest": {
            "type": "object",
            "required": ["password"],
            "properties": {
                "password": {"type": "string"}
            }
        },
        "FeatureRequest": {
            "type": "object",
            "required": ["featured"],
            "properties": {
                "featured": {"type": "boolean"}
            }
        },
        "PostPromptRequest": {
            "type": "object",
            "required": ["week", "title"],
            "properties": {
                "week": {"type": "integer"},
                "title": {"type": "string"},
                "description": {"type": "string"}
            }
        },
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
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
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
