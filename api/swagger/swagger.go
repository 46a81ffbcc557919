package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "ScholarSeek API",
        "description": "Scholarship discovery, applications and bookmarks",
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
        {"name": "auth", "description": "Accounts and sessions"},
        {"name": "profiles", "description": "Academic profiles and documents"},
        {"name": "scholarships", "description": "Listings, search and recommendations"},
        {"name": "applications", "description": "Application lifecycle and exports"},
        {"name": "bookmarks", "description": "Saved scholarships"},
        {"name": "admin", "description": "Organization moderation"}
    ],
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a student or organization account",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Authenticate and receive a token pair",
                "responses": {
                    "200": {"description": "Token pair"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Rotate the refresh token",
                "responses": {
                    "200": {"description": "New token pair"},
                    "401": {"description": "Expired or revoked token"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Revoke all sessions",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/auth/change-password": {
            "post": {
                "tags": ["auth"],
                "summary": "Change the caller's password",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["auth"],
                "summary": "Return the authenticated identity",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "User info"}}
            }
        },
        "/profiles/me": {
            "get": {
                "tags": ["profiles"],
                "summary": "Fetch the caller's profile",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Profile"}}
            },
            "put": {
                "tags": ["profiles"],
                "summary": "Update the caller's profile",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Updated profile"},
                    "400": {"description": "Validation failure"}
                }
            }
        },
        "/profiles/me/photo": {
            "post": {
                "tags": ["profiles"],
                "summary": "Upload a profile photo",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Signed download URL"}}
            }
        },
        "/profiles/me/income-certificate": {
            "post": {
                "tags": ["profiles"],
                "summary": "Upload an income certificate",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Signed download URL"}}
            }
        },
        "/documents": {
            "get": {
                "tags": ["profiles"],
                "summary": "Stream a document named by a signed token",
                "responses": {
                    "200": {"description": "File"},
                    "401": {"description": "Invalid or expired token"}
                }
            }
        },
        "/scholarships": {
            "get": {
                "tags": ["scholarships"],
                "summary": "Search and filter listings",
                "responses": {"200": {"description": "Paginated listings"}}
            },
            "post": {
                "tags": ["scholarships"],
                "summary": "Post a new listing",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Organization not approved"}
                }
            }
        },
        "/scholarships/recommended": {
            "get": {
                "tags": ["scholarships"],
                "summary": "Listings the student qualifies for",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Eligible listings, soonest deadline first"}}
            }
        },
        "/scholarships/{id}": {
            "get": {
                "tags": ["scholarships"],
                "summary": "Fetch one listing",
                "responses": {
                    "200": {"description": "Listing"},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["scholarships"],
                "summary": "Update a listing the caller owns",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Updated listing"}}
            },
            "delete": {
                "tags": ["scholarships"],
                "summary": "Remove a listing the caller owns",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/scholarships/{id}/applications": {
            "get": {
                "tags": ["applications"],
                "summary": "List applications on an owned listing",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Applications with applicant details"}}
            }
        },
        "/scholarships/{id}/applications/export": {
            "get": {
                "tags": ["applications"],
                "summary": "Download the applicant roster as CSV",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "CSV file"}}
            }
        },
        "/applications": {
            "post": {
                "tags": ["applications"],
                "summary": "Submit an application",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Already applied"}
                }
            }
        },
        "/applications/mine": {
            "get": {
                "tags": ["applications"],
                "summary": "List the caller's applications",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Applications, newest first"}}
            }
        },
        "/applications/export": {
            "get": {
                "tags": ["applications"],
                "summary": "Download the caller's applications as PDF",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "PDF file"}}
            }
        },
        "/applications/{id}/status": {
            "patch": {
                "tags": ["applications"],
                "summary": "Move an application to a review status",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Updated application"},
                    "403": {"description": "Not the listing owner"}
                }
            }
        },
        "/applications/{id}": {
            "delete": {
                "tags": ["applications"],
                "summary": "Withdraw an application",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/bookmarks": {
            "get": {
                "tags": ["bookmarks"],
                "summary": "List the caller's bookmarks",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Bookmarks, newest first"}}
            }
        },
        "/bookmarks/toggle": {
            "post": {
                "tags": ["bookmarks"],
                "summary": "Toggle a bookmark",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Added or Removed"}}
            }
        },
        "/admin/organizations/pending": {
            "get": {
                "tags": ["admin"],
                "summary": "List organizations awaiting approval",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Pending organization profiles"}}
            }
        },
        "/admin/organizations/{id}/decision": {
            "post": {
                "tags": ["admin"],
                "summary": "Approve or reject an organization",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Updated profile"},
                    "404": {"description": "Not found"}
                }
            }
        }
    },
    "definitions": {
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
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
