package response

import (
	"github.com/gofiber/fiber/v2"
)

// Error codes surfaced verbatim to the client. The frontend switches on
// these strings, so they are part of the wire contract.
const (
	CodeBadRequest          = "bad_request"
	CodeInvalidCredentials  = "invalid_credentials"
	CodeUserExpired         = "user_expired"
	CodeUserActiveElsewhere = "user_active_elsewhere"
	CodeUnauthorized        = "unauthorized"
	CodeForbidden           = "forbidden"
	CodeConflict            = "conflict"
	CodeNotFound            = "not_found"
	CodeDBError             = "db_error"
	CodeInvalidJenis        = "invalid_jenis"
	CodeInvalidPosisi       = "invalid_posisi"
	CodeNoFile              = "no_file"
	CodeUploadFailed        = "upload_failed"
	CodeCannotDeleteSelf    = "cannot_delete_self"
)

type errorBody struct {
	Error string `json:"error"`
}

func Err(c *fiber.Ctx, status int, code string) error {
	return c.Status(status).JSON(errorBody{Error: code})
}

func BadRequest(c *fiber.Ctx) error {
	return Err(c, fiber.StatusBadRequest, CodeBadRequest)
}

func Unauthorized(c *fiber.Ctx) error {
	return Err(c, fiber.StatusUnauthorized, CodeUnauthorized)
}

func Forbidden(c *fiber.Ctx) error {
	return Err(c, fiber.StatusForbidden, CodeForbidden)
}

func NotFound(c *fiber.Ctx) error {
	return Err(c, fiber.StatusNotFound, CodeNotFound)
}

func Conflict(c *fiber.Ctx) error {
	return Err(c, fiber.StatusConflict, CodeConflict)
}

func DBError(c *fiber.Ctx) error {
	return Err(c, fiber.StatusInternalServerError, CodeDBError)
}

// OK sends an affirmative body for endpoints that have nothing else to say.
func OK(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}
