package response

import "github.com/gin-gonic/gin"

const (
	CodeOK             = 0
	CodeBadRequest     = 40000
	CodeUnauthorized   = 40100
	CodeInternalServer = 50000

	CodeNoSource      = 40001
	CodeInvalidPDF    = 40002
	CodeFileTooLarge  = 40003
	CodeUnknownMode   = 40004
	CodeEmptyExport   = 40005
	CodeEntryNotFound = 40401

	CodeUpstreamAuth        = 50201
	CodeUpstreamUnavailable = 50301
	CodeUpstreamTimeout     = 50401
)

type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(200, APIResponse{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, APIResponse{
		Code:    code,
		Message: message,
	})
}
